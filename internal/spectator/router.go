package spectator

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/udisondev/arena/internal/gamemode"
	"github.com/udisondev/arena/internal/metrics"
	"github.com/udisondev/arena/internal/model"
)

// RoundSource is what the router reads from the running round.
type RoundSource interface {
	Snapshot() gamemode.Snapshot
}

// ShapeSource lists the static shapes placed in the arena.
type ShapeSource interface {
	Shapes() []model.StaticShape
}

// RouterConfig contains all dependencies needed to construct the HTTP router.
type RouterConfig struct {
	// Round is the running round (required)
	Round RoundSource

	// Hub serves /ws (required)
	Hub *Hub

	// Shapes serves /api/shapes (optional)
	Shapes ShapeSource

	// CORSOrigins is an optional list of allowed CORS origins.
	// If nil, only localhost origins are allowed.
	CORSOrigins []string

	// DisableLogging disables the request logger middleware.
	DisableLogging bool
}

// NewRouter constructs the spectator HTTP router.
// No goroutines are started, so it is safe to use with httptest.NewServer.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	origins := cfg.CORSOrigins
	if origins == nil {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/ws", cfg.Hub.HandleWebSocket)

	r.Route("/api", func(r chi.Router) {
		r.Get("/round", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, cfg.Round.Snapshot())
		})
		if cfg.Shapes != nil {
			r.Get("/shapes", func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, cfg.Shapes.Shapes())
			})
		}
		r.Get("/hud/{player}", func(w http.ResponseWriter, req *http.Request) {
			name := chi.URLParam(req, "player")
			text, ok := cfg.Hub.HUD(name)
			if !ok {
				http.Error(w, "unknown player", http.StatusNotFound)
				return
			}
			writeJSON(w, HUDText{Player: name, Text: text})
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("writing response", "error", err)
	}
}
