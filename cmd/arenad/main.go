package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/arena/internal/ai"
	"github.com/udisondev/arena/internal/config"
	"github.com/udisondev/arena/internal/gamemode"
	"github.com/udisondev/arena/internal/spawn"
	"github.com/udisondev/arena/internal/spectator"
)

const ArenaConfigPath = "config/arena.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ArenaConfigPath
	if p := os.Getenv("ARENA_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadArena(cfgPath)
	if err != nil {
		return fmt.Errorf("loading arena config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	seed := cfg.Board.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	slog.Info("arena starting",
		"log_level", cfg.LogLevel,
		"board", fmt.Sprintf("%dx%d", cfg.Board.SizeX, cfg.Board.SizeY),
		"obstacles", cfg.Board.Obstacles,
		"seed", seed)

	limiter := spectator.NewConnLimiter(cfg.Spectator.ConnectRate, cfg.Spectator.ConnectBurst)
	hub := spectator.NewHub(cfg.Spectator.MaxConnections, limiter)

	registry := spawn.NewRegistry()
	round, err := gamemode.NewRound(gamemode.Options{
		SizeX:     cfg.Board.SizeX,
		SizeY:     cfg.Board.SizeY,
		Obstacles: cfg.Board.Obstacles,
	}, registry, hub, rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		return fmt.Errorf("creating round: %w", err)
	}
	slog.Info("arena built", "shapes", registry.Count())

	data := cfg.Player.DataBlock()
	for _, name := range cfg.Bots {
		if _, err := round.AddBot(name, data); err != nil {
			return fmt.Errorf("adding bot: %w", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	// Each tick advances the round and pushes the new state to spectators.
	// Once a single player is left standing the arena is rebuilt.
	tickMgr := ai.NewTickManager(ai.TickFunc(func() {
		round.Tick()
		if round.Decided() {
			if err := round.Restart(); err != nil {
				slog.Error("restarting round", "error", err)
			}
		}
		hub.Broadcast("round", round.Snapshot())
	}), cfg.TickInterval)
	g.Go(func() error {
		slog.Info("starting round loop", "interval", cfg.TickInterval)
		if err := tickMgr.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("round loop: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := hub.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("spectator hub: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if n := limiter.Cleanup(10 * time.Minute); n > 0 {
					slog.Debug("connection limiter cleanup", "removed", n)
				}
			}
		}
	})

	if cfg.Spectator.Enabled {
		srv := &http.Server{
			Addr: cfg.Spectator.Addr(),
			Handler: spectator.NewRouter(spectator.RouterConfig{
				Round:       round,
				Hub:         hub,
				Shapes:      registry,
				CORSOrigins: cfg.Spectator.CORSOrigins,
			}),
			ReadHeaderTimeout: 5 * time.Second,
		}

		g.Go(func() error {
			slog.Info("starting spectator server", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("spectator server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("arena stopped", "ticks", round.TickCount())
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
