package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics with bounded cardinality (no per-player labels)
var (
	shapesPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arena_shapes_placed_total",
		Help: "Static shapes registered and marked on the board",
	}, []string{"kind"}) // Bounded: "wall", "obstacle"

	spawnsPicked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arena_spawns_picked_total",
		Help: "Successful player spawn searches",
	})

	spawnsExhausted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arena_spawn_search_exhausted_total",
		Help: "Spawn searches that found no free cell",
	})

	damageProbability = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "arena_damage_probability",
		Help:    "Computed damage probabilities",
		Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
	})

	boardFreeCells = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arena_board_free_cells",
		Help: "Unoccupied cells on the current board",
	})

	playerCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arena_player_count",
		Help: "Players in the current round",
	})

	shotsFired = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arena_shots_total",
		Help: "Shots fired by players",
	}, []string{"result"}) // Bounded: "hit", "miss"

	roundsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arena_rounds_started_total",
		Help: "Arena rebuilds after a round was decided",
	})

	thinkDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "arena_think_duration_seconds",
		Help:    "Time spent in one think step",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	})

	wsConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "arena_spectator_connections_active",
		Help: "Currently active spectator WebSocket connections",
	})

	wsMessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arena_spectator_messages_total",
		Help: "Total spectator messages broadcast",
	})

	connectionRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arena_spectator_rejected_total",
		Help: "Spectator connections rejected",
	}, []string{"reason"}) // Bounded: "rate_limit", "total_limit", "upgrade"
)

// RecordShot counts one shot at a target.
func RecordShot(hit bool) {
	if hit {
		shotsFired.WithLabelValues("hit").Inc()
		return
	}
	shotsFired.WithLabelValues("miss").Inc()
}

// RecordRoundStarted counts an arena rebuild.
func RecordRoundStarted() {
	roundsStarted.Inc()
}

// RecordShapePlaced counts a wall or obstacle.
func RecordShapePlaced(kind string) {
	shapesPlaced.WithLabelValues(kind).Inc()
}

// RecordSpawn counts a spawn search outcome.
func RecordSpawn(found bool) {
	if found {
		spawnsPicked.Inc()
		return
	}
	spawnsExhausted.Inc()
}

// ObserveDamageProbability records one computed probability.
func ObserveDamageProbability(p float64) {
	damageProbability.Observe(p)
}

// SetBoardFreeCells updates the free cell gauge.
func SetBoardFreeCells(n int) {
	boardFreeCells.Set(float64(n))
}

// SetPlayerCount updates the player gauge.
func SetPlayerCount(n int) {
	playerCount.Set(float64(n))
}

// ObserveThink records think step latency in seconds.
func ObserveThink(seconds float64) {
	thinkDuration.Observe(seconds)
}

// UpdateWSConnections sets the active spectator connection gauge.
func UpdateWSConnections(n int) {
	wsConnectionsActive.Set(float64(n))
}

// IncrementWSMessages counts one broadcast.
func IncrementWSMessages() {
	wsMessagesTotal.Inc()
}

// RecordConnectionRejected counts a rejected spectator connection.
func RecordConnectionRejected(reason string) {
	connectionRejected.WithLabelValues(reason).Inc()
}

// Handler serves the default registry in Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
