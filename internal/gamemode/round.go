// Package gamemode runs one spectator arena round: it owns the board, builds
// walls and obstacles, spawns players and runs the per-tick think step that
// scores damage probabilities between players who see each other.
package gamemode

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/udisondev/arena/internal/ai"
	"github.com/udisondev/arena/internal/game/combat"
	"github.com/udisondev/arena/internal/game/sight"
	"github.com/udisondev/arena/internal/metrics"
	"github.com/udisondev/arena/internal/model"
	"github.com/udisondev/arena/internal/spawn"
	"github.com/udisondev/arena/internal/world"
)

// ShotDamage is the health a successful shot takes from its target.
const ShotDamage = 25.0

var (
	ErrPlayerExists   = errors.New("player already in round")
	ErrPlayerNotFound = errors.New("player not in round")
	ErrPlayerDead     = errors.New("player is dead")
	ErrShootCooldown  = errors.New("shoot delay not elapsed")
)

// Options configures a round.
type Options struct {
	SizeX     int
	SizeY     int
	Obstacles int
}

type entry struct {
	id         uint32
	player     *model.Player
	controller ai.Controller
	state      thinkState
}

// Round is one game mode instance. All board mutation and queries go through
// the round's mutex, so HTTP readers may call Snapshot concurrently with Tick.
type Round struct {
	mu sync.Mutex

	opts    Options
	factory spawn.ObjectFactory
	board   *world.Board
	builder *spawn.Builder
	calc    *combat.Calculator
	rng     *rand.Rand
	ids     *world.ObjectIDGenerator

	players   []*entry
	tickCount int64
	number    int
}

// NewRound creates the board and builds the bounding box and obstacles.
func NewRound(opts Options, factory spawn.ObjectFactory, presenter combat.UIPresenter, rng *rand.Rand) (*Round, error) {
	board := world.NewBoard(opts.SizeX, opts.SizeY)

	calc := combat.NewCalculator(presenter)
	calc.SetObserver(metrics.ObserveDamageProbability)

	r := &Round{
		opts:    opts,
		factory: factory,
		board:   board,
		builder: spawn.NewBuilder(board, factory, rng),
		calc:    calc,
		rng:     rng,
		ids:     world.NewObjectIDGenerator(),
		number:  1,
	}
	if err := r.buildArena(); err != nil {
		return nil, fmt.Errorf("building round: %w", err)
	}

	metrics.SetPlayerCount(0)
	slog.Info("round created",
		"width", board.Width(),
		"height", board.Height(),
		"obstacles", opts.Obstacles,
		"freeCells", board.FreeCells())
	return r, nil
}

func (r *Round) buildArena() error {
	if err := r.builder.CreateBoundingBox(); err != nil {
		return err
	}
	if err := r.builder.GenerateRandomObstacles(r.opts.Obstacles); err != nil {
		return err
	}
	metrics.SetBoardFreeCells(r.board.FreeCells())
	return nil
}

// Board returns the round's board. Callers outside the round's goroutine
// must use Snapshot instead.
func (r *Round) Board() *world.Board {
	return r.board
}

func (r *Round) find(name string) (int, *entry) {
	for i, e := range r.players {
		if e.player.Name() == name {
			return i, e
		}
	}
	return -1, nil
}

// playerCells returns the cells players stand on; spawns avoid them.
func (r *Round) playerCells() []world.Cell {
	cells := make([]world.Cell, 0, len(r.players))
	for _, e := range r.players {
		x, y := r.board.WorldToGrid(e.player.Position())
		cells = append(cells, world.Cell{X: x, Y: y})
	}
	return cells
}

// spawnPose picks a free cell no player stands on. Spawn points are cell
// corners; players stand in the middle of the cell.
func (r *Round) spawnPose() (model.Pose, error) {
	pos, err := r.builder.SpawnPlayer(r.playerCells()...)
	if err != nil {
		return model.Pose{}, err
	}
	return model.NewPose(pos.Add(0.5, 0.5), 0), nil
}

// AddPlayer spawns a new player at the first free spawn cell.
// The datablock deviation is validated up front so a misconfigured player
// never enters the round.
func (r *Round) AddPlayer(name string, data model.PlayerData) (*model.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.addPlayerLocked(name, data)
	if err != nil {
		return nil, err
	}
	return e.player, nil
}

// AddBot adds a player driven by a wandering AI.
func (r *Round) AddBot(name string, data model.PlayerData) (*model.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.addPlayerLocked(name, data)
	if err != nil {
		return nil, err
	}
	e.controller = ai.NewWanderAI(e.player, r.board, r.rng)
	e.controller.Start()
	return e.player, nil
}

func (r *Round) addPlayerLocked(name string, data model.PlayerData) (*entry, error) {
	if _, err := combat.NewDeviation(data.Variance); err != nil {
		return nil, fmt.Errorf("adding player %s: %w", name, err)
	}
	if _, e := r.find(name); e != nil {
		return nil, fmt.Errorf("adding player %s: %w", name, ErrPlayerExists)
	}

	pose, err := r.spawnPose()
	if err != nil {
		return nil, fmt.Errorf("adding player %s: %w", name, err)
	}

	e := &entry{
		id:     r.ids.NextPlayerID(),
		player: model.NewPlayer(name, data, pose),
		state:  newThinkState(),
	}
	r.players = append(r.players, e)

	metrics.SetPlayerCount(len(r.players))
	slog.Info("player spawned", "objectID", e.id, "name", name, "location", e.player.Position())
	return e, nil
}

// RemovePlayer drops a player and stops its controller.
func (r *Round) RemovePlayer(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, e := r.find(name)
	if e == nil {
		return fmt.Errorf("removing player %s: %w", name, ErrPlayerNotFound)
	}
	if e.controller != nil {
		e.controller.Stop()
	}
	r.players = append(r.players[:i], r.players[i+1:]...)

	metrics.SetPlayerCount(len(r.players))
	slog.Info("player removed", "objectID", e.id, "name", name)
	return nil
}

// SetPose moves a host-controlled player.
func (r *Round) SetPose(name string, pose model.Pose) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, e := r.find(name)
	if e == nil {
		return fmt.Errorf("moving player %s: %w", name, ErrPlayerNotFound)
	}
	e.player.SetPose(pose)
	return nil
}

// Players returns players in join order.
func (r *Round) Players() []*model.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playerList()
}

func (r *Round) playerList() []*model.Player {
	out := make([]*model.Player, len(r.players))
	for i, e := range r.players {
		out[i] = e.player
	}
	return out
}

// ShotResult lists the targets a shot was fired at and which of them were hit.
type ShotResult struct {
	Targets []string
	Hits    []string
}

// Shoot fires at every living player the shooter sees. Each target is hit
// with its damage probability and loses ShotDamage health. The shooter then
// waits ShootDelay think steps before it may fire again.
func (r *Round) Shoot(name string) (ShotResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, e := r.find(name)
	if e == nil {
		return ShotResult{}, fmt.Errorf("shooting %s: %w", name, ErrPlayerNotFound)
	}
	return r.shootLocked(e)
}

func (r *Round) shootLocked(e *entry) (ShotResult, error) {
	shooter := e.player
	if shooter.IsDead() {
		return ShotResult{}, fmt.Errorf("shooting %s: %w", shooter.Name(), ErrPlayerDead)
	}
	if e.state.shootDelay > 0 {
		return ShotResult{}, fmt.Errorf("shooting %s: %w", shooter.Name(), ErrShootCooldown)
	}

	deviation, err := combat.NewDeviation(shooter.Data().Variance)
	if err != nil {
		return ShotResult{}, fmt.Errorf("shooting %s: %w", shooter.Name(), err)
	}

	e.state.shootDelay = shooter.Data().ShootDelay

	var res ShotResult
	for _, target := range sight.SearchForPlayers(shooter, r.playerList(), r.board) {
		if target.IsDead() {
			continue
		}
		res.Targets = append(res.Targets, target.Name())

		p := combat.DamageProbability(shooter.Pose(), target.Position(), deviation)
		hit := r.rng.Float64() < p
		metrics.RecordShot(hit)
		if !hit {
			continue
		}
		target.SetHealth(target.Health() - ShotDamage)
		res.Hits = append(res.Hits, target.Name())

		slog.Debug("player hit",
			"shooter", shooter.Name(),
			"target", target.Name(),
			"probability", p,
			"health", target.Health())
	}
	return res, nil
}

// ThinkResult is the outcome of one player's think step.
type ThinkResult struct {
	Player  string
	Visible []string
	// DamageProb is the probability against the last visible target, 0 if none.
	DamageProb float64
	Features   FeatureVector
}

// Tick advances AI controllers, runs Think, and lets bots that see an
// opponent fire once their shoot delay has elapsed.
func (r *Round) Tick() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.players {
		if e.controller != nil {
			e.controller.Tick()
		}
	}
	if _, err := r.think(); err != nil {
		slog.Error("think step failed", "tick", r.tickCount, "error", err)
	}

	for _, e := range r.players {
		if e.controller == nil || len(e.state.visible) == 0 || e.state.shootDelay > 0 || e.player.IsDead() {
			continue
		}
		if _, err := r.shootLocked(e); err != nil {
			slog.Error("bot shot failed", "player", e.player.Name(), "error", err)
		}
	}
}

// Think runs one think step for every player: the HUD is reset to zero, then
// each visible opponent is scored and the last score is kept. The step also
// counts down the shoot delay and records the player's feature vector.
func (r *Round) Think() ([]ThinkResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.think()
}

func (r *Round) think() ([]ThinkResult, error) {
	start := time.Now()
	defer func() { metrics.ObserveThink(time.Since(start).Seconds()) }()

	r.tickCount++
	players := r.playerList()
	results := make([]ThinkResult, 0, len(r.players))
	var errs []error

	for _, e := range r.players {
		observer := e.player
		st := &e.state
		pose := observer.Pose()
		health := observer.Health()

		if !st.thoughtOnce {
			st.thoughtOnce = true
			st.lastPose = pose
			st.lastHealth = health
		}
		st.shootDelay = max(st.shootDelay-1, 0)
		st.tickCount++

		res := ThinkResult{Player: observer.Name()}
		r.calc.SetDamageText(observer.Name(), 0)

		var enemyHealth float64
		for _, other := range players {
			if other != observer {
				enemyHealth = other.Health()
			}
		}

		st.visible = sight.SearchForPlayers(observer, players, r.board)
		if len(st.visible) > 0 {
			st.timeSawEnemy = st.tickCount
		}
		for _, target := range st.visible {
			res.Visible = append(res.Visible, target.Name())

			p, err := r.calc.Compute(observer, target)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			res.DamageProb = p
		}

		if health != st.lastHealth {
			st.timeTookDamage = st.tickCount
		}

		vel := observer.Velocity()
		left, right := obstacleDistances(r.board, pose)
		st.features = FeatureVector{
			DeltaRot:                pose.Yaw - st.lastPose.Yaw,
			DeltaMovedX:             pose.Position.X - st.lastPose.Position.X,
			DeltaMovedY:             pose.Position.Y - st.lastPose.Position.Y,
			VelX:                    vel.X,
			VelY:                    vel.Y,
			DamageProb:              res.DamageProb,
			DeltaDamageProb:         res.DamageProb - st.lastProb,
			DistanceToObstacleLeft:  left,
			DistanceToObstacleRight: right,
			Health:                  health,
			EnemyHealth:             enemyHealth,
			TicksSinceDamage:        ticksSince(st.tickCount, st.timeTookDamage),
			TicksSinceObservedEnemy: ticksSince(st.tickCount, st.timeSawEnemy),
			ShootDelay:              st.shootDelay,
			TickCount:               st.tickCount,
		}

		st.lastPose = pose
		st.lastHealth = health
		st.lastProb = res.DamageProb

		res.Features = st.features
		results = append(results, res)
	}

	return results, errors.Join(errs...)
}

// Decided reports whether at most one of two or more players is still alive.
func (r *Round) Decided() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.players) < 2 {
		return false
	}
	alive := 0
	for _, e := range r.players {
		if !e.player.IsDead() {
			alive++
		}
	}
	return alive <= 1
}

// Restart clears the board and the factory's objects, rebuilds walls and
// obstacles, and respawns every player with full health and fresh think
// state. Players and their controllers are kept.
func (r *Round) Restart() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.factory.(spawn.Clearer); ok {
		c.Clear()
	}
	r.board.Reset()
	if err := r.buildArena(); err != nil {
		return fmt.Errorf("restarting round: %w", err)
	}

	placed := r.players
	r.players = nil
	for _, e := range placed {
		pose, err := r.spawnPose()
		if err != nil {
			r.players = placed
			return fmt.Errorf("restarting round: respawning %s: %w", e.player.Name(), err)
		}
		e.player.Respawn(pose)
		e.state = newThinkState()
		r.players = append(r.players, e)
	}

	r.number++
	metrics.RecordRoundStarted()
	slog.Info("round restarted", "round", r.number, "players", len(r.players), "freeCells", r.board.FreeCells())
	return nil
}

// TickCount returns number of think steps run.
func (r *Round) TickCount() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tickCount
}

// Number returns how many arenas this round has built, starting at 1.
func (r *Round) Number() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.number
}
