package ai

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"sync/atomic"

	"github.com/udisondev/arena/internal/model"
)

// Terrain answers whether a world point is blocked.
type Terrain interface {
	IsOccupied(p model.Point) bool
}

// ThrustPerTick scales MoveSpeed into the velocity gained in one tick.
const ThrustPerTick = 0.1

// WanderAI turns a player by a random amount up to TurnSpeed each tick and
// accelerates it along the heading. Velocity decays by Friction every tick,
// so it settles at MoveSpeed*ThrustPerTick/Friction. A blocked step stops
// the player and turns it around.
type WanderAI struct {
	player  *model.Player
	terrain Terrain
	rng     *rand.Rand

	isRunning atomic.Bool
	tickCount atomic.Int32
	blocked   atomic.Int32
}

// NewWanderAI creates a wandering controller for player.
func NewWanderAI(player *model.Player, terrain Terrain, rng *rand.Rand) *WanderAI {
	return &WanderAI{
		player:  player,
		terrain: terrain,
		rng:     rng,
	}
}

// Start starts AI controller
func (ai *WanderAI) Start() {
	ai.isRunning.Store(true)
	slog.Debug("wander AI started", "player", ai.player.Name())
}

// Stop stops AI controller
func (ai *WanderAI) Stop() {
	ai.isRunning.Store(false)
	slog.Debug("wander AI stopped", "player", ai.player.Name())
}

// Tick performs one wander step.
func (ai *WanderAI) Tick() {
	if !ai.isRunning.Load() || ai.player.IsDead() {
		return
	}
	ai.tickCount.Add(1)

	data := ai.player.Data()
	pose := ai.player.Pose()

	turn := (ai.rng.Float64()*2 - 1) * data.TurnSpeed
	pose = pose.WithYaw(normalizeYaw(pose.Yaw + turn))

	dx, dy := pose.Forward()
	vel := ai.player.Velocity()
	vel.X += dx*data.MoveSpeed*ThrustPerTick - vel.X*data.Friction
	vel.Y += dy*data.MoveSpeed*ThrustPerTick - vel.Y*data.Friction
	next := pose.Position.Add(vel.X, vel.Y)

	if ai.terrain.IsOccupied(next) && !sameCell(next, pose.Position) {
		ai.blocked.Add(1)
		vel = model.Point{}
		pose = pose.WithYaw(normalizeYaw(pose.Yaw + math.Pi))
	} else {
		pose = pose.WithPosition(next)
	}

	ai.player.SetVelocity(vel)
	ai.player.SetPose(pose)
}

// TickCount returns number of performed ticks.
func (ai *WanderAI) TickCount() int32 {
	return ai.tickCount.Load()
}

// BlockedCount returns number of steps refused by terrain.
func (ai *WanderAI) BlockedCount() int32 {
	return ai.blocked.Load()
}

func sameCell(a, b model.Point) bool {
	return math.Floor(a.X) == math.Floor(b.X) && math.Floor(a.Y) == math.Floor(b.Y)
}

// normalizeYaw wraps an angle into (-π, π].
func normalizeYaw(yaw float64) float64 {
	yaw = math.Mod(yaw, 2*math.Pi)
	if yaw <= -math.Pi {
		yaw += 2 * math.Pi
	} else if yaw > math.Pi {
		yaw -= 2 * math.Pi
	}
	return yaw
}
