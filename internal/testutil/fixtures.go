package testutil

import (
	"math/rand/v2"

	"github.com/udisondev/arena/internal/model"
	"github.com/udisondev/arena/internal/world"
)

// Seed used by tests that need a reproducible arena.
const Seed = 42

// NewRand returns a deterministic random source.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(Seed, Seed))
}

// NewPlayerAt creates a player with default datablock at (x, y) facing yaw.
func NewPlayerAt(name string, x, y, yaw float64) *model.Player {
	return model.NewPlayer(name, model.DefaultPlayerData(), model.NewPose(model.NewPoint(x, y, 0), yaw))
}

// FillBoard occupies every cell except the listed ones.
func FillBoard(b *world.Board, free ...world.Cell) {
	skip := make(map[world.Cell]bool, len(free))
	for _, c := range free {
		skip[c] = true
	}
	for x := range b.Width() {
		for y := range b.Height() {
			if skip[world.Cell{X: x, Y: y}] {
				continue
			}
			b.AddShape(model.NewStaticShape(b.GridToWorld(x, y), model.NewPoint(1, 1, 0)))
		}
	}
}
