package spawn

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/udisondev/arena/internal/metrics"
	"github.com/udisondev/arena/internal/model"
	"github.com/udisondev/arena/internal/world"
)

const (
	// WallHeight is the Z scale of boundary walls and obstacles.
	WallHeight = 0.5

	// Obstacle footprint per axis is drawn from [ObstacleMinScale, ObstacleMaxScale).
	ObstacleMinScale = 1
	ObstacleMaxScale = 10
)

// Builder populates a board: boundary walls, random obstacles and player spawns.
// Every placed shape is created and registered through the factory before its
// footprint is marked on the board.
type Builder struct {
	board   *world.Board
	factory ObjectFactory
	rng     *rand.Rand
}

// NewBuilder creates a builder. rng must not be nil; pass a seeded source for
// reproducible arenas.
func NewBuilder(board *world.Board, factory ObjectFactory, rng *rand.Rand) *Builder {
	return &Builder{
		board:   board,
		factory: factory,
		rng:     rng,
	}
}

// Board returns the board being populated.
func (b *Builder) Board() *world.Board {
	return b.board
}

// place creates, registers and marks one shape.
func (b *Builder) place(kind string, shape model.StaticShape) error {
	h, err := b.factory.Create(shape)
	if err != nil {
		return fmt.Errorf("creating %s at %v: %w", kind, shape.Position, err)
	}
	if err := b.factory.Register(h); err != nil {
		return fmt.Errorf("registering %s %d: %w", kind, h, err)
	}

	b.board.AddShape(shape)
	metrics.RecordShapePlaced(kind)
	return nil
}

// Walls returns the four boundary wall shapes: right, left, front, back.
// Each sits on an outer row or column and spans the full opposite dimension.
func (b *Builder) Walls() []model.StaticShape {
	w, h := b.board.Width(), b.board.Height()
	return []model.StaticShape{
		model.NewStaticShape(b.board.GridToWorld(w-1, (h-1)/2), model.NewPoint(1, float64(h), WallHeight)),
		model.NewStaticShape(b.board.GridToWorld(0, (h-1)/2), model.NewPoint(1, float64(h), WallHeight)),
		model.NewStaticShape(b.board.GridToWorld((w-1)/2, 0), model.NewPoint(float64(w), 1, WallHeight)),
		model.NewStaticShape(b.board.GridToWorld((w-1)/2, h-1), model.NewPoint(float64(w), 1, WallHeight)),
	}
}

// CreateBoundingBox places the four boundary walls, making the board
// perimeter occupied.
func (b *Builder) CreateBoundingBox() error {
	for _, wall := range b.Walls() {
		if err := b.place("wall", wall); err != nil {
			return fmt.Errorf("creating bounding box: %w", err)
		}
	}

	slog.Info("bounding box created",
		"width", b.board.Width(),
		"height", b.board.Height(),
		"freeCells", b.board.FreeCells())
	return nil
}

// RandomObstacle draws one obstacle: cell in [0,width-1) × [0,height-1),
// footprint in [1,10) per axis.
func (b *Builder) RandomObstacle() model.StaticShape {
	x := b.rng.IntN(max(b.board.Width()-1, 1))
	y := b.rng.IntN(max(b.board.Height()-1, 1))
	sx := ObstacleMinScale + b.rng.IntN(ObstacleMaxScale-ObstacleMinScale)
	sy := ObstacleMinScale + b.rng.IntN(ObstacleMaxScale-ObstacleMinScale)

	return model.NewStaticShape(b.board.GridToWorld(x, y), model.NewPoint(float64(sx), float64(sy), WallHeight))
}

// GenerateRandomObstacles places count random obstacles.
// Obstacles may overlap each other, the walls, or the board center; there is
// no free-space check.
func (b *Builder) GenerateRandomObstacles(count int) error {
	for i := range count {
		if err := b.place("obstacle", b.RandomObstacle()); err != nil {
			return fmt.Errorf("obstacle %d/%d: %w", i+1, count, err)
		}
	}

	slog.Info("obstacles generated", "count", count, "freeCells", b.board.FreeCells())
	return nil
}

// SpawnPlayer picks a free spawn point that is not one of the reserved
// cells. The board itself is not changed: players never become obstacles.
func (b *Builder) SpawnPlayer(reserved ...world.Cell) (model.Point, error) {
	p, err := b.board.PickSpawnAvoiding(reserved...)
	if err != nil {
		metrics.RecordSpawn(false)
		if errors.Is(err, world.ErrSpawnSearchExhausted) {
			slog.Warn("spawn search exhausted", "freeCells", b.board.FreeCells(), "reserved", len(reserved))
		}
		return model.Point{}, fmt.Errorf("picking player spawn: %w", err)
	}

	metrics.RecordSpawn(true)
	return p, nil
}
