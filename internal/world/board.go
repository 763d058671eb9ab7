package world

import (
	"errors"
	"math"
	"slices"

	"github.com/udisondev/arena/internal/model"
)

// ErrSpawnSearchExhausted is returned when the spawn scan visits every
// candidate cell without finding a free one.
var ErrSpawnSearchExhausted = errors.New("no free spawn cell")

// Board is the occupancy grid of one arena round.
// Both dimensions are odd, the center cell maps to world origin.
//
// Board is not safe for concurrent use; the owning round serializes access.
type Board struct {
	width  int
	height int
	cells  []bool // row-major by X: cells[x*height+y]
}

// NewBoard creates an empty board. Even sizes are incremented by one.
// Caller must pass positive sizes.
func NewBoard(sizeX, sizeY int) *Board {
	w := normalizeSize(sizeX)
	h := normalizeSize(sizeY)
	return &Board{
		width:  w,
		height: h,
		cells:  make([]bool, w*h),
	}
}

// Width returns the number of cells along X.
func (b *Board) Width() int { return b.width }

// Height returns the number of cells along Y.
func (b *Board) Height() int { return b.height }

// Center returns the grid index of the cell at world origin.
func (b *Board) Center() (int, int) {
	return b.width / 2, b.height / 2
}

// IsOccupied reports whether the cell under p is blocked.
// Points outside the board are always reported as occupied.
func (b *Board) IsOccupied(p model.Point) bool {
	x, y := b.WorldToGrid(p)
	return b.IsCellOccupied(x, y)
}

// IsCellOccupied is IsOccupied on grid indices.
func (b *Board) IsCellOccupied(x, y int) bool {
	if !b.InBounds(x, y) {
		return true
	}
	return b.cells[x*b.height+y]
}

func (b *Board) mark(x, y int) {
	b.cells[x*b.height+y] = true
}

// AddShape marks the footprint of a static shape as occupied.
// The shape is assumed to have a unit base footprint, so half extent per axis
// is floor(scale/2). Cells falling outside the board are clipped.
func (b *Board) AddShape(shape model.StaticShape) {
	xPos, yPos := b.WorldToGrid(shape.Position)
	halfX := int(math.Floor(shape.Scale.X / 2))
	halfY := int(math.Floor(shape.Scale.Y / 2))

	for x := xPos - halfX; x <= xPos+halfX; x++ {
		for y := yPos - halfY; y <= yPos+halfY; y++ {
			if !b.InBounds(x, y) {
				continue
			}
			b.mark(x, y)
		}
	}
}

// PickPlayerSpawn returns the world point of the first free cell found by
// scanning from the center: Y advances modulo height-1, and each time Y wraps
// to zero X advances modulo width-1. The last row and column are therefore
// never visited (they hold the boundary walls once the arena is built).
//
// The scan stops after width*height candidates with ErrSpawnSearchExhausted.
func (b *Board) PickPlayerSpawn() (model.Point, error) {
	return b.PickSpawnAvoiding()
}

// PickSpawnAvoiding is PickPlayerSpawn that also skips reserved cells.
// Players are not part of the static grid; the caller passes the cells they
// currently stand on.
func (b *Board) PickSpawnAvoiding(reserved ...Cell) (model.Point, error) {
	c, err := b.pickSpawnCell(reserved)
	if err != nil {
		return model.Point{}, err
	}
	return b.GridToWorld(c.X, c.Y), nil
}

func (b *Board) pickSpawnCell(reserved []Cell) (Cell, error) {
	modX := max(b.width-1, 1)
	modY := max(b.height-1, 1)

	x, y := b.Center()
	for range b.width * b.height {
		if !b.IsCellOccupied(x, y) && !slices.Contains(reserved, Cell{X: x, Y: y}) {
			return Cell{X: x, Y: y}, nil
		}
		y = (y + 1) % modY
		if y == 0 {
			x = (x + 1) % modX
		}
	}
	return Cell{}, ErrSpawnSearchExhausted
}

// FreeCells counts unoccupied cells.
func (b *Board) FreeCells() int {
	n := 0
	for _, occupied := range b.cells {
		if !occupied {
			n++
		}
	}
	return n
}

// OccupiedCells returns every occupied cell, ordered by X then Y.
func (b *Board) OccupiedCells() []Cell {
	out := make([]Cell, 0, len(b.cells)-b.FreeCells())
	for i, occupied := range b.cells {
		if occupied {
			out = append(out, Cell{X: i / b.height, Y: i % b.height})
		}
	}
	return out
}

// Reset clears every cell. Dimensions are kept.
func (b *Board) Reset() {
	clear(b.cells)
}
