package world

import (
	"math"

	"github.com/udisondev/arena/internal/model"
)

// Cell is a grid index pair. (0,0) is the bottom-left cell of the board.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// normalizeSize forces an odd dimension so the board has a unique center cell.
func normalizeSize(n int) int {
	if n%2 == 0 {
		return n + 1
	}
	return n
}

// WorldToGrid converts a world point to grid indices.
// Formula: floor(world) + size/2 (board centered at world origin).
func (b *Board) WorldToGrid(p model.Point) (x, y int) {
	x = int(math.Floor(p.X)) + b.width/2
	y = int(math.Floor(p.Y)) + b.height/2
	return x, y
}

// GridToWorld converts grid indices back to a world point on the Z=0 plane.
// Reverse formula: world = index - size/2
func (b *Board) GridToWorld(x, y int) model.Point {
	return model.NewPoint(float64(x-b.width/2), float64(y-b.height/2), 0)
}

// InBounds checks if grid index is within [0,width) × [0,height)
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}
