package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type point struct{ X, Y int }

func collect(it *LineIterator) []point {
	var points []point
	for it.Next() {
		points = append(points, point{it.X(), it.Y()})
	}
	return points
}

func TestLineIteratorHorizontal(t *testing.T) {
	points := collect(NewLineIterator(0, 0, 5, 0))

	assert.Equal(t, 6, len(points), "should visit 6 points (0..5)")
	assert.Equal(t, 0, points[0].X)
	assert.Equal(t, 5, points[5].X)

	// All Y should be 0
	for _, p := range points {
		assert.Equal(t, 0, p.Y)
	}
}

func TestLineIteratorVertical(t *testing.T) {
	points := collect(NewLineIterator(0, 0, 0, 3))

	assert.Equal(t, 4, len(points))
	assert.Equal(t, 0, points[0].Y)
	assert.Equal(t, 3, points[3].Y)
}

func TestLineIteratorDiagonal(t *testing.T) {
	points := collect(NewLineIterator(0, 0, 3, 3))

	assert.Equal(t, []point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}, points)
}

func TestLineIteratorNegative(t *testing.T) {
	points := collect(NewLineIterator(5, 5, 2, 3))

	assert.Equal(t, point{5, 5}, points[0])
	assert.Equal(t, point{2, 3}, points[len(points)-1])
	assert.Equal(t, 4, len(points), "X-dominant line visits |dx|+1 cells")
}

func TestLineIteratorSamePoint(t *testing.T) {
	it := NewLineIterator(3, 3, 3, 3)

	count := 0
	for it.Next() {
		count++
	}
	// Only start point
	assert.Equal(t, 1, count)
}

func TestLineIteratorCellsAreAdjacent(t *testing.T) {
	points := collect(NewLineIterator(-4, 7, 9, -2))

	for i := 1; i < len(points); i++ {
		dx := abs(points[i].X - points[i-1].X)
		dy := abs(points[i].Y - points[i-1].Y)
		assert.LessOrEqual(t, dx, 1)
		assert.LessOrEqual(t, dy, 1)
	}
}
