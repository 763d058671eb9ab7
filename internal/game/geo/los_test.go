package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type cellSet map[point]bool

func (s cellSet) IsCellOccupied(x, y int) bool {
	return s[point{x, y}]
}

func TestHasLineOfSightClear(t *testing.T) {
	assert.True(t, HasLineOfSight(cellSet{}, 0, 0, 10, 4))
	assert.True(t, HasLineOfSight(cellSet{}, 2, 2, 2, 2))
}

func TestHasLineOfSightBlocked(t *testing.T) {
	grid := cellSet{{3, 0}: true}

	assert.False(t, HasLineOfSight(grid, 0, 0, 6, 0))
	assert.False(t, HasLineOfSight(grid, 6, 0, 0, 0), "symmetric for axis-aligned lines")
	assert.True(t, HasLineOfSight(grid, 0, 1, 6, 1))
}

func TestHasLineOfSightEndpointsIgnored(t *testing.T) {
	grid := cellSet{{0, 0}: true, {4, 0}: true}

	assert.True(t, HasLineOfSight(grid, 0, 0, 4, 0))
}

func TestFirstBlocked(t *testing.T) {
	grid := cellSet{{2, 2}: true, {4, 4}: true}

	x, y, ok := FirstBlocked(grid, 0, 0, 6, 6)
	assert.True(t, ok)
	assert.Equal(t, 2, x)
	assert.Equal(t, 2, y)

	_, _, ok = FirstBlocked(grid, 0, 1, 6, 1)
	assert.False(t, ok)
}
