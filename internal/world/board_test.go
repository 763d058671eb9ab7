package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/arena/internal/model"
)

func unitShapeAt(b *Board, x, y int, sx, sy float64) model.StaticShape {
	return model.NewStaticShape(b.GridToWorld(x, y), model.NewPoint(sx, sy, 0.5))
}

func TestIsOccupiedOutOfBounds(t *testing.T) {
	b := NewBoard(5, 5)

	assert.False(t, b.IsOccupied(model.NewPoint(0, 0, 0)))
	assert.True(t, b.IsOccupied(model.NewPoint(3, 0, 0)), "x index 5 is outside")
	assert.True(t, b.IsOccupied(model.NewPoint(0, -3, 0)), "y index -1 is outside")
	assert.True(t, b.IsOccupied(model.NewPoint(-100, 100, 0)))
	assert.True(t, b.IsCellOccupied(-1, 2))
	assert.True(t, b.IsCellOccupied(2, 5))
}

func TestAddShapeUnitScaleMarksSingleCell(t *testing.T) {
	b := NewBoard(10, 10)
	cx, cy := b.Center()
	require.Equal(t, 5, cx)
	require.Equal(t, 5, cy)

	// floor(1/2) = 0: only the center cell itself
	b.AddShape(unitShapeAt(b, cx, cy, 1, 1))

	assert.True(t, b.IsCellOccupied(5, 5))
	for _, n := range []Cell{{4, 4}, {4, 5}, {4, 6}, {5, 4}, {5, 6}, {6, 4}, {6, 5}, {6, 6}} {
		assert.False(t, b.IsCellOccupied(n.X, n.Y), "neighbor %v must stay free", n)
	}
	assert.Equal(t, 11*11-1, b.FreeCells())
}

func TestAddShapeRectangle(t *testing.T) {
	b := NewBoard(11, 11)

	// scale 5×3 → half extents 2×1 → 5×3 cells around (5,5)
	b.AddShape(unitShapeAt(b, 5, 5, 5, 3))

	for x := range b.Width() {
		for y := range b.Height() {
			inside := x >= 3 && x <= 7 && y >= 4 && y <= 6
			assert.Equal(t, inside, b.IsCellOccupied(x, y), "cell (%d,%d)", x, y)
		}
	}
	assert.Equal(t, 15, len(b.OccupiedCells()))
}

func TestAddShapeFractionalScale(t *testing.T) {
	b := NewBoard(11, 11)

	// floor(3.9/2) = 1, floor(1.5/2) = 0
	b.AddShape(unitShapeAt(b, 5, 5, 3.9, 1.5))

	assert.Equal(t, []Cell{{4, 5}, {5, 5}, {6, 5}}, b.OccupiedCells())
}

func TestAddShapeClipsAtEdge(t *testing.T) {
	b := NewBoard(5, 5)

	require.NotPanics(t, func() {
		b.AddShape(unitShapeAt(b, 0, 0, 5, 5))
	})

	// half extents 2: [-2,2]×[-2,2] clipped to [0,2]×[0,2]
	assert.Equal(t, 9, len(b.OccupiedCells()))
	assert.True(t, b.IsCellOccupied(2, 2))
	assert.False(t, b.IsCellOccupied(3, 0))
	assert.False(t, b.IsCellOccupied(0, 3))
}

func TestAddShapeFullyOutside(t *testing.T) {
	b := NewBoard(5, 5)

	b.AddShape(model.NewStaticShape(model.NewPoint(50, 50, 0), model.NewPoint(3, 3, 1)))

	assert.Equal(t, 25, b.FreeCells())
}

func TestPickPlayerSpawnEmptyBoardReturnsOrigin(t *testing.T) {
	b := NewBoard(10, 10)

	p, err := b.PickPlayerSpawn()
	require.NoError(t, err)
	assert.Equal(t, model.NewPoint(0, 0, 0), p)
}

func TestPickPlayerSpawnSkipsOccupiedCenter(t *testing.T) {
	b := NewBoard(10, 10)
	cx, cy := b.Center()
	b.AddShape(unitShapeAt(b, cx, cy, 1, 1))

	p, err := b.PickPlayerSpawn()
	require.NoError(t, err)

	x, y := b.WorldToGrid(p)
	assert.False(t, x == cx && y == cy, "spawn must differ from center")
	assert.False(t, b.IsOccupied(p))
	assert.Equal(t, Cell{5, 6}, Cell{x, y}, "scan advances along Y first")
}

func TestPickPlayerSpawnWrapsY(t *testing.T) {
	b := NewBoard(5, 5) // center (2,2), moduli 4×4
	b.AddShape(unitShapeAt(b, 2, 2, 1, 1))
	b.AddShape(unitShapeAt(b, 2, 3, 1, 1))

	// (2,2) → (2,3) → y wraps to 0, x advances → (3,0)
	p, err := b.PickPlayerSpawn()
	require.NoError(t, err)
	x, y := b.WorldToGrid(p)
	assert.Equal(t, Cell{3, 0}, Cell{x, y})
}

func TestPickSpawnAvoidingReservedCells(t *testing.T) {
	b := NewBoard(5, 5)

	p, err := b.PickSpawnAvoiding(Cell{2, 2}, Cell{2, 3})
	require.NoError(t, err)
	x, y := b.WorldToGrid(p)
	assert.Equal(t, Cell{3, 0}, Cell{x, y}, "reserved cells are skipped like occupied ones")
	assert.Equal(t, 25, b.FreeCells(), "reservation does not mark the board")

	p, err = b.PickSpawnAvoiding()
	require.NoError(t, err)
	assert.Equal(t, model.NewPoint(0, 0, 0), p)
}

func TestPickPlayerSpawnSingleFreeCell(t *testing.T) {
	b := NewBoard(7, 7)
	free := Cell{X: 1, Y: 4}

	for x := range b.Width() {
		for y := range b.Height() {
			if x == free.X && y == free.Y {
				continue
			}
			b.AddShape(unitShapeAt(b, x, y, 1, 1))
		}
	}
	require.Equal(t, 1, b.FreeCells())

	p, err := b.PickPlayerSpawn()
	require.NoError(t, err)
	assert.Equal(t, b.GridToWorld(free.X, free.Y), p)
}

func TestPickPlayerSpawnExhausted(t *testing.T) {
	b := NewBoard(5, 5)
	b.AddShape(unitShapeAt(b, 2, 2, 5, 5))
	require.Equal(t, 0, b.FreeCells())

	_, err := b.PickPlayerSpawn()
	assert.ErrorIs(t, err, ErrSpawnSearchExhausted)
}

func TestPickPlayerSpawnNeverVisitsLastRowAndColumn(t *testing.T) {
	b := NewBoard(5, 5)

	// leave only the last column and last row free
	for x := range b.Width() - 1 {
		for y := range b.Height() - 1 {
			b.AddShape(unitShapeAt(b, x, y, 1, 1))
		}
	}
	require.Equal(t, 9, b.FreeCells())

	_, err := b.PickPlayerSpawn()
	assert.ErrorIs(t, err, ErrSpawnSearchExhausted)
}

func TestPickPlayerSpawnSingleCellBoard(t *testing.T) {
	b := NewBoard(1, 1)

	p, err := b.PickPlayerSpawn()
	require.NoError(t, err)
	assert.Equal(t, model.NewPoint(0, 0, 0), p)

	b.AddShape(unitShapeAt(b, 0, 0, 1, 1))
	require.NotPanics(t, func() {
		_, err = b.PickPlayerSpawn()
	})
	assert.ErrorIs(t, err, ErrSpawnSearchExhausted)
}

func TestReset(t *testing.T) {
	b := NewBoard(5, 5)
	b.AddShape(unitShapeAt(b, 2, 2, 3, 3))
	require.Less(t, b.FreeCells(), 25)

	b.Reset()

	assert.Equal(t, 25, b.FreeCells())
	assert.Equal(t, 5, b.Width())
	assert.Empty(t, b.OccupiedCells())
}
