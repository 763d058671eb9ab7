package spawn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/arena/internal/model"
	"github.com/udisondev/arena/internal/world"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	shape := model.NewStaticShape(model.NewPoint(1, 2, 0), model.NewPoint(3, 3, WallHeight))

	h, err := r.Create(shape)
	require.NoError(t, err)
	assert.True(t, world.IsShapeID(uint32(h)))
	assert.Equal(t, 0, r.Count(), "created objects are inactive until registered")

	require.NoError(t, r.Register(h))
	assert.Equal(t, []model.StaticShape{shape}, r.Shapes())

	assert.Error(t, r.Register(h), "double registration")
	assert.ErrorContains(t, r.Register(Handle(1)), "not a shape handle")
	assert.ErrorContains(t, r.Register(h+1), "not created")

	r.Clear()
	assert.Equal(t, 0, r.Count())
	assert.Empty(t, r.Shapes())
	assert.ErrorContains(t, r.Register(h), "not created", "cleared handles are gone")
}

func TestBuilderWithRegistry(t *testing.T) {
	board := world.NewBoard(9, 9)
	r := NewRegistry()
	b := NewBuilder(board, r, nil)

	require.NoError(t, b.CreateBoundingBox())
	assert.Equal(t, 4, r.Count())
	assert.Same(t, board, b.Board())
}
