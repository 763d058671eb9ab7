package sight

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/arena/internal/model"
	"github.com/udisondev/arena/internal/world"
)

func newPlayer(name string, x, y, yaw float64) *model.Player {
	return model.NewPlayer(name, model.DefaultPlayerData(), model.NewPose(model.NewPoint(x, y, 0), yaw))
}

func TestInViewCone(t *testing.T) {
	data := model.DefaultPlayerData() // FOV 70, near 0.5, far 200
	pose := model.NewPose(model.NewPoint(0, 0, 0), 0)

	tests := []struct {
		name   string
		target model.Point
		want   bool
	}{
		{"straight ahead", model.NewPoint(0, 10, 0), true},
		{"edge of cone", model.NewPoint(6.9, 10, 0), true},
		{"outside cone", model.NewPoint(7.1, 10, 0), false},
		{"behind", model.NewPoint(0, -10, 0), false},
		{"too close", model.NewPoint(0, 0.4, 0), false},
		{"inside near", model.NewPoint(0, 0.6, 0), true},
		{"slightly above", model.NewPoint(0, 10, 6.9), true},
		{"above frustum", model.NewPoint(0, 10, 7.1), false},
		{"too far", model.NewPoint(0, 250, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InViewCone(pose, data, tt.target))
		})
	}
}

func TestInViewConeAspectRatio(t *testing.T) {
	data := model.DefaultPlayerData()
	pose := model.NewPose(model.NewPoint(0, 0, 0), 0)
	target := model.NewPoint(0, 10, 5)

	require.True(t, InViewCone(pose, data, target))

	// wide and flat frustum: vertical half angle shrinks to atan(tan(35°)/2)
	data.AspectRatio = 2
	assert.False(t, InViewCone(pose, data, target))
	assert.True(t, InViewCone(pose, data, model.NewPoint(0, 10, 3)))
}

func TestCanSeeBlockedByObstacle(t *testing.T) {
	board := world.NewBoard(21, 21)
	observer := newPlayer("obs", 0, -5, 0)
	target := newPlayer("tgt", 0, 5, math.Pi)

	require.True(t, CanSee(observer, target, board))

	board.AddShape(model.NewStaticShape(model.NewPoint(0, 0, 0), model.NewPoint(1, 1, 0.5)))

	assert.False(t, CanSee(observer, target, board))
	assert.False(t, CanSee(target, observer, board))
}

func TestCanSeeRespectsHeading(t *testing.T) {
	board := world.NewBoard(21, 21)
	observer := newPlayer("obs", 0, 0, math.Pi) // facing -Y
	target := newPlayer("tgt", 0, 5, math.Pi)

	assert.False(t, CanSee(observer, target, board))
	assert.True(t, CanSee(target, observer, board))
}

func TestSearchForPlayers(t *testing.T) {
	board := world.NewBoard(31, 31)
	observer := newPlayer("obs", 0, 0, 0)
	ahead := newPlayer("ahead", 1, 6, 0)
	behind := newPlayer("behind", 0, -6, 0)
	hidden := newPlayer("hidden", -3, 10, 0)
	board.AddShape(model.NewStaticShape(model.NewPoint(-2, 6, 0), model.NewPoint(3, 3, 0.5)))

	players := []*model.Player{observer, ahead, behind, hidden}
	visible := SearchForPlayers(observer, players, board)

	require.Len(t, visible, 1)
	assert.Equal(t, "ahead", visible[0].Name())
}
