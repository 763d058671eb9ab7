package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoseForward(t *testing.T) {
	tests := []struct {
		name   string
		yaw    float64
		wantDX float64
		wantDY float64
	}{
		{"north", 0, 0, 1},
		{"east", math.Pi / 2, 1, 0},
		{"south", math.Pi, 0, -1},
		{"west", -math.Pi / 2, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dx, dy := NewPose(Point{}, tt.yaw).Forward()
			assert.InDelta(t, tt.wantDX, dx, 1e-9)
			assert.InDelta(t, tt.wantDY, dy, 1e-9)
		})
	}
}

func TestPoseImmutable(t *testing.T) {
	p := NewPose(NewPoint(1, 2, 3), 0.5)

	moved := p.WithPosition(NewPoint(4, 5, 6))
	turned := p.WithYaw(1.5)

	assert.Equal(t, NewPoint(1, 2, 3), p.Position)
	assert.Equal(t, 0.5, p.Yaw)
	assert.Equal(t, NewPoint(4, 5, 6), moved.Position)
	assert.Equal(t, 1.5, turned.Yaw)
}

func TestPointDistance2D(t *testing.T) {
	a := NewPoint(0, 0, 10)
	b := NewPoint(3, 4, -10)

	assert.InDelta(t, 5.0, a.Distance2D(b), 1e-9, "Z must be ignored")
	assert.Equal(t, NewPoint(1, 1, 10), a.Add(1, 1))
}

func TestPlayerHealth(t *testing.T) {
	data := DefaultPlayerData()
	p := NewPlayer("alice", data, NewPose(Point{}, 0))

	assert.Equal(t, "alice", p.Name())
	assert.Equal(t, data.Health, p.Health())
	assert.False(t, p.IsDead())

	p.SetHealth(-5)
	assert.Equal(t, 0.0, p.Health())
	assert.True(t, p.IsDead())
}

func TestCollisionTypeString(t *testing.T) {
	assert.Equal(t, "bounds", CollisionBounds.String())
	assert.Equal(t, "unknown", CollisionType(42).String())
}

func TestDefaultPlayerDataMatchesEngine(t *testing.T) {
	d := DefaultPlayerData()

	assert.Equal(t, PlayerData{
		Variance:    1,
		MoveSpeed:   1,
		TurnSpeed:   1,
		Friction:    0.1,
		FOV:         70,
		AspectRatio: 1,
		NearDist:    0.5,
		FarDist:     200,
		ShootDelay:  15,
		Health:      100,
	}, d)
}

func TestPlayerRespawn(t *testing.T) {
	p := NewPlayer("alice", DefaultPlayerData(), NewPose(Point{}, 0))
	p.SetHealth(10)
	p.SetVelocity(NewPoint(1, 2, 0))

	p.Respawn(NewPose(NewPoint(3, 4, 0), 1))

	assert.Equal(t, 100.0, p.Health())
	assert.Equal(t, Point{}, p.Velocity())
	assert.Equal(t, NewPose(NewPoint(3, 4, 0), 1), p.Pose())
}
