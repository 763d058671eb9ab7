package gamemode

import (
	"github.com/udisondev/arena/internal/game/geo"
	"github.com/udisondev/arena/internal/model"
	"github.com/udisondev/arena/internal/world"
)

// Never is reported by tick counters for events that have not happened yet.
const Never int64 = -1

const (
	// Half extents of a player's box, used for the obstacle rays.
	playerHalfWidth = 0.5
	playerHalfDepth = 0.5

	obstacleRayLength = 100.0
)

// FeatureVector is what one player observed during one think step.
type FeatureVector struct {
	DeltaRot    float64 `json:"deltaRot"`
	DeltaMovedX float64 `json:"deltaMovedX"`
	DeltaMovedY float64 `json:"deltaMovedY"`
	VelX        float64 `json:"velX"`
	VelY        float64 `json:"velY"`

	DamageProb      float64 `json:"damageProb"`
	DeltaDamageProb float64 `json:"deltaDamageProb"`

	DistanceToObstacleLeft  float64 `json:"distanceToObstacleLeft"`
	DistanceToObstacleRight float64 `json:"distanceToObstacleRight"`

	Health      float64 `json:"health"`
	EnemyHealth float64 `json:"enemyHealth"`

	TicksSinceDamage        int64 `json:"ticksSinceDamage"`
	TicksSinceObservedEnemy int64 `json:"ticksSinceObservedEnemy"`
	ShootDelay              int32 `json:"shootDelay"`
	TickCount               int64 `json:"tickCount"`
}

// thinkState is the per-player memory carried between think steps.
type thinkState struct {
	thoughtOnce bool
	tickCount   int64
	shootDelay  int32

	lastPose   model.Pose
	lastHealth float64
	lastProb   float64

	timeSawEnemy   int64
	timeTookDamage int64

	features FeatureVector
	visible  []*model.Player
}

func newThinkState() thinkState {
	return thinkState{timeSawEnemy: Never, timeTookDamage: Never}
}

func ticksSince(now, at int64) int64 {
	if at == Never {
		return Never
	}
	return now - at
}

// obstacleDistances casts two rays along the heading, from the front-left
// and front-right corners of the player's box, and returns the distance to
// the first blocked cell on each. A ray that hits nothing within range
// reports 0.
func obstacleDistances(board *world.Board, pose model.Pose) (left, right float64) {
	fx, fy := pose.Forward()
	rx, ry := fy, -fx

	front := pose.Position.Add(fx*playerHalfDepth, fy*playerHalfDepth)
	l := front.Add(-rx*playerHalfWidth, -ry*playerHalfWidth)
	r := front.Add(rx*playerHalfWidth, ry*playerHalfWidth)

	return rayDistance(board, l, fx, fy), rayDistance(board, r, fx, fy)
}

// rayDistance measures from `from` to the center of the first blocked cell.
func rayDistance(board *world.Board, from model.Point, fx, fy float64) float64 {
	to := from.Add(fx*obstacleRayLength, fy*obstacleRayLength)
	x1, y1 := board.WorldToGrid(from)
	x2, y2 := board.WorldToGrid(to)

	if board.IsCellOccupied(x1, y1) {
		return 0
	}

	x, y, ok := geo.FirstBlocked(board, x1, y1, x2, y2)
	if !ok {
		if !board.IsCellOccupied(x2, y2) {
			return 0
		}
		x, y = x2, y2
	}

	center := board.GridToWorld(x, y).Add(0.5, 0.5)
	return from.Distance2D(center)
}
