// Package sight answers "can this player see that one" on the arena board:
// a horizontal view cone from the player's datablock plus grid line of sight.
package sight

import (
	"math"

	"github.com/udisondev/arena/internal/game/geo"
	"github.com/udisondev/arena/internal/model"
)

// Board is what visibility needs from the occupancy grid.
type Board interface {
	geo.Occupancy
	WorldToGrid(p model.Point) (int, int)
}

// InViewCone checks distance limits and the view frustum of the observer.
// FOV is the full horizontal angle in degrees; the vertical angle follows
// from AspectRatio (horizontal over vertical extent). The target must lie
// between NearDist and FarDist.
func InViewCone(observer model.Pose, data model.PlayerData, target model.Point) bool {
	dist := observer.Position.Distance2D(target)
	dz := target.Z - observer.Position.Z
	if full := math.Hypot(dist, dz); full < data.NearDist || full > data.FarDist {
		return false
	}
	if dist == 0 {
		return dz == 0
	}

	fx, fy := observer.Forward()
	tx := (target.X - observer.Position.X) / dist
	ty := (target.Y - observer.Position.Y) / dist

	cos := max(-1, min(1, fx*tx+fy*ty))
	halfFOV := data.FOV / 2 * math.Pi / 180
	if math.Acos(cos) > halfFOV {
		return false
	}

	halfVertical := math.Atan2(math.Sin(halfFOV), math.Cos(halfFOV)*data.AspectRatio)
	return math.Atan2(math.Abs(dz), dist) <= halfVertical
}

// CanSee reports whether observer sees target: the target is inside the view
// cone and no occupied cell lies between them on the board.
func CanSee(observer, target *model.Player, board Board) bool {
	pose := observer.Pose()
	to := target.Position()
	if !InViewCone(pose, observer.Data(), to) {
		return false
	}

	x1, y1 := board.WorldToGrid(pose.Position)
	x2, y2 := board.WorldToGrid(to)
	return geo.HasLineOfSight(board, x1, y1, x2, y2)
}

// SearchForPlayers returns every other player the observer can see,
// in the order given.
func SearchForPlayers(observer *model.Player, players []*model.Player, board Board) []*model.Player {
	var visible []*model.Player
	for _, other := range players {
		if other == observer {
			continue
		}
		if CanSee(observer, other, board) {
			visible = append(visible, other)
		}
	}
	return visible
}
