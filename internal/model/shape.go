package model

// CollisionType mirrors the engine's static mesh collision modes.
type CollisionType uint8

const (
	CollisionNone CollisionType = iota
	CollisionBounds
	CollisionVisibleMesh
)

func (c CollisionType) String() string {
	switch c {
	case CollisionNone:
		return "none"
	case CollisionBounds:
		return "bounds"
	case CollisionVisibleMesh:
		return "visible_mesh"
	default:
		return "unknown"
	}
}

// MarshalText encodes the mode by name in JSON.
func (c CollisionType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// DefaultShapeAsset is the unit-footprint mesh used for walls and obstacles.
const DefaultShapeAsset = "data/spectatorGameplay/art/GameShapes/player.dts"

// StaticShape — статический объект арены (стена или препятствие).
// Базовая форма имеет единичный размер по X и Y, поэтому Scale задаёт
// размер footprint в мировых единицах.
type StaticShape struct {
	ShapeName string        `json:"shapeName"`
	Position  Point         `json:"position"`
	Scale     Point         `json:"scale"`
	Collision CollisionType `json:"collision"`
}

// NewStaticShape создаёт статический объект с ассетом по умолчанию и коллизией по bounds.
func NewStaticShape(pos, scale Point) StaticShape {
	return StaticShape{
		ShapeName: DefaultShapeAsset,
		Position:  pos,
		Scale:     scale,
		Collision: CollisionBounds,
	}
}
