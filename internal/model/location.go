package model

import "math"

// Point — координаты в игровом мире (world space).
// Z хранится для движка, логика арены работает только с X и Y.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// NewPoint создаёт Point с указанными координатами.
func NewPoint(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// Add возвращает сумму точек по X/Y (Z сохраняется).
func (p Point) Add(dx, dy float64) Point {
	p.X += dx
	p.Y += dy
	return p
}

// Distance2D возвращает расстояние до другой точки в плоскости XY.
func (p Point) Distance2D(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// Pose — положение игрока и его направление (yaw, радианы вокруг оси Z).
// Value type, передаётся по значению (immutable).
type Pose struct {
	Position Point
	Yaw      float64
}

// NewPose создаёт Pose.
func NewPose(pos Point, yaw float64) Pose {
	return Pose{Position: pos, Yaw: yaw}
}

// Forward возвращает единичный вектор взгляда в плоскости XY.
// Yaw 0 смотрит вдоль +Y, как в движке.
func (p Pose) Forward() (float64, float64) {
	return math.Sin(p.Yaw), math.Cos(p.Yaw)
}

// WithYaw возвращает новый Pose с обновлённым направлением (immutable pattern).
func (p Pose) WithYaw(yaw float64) Pose {
	p.Yaw = yaw
	return p
}

// WithPosition возвращает новый Pose с обновлёнными координатами (immutable pattern).
func (p Pose) WithPosition(pos Point) Pose {
	p.Position = pos
	return p
}
