package model

import "sync"

// PlayerData — datablock игрока: параметры, общие для всех игроков одного типа.
// Defaults follow the engine's SimplePlayerData constructor.
type PlayerData struct {
	// Variance is the standard deviation of the aim model, in world units.
	Variance float64

	MoveSpeed float64 // acceleration along the heading
	TurnSpeed float64 // radians per tick
	Friction  float64 // fraction of velocity lost per tick

	FOV         float64 // degrees, full horizontal angle
	AspectRatio float64 // horizontal / vertical extent of the view frustum
	NearDist    float64
	FarDist     float64

	ShootDelay int32 // ticks between shots
	Health     float64
}

// DefaultPlayerData returns the datablock values the engine assigns when none are configured.
func DefaultPlayerData() PlayerData {
	return PlayerData{
		Variance:    1.0,
		MoveSpeed:   1.0,
		TurnSpeed:   1.0,
		Friction:    0.1,
		FOV:         70,
		AspectRatio: 1.0,
		NearDist:    0.5,
		FarDist:     200,
		ShootDelay:  15,
		Health:      100,
	}
}

// Player — игрок арены.
// Pose меняется из тика, остальные поля неизменяемы после создания.
type Player struct {
	name string
	data PlayerData

	mu       sync.RWMutex
	pose     Pose
	velocity Point
	health   float64
}

// NewPlayer создаёт игрока с указанным datablock.
func NewPlayer(name string, data PlayerData, pose Pose) *Player {
	return &Player{
		name:   name,
		data:   data,
		pose:   pose,
		health: data.Health,
	}
}

// Name возвращает имя игрока (ключ для HUD).
func (p *Player) Name() string {
	return p.name
}

// Data возвращает datablock игрока.
func (p *Player) Data() PlayerData {
	return p.data
}

// Pose возвращает текущее положение и направление.
func (p *Player) Pose() Pose {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pose
}

// SetPose обновляет положение и направление.
func (p *Player) SetPose(pose Pose) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pose = pose
}

// Velocity возвращает скорость игрока (world units per tick).
func (p *Player) Velocity() Point {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.velocity
}

// SetVelocity обновляет скорость.
func (p *Player) SetVelocity(v Point) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.velocity = v
}

// Position возвращает координаты игрока (convenience method).
func (p *Player) Position() Point {
	return p.Pose().Position
}

// Health возвращает текущее здоровье.
func (p *Player) Health() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.health
}

// SetHealth устанавливает здоровье, не ниже нуля.
func (p *Player) SetHealth(hp float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.health = max(hp, 0)
}

// Respawn restores full health, clears velocity and places the player at pose.
func (p *Player) Respawn(pose Pose) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pose = pose
	p.velocity = Point{}
	p.health = p.data.Health
}

// IsDead returns true once health reached zero.
func (p *Player) IsDead() bool {
	return p.Health() <= 0
}
