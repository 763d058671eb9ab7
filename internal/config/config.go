package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/arena/internal/game/combat"
	"github.com/udisondev/arena/internal/model"
)

// Arena holds all configuration for the arena server.
type Arena struct {
	LogLevel string `yaml:"log_level"`

	Board     BoardConfig     `yaml:"board"`
	Player    PlayerConfig    `yaml:"player"`
	Spectator SpectatorConfig `yaml:"spectator"`

	// Think step period of the round loop
	TickInterval time.Duration `yaml:"tick_interval"`
	// Bots spawned at round start
	Bots []string `yaml:"bots"`
}

// BoardConfig describes the play area.
type BoardConfig struct {
	SizeX     int    `yaml:"size_x"`
	SizeY     int    `yaml:"size_y"`
	Obstacles int    `yaml:"obstacles"`
	Seed      uint64 `yaml:"seed"` // 0 = random per round
}

// PlayerConfig is the player datablock as written in YAML.
type PlayerConfig struct {
	Variance    float64 `yaml:"variance"`
	MoveSpeed   float64 `yaml:"move_speed"`
	TurnSpeed   float64 `yaml:"turn_speed"`
	Friction    float64 `yaml:"friction"`
	FOV         float64 `yaml:"fov"` // degrees
	AspectRatio float64 `yaml:"aspect_ratio"`
	NearDist    float64 `yaml:"near_dist"`
	FarDist     float64 `yaml:"far_dist"`
	ShootDelay  int32   `yaml:"shoot_delay"` // ticks
	Health      float64 `yaml:"health"`
}

// SpectatorConfig holds the HTTP/WebSocket feed settings.
type SpectatorConfig struct {
	Enabled     bool     `yaml:"enabled"`
	BindAddress string   `yaml:"bind_address"`
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`

	MaxConnections int     `yaml:"max_connections"`
	ConnectRate    float64 `yaml:"connect_rate"` // upgrades per second per IP
	ConnectBurst   int     `yaml:"connect_burst"`
}

// Addr returns host:port for the spectator listener.
func (s SpectatorConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.BindAddress, s.Port)
}

// DataBlock converts the YAML datablock into the model type.
func (p PlayerConfig) DataBlock() model.PlayerData {
	return model.PlayerData{
		Variance:    p.Variance,
		MoveSpeed:   p.MoveSpeed,
		TurnSpeed:   p.TurnSpeed,
		Friction:    p.Friction,
		FOV:         p.FOV,
		AspectRatio: p.AspectRatio,
		NearDist:    p.NearDist,
		FarDist:     p.FarDist,
		ShootDelay:  p.ShootDelay,
		Health:      p.Health,
	}
}

func defaultPlayer() PlayerConfig {
	d := model.DefaultPlayerData()
	return PlayerConfig{
		Variance:    d.Variance,
		MoveSpeed:   d.MoveSpeed,
		TurnSpeed:   d.TurnSpeed,
		Friction:    d.Friction,
		FOV:         d.FOV,
		AspectRatio: d.AspectRatio,
		NearDist:    d.NearDist,
		FarDist:     d.FarDist,
		ShootDelay:  d.ShootDelay,
		Health:      d.Health,
	}
}

// DefaultArena returns Arena config with sensible defaults.
func DefaultArena() Arena {
	return Arena{
		LogLevel: "info",
		Board: BoardConfig{
			SizeX:     50,
			SizeY:     50,
			Obstacles: 20,
		},
		Player: defaultPlayer(),
		Spectator: SpectatorConfig{
			Enabled:        true,
			BindAddress:    "127.0.0.1",
			Port:           8080,
			MaxConnections: 500,
			ConnectRate:    1,
			ConnectBurst:   5,
		},
		TickInterval: 100 * time.Millisecond,
		Bots:         []string{"red", "blue"},
	}
}

// Validate checks values the round cannot start without.
func (a Arena) Validate() error {
	var errs []error
	if a.Board.SizeX <= 0 || a.Board.SizeY <= 0 {
		errs = append(errs, fmt.Errorf("board size must be positive, got %dx%d", a.Board.SizeX, a.Board.SizeY))
	}
	if a.Board.Obstacles < 0 {
		errs = append(errs, fmt.Errorf("obstacle count must not be negative, got %d", a.Board.Obstacles))
	}
	if _, err := combat.NewDeviation(a.Player.Variance); err != nil {
		errs = append(errs, fmt.Errorf("player.variance: %w", err))
	}
	if a.Player.FOV <= 0 || a.Player.FOV >= 360 {
		errs = append(errs, fmt.Errorf("player.fov must be in (0, 360), got %v", a.Player.FOV))
	}
	if a.Player.AspectRatio <= 0 {
		errs = append(errs, fmt.Errorf("player.aspect_ratio must be positive, got %v", a.Player.AspectRatio))
	}
	if a.Player.Friction < 0 || a.Player.Friction > 1 {
		errs = append(errs, fmt.Errorf("player.friction must be in [0, 1], got %v", a.Player.Friction))
	}
	if a.Player.ShootDelay < 0 {
		errs = append(errs, fmt.Errorf("player.shoot_delay must not be negative, got %d", a.Player.ShootDelay))
	}
	if a.Player.FarDist < a.Player.NearDist {
		errs = append(errs, fmt.Errorf("player.far_dist %v below near_dist %v", a.Player.FarDist, a.Player.NearDist))
	}
	if a.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick_interval must be positive, got %v", a.TickInterval))
	}
	return errors.Join(errs...)
}

// LoadArena loads arena config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadArena(path string) (Arena, error) {
	cfg := DefaultArena()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}
