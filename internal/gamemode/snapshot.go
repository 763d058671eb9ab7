package gamemode

import "github.com/udisondev/arena/internal/world"

// PlayerState is the spectator view of one player.
type PlayerState struct {
	ID         uint32  `json:"id"`
	Name       string  `json:"name"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Yaw        float64 `json:"yaw"`
	Health     float64 `json:"health"`
	DamageProb float64 `json:"damageProb"`
	Bot        bool    `json:"bot"`

	Features FeatureVector `json:"features"`
}

// Snapshot is an immutable copy of round state for spectators.
type Snapshot struct {
	Round    int           `json:"round"`
	Tick     int64         `json:"tick"`
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Occupied []world.Cell  `json:"occupied"`
	Players  []PlayerState `json:"players"`
}

// Snapshot copies the current round state.
func (r *Round) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Snapshot{
		Round:    r.number,
		Tick:     r.tickCount,
		Width:    r.board.Width(),
		Height:   r.board.Height(),
		Occupied: r.board.OccupiedCells(),
		Players:  make([]PlayerState, 0, len(r.players)),
	}
	for _, e := range r.players {
		pose := e.player.Pose()
		s.Players = append(s.Players, PlayerState{
			ID:         e.id,
			Name:       e.player.Name(),
			X:          pose.Position.X,
			Y:          pose.Position.Y,
			Yaw:        pose.Yaw,
			Health:     e.player.Health(),
			DamageProb: e.state.lastProb,
			Bot:        e.controller != nil,
			Features:   e.state.features,
		})
	}
	return s
}
