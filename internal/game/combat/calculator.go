package combat

import (
	"fmt"

	"github.com/udisondev/arena/internal/model"
)

// UIPresenter receives HUD text keyed by player name.
// The UI side owns rendering; a missing HUD for a name is not an error.
type UIPresenter interface {
	SetText(playerName, text string)
}

// Calculator computes damage probabilities between players and pushes the
// result to the observer's HUD.
type Calculator struct {
	presenter UIPresenter
	observe   func(float64)
}

// NewCalculator creates a calculator. presenter may be nil.
func NewCalculator(presenter UIPresenter) *Calculator {
	return &Calculator{presenter: presenter}
}

// SetObserver installs a hook receiving every computed probability (metrics).
func (c *Calculator) SetObserver(fn func(float64)) {
	c.observe = fn
}

// Compute returns the probability that observer hits target.
// The deviation comes from the observer's datablock; an invalid value fails
// with ErrInvalidDeviation and nothing is pushed to the HUD.
func (c *Calculator) Compute(observer, target *model.Player) (float64, error) {
	deviation, err := NewDeviation(observer.Data().Variance)
	if err != nil {
		return 0, fmt.Errorf("player %s: %w", observer.Name(), err)
	}

	p := DamageProbability(observer.Pose(), target.Position(), deviation)

	c.SetDamageText(observer.Name(), p)
	if c.observe != nil {
		c.observe(p)
	}
	return p, nil
}

// SetDamageText pushes a formatted probability to a player's HUD.
func (c *Calculator) SetDamageText(playerName string, p float64) {
	if c.presenter == nil {
		return
	}
	c.presenter.SetText(playerName, FormatDamageText(p))
}
