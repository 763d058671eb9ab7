package combat

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/udisondev/arena/internal/model"
)

// ErrInvalidDeviation is returned for a missing, unparsable or non-positive
// aim deviation. It marks a datablock configuration error.
var ErrInvalidDeviation = errors.New("invalid aim deviation")

// Deviation is the standard deviation of the aim model in world units.
// Always positive and finite once constructed through NewDeviation or ParseDeviation.
type Deviation float64

// NewDeviation validates v as a deviation.
func NewDeviation(v float64) (Deviation, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDeviation, v)
	}
	return Deviation(v), nil
}

// ParseDeviation parses the datablock "variance" field.
func ParseDeviation(s string) (Deviation, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDeviation, s)
	}
	return NewDeviation(v)
}

// SightDistance returns the perpendicular distance from target to the
// observer's forward line in the XY plane.
//
// The line passes through the observer and a sample point one unit ahead
// along the heading: d = |(L-O) × (O-T)| / |L-O|.
func SightDistance(observer model.Pose, target model.Point) float64 {
	dx, dy := observer.Forward()
	o := observer.Position
	l := o.Add(dx, dy)

	cross := (l.X-o.X)*(o.Y-target.Y) - (o.X-target.X)*(l.Y-o.Y)
	length := math.Hypot(l.X-o.X, l.Y-o.Y)
	return math.Abs(cross) / length
}

// DamageProbability scores how close target is to the observer's sight line.
// The perpendicular distance is treated as a sample of N(0, deviation) and
// the density is normalized by the density at the mode, so a target on the
// line scores 1 and the score decays towards 0 with distance.
//
// Targets behind the observer are scored the same as targets in front.
func DamageProbability(observer model.Pose, target model.Point, deviation Deviation) float64 {
	d := SightDistance(observer, target)

	dist := distuv.Normal{Mu: 0, Sigma: float64(deviation)}
	normalizingMult := 1 / dist.Prob(dist.Mu)
	return dist.Prob(d) * normalizingMult
}

// FormatDamageText renders a probability for the player HUD,
// truncated to one decimal of percent: 0.12345 → "Damage%: 12.3".
func FormatDamageText(p float64) string {
	pct := math.Trunc(p*1000) / 10
	return "Damage%: " + strconv.FormatFloat(pct, 'f', 1, 64)
}
