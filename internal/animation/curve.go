package animation

import (
	"github.com/charmbracelet/harmonica"

	"github.com/ensigniasec/drawerkit/internal/drawer"
)

// Ease evaluates a closed-form timing curve at normalised time t in [0, 1].
// The spring kind is stateful and handled by the Animator; here it falls back to easeOut.
func Ease(kind drawer.CurveKind, t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	switch kind {
	case drawer.CurveLinear:
		return t
	case drawer.CurveEaseIn:
		return t * t * t
	case drawer.CurveEaseInOut:
		if t < 0.5 {
			return 4 * t * t * t
		}
		u := -2*t + 2
		return 1 - u*u*u/2
	default:
		u := 1 - t
		return 1 - u*u*u
	}
}

// springStep advances a spring towards target over dt, where dt is a fraction of
// the transition duration so the curve's shape does not depend on its length.
func springStep(curve drawer.TimingCurve, pos, vel, target, dt float64) (float64, float64) {
	freq := curve.Frequency
	if freq <= 0 {
		freq = defaultSpringFrequency
	}
	damping := curve.Damping
	if damping <= 0 {
		damping = defaultSpringDamping
	}
	return harmonica.NewSpring(dt, freq, damping).Update(pos, vel, target)
}

const (
	defaultSpringFrequency = 12.0
	defaultSpringDamping   = 0.8
)
