package animation

import (
	"time"

	"github.com/ensigniasec/drawerkit/internal/drawer"
)

// Position is where an animation came to rest.
type Position int

const (
	Start Position = iota
	End
	// Current means the animation was stopped mid-flight.
	Current
)

func (p Position) String() string {
	switch p {
	case Start:
		return "start"
	case End:
		return "end"
	case Current:
		return "current"
	default:
		return "unknown"
	}
}

type animatorState int

const (
	stateInactive animatorState = iota
	stateRunning
	stateFinished
)

// Animator drives one interruptible animation. It does not keep time itself:
// the owner calls Advance once per frame. Along-callbacks receive the eased
// fraction on every frame and the completion callbacks fire exactly once.
type Animator struct {
	duration time.Duration
	curve    drawer.TimingCurve

	animations  []func(fraction float64)
	completions []func(Position)

	state    animatorState
	elapsed  float64 // fraction of duration
	reversed bool
	fraction float64

	// spring state, only used by drawer.CurveSpring
	pos, vel float64
}

// minimumAnimatorDuration guards against zero or negative durations reaching the animator.
const minimumAnimatorDuration = time.Millisecond

// NewAnimator returns an inactive animator. Durations below one millisecond are raised to it.
func NewAnimator(duration time.Duration, curve drawer.TimingCurve) *Animator {
	if duration < minimumAnimatorDuration {
		duration = minimumAnimatorDuration
	}
	return &Animator{duration: duration, curve: curve}
}

// Duration is the animation length.
func (a *Animator) Duration() time.Duration { return a.duration }

// Fraction is the last eased fraction applied.
func (a *Animator) Fraction() float64 { return a.fraction }

// IsRunning reports whether the animator has started and not yet finished.
func (a *Animator) IsRunning() bool { return a.state == stateRunning }

// IsFinished reports whether the completion callbacks have fired.
func (a *Animator) IsFinished() bool { return a.state == stateFinished }

// IsReversed reports whether the animator is heading back to its start.
func (a *Animator) IsReversed() bool { return a.reversed }

// AddAnimations registers a per-frame callback.
func (a *Animator) AddAnimations(fn func(fraction float64)) {
	if fn != nil {
		a.animations = append(a.animations, fn)
	}
}

// AddCompletion registers a callback for the resting position.
func (a *Animator) AddCompletion(fn func(Position)) {
	if fn != nil {
		a.completions = append(a.completions, fn)
	}
}

// Start marks the animator running. The first frame is applied on the next Advance.
func (a *Animator) Start() {
	if a.state == stateInactive {
		a.state = stateRunning
	}
}

// Reverse flips the direction of travel; the animation then settles at Start.
func (a *Animator) Reverse() {
	if a.state != stateFinished {
		a.reversed = !a.reversed
	}
}

// Stop ends the animation where it is and reports Current to the completions.
func (a *Animator) Stop() {
	if a.state == stateFinished {
		return
	}
	a.finish(Current)
}

// Advance steps the animation by dt and reports whether it has finished.
func (a *Animator) Advance(dt time.Duration) bool {
	if a.state != stateRunning {
		return a.state == stateFinished
	}
	if dt < 0 {
		dt = 0
	}
	step := float64(dt) / float64(a.duration)

	if a.reversed {
		a.elapsed -= step
	} else {
		a.elapsed += step
	}

	switch {
	case !a.reversed && a.elapsed >= 1:
		a.apply(1)
		a.finish(End)
		return true
	case a.reversed && a.elapsed <= 0:
		a.apply(0)
		a.finish(Start)
		return true
	}

	a.apply(a.progress(step))
	return false
}

func (a *Animator) progress(step float64) float64 {
	if a.curve.Kind != drawer.CurveSpring {
		return Ease(a.curve.Kind, a.elapsed)
	}
	target := 1.0
	if a.reversed {
		target = 0
	}
	if step <= 0 {
		return a.pos
	}
	a.pos, a.vel = springStep(a.curve, a.pos, a.vel, target, step)
	return a.pos
}

func (a *Animator) apply(fraction float64) {
	a.fraction = fraction
	for _, fn := range a.animations {
		fn(fraction)
	}
}

func (a *Animator) finish(at Position) {
	a.state = stateFinished
	completions := a.completions
	a.completions = nil
	for _, fn := range completions {
		fn(at)
	}
}
