package animation

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ensigniasec/drawerkit/internal/drawer"
)

// TransitionDuration returns how long a transition from one Y to another lasts.
// With proportional durations enabled the base is scaled by the fraction of the
// container travelled. The result is never below the configured minimum.
func TransitionDuration(from, to, containerHeight float64, cfg drawer.Configuration) time.Duration {
	minimum := cfg.MinimumDuration
	if minimum < minimumAnimatorDuration {
		minimum = minimumAnimatorDuration
	}

	d := cfg.TotalDuration
	if cfg.DurationIsProportionalToDistanceTraveled && containerHeight > 0 {
		fraction := math.Abs(to-from) / containerHeight
		if math.IsNaN(fraction) {
			fraction = 1
		}
		d = time.Duration(float64(d) * math.Min(fraction, 1))
	}
	if d < minimum {
		return minimum
	}
	return d
}

// Geometry describes the frames involved in one transition.
type Geometry struct {
	ContainerBounds drawer.Rect
	StartingFrame   drawer.Rect
	EndingFrame     drawer.Rect
	Presenting      any
	Presented       any
}

// MakeGeometry packages the frames and the two sides of the presentation.
func MakeGeometry(containerBounds, startingFrame, endingFrame drawer.Rect, presenting, presented any) Geometry {
	return Geometry{
		ContainerBounds: containerBounds,
		StartingFrame:   startingFrame,
		EndingFrame:     endingFrame,
		Presenting:      presenting,
		Presented:       presented,
	}
}

// Info is created once per transition and handed to client hooks. It must not be mutated.
type Info struct {
	ID                uuid.UUID
	StartDrawerState  drawer.State
	TargetDrawerState drawer.State
	Configuration     drawer.Configuration
	Geometry          Geometry
	Duration          time.Duration
	IsExpanding       bool
}

// MakeInfo builds the Info for a transition and assigns it a fresh ID.
func MakeInfo(start, target drawer.State, cfg drawer.Configuration, geometry Geometry, duration time.Duration, isExpanding bool) *Info {
	return &Info{
		ID:                uuid.New(),
		StartDrawerState:  start,
		TargetDrawerState: target,
		Configuration:     cfg,
		Geometry:          geometry,
		Duration:          duration,
		IsExpanding:       isExpanding,
	}
}

// Actions are client hooks run around a transition.
type Actions interface {
	Prepare(info *Info)
	AnimateAlong(info *Info)
	Cleanup(endingPosition Position, info *Info)
}

// ActionFuncs adapts optional closures to Actions.
type ActionFuncs struct {
	PrepareFunc      func(info *Info)
	AnimateAlongFunc func(info *Info)
	CleanupFunc      func(endingPosition Position, info *Info)
}

func (f ActionFuncs) Prepare(info *Info) {
	if f.PrepareFunc != nil {
		f.PrepareFunc(info)
	}
}

func (f ActionFuncs) AnimateAlong(info *Info) {
	if f.AnimateAlongFunc != nil {
		f.AnimateAlongFunc(info)
	}
}

func (f ActionFuncs) Cleanup(endingPosition Position, info *Info) {
	if f.CleanupFunc != nil {
		f.CleanupFunc(endingPosition, info)
	}
}

// ClientPrepareViews runs Prepare on the presenting hooks, then the presented ones.
func ClientPrepareViews(presenting, presented []Actions, info *Info) {
	each(presenting, presented, func(a Actions) { a.Prepare(info) })
}

// ClientAnimateAlong runs AnimateAlong on the presenting hooks, then the presented ones.
func ClientAnimateAlong(presenting, presented []Actions, info *Info) {
	each(presenting, presented, func(a Actions) { a.AnimateAlong(info) })
}

// ClientCleanupViews runs Cleanup on the presenting hooks, then the presented ones.
func ClientCleanupViews(presenting, presented []Actions, endingPosition Position, info *Info) {
	each(presenting, presented, func(a Actions) { a.Cleanup(endingPosition, info) })
}

func each(presenting, presented []Actions, fn func(Actions)) {
	for _, a := range presenting {
		if a != nil {
			fn(a)
		}
	}
	for _, a := range presented {
		if a != nil {
			fn(a)
		}
	}
}
