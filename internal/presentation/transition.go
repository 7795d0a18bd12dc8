package presentation

import (
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/drawerkit/internal/animation"
	"github.com/ensigniasec/drawerkit/internal/drawer"
)

// TransitionOption customises a single AnimateTransition call.
type TransitionOption func(*transitionOptions)

type transitionOptions struct {
	alongside  func(fraction float64)
	completion func(animation.Position)
}

// WithAlongside runs fn on every frame of the transition, after the client hooks.
func WithAlongside(fn func(fraction float64)) TransitionOption {
	return func(o *transitionOptions) { o.alongside = fn }
}

// WithCompletion runs fn once the transition settles, after the client cleanup hooks.
func WithCompletion(fn func(animation.Position)) TransitionOption {
	return func(o *transitionOptions) { o.completion = fn }
}

// AnimateTransition moves the drawer from its live position to endingState.
// An in-flight transition is interrupted first and the new one starts from
// wherever the drawer is. The target state is updated immediately.
func (c *Controller) AnimateTransition(endingState drawer.State, opts ...TransitionOption) {
	var o transitionOptions
	for _, opt := range opts {
		opt(&o)
	}

	c.stopAnimations()

	a := c.Anchors()
	startingState := a.StateFor(c.y)
	startY, endY := c.CurrentY(), a.PositionY(endingState)

	duration := animation.TransitionDuration(startY, endY, a.ContainerHeight, c.cfg)
	animator := animation.NewAnimator(duration, c.cfg.TimingCurve)

	frame := drawer.Rect{X: c.container.X, Width: c.container.Width, Height: a.ContainerHeight - a.FullY}
	geometry := animation.MakeGeometry(c.container, frame.WithY(startY), frame.WithY(endY), c.presenting, c.presentable)
	info := animation.MakeInfo(startingState, endingState, c.cfg, geometry, animator.Duration(), endY < startY)

	maxRadius := c.MaximumCornerRadius()
	hasImages := c.cfg.HandleView.HasImages()
	dims := c.dimsHandle()

	startRadius, endRadius := c.CurrentCornerRadius(), c.CornerRadius(endingState)
	startHandleAlpha, endHandleAlpha := c.HandleViewAlpha(startingState), c.HandleViewAlpha(endingState)
	startBackgroundAlpha, endBackgroundAlpha := c.BackgroundViewAlpha(startingState), c.BackgroundViewAlpha(endingState)

	if dims {
		c.handleAlpha = startHandleAlpha
	}
	if hasImages {
		c.handleImage = c.HandleViewImage(startingState)
	}
	c.backgroundAlpha = startBackgroundAlpha

	presenting, presented := c.presentingActions, c.presentedActions
	animation.ClientPrepareViews(presenting, presented, info)

	c.target = endingState

	animator.AddAnimations(func(fraction float64) {
		c.setCurrentY(lerp(startY, endY, fraction))
		c.backgroundAlpha = clampRange(lerp(startBackgroundAlpha, endBackgroundAlpha, fraction), 0, 1)
		if dims {
			c.handleAlpha = clampRange(lerp(startHandleAlpha, endHandleAlpha, fraction), 0, 1)
		}
		if hasImages {
			c.handleImage = c.HandleViewImage(endingState)
		}
		if maxRadius != 0 {
			c.setCornerRadius(lerp(startRadius, endRadius, fraction))
		}
		animation.ClientAnimateAlong(presenting, presented, info)
		if o.alongside != nil {
			o.alongside(fraction)
		}
	})

	animator.AddCompletion(func(pos animation.Position) {
		if c.transition == animator {
			c.transition = nil
		}

		switch pos {
		case animation.End:
			c.applySettledVisuals(endingState, endHandleAlpha, endBackgroundAlpha, dims, hasImages)
		case animation.Start:
			c.applySettledVisuals(startingState, startHandleAlpha, startBackgroundAlpha, dims, hasImages)
		}

		if (startingState.Kind == drawer.Dismissed && pos == animation.Start) ||
			(endingState.Kind == drawer.Dismissed && pos == animation.End) {
			c.dismiss()
		}

		if maxRadius != 0 && c.cfg.CornerAnimationOption != drawer.CornerNone &&
			settlesFlat(startingState, endingState, pos) {
			c.setCornerRadius(0)
		}

		c.target = c.CurrentState()

		c.log.WithFields(logrus.Fields{
			"transition": info.ID,
			"position":   pos,
			"state":      c.CurrentState(),
		}).Debug("drawer transition settled")

		animation.ClientCleanupViews(presenting, presented, pos, info)
		if o.completion != nil {
			o.completion(pos)
		}
	})

	c.transition = animator
	c.transitionFrom, c.transitionTo = startingState, endingState
	c.engine.Run(animator)

	c.log.WithFields(logrus.Fields{
		"transition": info.ID,
		"from":       startingState,
		"to":         endingState,
		"duration":   duration,
	}).Debug("drawer transition started")
}

// ReverseTransition sends the running transition back towards the state it
// started from, or forward again if it was already reversed. It reports false
// when no transition is running.
func (c *Controller) ReverseTransition() bool {
	t := c.transition
	if t == nil || !t.IsRunning() {
		return false
	}
	t.Reverse()
	if t.IsReversed() {
		c.target = c.transitionFrom
	} else {
		c.target = c.transitionTo
	}
	c.log.WithField("to", c.target).Debug("drawer transition reversed")
	return true
}

// AddCornerRadiusAnimationEnding animates only the corner radius towards the
// value for endingState. It does nothing when there is no radius to animate,
// when the partial and full anchors coincide, or when the drawer already rests
// in endingState.
func (c *Controller) AddCornerRadiusAnimationEnding(endingState drawer.State) {
	maxRadius := c.MaximumCornerRadius()
	a := c.Anchors()
	startingState := a.StateFor(c.y)
	if maxRadius == 0 || c.rawPartialY() == a.FullY || endingState.Equal(startingState) {
		return
	}

	startY, endY := c.CurrentY(), a.PositionY(endingState)
	animator := animation.NewAnimator(animation.TransitionDuration(startY, endY, a.ContainerHeight, c.cfg), c.cfg.TimingCurve)

	startRadius, endRadius := c.CurrentCornerRadius(), c.CornerRadius(endingState)
	animator.AddAnimations(func(fraction float64) {
		c.setCornerRadius(lerp(startRadius, endRadius, fraction))
	})
	animator.AddCompletion(func(pos animation.Position) {
		if c.cornerAnimator == animator {
			c.cornerAnimator = nil
		}
		if c.cfg.CornerAnimationOption != drawer.CornerNone && settlesFlat(startingState, endingState, pos) {
			c.setCornerRadius(0)
		}
	})

	c.stopCornerAnimation()
	c.cornerAnimator = animator
	c.engine.Run(animator)
}

func (c *Controller) applySettledVisuals(state drawer.State, handleAlpha, backgroundAlpha float64, dims, hasImages bool) {
	if dims {
		c.handleAlpha = handleAlpha
	}
	if hasImages {
		c.handleImage = c.HandleViewImage(state)
	}
	c.backgroundAlpha = backgroundAlpha
}

// settlesFlat reports whether the animation came to rest at an endpoint whose
// state shows square corners.
func settlesFlat(start, end drawer.State, pos animation.Position) bool {
	return (isFlat(start) && pos == animation.Start) || (isFlat(end) && pos == animation.End)
}

func isFlat(s drawer.State) bool {
	return s.Kind == drawer.Dismissed || s.Kind == drawer.FullyExpanded
}
