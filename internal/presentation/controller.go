package presentation

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/drawerkit/internal/animation"
	"github.com/ensigniasec/drawerkit/internal/drawer"
)

// Presentable is implemented by the drawer's content. Heights are read on every
// geometry computation and clamped by the evaluator.
type Presentable interface {
	HeightOfCollapsedDrawer() float64
	HeightOfPartiallyExpandedDrawer() float64
}

// Dismisser removes the presented content once the drawer settles dismissed.
type Dismisser interface {
	Dismiss()
}

// DismissFunc adapts a function to Dismisser.
type DismissFunc func()

// Dismiss calls f.
func (f DismissFunc) Dismiss() { f() }

// Surface is the live visual state of the drawer as the host should render it.
type Surface struct {
	Frame           drawer.Rect
	CornerRadius    float64
	HandleAlpha     float64
	HandleImage     string
	BackgroundAlpha float64
}

// Controller owns the drawer's live position, corner radius and alphas, and
// runs transitions between states. It is single-threaded: call it from the UI
// goroutine only.
type Controller struct {
	cfg         drawer.Configuration
	presentable Presentable
	dismisser   Dismisser
	engine      *animation.Engine
	log         logrus.FieldLogger

	presentingActions []animation.Actions
	presentedActions  []animation.Actions
	presenting        any

	container drawer.Rect

	y               float64
	cornerRadius    float64
	handleAlpha     float64
	handleImage     string
	backgroundAlpha float64
	target          drawer.State

	transition     *animation.Animator
	transitionFrom drawer.State
	transitionTo   drawer.State
	cornerAnimator *animation.Animator
	drag           *DragController
}

// Option configures a Controller.
type Option func(*Controller)

// WithDismisser sets the sink notified when the drawer settles dismissed.
func WithDismisser(d Dismisser) Option {
	return func(c *Controller) { c.dismisser = d }
}

// WithEngine shares an animation engine, typically the host's frame loop.
func WithEngine(e *animation.Engine) Option {
	return func(c *Controller) {
		if e != nil {
			c.engine = e
		}
	}
}

// WithLogger overrides the logrus standard logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithPresenting records the identity of the presenting side and its hooks.
func WithPresenting(presenting any, actions ...animation.Actions) Option {
	return func(c *Controller) {
		c.presenting = presenting
		c.presentingActions = append(c.presentingActions, actions...)
	}
}

// WithPresentedActions registers hooks for the presented side, run after the presenting ones.
func WithPresentedActions(actions ...animation.Actions) Option {
	return func(c *Controller) { c.presentedActions = append(c.presentedActions, actions...) }
}

// New returns a controller for presentable. A nil presentable behaves as zero heights.
// The drawer starts dismissed until SetContainerBounds and Present are called.
func New(cfg drawer.Configuration, presentable Presentable, opts ...Option) *Controller {
	c := &Controller{
		cfg:         cfg,
		presentable: presentable,
		engine:      animation.NewEngine(),
		log:         logrus.StandardLogger(),
		target:      drawer.StateDismissed,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.drag = &DragController{c: c}
	return c
}

// Engine returns the animation engine the host must advance every frame.
func (c *Controller) Engine() *animation.Engine { return c.engine }

// Drag returns the drag controller bound to this drawer.
func (c *Controller) Drag() *DragController { return c.drag }

// SetContainerBounds resizes the container. The drawer keeps its discrete state
// across resizes. A running transition restarts from the clamped live position
// towards its target's anchor in the new bounds, without its per-call options.
// A drawer resting between anchors is clamped.
func (c *Controller) SetContainerBounds(bounds drawer.Rect) {
	state := c.CurrentState()
	wasEmpty := c.ContainerHeight() == 0
	c.container = bounds
	switch {
	case wasEmpty:
		c.y = c.ContainerHeight()
	case c.transition != nil && c.transition.IsRunning():
		c.setCurrentY(c.y)
		c.AnimateTransition(c.target)
	case !state.IsTransitioning():
		c.setCurrentState(state)
	default:
		c.setCurrentY(c.y)
	}
}

// ContainerHeight is the container height, never negative.
func (c *Controller) ContainerHeight() float64 {
	if c.container.Height < 0 || math.IsNaN(c.container.Height) {
		return 0
	}
	return c.container.Height
}

func (c *Controller) collapsedHeight() float64 {
	if c.presentable == nil {
		return 0
	}
	return c.presentable.HeightOfCollapsedDrawer()
}

func (c *Controller) partialHeight() float64 {
	if c.presentable == nil {
		return 0
	}
	return c.presentable.HeightOfPartiallyExpandedDrawer()
}

// Anchors evaluates the current geometry snapshot.
func (c *Controller) Anchors() drawer.Anchors {
	return drawer.Evaluate(c.cfg, c.collapsedHeight(), c.partialHeight(), c.ContainerHeight())
}

// UpperMarkY is the debug mark above the partial anchor.
func (c *Controller) UpperMarkY() float64 { return c.Anchors().UpperMarkY(c.cfg) }

// LowerMarkY is the debug mark below the partial anchor.
func (c *Controller) LowerMarkY() float64 { return c.Anchors().LowerMarkY(c.cfg) }

// CurrentY is the live drawer top, clamped into [fullY, containerHeight].
func (c *Controller) CurrentY() float64 { return c.Anchors().Clamp(c.y) }

func (c *Controller) setCurrentY(y float64) { c.y = c.Anchors().Clamp(y) }

// CurrentState classifies the live position.
func (c *Controller) CurrentState() drawer.State { return c.Anchors().StateFor(c.y) }

func (c *Controller) setCurrentState(s drawer.State) { c.y = c.Anchors().PositionY(s) }

// TargetState is the state the drawer is heading to, or resting in.
func (c *Controller) TargetState() drawer.State { return c.target }

// MaximumCornerRadius is the configured maximum, never negative.
func (c *Controller) MaximumCornerRadius() float64 {
	if c.cfg.MaximumCornerRadius < 0 || math.IsNaN(c.cfg.MaximumCornerRadius) {
		return 0
	}
	return c.cfg.MaximumCornerRadius
}

// CurrentCornerRadius is the live radius clamped into [0, MaximumCornerRadius].
func (c *Controller) CurrentCornerRadius() float64 {
	return clampRange(c.cornerRadius, 0, c.MaximumCornerRadius())
}

func (c *Controller) setCornerRadius(r float64) {
	c.cornerRadius = clampRange(r, 0, c.MaximumCornerRadius())
}

// IsAnimating reports whether a position or corner transition is in flight.
func (c *Controller) IsAnimating() bool {
	return (c.transition != nil && !c.transition.IsFinished()) ||
		(c.cornerAnimator != nil && !c.cornerAnimator.IsFinished())
}

// Surface snapshots the live visual state.
func (c *Controller) Surface() Surface {
	y := c.CurrentY()
	return Surface{
		Frame: drawer.Rect{
			X:      c.container.X,
			Y:      y,
			Width:  c.container.Width,
			Height: c.ContainerHeight() - y,
		},
		CornerRadius:    c.CurrentCornerRadius(),
		HandleAlpha:     c.handleAlpha,
		HandleImage:     c.handleImage,
		BackgroundAlpha: c.backgroundAlpha,
	}
}

// Present places the drawer at the bottom of the container and animates it in:
// to the partial anchor when supported, otherwise fully expanded.
func (c *Controller) Present(opts ...TransitionOption) {
	c.stopAnimations()
	c.setCurrentState(drawer.StateDismissed)
	c.setCornerRadius(c.CornerRadius(drawer.StateDismissed))
	c.applyRestingVisuals(drawer.StateDismissed)
	c.target = drawer.StateDismissed

	initial := drawer.StateFullyExpanded
	if c.Anchors().SupportsPartial {
		initial = drawer.StatePartiallyExpanded
	}
	c.AnimateTransition(initial, opts...)
}

// SetDrawerState moves the drawer to state. Without animation the position
// jumps and only the corner radius animates to match.
func (c *Controller) SetDrawerState(state drawer.State, animated bool) {
	if animated {
		c.AnimateTransition(state)
		return
	}
	c.stopAnimations()
	c.AddCornerRadiusAnimationEnding(state)
	c.setCurrentState(state)
	c.applyRestingVisuals(state)
	c.target = c.CurrentState()
	if state.Kind == drawer.Dismissed {
		c.dismiss()
	}
}

// StepUp animates one anchor towards full expansion.
func (c *Controller) StepUp() drawer.State {
	return c.step(-1)
}

// StepDown animates one anchor towards dismissal. With staged dismissal the
// drawer only dismisses from the collapsed anchor.
func (c *Controller) StepDown() drawer.State {
	return c.step(1)
}

func (c *Controller) step(dir int) drawer.State {
	a := c.Anchors()
	stops := append(a.Stops(), drawer.StateDismissed)

	idx := -1
	for i, s := range stops {
		if s.Equal(c.target) {
			idx = i
		}
	}
	if idx < 0 {
		nearest := a.Nearest(a.PositionY(c.target), stops)
		for i, s := range stops {
			if s.Equal(nearest) {
				idx = i
			}
		}
	}
	next := idx + dir
	if next < 0 || next >= len(stops) {
		return c.target
	}
	c.AnimateTransition(stops[next])
	return stops[next]
}

func (c *Controller) dismiss() {
	c.log.Debug("drawer dismissed")
	if c.dismisser != nil {
		c.dismisser.Dismiss()
	}
}

func (c *Controller) stopAnimations() {
	c.stopTransition()
	c.stopCornerAnimation()
}

// stopTransition interrupts an in-flight position transition. Its completion
// runs with animation.Current and the live values stay where they are.
func (c *Controller) stopTransition() {
	if t := c.transition; t != nil {
		c.transition = nil
		t.Stop()
	}
}

func (c *Controller) stopCornerAnimation() {
	if a := c.cornerAnimator; a != nil {
		c.cornerAnimator = nil
		a.Stop()
	}
}

// applyRestingVisuals sets the alphas and handle image for a state without animating.
func (c *Controller) applyRestingVisuals(state drawer.State) {
	if c.dimsHandle() {
		c.handleAlpha = c.HandleViewAlpha(state)
	}
	if c.cfg.HandleView.HasImages() {
		c.handleImage = c.HandleViewImage(state)
	}
	c.backgroundAlpha = c.BackgroundViewAlpha(state)
}

func (c *Controller) dimsHandle() bool {
	h := c.cfg.HandleView
	return h != nil && h.AutoAnimatesDimming && !h.HasImages()
}

func clampRange(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerp(from, to, fraction float64) float64 {
	return from*(1-fraction) + to*fraction
}
