package drawer

import "math"

// Anchors is a geometry snapshot: the resting Y of every discrete state for one
// container height. It is derived on demand and never cached across transitions.
type Anchors struct {
	ContainerHeight float64
	FullY           float64
	PartialY        float64
	CollapsedY      float64
	// SupportsPartial is false when partial expansion is disabled or degenerate;
	// PartialY then equals FullY.
	SupportsPartial bool
}

// Evaluate computes the anchors for cfg and the heights declared by the presented content.
func Evaluate(cfg Configuration, collapsedHeight, partialHeight, containerHeight float64) Anchors {
	return newAnchors(containerHeight, cfg.DrawerFullY(), collapsedHeight, partialHeight, cfg.SupportsPartialExpansion)
}

func newAnchors(containerHeight, fullY, collapsedHeight, partialHeight float64, supportsPartial bool) Anchors {
	container := nonNegative(containerHeight)
	full := clamp(fullY, 0, container)

	partialH := DrawerPartialH(partialHeight, container)
	partial := DrawerPartialY(partialH, container)
	supports := supportsPartial && partialH > 0 && partial > full
	if !supports {
		partial = full
	}

	collapsed := clamp(DrawerCollapsedY(DrawerCollapsedH(collapsedHeight, container), container), partial, container)

	return Anchors{
		ContainerHeight: container,
		FullY:           full,
		PartialY:        partial,
		CollapsedY:      collapsed,
		SupportsPartial: supports,
	}
}

// DrawerPartialH clamps a declared partial height into [0, containerHeight].
func DrawerPartialH(partialHeight, containerHeight float64) float64 {
	return clamp(partialHeight, 0, nonNegative(containerHeight))
}

// DrawerCollapsedH clamps a declared collapsed height into [0, containerHeight].
func DrawerCollapsedH(collapsedHeight, containerHeight float64) float64 {
	return clamp(collapsedHeight, 0, nonNegative(containerHeight))
}

// DrawerPartialY is the Y of a drawer showing partialHeight rows.
func DrawerPartialY(partialHeight, containerHeight float64) float64 {
	return nonNegative(containerHeight) - DrawerPartialH(partialHeight, containerHeight)
}

// DrawerCollapsedY is the Y of a drawer showing collapsedHeight rows.
func DrawerCollapsedY(collapsedHeight, containerHeight float64) float64 {
	return nonNegative(containerHeight) - DrawerCollapsedH(collapsedHeight, containerHeight)
}

// DrawerPositionY maps state to its resting Y. The result is always within
// [fullY, containerHeight].
func DrawerPositionY(state State, collapsedHeight, partialHeight, containerHeight, fullY float64, supportsPartial bool) float64 {
	return newAnchors(containerHeight, fullY, collapsedHeight, partialHeight, supportsPartial).PositionY(state)
}

// DrawerStateFor is the inverse of DrawerPositionY.
func DrawerStateFor(y, collapsedHeight, partialHeight, containerHeight float64, cfg Configuration) State {
	return Evaluate(cfg, collapsedHeight, partialHeight, containerHeight).StateFor(y)
}

// PositionY maps state to its resting Y.
func (a Anchors) PositionY(state State) float64 {
	switch state.Kind {
	case Collapsed:
		return a.CollapsedY
	case PartiallyExpanded:
		return a.PartialY
	case FullyExpanded:
		return a.FullY
	case Dismissed:
		return a.ContainerHeight
	case Transitioning:
		return a.Clamp(state.PositionY)
	default:
		return a.ContainerHeight
	}
}

// StateFor classifies y. Exact anchor matches yield discrete states, checked in
// the order full, partial, collapsed, dismissed; anything else is in flight.
func (a Anchors) StateFor(y float64) State {
	y = a.Clamp(y)
	switch {
	case y <= a.FullY:
		return StateFullyExpanded
	case a.SupportsPartial && y == a.PartialY:
		return StatePartiallyExpanded
	case a.HasCollapsedAnchor() && y == a.CollapsedY:
		return StateCollapsed
	case y >= a.ContainerHeight:
		return StateDismissed
	default:
		return TransitioningAt(y)
	}
}

// Clamp bounds y into [FullY, ContainerHeight]. NaN maps to ContainerHeight.
func (a Anchors) Clamp(y float64) float64 {
	if math.IsNaN(y) {
		return a.ContainerHeight
	}
	return clamp(y, a.FullY, a.ContainerHeight)
}

// UpperMarkY is the partial anchor raised by the upper gap. Debug overlays only.
func (a Anchors) UpperMarkY(cfg Configuration) float64 {
	return clamp(a.PartialY-cfg.UpperMarkGap, a.FullY, a.ContainerHeight)
}

// LowerMarkY is the partial anchor lowered by the lower gap. Debug overlays only.
func (a Anchors) LowerMarkY(cfg Configuration) float64 {
	return clamp(a.PartialY+cfg.LowerMarkGap, a.FullY, a.ContainerHeight)
}

// HasCollapsedAnchor reports whether the collapsed anchor is a distinct stop:
// below the partial (or full) anchor and above the container bottom. A
// collapsed height at or above the partial height folds onto the partial anchor.
func (a Anchors) HasCollapsedAnchor() bool {
	return a.CollapsedY > a.PartialY && a.CollapsedY < a.ContainerHeight
}

// Stops lists the distinct resting states other than dismissed, top down.
func (a Anchors) Stops() []State {
	states := []State{StateFullyExpanded}
	if a.SupportsPartial {
		states = append(states, StatePartiallyExpanded)
	}
	if a.HasCollapsedAnchor() {
		states = append(states, StateCollapsed)
	}
	return states
}

// Reachable lists the discrete states a drag released at y may settle into,
// ordered from the top of the container down.
func (a Anchors) Reachable(cfg Configuration, y float64) []State {
	states := a.Stops()
	if a.DismissalReachable(cfg, y) {
		states = append(states, StateDismissed)
	}
	return states
}

// DismissalReachable reports whether a release at y may dismiss the drawer:
// either dismissal is not staged, or the drawer was pulled past the collapsed anchor.
func (a Anchors) DismissalReachable(cfg Configuration, y float64) bool {
	if !cfg.DismissesInStages {
		return true
	}
	return a.CollapsedY >= a.ContainerHeight || a.Clamp(y) > a.CollapsedY
}

// Nearest returns the state among candidates whose anchor is closest to y.
// Ties resolve to the earlier candidate.
func (a Anchors) Nearest(y float64, candidates []State) State {
	if len(candidates) == 0 {
		return a.StateFor(y)
	}
	y = a.Clamp(y)
	best := candidates[0]
	bestDist := math.Abs(a.PositionY(best) - y)
	for _, s := range candidates[1:] {
		if d := math.Abs(a.PositionY(s) - y); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if hi < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
