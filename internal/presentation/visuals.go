package presentation

import (
	"math"

	"github.com/ensigniasec/drawerkit/internal/drawer"
)

// CornerRadius is the radius the drawer should show in state under the
// configured corner option. The result is within [0, MaximumCornerRadius].
func (c *Controller) CornerRadius(state drawer.State) float64 {
	maxRadius := c.MaximumCornerRadius()
	switch c.cfg.CornerAnimationOption {
	case drawer.CornerMaximumAtPartialY:
		return maxRadius * c.triangularValue(state)
	case drawer.CornerAlwaysShowBelowStatusBar:
		statusBar := c.cfg.StatusBarHeight
		y := c.Anchors().PositionY(state)
		if statusBar <= 0 || math.IsNaN(statusBar) {
			if y > 0 {
				return maxRadius
			}
			return 0
		}
		return maxRadius * math.Min(y, statusBar) / statusBar
	default:
		return maxRadius
	}
}

// HandleViewAlpha is the handle opacity for state: opaque at the partial
// anchor and fading towards the full anchor and the bottom.
func (c *Controller) HandleViewAlpha(state drawer.State) float64 {
	return c.triangularValue(state)
}

// HandleViewImage picks the handle glyph for state. It is empty when no
// images are configured.
func (c *Controller) HandleViewImage(state drawer.State) string {
	h := c.cfg.HandleView
	if !h.HasImages() {
		return ""
	}
	a := c.Anchors()
	switch state.Kind {
	case drawer.FullyExpanded:
		return h.ClosingImage
	case drawer.PartiallyExpanded:
		if a.SupportsPartial {
			return h.OpeningImage
		}
		return h.ClosingImage
	case drawer.Collapsed, drawer.Dismissed:
		return h.OpeningImage
	default:
		if a.Clamp(state.PositionY) < c.rawPartialY() {
			return h.OpeningImage
		}
		return h.ClosingImage
	}
}

// BackgroundViewAlpha is the backdrop opacity for state.
func (c *Controller) BackgroundViewAlpha(state drawer.State) float64 {
	switch state.Kind {
	case drawer.Collapsed, drawer.Dismissed:
		return 0
	default:
		return 1
	}
}

// rawPartialY is the partial anchor as declared by the content, before the
// partial-support policy folds it onto the full anchor.
func (c *Controller) rawPartialY() float64 {
	return drawer.DrawerPartialY(c.partialHeight(), c.ContainerHeight())
}

// triangularValue peaks at 1 on the partial anchor and falls linearly to 0 at
// the full anchor and the container bottom. Without partial support it falls
// from the full anchor to the bottom. Degenerate geometry yields 0.
func (c *Controller) triangularValue(state drawer.State) float64 {
	a := c.Anchors()
	y := a.PositionY(state)
	full, container := a.FullY, a.ContainerHeight

	if !a.SupportsPartial {
		if full == container {
			return 0
		}
		return clampRange(1-(y-full)/(container-full), 0, 1)
	}

	partial := a.PartialY
	if partial == full || partial == container || full == container {
		return 0
	}
	if y < partial {
		return clampRange((y-full)/(partial-full), 0, 1)
	}
	return clampRange(1-(y-partial)/(container-partial), 0, 1)
}
