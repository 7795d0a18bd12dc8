package presentation

import (
	"github.com/ensigniasec/drawerkit/internal/drawer"
)

// HandleDrawerTap fully expands the drawer on a tap of the configured count.
// It reports whether a transition was started.
func (c *Controller) HandleDrawerTap(taps int) bool {
	if !c.cfg.IsFullyPresentableByDrawerTaps || !tapsMatch(taps, c.cfg.NumberOfTapsForFullDrawerPresentation) {
		return false
	}
	if c.target.Kind == drawer.FullyExpanded {
		return false
	}
	c.log.WithField("taps", taps).Debug("drawer tapped")
	c.AnimateTransition(drawer.StateFullyExpanded)
	return true
}

// HandleOutsideTap dismisses the drawer when the tap at y lands above it.
func (c *Controller) HandleOutsideTap(y float64, taps int) bool {
	if !c.cfg.IsDismissableByOutsideDrawerTaps || !tapsMatch(taps, c.cfg.NumberOfTapsForOutsideDrawerDismissal) {
		return false
	}
	if y >= c.CurrentY() || c.target.Kind == drawer.Dismissed {
		return false
	}
	c.log.WithField("taps", taps).Debug("tapped outside drawer")
	c.AnimateTransition(drawer.StateDismissed)
	return true
}

// HandleHandleTap dismisses the drawer on a tap of the handle.
func (c *Controller) HandleHandleTap(taps int) bool {
	if !c.cfg.IsDismissableByHandleViewTaps || !tapsMatch(taps, c.cfg.NumberOfTapsForHandleViewDismissal) {
		return false
	}
	if c.target.Kind == drawer.Dismissed {
		return false
	}
	c.log.WithField("taps", taps).Debug("drawer handle tapped")
	c.AnimateTransition(drawer.StateDismissed)
	return true
}

func tapsMatch(taps, required int) bool {
	return required > 0 && taps == required
}
