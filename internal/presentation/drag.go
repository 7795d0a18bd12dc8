package presentation

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/drawerkit/internal/drawer"
)

// DragController turns pan gestures into live drawer positions and picks the
// resting state when the gesture ends.
type DragController struct {
	c       *Controller
	active  bool
	originY float64
}

// IsDragging reports whether a gesture is in progress.
func (d *DragController) IsDragging() bool { return d.active }

// Began starts a gesture at the drawer's live position. Any running
// transition is interrupted and the drawer stays where it is.
func (d *DragController) Began() bool {
	c := d.c
	if !c.cfg.IsDrawerDraggable {
		return false
	}
	c.stopAnimations()
	d.active = true
	d.originY = c.CurrentY()
	c.target = c.CurrentState()
	c.log.WithField("y", d.originY).Debug("drawer drag began")
	return true
}

// Changed moves the drawer to the gesture origin plus translationY, clamped to
// the container. Crossing onto a discrete anchor animates the corner radius;
// in between anchors it tracks the position directly.
func (d *DragController) Changed(translationY float64) {
	if !d.active {
		return
	}
	c := d.c
	a := c.Anchors()
	y := a.Clamp(d.originY + translationY)
	next := a.StateFor(y)

	if next.IsTransitioning() {
		if c.cornerAnimator == nil {
			c.setCornerRadius(c.CornerRadius(next))
		}
	} else if !next.Equal(c.CurrentState()) {
		c.AddCornerRadiusAnimationEnding(next)
	}

	c.setCurrentY(y)
	if c.dimsHandle() {
		c.handleAlpha = c.HandleViewAlpha(next)
	}
	if c.cfg.HandleView.HasImages() {
		c.handleImage = c.HandleViewImage(next)
	}
	c.backgroundAlpha = c.BackgroundViewAlpha(next)
	c.target = next
}

// Ended releases the drawer with velocityY in rows per second, positive
// downwards, and animates to the chosen resting state.
func (d *DragController) Ended(velocityY float64) drawer.State {
	if !d.active {
		return d.c.target
	}
	d.active = false
	c := d.c
	y := c.CurrentY()
	next := NextState(c.Anchors(), c.cfg, y, velocityY)
	c.log.WithFields(logrus.Fields{
		"y":        y,
		"velocity": velocityY,
		"to":       next,
	}).Debug("drawer drag ended")
	c.AnimateTransition(next)
	return next
}

// Cancelled abandons the gesture and returns the drawer to the nearest reachable anchor.
func (d *DragController) Cancelled() drawer.State {
	return d.Ended(0)
}

// NextState decides where a drawer released at y with velocityY settles.
// A flick faster than the configured threshold, measured in container heights
// per second, goes up to full expansion or down to the lowest reachable anchor.
// Slower releases settle on the nearest reachable anchor.
func NextState(a drawer.Anchors, cfg drawer.Configuration, y, velocityY float64) drawer.State {
	if a.ContainerHeight > 0 && velocityY != 0 && !math.IsNaN(velocityY) {
		speed := math.Abs(velocityY) / a.ContainerHeight
		if speed > cfg.FlickSpeedThreshold {
			if velocityY < 0 {
				return drawer.StateFullyExpanded
			}
			reachable := a.Reachable(cfg, y)
			return reachable[len(reachable)-1]
		}
	}
	return a.Nearest(y, a.Reachable(cfg, y))
}

// velocityWindow bounds how far back VelocityTracker looks.
const velocityWindow = 100 * time.Millisecond

type velocitySample struct {
	at time.Time
	y  float64
}

// VelocityTracker estimates pointer velocity from recent position samples.
type VelocityTracker struct {
	samples []velocitySample
}

// Add records the pointer at y at time at.
func (v *VelocityTracker) Add(at time.Time, y float64) {
	v.samples = append(v.samples, velocitySample{at: at, y: y})
	cutoff := at.Add(-velocityWindow)
	i := 0
	for i < len(v.samples)-1 && v.samples[i].at.Before(cutoff) {
		i++
	}
	v.samples = v.samples[i:]
}

// Velocity is the average velocity over the window in units per second.
func (v *VelocityTracker) Velocity() float64 {
	if len(v.samples) < 2 {
		return 0
	}
	first, last := v.samples[0], v.samples[len(v.samples)-1]
	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return 0
	}
	return (last.y - first.y) / dt
}

// Reset drops all samples.
func (v *VelocityTracker) Reset() {
	v.samples = v.samples[:0]
}
