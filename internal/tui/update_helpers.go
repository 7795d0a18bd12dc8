package tui

import (
	"math"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/drawerkit/internal/drawer"
)

// hitTarget is the part of the screen a mouse event landed on.
type hitTarget int

const (
	hitNone hitTarget = iota
	hitBackdrop
	hitHandle
	hitDrawer
)

// handleKey processes key bindings and returns updated model and command.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) { // nolint:ireturn
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		m.help.ShowAll = m.helpVisible
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.Marks):
		m.showMarks = !m.showMarks
		return m, nil

	case key.Matches(msg, m.keys.Present):
		if m.sess.dismissed || m.ctrl.TargetState().Kind == drawer.Dismissed {
			m.present()
		}
		return m, nil
	}

	if m.sess.dismissed {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.ctrl.StepUp()
	case key.Matches(msg, m.keys.Down):
		m.ctrl.StepDown()
	case key.Matches(msg, m.keys.Full):
		m.ctrl.AnimateTransition(drawer.StateFullyExpanded)
	case key.Matches(msg, m.keys.Partial):
		m.ctrl.AnimateTransition(drawer.StatePartiallyExpanded)
	case key.Matches(msg, m.keys.Collapsed):
		m.ctrl.AnimateTransition(drawer.StateCollapsed)
	case key.Matches(msg, m.keys.Dismiss):
		m.ctrl.AnimateTransition(drawer.StateDismissed)
	case key.Matches(msg, m.keys.Reverse):
		m.ctrl.ReverseTransition()
	case key.Matches(msg, m.keys.Select):
		if s, ok := m.selectedDestination(); ok {
			m.ctrl.AnimateTransition(s)
		}
	case key.Matches(msg, m.keys.Next, m.keys.Prev):
		var cmd tea.Cmd
		m.items, cmd = m.items.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleMouse turns presses, motion and releases into drags and taps.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if m.sess.dismissed || (msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease) {
		return m
	}
	now := m.now()

	switch msg.Action {
	case tea.MouseActionPress:
		target := m.hit(msg)
		m.pointer = pointer{pressed: true, target: target, startY: msg.Y}
		m.pointer.tracker.Add(now, float64(msg.Y))

	case tea.MouseActionMotion:
		if !m.pointer.pressed {
			return m
		}
		m.pointer.tracker.Add(now, float64(msg.Y))
		dy := msg.Y - m.pointer.startY
		if !m.pointer.dragging {
			if m.pointer.target == hitBackdrop || abs(dy) < dragThresholdRows {
				return m
			}
			if !m.ctrl.Drag().Began() {
				return m
			}
			m.pointer.dragging = true
		}
		m.ctrl.Drag().Changed(float64(dy))

	case tea.MouseActionRelease:
		if !m.pointer.pressed {
			return m
		}
		p := m.pointer
		m.pointer = pointer{}
		if p.dragging {
			p.tracker.Add(now, float64(msg.Y))
			m.ctrl.Drag().Ended(p.tracker.Velocity())
			return m
		}
		m.tap(p.target, msg.Y, m.clicks.register(p.target, now, m.clickInterval))
	}
	return m
}

// tap dispatches a click of count taps on target.
func (m Model) tap(target hitTarget, y, count int) {
	handled := false
	switch target {
	case hitBackdrop:
		handled = m.ctrl.HandleOutsideTap(float64(y), count)
	case hitHandle:
		handled = m.ctrl.HandleHandleTap(count) || m.ctrl.HandleDrawerTap(count)
	case hitDrawer:
		handled = m.ctrl.HandleDrawerTap(count)
	}
	m.log.WithFields(logrus.Fields{"target": target, "taps": count, "handled": handled}).Debug("tap")
}

// hit resolves the zone under the pointer, falling back to drawer geometry
// before the first frame has been scanned.
func (m Model) hit(msg tea.MouseMsg) hitTarget {
	if z := m.zones.Get(zoneDrawer); z != nil && !z.IsZero() && z.InBounds(msg) {
		if _, y := z.Pos(msg); y <= m.handleRowOffset() {
			return hitHandle
		}
		return hitDrawer
	}
	if z := m.zones.Get(zoneBackdrop); z != nil && !z.IsZero() && z.InBounds(msg) {
		return hitBackdrop
	}

	top := m.drawerTop()
	switch {
	case msg.Y < 0 || msg.Y >= m.containerHeight():
		return hitNone
	case msg.Y < top:
		return hitBackdrop
	case msg.Y-top <= m.handleRowOffset():
		return hitHandle
	default:
		return hitDrawer
	}
}

// drawerTop is the first screen row of the drawer.
func (m Model) drawerTop() int {
	return int(math.Round(m.ctrl.CurrentY()))
}

// handleRowOffset is the last row, counted from the drawer top, that belongs to the handle.
func (m Model) handleRowOffset() int {
	off := 1
	if m.cfg.HandleView != nil {
		off += m.cfg.HandleView.Top
	}
	return off
}

func (t hitTarget) String() string {
	switch t {
	case hitBackdrop:
		return "backdrop"
	case hitHandle:
		return "handle"
	case hitDrawer:
		return "drawer"
	default:
		return "none"
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
