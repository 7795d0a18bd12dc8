package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ensigniasec/drawerkit/internal/drawer"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { // nolint:ireturn
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = x.Width, x.Height
		m.resize()
		if !m.presented {
			m.present()
		}
		m.syncDestinations()
		return m, m.ensureTicking()

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(x)
		if m.quitting {
			return m, cmd
		}
		m.syncDestinations()
		return m, tea.Batch(cmd, m.ensureTicking())

	case tea.MouseMsg:
		m = m.handleMouse(x)
		m.syncDestinations()
		return m, m.ensureTicking()

	case frameMsg:
		dt := x.At.Sub(m.lastFrame)
		if dt < 0 {
			dt = 0
		}
		if dt > maxFrameDelta {
			dt = maxFrameDelta
		}
		m.lastFrame = x.At
		m.engine.Advance(dt)
		m.syncDestinations()
		if m.engine.Active() {
			return m, m.frameTick()
		}
		m.ticking = false
		return m, nil

	case spinner.TickMsg:
		if !m.ticking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(x)
		return m, cmd
	}

	return m, nil
}

// present animates the drawer in and, if configured, on to the initial state.
func (m *Model) present() {
	m.presented = true
	m.sess.dismissed = false
	m.ctrl.Present()
	if s, ok := m.file.InitialState(); ok && !s.Equal(m.ctrl.TargetState()) {
		m.ctrl.AnimateTransition(s)
	}
}

// containerHeight is the number of rows available to the drawer above the footer.
func (m Model) containerHeight() int {
	h := m.height - m.footerHeight()
	if h < 0 {
		return 0
	}
	return h
}

// resize pushes the current layout to the controller.
func (m *Model) resize() {
	m.help.Width = m.width
	m.ctrl.SetContainerBounds(drawer.Rect{Width: float64(m.width), Height: float64(m.containerHeight())})
	m.progress.Width = progressWidth(m.width)
	m.items.SetSize(m.drawerInnerWidth(), m.listHeight())
}
