package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensigniasec/drawerkit/internal/animation"
	"github.com/ensigniasec/drawerkit/internal/config"
	"github.com/ensigniasec/drawerkit/internal/drawer"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// newTestModel returns a model sized 80x30. With the one-line footer the
// container is 29 rows: full 0, partial 17, collapsed 25, dismissed 29.
func newTestModel(t *testing.T) (Model, *fakeClock) {
	t.Helper()
	f := config.Default()
	cfg, err := f.ToConfiguration()
	require.NoError(t, err)
	logger, _ := logtest.NewNullLogger()

	clock := &fakeClock{t: time.Unix(0, 0)}
	m := NewModel(f, cfg, logger)
	m.now = clock.now

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	require.NotNil(t, cmd)
	return m, clock
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func settleFrames(t *testing.T, m Model, clock *fakeClock) Model {
	t.Helper()
	frame := animation.FrameInterval(m.fps)
	for i := 0; i < 1000 && m.engine.Active(); i++ {
		clock.advance(frame)
		m, _ = update(t, m, frameMsg{At: clock.now()})
	}
	require.False(t, m.engine.Active())
	assert.False(t, m.ticking)
	return m
}

func keyMsg(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(action tea.MouseAction, y int) tea.MouseMsg {
	return tea.MouseMsg{X: 10, Y: y, Button: tea.MouseButtonLeft, Action: action}
}

func TestModel_PresentsOnFirstResize(t *testing.T) {
	m, clock := newTestModel(t)
	assert.True(t, m.presented)
	assert.True(t, m.ticking)
	assert.Equal(t, 29, m.containerHeight())
	assert.Equal(t, drawer.StatePartiallyExpanded, m.ctrl.TargetState())

	m = settleFrames(t, m, clock)
	assert.InDelta(t, 17, m.ctrl.CurrentY(), 0)
	assert.InDelta(t, 1, m.sess.progress, 0)
	assert.Equal(t, animation.End, m.sess.lastSettle)

	view := m.View()
	assert.Contains(t, view, "drawerkit")
	assert.Contains(t, view, "partiallyExpanded")
}

func TestModel_KeysMoveDrawer(t *testing.T) {
	m, clock := newTestModel(t)
	m = settleFrames(t, m, clock)

	m, _ = update(t, m, keyMsg("f"))
	assert.Equal(t, drawer.StateFullyExpanded, m.ctrl.TargetState())
	m = settleFrames(t, m, clock)
	assert.InDelta(t, 0, m.ctrl.CurrentY(), 0)

	m, _ = update(t, m, keyMsg("j"))
	assert.Equal(t, drawer.StatePartiallyExpanded, m.ctrl.TargetState())
	m, _ = update(t, m, keyMsg("c"))
	assert.Equal(t, drawer.StateCollapsed, m.ctrl.TargetState())
	m = settleFrames(t, m, clock)
	assert.InDelta(t, 25, m.ctrl.CurrentY(), 0)
}

func TestModel_DismissAndPresentAgain(t *testing.T) {
	m, clock := newTestModel(t)
	m = settleFrames(t, m, clock)

	m, _ = update(t, m, keyMsg("d"))
	m = settleFrames(t, m, clock)
	assert.True(t, m.sess.dismissed)
	assert.Contains(t, m.View(), "press space to present")

	m, _ = update(t, m, keyMsg("f"))
	assert.Equal(t, drawer.StateDismissed, m.ctrl.TargetState(), "keys are ignored while dismissed")

	m, _ = update(t, m, keyMsg(" "))
	assert.False(t, m.sess.dismissed)
	assert.Equal(t, drawer.StatePartiallyExpanded, m.ctrl.TargetState())
	m = settleFrames(t, m, clock)
	assert.InDelta(t, 17, m.ctrl.CurrentY(), 0)
}

func TestModel_ReverseKeySendsDrawerBack(t *testing.T) {
	m, clock := newTestModel(t)
	clock.advance(animation.FrameInterval(m.fps))
	m, _ = update(t, m, frameMsg{At: clock.now()})

	m, _ = update(t, m, keyMsg("r"))
	assert.Equal(t, drawer.StateDismissed, m.ctrl.TargetState())
	m = settleFrames(t, m, clock)
	assert.True(t, m.sess.dismissed)
	assert.Equal(t, animation.Start, m.sess.lastSettle)
	assert.InDelta(t, 29, m.ctrl.CurrentY(), 0)
}

func TestModel_ResizeMidTransitionLandsOnNewAnchor(t *testing.T) {
	m, clock := newTestModel(t)
	clock.advance(animation.FrameInterval(m.fps))
	m, _ = update(t, m, frameMsg{At: clock.now()})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
	assert.Equal(t, drawer.StatePartiallyExpanded, m.ctrl.TargetState())
	m = settleFrames(t, m, clock)
	assert.Equal(t, drawer.StatePartiallyExpanded, m.ctrl.CurrentState())
	assert.InDelta(t, m.ctrl.Anchors().PartialY, m.ctrl.CurrentY(), 0)
	assert.False(t, m.sess.dismissed)
}

func TestModel_OutsideClickDismisses(t *testing.T) {
	m, clock := newTestModel(t)
	m = settleFrames(t, m, clock)

	m, _ = update(t, m, mouse(tea.MouseActionPress, 2))
	m, _ = update(t, m, mouse(tea.MouseActionRelease, 2))
	assert.Equal(t, drawer.StateDismissed, m.ctrl.TargetState())
	m = settleFrames(t, m, clock)
	assert.True(t, m.sess.dismissed)
}

func TestModel_DrawerClickExpands(t *testing.T) {
	m, clock := newTestModel(t)
	m = settleFrames(t, m, clock)

	m, _ = update(t, m, mouse(tea.MouseActionPress, 22))
	m, _ = update(t, m, mouse(tea.MouseActionRelease, 22))
	assert.Equal(t, drawer.StateFullyExpanded, m.ctrl.TargetState())
}

func TestModel_DragReleaseSettlesNearest(t *testing.T) {
	m, clock := newTestModel(t)
	m = settleFrames(t, m, clock)

	m, _ = update(t, m, mouse(tea.MouseActionPress, 20))
	for y := 21; y <= 26; y++ {
		clock.advance(100 * time.Millisecond)
		m, _ = update(t, m, mouse(tea.MouseActionMotion, y))
	}
	assert.True(t, m.ctrl.Drag().IsDragging())
	assert.InDelta(t, 23, m.ctrl.CurrentY(), 0)

	clock.advance(100 * time.Millisecond)
	m, _ = update(t, m, mouse(tea.MouseActionRelease, 26))
	assert.False(t, m.ctrl.Drag().IsDragging())
	assert.Equal(t, drawer.StateCollapsed, m.ctrl.TargetState())
	m = settleFrames(t, m, clock)
	assert.InDelta(t, 25, m.ctrl.CurrentY(), 0)
}

func TestModel_FastDragUpFlicksToFull(t *testing.T) {
	m, clock := newTestModel(t)
	m = settleFrames(t, m, clock)

	m, _ = update(t, m, mouse(tea.MouseActionPress, 20))
	for y := 18; y >= 12; y -= 2 {
		clock.advance(10 * time.Millisecond)
		m, _ = update(t, m, mouse(tea.MouseActionMotion, y))
	}
	m, _ = update(t, m, mouse(tea.MouseActionRelease, 12))
	assert.Equal(t, drawer.StateFullyExpanded, m.ctrl.TargetState())
}

func TestModel_HelpShrinksContainer(t *testing.T) {
	m, clock := newTestModel(t)
	m = settleFrames(t, m, clock)
	short := m.containerHeight()

	m, _ = update(t, m, keyMsg("?"))
	assert.True(t, m.helpVisible)
	assert.Less(t, m.containerHeight(), short)
	assert.InDelta(t, float64(m.containerHeight()), m.ctrl.ContainerHeight(), 0)
	assert.Equal(t, drawer.StatePartiallyExpanded, m.ctrl.CurrentState())
}

func TestModel_ListSelection(t *testing.T) {
	m, clock := newTestModel(t)
	m = settleFrames(t, m, clock)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	s, ok := m.selectedDestination()
	require.True(t, ok)
	assert.Equal(t, drawer.StatePartiallyExpanded, s)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, drawer.StateCollapsed, m.ctrl.TargetState())
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := update(t, m, keyMsg("q"))
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestClickCounter(t *testing.T) {
	var c clickCounter
	t0 := time.Unix(0, 0)
	assert.Equal(t, 1, c.register(hitDrawer, t0, 400*time.Millisecond))
	assert.Equal(t, 2, c.register(hitDrawer, t0.Add(300*time.Millisecond), 400*time.Millisecond))
	assert.Equal(t, 1, c.register(hitHandle, t0.Add(400*time.Millisecond), 400*time.Millisecond))
	assert.Equal(t, 1, c.register(hitHandle, t0.Add(time.Second), 400*time.Millisecond))
}

func TestTransitionProgress(t *testing.T) {
	info := &animation.Info{Geometry: animation.Geometry{
		StartingFrame: drawer.Rect{Y: 20},
		EndingFrame:   drawer.Rect{Y: 10},
	}}
	assert.InDelta(t, 0.5, transitionProgress(info, 15), 1e-9)
	assert.InDelta(t, 0, transitionProgress(info, 25), 0)
	assert.InDelta(t, 1, transitionProgress(info, 0), 0)
	assert.InDelta(t, 0, transitionProgress(nil, 0), 0)
}

func TestHitFallback(t *testing.T) {
	m, clock := newTestModel(t)
	m = settleFrames(t, m, clock)

	assert.Equal(t, hitBackdrop, m.hit(mouse(tea.MouseActionPress, 5)))
	assert.Equal(t, hitHandle, m.hit(mouse(tea.MouseActionPress, 18)))
	assert.Equal(t, hitDrawer, m.hit(mouse(tea.MouseActionPress, 24)))
	assert.Equal(t, hitNone, m.hit(mouse(tea.MouseActionPress, 29)))
}
