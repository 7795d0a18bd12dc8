package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/drawerkit/internal/animation"
	"github.com/ensigniasec/drawerkit/internal/config"
	"github.com/ensigniasec/drawerkit/internal/drawer"
	"github.com/ensigniasec/drawerkit/internal/presentation"
)

// demoContent is the presented content: a fixed pair of heights from the config.
type demoContent struct {
	collapsed, partial float64
}

func (c demoContent) HeightOfCollapsedDrawer() float64         { return c.collapsed }
func (c demoContent) HeightOfPartiallyExpandedDrawer() float64 { return c.partial }

// session is state written from controller callbacks, shared by every copy of the Model.
type session struct {
	dismissed  bool
	transition *animation.Info
	progress   float64
	lastSettle animation.Position
	settled    int
}

// pointer tracks a mouse press that may turn into a drag or a tap.
type pointer struct {
	pressed  bool
	dragging bool
	target   hitTarget
	startY   int
	tracker  presentation.VelocityTracker
}

// clickCounter groups successive clicks on the same target into multi-taps.
type clickCounter struct {
	target hitTarget
	count  int
	at     time.Time
}

// register records a click and returns how many clicks the current run holds.
func (c *clickCounter) register(target hitTarget, at time.Time, interval time.Duration) int {
	if c.count > 0 && c.target == target && at.Sub(c.at) <= interval {
		c.count++
	} else {
		c.count = 1
	}
	c.target = target
	c.at = at
	return c.count
}

// Model is the root Bubble Tea model.
type Model struct {
	ctrl   *presentation.Controller
	engine *animation.Engine
	cfg    drawer.Configuration
	file   *config.File
	sess   *session
	zones  *zone.Manager
	log    logrus.FieldLogger

	width     int
	height    int
	presented bool
	quitting  bool
	showMarks bool

	// frame loop
	fps       int
	ticking   bool
	lastFrame time.Time
	now       func() time.Time

	// mouse
	pointer       pointer
	clicks        clickCounter
	clickInterval time.Duration

	// ui state
	helpVisible bool
	help        help.Model
	items       list.Model
	progress    progress.Model
	spinner     spinner.Model

	// keymap for consistent keybindings
	keys keyMap
}

// NewModel constructs a Model for the drawer described by f and cfg.
func NewModel(f *config.File, cfg drawer.Configuration, logger logrus.FieldLogger) Model { // nolint:ireturn
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	sess := &session{}
	engine := animation.NewEngine()

	var ctrl *presentation.Controller
	hooks := animation.ActionFuncs{
		PrepareFunc: func(info *animation.Info) {
			sess.transition = info
			sess.progress = 0
		},
		AnimateAlongFunc: func(info *animation.Info) {
			sess.progress = transitionProgress(info, ctrl.CurrentY())
		},
		CleanupFunc: func(pos animation.Position, _ *animation.Info) {
			sess.lastSettle = pos
			sess.settled++
			if pos == animation.End {
				sess.progress = 1
			}
		},
	}
	content := demoContent{collapsed: f.Demo.CollapsedHeight, partial: f.Demo.PartialHeight}
	ctrl = presentation.New(cfg, content,
		presentation.WithEngine(engine),
		presentation.WithLogger(logger),
		presentation.WithDismisser(presentation.DismissFunc(func() { sess.dismissed = true })),
		presentation.WithPresentedActions(hooks),
	)

	interval := f.MultiTapInterval()
	if interval <= 0 {
		interval = defaultMultiTapInterval
	}

	p := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	sp := spinner.New(spinner.WithSpinner(spinner.MiniDot))

	return Model{
		ctrl:          ctrl,
		engine:        engine,
		cfg:           cfg,
		file:          f,
		sess:          sess,
		zones:         zone.New(),
		log:           logger,
		fps:           f.Demo.FPS,
		now:           time.Now,
		clickInterval: interval,
		showMarks:     cfg.InDebugMode,
		help:          help.New(),
		items:         newDestinationList(),
		progress:      p,
		spinner:       sp,
		keys:          newKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Controller exposes the drawer controller driven by this model.
func (m Model) Controller() *presentation.Controller { return m.ctrl }

// transitionProgress is how far along its path the drawer is, in [0, 1].
func transitionProgress(info *animation.Info, y float64) float64 {
	if info == nil {
		return 0
	}
	from, to := info.Geometry.StartingFrame.Y, info.Geometry.EndingFrame.Y
	if from == to {
		return 1
	}
	p := (y - from) / (to - from)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

// frameTick schedules the next engine frame.
func (m Model) frameTick() tea.Cmd {
	return tea.Tick(animation.FrameInterval(m.fps), func(t time.Time) tea.Msg {
		return frameMsg{At: t}
	})
}

// ensureTicking starts the frame loop if an animation is pending and the loop is idle.
func (m *Model) ensureTicking() tea.Cmd {
	if m.ticking || !m.engine.Active() {
		return nil
	}
	m.ticking = true
	m.lastFrame = m.now()
	return tea.Batch(m.frameTick(), m.spinner.Tick)
}
