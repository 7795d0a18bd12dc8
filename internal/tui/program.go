package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/drawerkit/internal/config"
)

// Run starts the Bubble Tea demo for the drawer described by f. Log output goes
// to logOut while the program owns the terminal; nil discards it.
func Run(ctx context.Context, f *config.File, logOut io.Writer) error {
	cfg, err := f.ToConfiguration()
	if err != nil {
		return err
	}

	// Keep log lines from corrupting the view.
	if logOut == nil {
		logOut = io.Discard
	}
	prevOut := logrus.StandardLogger().Out
	logrus.SetOutput(logOut)
	defer logrus.SetOutput(prevOut)

	model := NewModel(f, cfg, logrus.StandardLogger())
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	logrus.WithField("fps", f.Demo.FPS).Debug("starting drawer demo")
	_, err = p.Run()
	return err
}
