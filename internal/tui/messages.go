package tui

import "time"

// Message types for Bubble Tea update loop.

// frameMsg advances the animation engine by one frame.
type frameMsg struct{ At time.Time }
