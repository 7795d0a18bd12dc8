package tui

import "time"

// Package-level constants to avoid magic numbers and improve readability.
const (
	// maxFrameDelta caps a single engine step after a stalled frame.
	maxFrameDelta = 100 * time.Millisecond
	// defaultMultiTapInterval applies when the config leaves the click window at zero.
	defaultMultiTapInterval = 400 * time.Millisecond
	// dragThresholdRows is how far the pointer must move before a press becomes a drag.
	dragThresholdRows = 1

	// handle bar shades run from handleShadeMin (faded) to handleShadeMin+handleShadeRange (opaque)
	// in the 256-colour grey ramp.
	handleShadeMin   = 236
	handleShadeRange = 19

	// backdropDimAlpha is the background alpha above which the backdrop is drawn dimmed.
	backdropDimAlpha = 0.5

	zoneDrawer   = "drawer"
	zoneBackdrop = "backdrop"
)
