package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ensigniasec/drawerkit/internal/animation"
	"github.com/ensigniasec/drawerkit/internal/drawer"
	"github.com/ensigniasec/drawerkit/internal/presentation"
)

const reportWidth = 80

// AnchorReport lists the resting position of every discrete state for one container.
type AnchorReport struct {
	ContainerHeight float64       `json:"ContainerHeight"`
	SupportsPartial bool          `json:"SupportsPartial"`
	UpperMarkY      float64       `json:"UpperMarkY"`
	LowerMarkY      float64       `json:"LowerMarkY"`
	Anchors         []AnchorEntry `json:"Anchors"`
}

// AnchorEntry is one discrete state and the drawer surface at rest there.
type AnchorEntry struct {
	State           string  `json:"State"`
	Y               float64 `json:"Y"`
	CornerRadius    float64 `json:"CornerRadius"`
	HandleAlpha     float64 `json:"HandleAlpha"`
	BackgroundAlpha float64 `json:"BackgroundAlpha"`
}

// Frame is the drawer surface after one engine step.
type Frame struct {
	Index           int           `json:"Index"`
	Elapsed         time.Duration `json:"Elapsed"`
	State           string        `json:"State"`
	Y               float64       `json:"Y"`
	CornerRadius    float64       `json:"CornerRadius"`
	HandleAlpha     float64       `json:"HandleAlpha"`
	BackgroundAlpha float64       `json:"BackgroundAlpha"`
}

// Simulation is a frame-by-frame trace of one transition.
type Simulation struct {
	From      string        `json:"From"`
	To        string        `json:"To"`
	Settled   string        `json:"Settled"`
	FPS       int           `json:"FPS"`
	Duration  time.Duration `json:"Duration"`
	Truncated bool          `json:"Truncated"`
	Frames    []Frame       `json:"Frames"`
}

// Anchors reports every discrete state reachable in c's current container.
func Anchors(c *presentation.Controller) AnchorReport {
	a := c.Anchors()
	r := AnchorReport{
		ContainerHeight: a.ContainerHeight,
		SupportsPartial: a.SupportsPartial,
		UpperMarkY:      c.UpperMarkY(),
		LowerMarkY:      c.LowerMarkY(),
		Anchors:         []AnchorEntry{},
	}

	for _, s := range discreteStates(a) {
		y := a.PositionY(s)
		r.Anchors = append(r.Anchors, AnchorEntry{
			State:           s.String(),
			Y:               y,
			CornerRadius:    c.CornerRadius(s),
			HandleAlpha:     c.HandleViewAlpha(s),
			BackgroundAlpha: c.BackgroundViewAlpha(s),
		})
	}
	return r
}

// Simulate drives c from its current position to the state to, one frame at
// a time, until the transition settles or maxFrames is reached.
func Simulate(c *presentation.Controller, to drawer.State, fps, maxFrames int) Simulation {
	frame := animation.FrameInterval(fps)
	sim := Simulation{
		From:   c.CurrentState().String(),
		To:     to.String(),
		FPS:    fps,
		Frames: []Frame{},
	}

	sim.Frames = append(sim.Frames, snapshot(c, 0, 0))
	c.AnimateTransition(to)

	e := c.Engine()
	for i := 1; e.Active(); i++ {
		if i > maxFrames {
			sim.Truncated = true
			break
		}
		e.Advance(frame)
		sim.Frames = append(sim.Frames, snapshot(c, i, time.Duration(i)*frame))
	}
	last := sim.Frames[len(sim.Frames)-1]
	sim.Duration = last.Elapsed
	sim.Settled = c.CurrentState().String()
	return sim
}

func snapshot(c *presentation.Controller, i int, elapsed time.Duration) Frame {
	s := c.Surface()
	return Frame{
		Index:           i,
		Elapsed:         elapsed,
		State:           c.CurrentState().String(),
		Y:               s.Frame.Y,
		CornerRadius:    s.CornerRadius,
		HandleAlpha:     s.HandleAlpha,
		BackgroundAlpha: s.BackgroundAlpha,
	}
}

func discreteStates(a drawer.Anchors) []drawer.State {
	return append(a.Stops(), drawer.StateDismissed)
}

// PrintAnchors outputs r as indented JSON or as a human-readable table.
func PrintAnchors(w io.Writer, r AnchorReport, jsonOutput bool) error {
	if jsonOutput {
		return printJSON(w, r)
	}

	fmt.Fprintln(w, strings.Repeat("=", reportWidth))
	fmt.Fprintln(w, "DRAWER ANCHORS")
	fmt.Fprintln(w, strings.Repeat("=", reportWidth))
	fmt.Fprintf(w, "Container height: %s (partial expansion: %t)\n", formatUnits(r.ContainerHeight), r.SupportsPartial)
	fmt.Fprintf(w, "Upper mark: %s   Lower mark: %s\n\n", formatUnits(r.UpperMarkY), formatUnits(r.LowerMarkY))
	fmt.Fprintf(w, "   %-20s %10s %10s %10s %10s\n", "STATE", "Y", "RADIUS", "HANDLE", "BACKDROP")
	for i, a := range r.Anchors {
		fmt.Fprintf(w, "[%d] %-20s %10s %10.2f %10.2f %10.2f\n",
			i+1, a.State, formatUnits(a.Y), a.CornerRadius, a.HandleAlpha, a.BackgroundAlpha)
	}
	fmt.Fprintln(w, strings.Repeat("=", reportWidth))
	return nil
}

// PrintSimulation outputs sim as indented JSON or as a frame table.
func PrintSimulation(w io.Writer, sim Simulation, jsonOutput bool) error {
	if jsonOutput {
		return printJSON(w, sim)
	}

	fmt.Fprintln(w, strings.Repeat("=", reportWidth))
	fmt.Fprintf(w, "TRANSITION %s -> %s\n", sim.From, sim.To)
	fmt.Fprintln(w, strings.Repeat("=", reportWidth))
	fmt.Fprintf(w, "Settled: %s after %d frames at %d fps (duration: %s)\n",
		sim.Settled, len(sim.Frames)-1, sim.FPS, HumanDuration(sim.Duration))
	if sim.Truncated {
		fmt.Fprintln(w, "⚠️  Frame limit reached before the transition settled")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%6s %9s %10s %10s %8s %8s  %s\n", "FRAME", "T", "Y", "RADIUS", "HANDLE", "BACKDROP", "STATE")
	for _, f := range sim.Frames {
		fmt.Fprintf(w, "%6d %9s %10s %10.2f %8.2f %8.2f  %s\n",
			f.Index, HumanDuration(f.Elapsed), formatUnits(f.Y), f.CornerRadius, f.HandleAlpha, f.BackgroundAlpha, f.State)
	}
	fmt.Fprintln(w, strings.Repeat("=", reportWidth))
	return nil
}

func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func formatUnits(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// HumanDuration returns a compact, human-readable duration string.
// Examples: 0ms, 850ms, 1.23s, 2m05s.
func HumanDuration(d time.Duration) string {
	if d < time.Second {
		ms := d / time.Millisecond
		return fmt.Sprintf("%dms", ms)
	}
	if d < time.Minute {
		secs := float64(d) / float64(time.Second)
		return fmt.Sprintf("%.2fs", secs)
	}
	m := d / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%dm%02ds", m, s)
}
