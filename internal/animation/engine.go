package animation

import "time"

// DefaultFPS is the frame rate the terminal host ticks the engine at.
const DefaultFPS = 60

// FrameInterval returns the tick interval for fps, falling back to DefaultFPS.
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// Engine steps every running animator once per frame. It is not safe for
// concurrent use; all calls are expected on the UI goroutine.
type Engine struct {
	animators []*Animator
}

// NewEngine returns an idle engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Run starts a and schedules it. Its first frame is applied on the next Advance.
func (e *Engine) Run(a *Animator) {
	if a == nil || a.IsFinished() {
		return
	}
	a.Start()
	e.animators = append(e.animators, a)
}

// Advance steps all running animators by dt and drops the finished ones.
// Animators scheduled by completion callbacks during this call start on the next frame.
func (e *Engine) Advance(dt time.Duration) {
	current := append([]*Animator(nil), e.animators...)
	for _, a := range current {
		a.Advance(dt)
	}
	live := e.animators[:0]
	for _, a := range e.animators {
		if !a.IsFinished() {
			live = append(live, a)
		}
	}
	for i := len(live); i < len(e.animators); i++ {
		e.animators[i] = nil
	}
	e.animators = live
}

// Active reports whether any animator is still running.
func (e *Engine) Active() bool {
	for _, a := range e.animators {
		if !a.IsFinished() {
			return true
		}
	}
	return false
}

// Len is the number of scheduled animators, finished ones included until the next Advance.
func (e *Engine) Len() int { return len(e.animators) }

// Settle advances in fixed frames until nothing is running or maxFrames elapse.
// It returns the number of frames stepped.
func (e *Engine) Settle(frame time.Duration, maxFrames int) int {
	n := 0
	for ; n < maxFrames && e.Active(); n++ {
		e.Advance(frame)
	}
	return n
}
