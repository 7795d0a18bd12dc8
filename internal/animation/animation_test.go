package animation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensigniasec/drawerkit/internal/drawer"
)

func proportionalConfig() drawer.Configuration {
	cfg := drawer.DefaultConfiguration()
	cfg.TotalDuration = 400 * time.Millisecond
	cfg.DurationIsProportionalToDistanceTraveled = true
	return cfg
}

func TestTransitionDuration(t *testing.T) {
	tests := []struct {
		name     string
		from, to float64
		height   float64
		minimum  time.Duration
		prop     bool
		want     time.Duration
	}{
		{name: "full distance", from: 1000, to: 0, height: 1000, minimum: 10 * time.Millisecond, prop: true, want: 400 * time.Millisecond},
		{name: "tenth of distance", from: 1000, to: 900, height: 1000, minimum: 10 * time.Millisecond, prop: true, want: 40 * time.Millisecond},
		{name: "floored at minimum", from: 1000, to: 900, height: 1000, minimum: 100 * time.Millisecond, prop: true, want: 100 * time.Millisecond},
		{name: "zero distance floored", from: 500, to: 500, height: 1000, minimum: 10 * time.Millisecond, prop: true, want: 10 * time.Millisecond},
		{name: "not proportional", from: 1000, to: 900, height: 1000, minimum: 10 * time.Millisecond, prop: false, want: 400 * time.Millisecond},
		{name: "no container", from: 10, to: 0, height: 0, minimum: 10 * time.Millisecond, prop: true, want: 400 * time.Millisecond},
		{name: "zero minimum still positive", from: 3, to: 3, height: 1000, minimum: 0, prop: true, want: time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := proportionalConfig()
			cfg.MinimumDuration = tt.minimum
			cfg.DurationIsProportionalToDistanceTraveled = tt.prop
			got := TransitionDuration(tt.from, tt.to, tt.height, cfg)
			assert.InDelta(t, float64(tt.want), float64(got), float64(time.Microsecond))
			assert.Positive(t, got)
		})
	}
}

func TestTransitionDuration_NegativeBase(t *testing.T) {
	cfg := drawer.DefaultConfiguration()
	cfg.TotalDuration = -time.Second
	cfg.MinimumDuration = -time.Second
	assert.Equal(t, time.Millisecond, TransitionDuration(0, 100, 100, cfg))
}

func TestEase(t *testing.T) {
	for _, k := range []drawer.CurveKind{drawer.CurveLinear, drawer.CurveEaseIn, drawer.CurveEaseOut, drawer.CurveEaseInOut, drawer.CurveSpring} {
		assert.InDelta(t, 0, Ease(k, -1), 0, k.String())
		assert.InDelta(t, 0, Ease(k, 0), 0, k.String())
		assert.InDelta(t, 1, Ease(k, 1), 0, k.String())
		assert.InDelta(t, 1, Ease(k, 2), 0, k.String())
		prev := 0.0
		for i := 1; i < 10; i++ {
			v := Ease(k, float64(i)/10)
			assert.Greater(t, v, prev, k.String())
			prev = v
		}
	}
	assert.InDelta(t, 0.5, Ease(drawer.CurveEaseInOut, 0.5), 1e-9)
	assert.InDelta(t, 0.3, Ease(drawer.CurveLinear, 0.3), 1e-12)
}

func TestAnimator_RunsToEnd(t *testing.T) {
	a := NewAnimator(100*time.Millisecond, drawer.TimingCurve{Kind: drawer.CurveLinear})

	var fractions []float64
	var settled []Position
	a.AddAnimations(func(f float64) { fractions = append(fractions, f) })
	a.AddCompletion(func(p Position) { settled = append(settled, p) })

	// Not started: frames are ignored.
	assert.False(t, a.Advance(50*time.Millisecond))
	assert.Empty(t, fractions)

	a.Start()
	assert.False(t, a.Advance(25*time.Millisecond))
	assert.False(t, a.Advance(25*time.Millisecond))
	assert.True(t, a.Advance(60*time.Millisecond))
	assert.True(t, a.Advance(60*time.Millisecond))

	require.Len(t, fractions, 3)
	assert.InDelta(t, 0.25, fractions[0], 1e-9)
	assert.InDelta(t, 0.5, fractions[1], 1e-9)
	assert.InDelta(t, 1, fractions[2], 0)
	assert.Equal(t, []Position{End}, settled)
	assert.True(t, a.IsFinished())
}

func TestAnimator_ReverseSettlesAtStart(t *testing.T) {
	a := NewAnimator(100*time.Millisecond, drawer.TimingCurve{Kind: drawer.CurveLinear})
	var last float64
	var settled []Position
	a.AddAnimations(func(f float64) { last = f })
	a.AddCompletion(func(p Position) { settled = append(settled, p) })

	a.Start()
	a.Advance(40 * time.Millisecond)
	a.Reverse()
	assert.True(t, a.IsReversed())
	a.Advance(20 * time.Millisecond)
	assert.InDelta(t, 0.2, last, 1e-9)
	a.Advance(50 * time.Millisecond)

	assert.InDelta(t, 0, last, 0)
	assert.Equal(t, []Position{Start}, settled)
}

func TestAnimator_StopReportsCurrentOnce(t *testing.T) {
	a := NewAnimator(time.Second, drawer.DefaultConfiguration().TimingCurve)
	count := 0
	var at Position
	a.AddCompletion(func(p Position) { count++; at = p })

	a.Start()
	a.Advance(100 * time.Millisecond)
	a.Stop()
	a.Stop()
	a.Advance(time.Second)

	assert.Equal(t, 1, count)
	assert.Equal(t, Current, at)
}

func TestAnimator_SpringApproachesTarget(t *testing.T) {
	a := NewAnimator(400*time.Millisecond, drawer.TimingCurve{Kind: drawer.CurveSpring, Frequency: 12, Damping: 0.8})
	var fractions []float64
	a.AddAnimations(func(f float64) { fractions = append(fractions, f) })
	a.Start()

	frame := FrameInterval(60)
	for !a.Advance(frame) {
	}
	require.NotEmpty(t, fractions)
	assert.Greater(t, fractions[0], 0.0)
	assert.InDelta(t, 1, fractions[len(fractions)-1], 0)
	// Before the final snap the spring should be close to rest.
	assert.InDelta(t, 1, fractions[len(fractions)-2], 0.05)
}

func TestNewAnimator_FloorsDuration(t *testing.T) {
	assert.Equal(t, time.Millisecond, NewAnimator(0, drawer.TimingCurve{}).Duration())
	assert.Equal(t, time.Millisecond, NewAnimator(-time.Second, drawer.TimingCurve{}).Duration())
}

func TestEngine_AdvancesAndPrunes(t *testing.T) {
	e := NewEngine()
	short := NewAnimator(20*time.Millisecond, drawer.TimingCurve{Kind: drawer.CurveLinear})
	long := NewAnimator(50*time.Millisecond, drawer.TimingCurve{Kind: drawer.CurveLinear})

	var chained *Animator
	short.AddCompletion(func(Position) {
		chained = NewAnimator(20*time.Millisecond, drawer.TimingCurve{Kind: drawer.CurveLinear})
		e.Run(chained)
	})

	e.Run(short)
	e.Run(long)
	assert.Equal(t, 2, e.Len())
	assert.True(t, e.Active())

	e.Advance(20 * time.Millisecond)
	assert.True(t, short.IsFinished())
	require.NotNil(t, chained)
	assert.InDelta(t, 0, chained.Fraction(), 0, "chained animator starts on the next frame")
	assert.Equal(t, 2, e.Len())

	frames := e.Settle(20*time.Millisecond, 10)
	assert.Equal(t, 2, frames)
	assert.False(t, e.Active())
	assert.Equal(t, 0, e.Len())
}

func TestFrameInterval(t *testing.T) {
	assert.Equal(t, time.Second/60, FrameInterval(0))
	assert.Equal(t, time.Second/30, FrameInterval(30))
}

type recordingActions struct {
	name string
	log  *[]string
}

func (r recordingActions) Prepare(*Info)      { *r.log = append(*r.log, r.name+":prepare") }
func (r recordingActions) AnimateAlong(*Info) { *r.log = append(*r.log, r.name+":along") }
func (r recordingActions) Cleanup(p Position, _ *Info) {
	*r.log = append(*r.log, r.name+":cleanup:"+p.String())
}

func TestClientHooks_DispatchInOrder(t *testing.T) {
	var log []string
	presenting := []Actions{recordingActions{"a", &log}, nil, recordingActions{"b", &log}}
	presented := []Actions{recordingActions{"c", &log}}

	geometry := MakeGeometry(drawer.Rect{Height: 800}, drawer.Rect{Y: 700}, drawer.Rect{Y: 0}, "presenting", "presented")
	info := MakeInfo(drawer.StateCollapsed, drawer.StateFullyExpanded, drawer.DefaultConfiguration(), geometry, time.Second, true)

	ClientPrepareViews(presenting, presented, info)
	ClientAnimateAlong(presenting, presented, info)
	ClientCleanupViews(presenting, presented, End, info)

	assert.Equal(t, []string{
		"a:prepare", "b:prepare", "c:prepare",
		"a:along", "b:along", "c:along",
		"a:cleanup:end", "b:cleanup:end", "c:cleanup:end",
	}, log)
	assert.NotEqual(t, info.ID, MakeInfo(drawer.StateCollapsed, drawer.StateFullyExpanded, drawer.DefaultConfiguration(), geometry, time.Second, true).ID)
	assert.Equal(t, "presented", info.Geometry.Presented)
}

func TestActionFuncs_NilClosures(t *testing.T) {
	var f ActionFuncs
	assert.NotPanics(t, func() {
		f.Prepare(nil)
		f.AnimateAlong(nil)
		f.Cleanup(End, nil)
	})

	called := false
	ActionFuncs{CleanupFunc: func(p Position, _ *Info) { called = p == Current }}.Cleanup(Current, nil)
	assert.True(t, called)
}
