package drawer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioConfig matches an 800-high container with collapsed 100 / partial 300 and no top gap.
func scenarioConfig() Configuration {
	cfg := DefaultConfiguration()
	cfg.FullExpansionBehaviour = FullExpansionBehaviour{Kind: LeavesCustomGap, Gap: 0}
	return cfg
}

func TestEvaluate_ScenarioAnchors(t *testing.T) {
	a := Evaluate(scenarioConfig(), 100, 300, 800)

	assert.InDelta(t, 0, a.FullY, 0)
	assert.InDelta(t, 500, a.PartialY, 0)
	assert.InDelta(t, 700, a.CollapsedY, 0)
	assert.InDelta(t, 800, a.PositionY(StateDismissed), 0)
	assert.True(t, a.SupportsPartial)
}

func TestStateFor_RoundTrip(t *testing.T) {
	behaviours := []FullExpansionBehaviour{
		{Kind: CoversFullScreen},
		{Kind: DoesNotCoverStatusBar},
		{Kind: LeavesCustomGap, Gap: 37.5},
	}
	for _, b := range behaviours {
		for _, partial := range []bool{true, false} {
			cfg := DefaultConfiguration()
			cfg.FullExpansionBehaviour = b
			cfg.SupportsPartialExpansion = partial

			a := Evaluate(cfg, 120, 340, 812)
			states := []State{StateCollapsed, StateFullyExpanded, StateDismissed}
			if partial {
				states = append(states, StatePartiallyExpanded)
			}
			for _, s := range states {
				y := DrawerPositionY(s, 120, 340, 812, cfg.DrawerFullY(), partial)
				got := DrawerStateFor(y, 120, 340, 812, cfg)
				assert.Truef(t, got.Equal(s), "%s/%v: %s -> %v -> %s", b.Kind, partial, s, y, got)
				assert.InDelta(t, a.PositionY(s), y, 0)
			}
		}
	}
}

func TestStateFor_BetweenAnchorsIsTransitioning(t *testing.T) {
	a := Evaluate(scenarioConfig(), 100, 300, 800)

	for _, y := range []float64{0.5, 250, 499.999, 500.001, 650, 699, 701, 799.5} {
		got := a.StateFor(y)
		require.True(t, got.IsTransitioning(), "y=%v got %s", y, got)
		assert.InDelta(t, y, got.PositionY, 0)
	}
}

func TestPositionY_AlwaysWithinBounds(t *testing.T) {
	cfg := scenarioConfig()
	cfg.FullExpansionBehaviour = FullExpansionBehaviour{Kind: LeavesCustomGap, Gap: 60}

	inputs := []State{
		StateCollapsed, StatePartiallyExpanded, StateFullyExpanded, StateDismissed,
		TransitioningAt(-100), TransitioningAt(10), TransitioningAt(400), TransitioningAt(5000), TransitioningAt(math.NaN()),
	}
	heights := [][2]float64{{100, 300}, {-5, 900}, {1000, 1000}, {0, 0}, {math.NaN(), math.Inf(1)}}
	for _, h := range heights {
		a := Evaluate(cfg, h[0], h[1], 800)
		for _, s := range inputs {
			y := a.PositionY(s)
			assert.GreaterOrEqual(t, y, a.FullY, "%s with %v", s, h)
			assert.LessOrEqual(t, y, a.ContainerHeight, "%s with %v", s, h)
		}
	}
}

func TestPartialUnsupported_NeverYieldsPartial(t *testing.T) {
	cfg := scenarioConfig()
	cfg.SupportsPartialExpansion = false
	a := Evaluate(cfg, 100, 300, 800)

	assert.False(t, a.SupportsPartial)
	assert.InDelta(t, a.FullY, a.PositionY(StatePartiallyExpanded), 0)

	for y := 0.0; y <= 800; y += 12.5 {
		assert.NotEqual(t, PartiallyExpanded, a.StateFor(y).Kind, "y=%v", y)
	}
	for _, s := range a.Reachable(cfg, 650) {
		assert.NotEqual(t, PartiallyExpanded, s.Kind)
	}
}

func TestPartialHeight_Degenerate(t *testing.T) {
	tests := []struct {
		name    string
		partial float64
	}{
		{name: "zero", partial: 0},
		{name: "negative", partial: -40},
		{name: "covers full anchor", partial: 800},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Evaluate(scenarioConfig(), 100, tt.partial, 800)
			assert.False(t, a.SupportsPartial)
			assert.InDelta(t, a.FullY, a.PartialY, 0)
		})
	}
}

func TestHeightClamping(t *testing.T) {
	assert.InDelta(t, 0, DrawerPartialH(-10, 500), 0)
	assert.InDelta(t, 500, DrawerPartialH(900, 500), 0)
	assert.InDelta(t, 200, DrawerCollapsedH(200, 500), 0)
	assert.InDelta(t, 0, DrawerCollapsedH(math.NaN(), 500), 0)
	assert.InDelta(t, 0, DrawerCollapsedH(10, -1), 0)
	assert.InDelta(t, 300, DrawerPartialY(200, 500), 0)
	assert.InDelta(t, 500, DrawerCollapsedY(0, 500), 0)
}

func TestCollapsedAboveFull_Clamps(t *testing.T) {
	cfg := scenarioConfig()
	cfg.FullExpansionBehaviour = FullExpansionBehaviour{Kind: LeavesCustomGap, Gap: 100}
	cfg.SupportsPartialExpansion = false

	a := Evaluate(cfg, 790, 0, 800)
	assert.InDelta(t, 100, a.CollapsedY, 0)
}

func TestMarks(t *testing.T) {
	cfg := scenarioConfig()
	a := Evaluate(cfg, 100, 300, 800)

	assert.InDelta(t, 460, a.UpperMarkY(cfg), 0)
	assert.InDelta(t, 540, a.LowerMarkY(cfg), 0)

	cfg.UpperMarkGap = 9000
	cfg.LowerMarkGap = 9000
	assert.InDelta(t, a.FullY, a.UpperMarkY(cfg), 0)
	assert.InDelta(t, a.ContainerHeight, a.LowerMarkY(cfg), 0)
}

func TestReachableAndNearest(t *testing.T) {
	cfg := scenarioConfig()
	a := Evaluate(cfg, 100, 300, 800)

	got := a.Reachable(cfg, 650)
	assert.Equal(t, []State{StateFullyExpanded, StatePartiallyExpanded, StateCollapsed}, got)
	assert.Equal(t, StateCollapsed, a.Nearest(650, got))
	assert.Equal(t, StatePartiallyExpanded, a.Nearest(560, got))

	// Pulled past collapsed: dismissal becomes reachable.
	past := a.Reachable(cfg, 770)
	assert.Contains(t, past, StateDismissed)
	assert.Equal(t, StateDismissed, a.Nearest(770, past))

	cfg.DismissesInStages = false
	assert.Contains(t, a.Reachable(cfg, 100), StateDismissed)
}

func TestFullExpansionBehaviour(t *testing.T) {
	assert.InDelta(t, 0, FullExpansionBehaviour{Kind: CoversFullScreen}.DrawerFullY(20), 0)
	assert.InDelta(t, 20, FullExpansionBehaviour{Kind: DoesNotCoverStatusBar}.DrawerFullY(20), 0)
	assert.InDelta(t, 44, FullExpansionBehaviour{Kind: LeavesCustomGap, Gap: 44}.DrawerFullY(20), 0)
	assert.InDelta(t, 0, FullExpansionBehaviour{Kind: LeavesCustomGap, Gap: -3}.DrawerFullY(20), 0)
}

func TestParseStateAndString(t *testing.T) {
	for _, name := range []string{"collapsed", "partiallyExpanded", "fullyExpanded", "dismissed"} {
		s, err := ParseState(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.String())
	}
	s, err := ParseState(" FULL ")
	require.NoError(t, err)
	assert.Equal(t, StateFullyExpanded, s)

	_, err = ParseState("sideways")
	require.Error(t, err)

	assert.Equal(t, "transitioning(412.5)", TransitioningAt(412.5).String())
	assert.False(t, TransitioningAt(1).Equal(TransitioningAt(2)))
	assert.True(t, StateCollapsed.Equal(State{Kind: Collapsed, PositionY: 99}))
}

func TestParseEnums(t *testing.T) {
	o, err := ParseCornerAnimationOption("AlwaysShowBelowStatusBar")
	require.NoError(t, err)
	assert.Equal(t, CornerAlwaysShowBelowStatusBar, o)

	k, err := ParseExpansionKind("leavesCustomGap")
	require.NoError(t, err)
	assert.Equal(t, LeavesCustomGap, k)

	c, err := ParseCurveKind(" easeInOut ")
	require.NoError(t, err)
	assert.Equal(t, CurveEaseInOut, c)

	_, err = ParseCurveKind("bounce")
	require.Error(t, err)
	_, err = ParseExpansionKind("")
	require.Error(t, err)
	_, err = ParseCornerAnimationOption("round")
	require.Error(t, err)
}

func TestCollapsedTallerThanPartial_FoldsOntoPartial(t *testing.T) {
	cfg := scenarioConfig()
	a := Evaluate(cfg, 400, 300, 800)

	assert.InDelta(t, 500, a.CollapsedY, 0)
	assert.False(t, a.HasCollapsedAnchor())
	assert.Equal(t, []State{StateFullyExpanded, StatePartiallyExpanded}, a.Stops())
	assert.Equal(t, StatePartiallyExpanded, a.StateFor(a.PositionY(StateCollapsed)))
	assert.NotContains(t, a.Reachable(cfg, 650), StateCollapsed)

	b := Evaluate(cfg, 100, 300, 800)
	assert.True(t, b.HasCollapsedAnchor())
	assert.Equal(t, []State{StateFullyExpanded, StatePartiallyExpanded, StateCollapsed}, b.Stops())
}
