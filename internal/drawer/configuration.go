package drawer

import (
	"fmt"
	"strings"
	"time"
)

// CornerAnimationOption controls how the drawer's top corner radius follows its position.
type CornerAnimationOption int

const (
	// CornerNone keeps the maximum radius at all times and never animates it.
	CornerNone CornerAnimationOption = iota
	// CornerMaximumAtPartialY peaks at the partial anchor and fades towards the other anchors.
	CornerMaximumAtPartialY
	// CornerAlwaysShowBelowStatusBar rounds fully until the drawer reaches the status bar.
	CornerAlwaysShowBelowStatusBar
)

func (o CornerAnimationOption) String() string {
	switch o {
	case CornerNone:
		return "none"
	case CornerMaximumAtPartialY:
		return "maximumAtPartialY"
	case CornerAlwaysShowBelowStatusBar:
		return "alwaysShowBelowStatusBar"
	default:
		return "unknown"
	}
}

// ExpansionKind selects where the fully expanded drawer stops.
type ExpansionKind int

const (
	CoversFullScreen ExpansionKind = iota
	DoesNotCoverStatusBar
	LeavesCustomGap
)

func (k ExpansionKind) String() string {
	switch k {
	case CoversFullScreen:
		return "coversFullScreen"
	case DoesNotCoverStatusBar:
		return "doesNotCoverStatusBar"
	case LeavesCustomGap:
		return "leavesCustomGap"
	default:
		return "unknown"
	}
}

// FullExpansionBehaviour is either flush to the top or a fixed gap.
type FullExpansionBehaviour struct {
	Kind ExpansionKind
	Gap  float64
}

// DrawerFullY returns the Y of the fully expanded anchor. Negative gaps clamp to 0.
func (b FullExpansionBehaviour) DrawerFullY(statusBarHeight float64) float64 {
	switch b.Kind {
	case DoesNotCoverStatusBar:
		return nonNegative(statusBarHeight)
	case LeavesCustomGap:
		return nonNegative(b.Gap)
	default:
		return 0
	}
}

// CurveKind names a timing curve family.
type CurveKind int

const (
	CurveSpring CurveKind = iota
	CurveLinear
	CurveEaseIn
	CurveEaseOut
	CurveEaseInOut
)

func (k CurveKind) String() string {
	switch k {
	case CurveSpring:
		return "spring"
	case CurveLinear:
		return "linear"
	case CurveEaseIn:
		return "easeIn"
	case CurveEaseOut:
		return "easeOut"
	case CurveEaseInOut:
		return "easeInOut"
	default:
		return "unknown"
	}
}

// TimingCurve parameterises transition animations. Frequency and Damping only
// apply to the spring kind; frequency is expressed per transition duration.
type TimingCurve struct {
	Kind      CurveKind
	Frequency float64
	Damping   float64
}

// ParseCornerAnimationOption parses the names produced by CornerAnimationOption.String, ignoring case.
func ParseCornerAnimationOption(name string) (CornerAnimationOption, error) {
	for _, o := range []CornerAnimationOption{CornerNone, CornerMaximumAtPartialY, CornerAlwaysShowBelowStatusBar} {
		if strings.EqualFold(strings.TrimSpace(name), o.String()) {
			return o, nil
		}
	}
	return CornerNone, fmt.Errorf("unknown corner animation option %q", name)
}

// ParseExpansionKind parses the names produced by ExpansionKind.String, ignoring case.
func ParseExpansionKind(name string) (ExpansionKind, error) {
	for _, k := range []ExpansionKind{CoversFullScreen, DoesNotCoverStatusBar, LeavesCustomGap} {
		if strings.EqualFold(strings.TrimSpace(name), k.String()) {
			return k, nil
		}
	}
	return CoversFullScreen, fmt.Errorf("unknown full expansion behaviour %q", name)
}

// ParseCurveKind parses the names produced by CurveKind.String, ignoring case.
func ParseCurveKind(name string) (CurveKind, error) {
	for _, k := range []CurveKind{CurveSpring, CurveLinear, CurveEaseIn, CurveEaseOut, CurveEaseInOut} {
		if strings.EqualFold(strings.TrimSpace(name), k.String()) {
			return k, nil
		}
	}
	return CurveSpring, fmt.Errorf("unknown timing curve %q", name)
}

// HandleViewConfiguration describes the grab handle drawn at the top of the drawer.
type HandleViewConfiguration struct {
	AutoAnimatesDimming bool
	OpeningImage        string
	ClosingImage        string
	Width               int
	Top                 int
}

// HasImages reports whether the handle swaps images instead of fading.
func (h *HandleViewConfiguration) HasImages() bool {
	return h != nil && h.OpeningImage != "" && h.ClosingImage != ""
}

// BackgroundViewConfiguration describes the dimming layer behind the drawer.
type BackgroundViewConfiguration struct {
	Color         string
	IsBlurEnabled bool
}

// BorderConfiguration describes the drawer border.
type BorderConfiguration struct {
	Thickness int
	Color     string
}

// Configuration is supplied by the caller and never mutated by the core.
type Configuration struct {
	TotalDuration                            time.Duration
	MinimumDuration                          time.Duration
	DurationIsProportionalToDistanceTraveled bool
	TimingCurve                              TimingCurve

	FullExpansionBehaviour   FullExpansionBehaviour
	SupportsPartialExpansion bool
	DismissesInStages        bool
	IsDrawerDraggable        bool

	IsFullyPresentableByDrawerTaps        bool
	NumberOfTapsForFullDrawerPresentation int
	IsDismissableByOutsideDrawerTaps      bool
	NumberOfTapsForOutsideDrawerDismissal int
	IsDismissableByHandleViewTaps         bool
	NumberOfTapsForHandleViewDismissal    int

	// FlickSpeedThreshold is measured in container heights per second.
	FlickSpeedThreshold float64

	UpperMarkGap float64
	LowerMarkGap float64
	InDebugMode  bool

	MaximumCornerRadius   float64
	CornerAnimationOption CornerAnimationOption
	StatusBarHeight       float64

	HandleView     *HandleViewConfiguration
	BackgroundView *BackgroundViewConfiguration
	Border         *BorderConfiguration
}

// DefaultConfiguration returns the stock drawer behaviour.
func DefaultConfiguration() Configuration {
	return Configuration{
		TotalDuration:   400 * time.Millisecond,
		MinimumDuration: 10 * time.Millisecond,
		TimingCurve:     TimingCurve{Kind: CurveSpring, Frequency: 12, Damping: 0.8},

		FullExpansionBehaviour:   FullExpansionBehaviour{Kind: CoversFullScreen},
		SupportsPartialExpansion: true,
		DismissesInStages:        true,
		IsDrawerDraggable:        true,

		IsFullyPresentableByDrawerTaps:        true,
		NumberOfTapsForFullDrawerPresentation: 1,
		IsDismissableByOutsideDrawerTaps:      true,
		NumberOfTapsForOutsideDrawerDismissal: 1,
		IsDismissableByHandleViewTaps:         false,
		NumberOfTapsForHandleViewDismissal:    1,

		FlickSpeedThreshold: 3,
		UpperMarkGap:        40,
		LowerMarkGap:        40,

		MaximumCornerRadius:   15,
		CornerAnimationOption: CornerMaximumAtPartialY,
		StatusBarHeight:       20,

		HandleView: &HandleViewConfiguration{
			AutoAnimatesDimming: true,
			Width:               8,
		},
	}
}

// DrawerFullY is shorthand for the full anchor under this configuration.
func (c Configuration) DrawerFullY() float64 {
	return c.FullExpansionBehaviour.DrawerFullY(c.StatusBarHeight)
}
