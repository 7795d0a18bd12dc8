package drawer

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which variant of State is held.
type Kind int

const (
	Collapsed Kind = iota
	PartiallyExpanded
	FullyExpanded
	Dismissed
	Transitioning
)

func (k Kind) String() string {
	switch k {
	case Collapsed:
		return "collapsed"
	case PartiallyExpanded:
		return "partiallyExpanded"
	case FullyExpanded:
		return "fullyExpanded"
	case Dismissed:
		return "dismissed"
	case Transitioning:
		return "transitioning"
	default:
		return "unknown"
	}
}

// State is the drawer state. Only the Transitioning kind carries a position.
type State struct {
	Kind      Kind
	PositionY float64
}

// Discrete drawer states.
//
//nolint:gochecknoglobals // Immutable state values.
var (
	StateCollapsed         = State{Kind: Collapsed}
	StatePartiallyExpanded = State{Kind: PartiallyExpanded}
	StateFullyExpanded     = State{Kind: FullyExpanded}
	StateDismissed         = State{Kind: Dismissed}
)

// TransitioningAt returns the in-flight state at y.
func TransitioningAt(y float64) State {
	return State{Kind: Transitioning, PositionY: y}
}

// IsTransitioning reports whether s is the in-flight variant.
func (s State) IsTransitioning() bool { return s.Kind == Transitioning }

// Equal compares kinds, and positions only for the transitioning variant.
func (s State) Equal(o State) bool {
	if s.Kind != o.Kind {
		return false
	}
	if s.Kind == Transitioning {
		return s.PositionY == o.PositionY
	}
	return true
}

func (s State) String() string {
	if s.Kind == Transitioning {
		return fmt.Sprintf("transitioning(%s)", strconv.FormatFloat(s.PositionY, 'f', -1, 64))
	}
	return s.Kind.String()
}

// ParseState parses one of the four discrete state names. Matching is case
// insensitive and accepts "partial" and "full" as short forms.
func ParseState(name string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "collapsed":
		return StateCollapsed, nil
	case "partiallyexpanded", "partial":
		return StatePartiallyExpanded, nil
	case "fullyexpanded", "full":
		return StateFullyExpanded, nil
	case "dismissed":
		return StateDismissed, nil
	default:
		return State{}, fmt.Errorf("unknown drawer state %q", name)
	}
}
