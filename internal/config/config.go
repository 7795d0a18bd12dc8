package config

import (
	"fmt"
	"time"

	"github.com/ensigniasec/drawerkit/internal/drawer"
	"github.com/ensigniasec/drawerkit/internal/validate"
)

// DefaultPath is where the demo looks for its configuration.
const DefaultPath = "~/.drawerkit/config.yaml"

// File is the on-disk form of a drawer configuration. Enums and durations are
// stored as strings so the same struct serves YAML, TOML and JSON.
type File struct {
	Timing     Timing     `yaml:"timing" toml:"timing" json:"timing"`
	Expansion  Expansion  `yaml:"expansion" toml:"expansion" json:"expansion"`
	Taps       Taps       `yaml:"taps" toml:"taps" json:"taps"`
	Corners    Corners    `yaml:"corners" toml:"corners" json:"corners"`
	Handle     Handle     `yaml:"handle" toml:"handle" json:"handle"`
	Background Background `yaml:"background" toml:"background" json:"background"`
	Border     Border     `yaml:"border" toml:"border" json:"border"`
	Debug      Debug      `yaml:"debug" toml:"debug" json:"debug"`
	Demo       Demo       `yaml:"demo" toml:"demo" json:"demo"`
}

type Timing struct {
	TotalDuration   string  `yaml:"total_duration" toml:"total_duration" json:"total_duration" validate:"required,positive_duration"`
	MinimumDuration string  `yaml:"minimum_duration" toml:"minimum_duration" json:"minimum_duration" validate:"omitempty,duration"`
	Proportional    bool    `yaml:"proportional_to_distance" toml:"proportional_to_distance" json:"proportional_to_distance"`
	Curve           string  `yaml:"curve" toml:"curve" json:"curve" validate:"required,timing_curve"`
	SpringFrequency float64 `yaml:"spring_frequency" toml:"spring_frequency" json:"spring_frequency" validate:"gte=0"`
	SpringDamping   float64 `yaml:"spring_damping" toml:"spring_damping" json:"spring_damping" validate:"gte=0"`
}

type Expansion struct {
	FullExpansion       string  `yaml:"full_expansion" toml:"full_expansion" json:"full_expansion" validate:"required,expansion_behaviour"`
	CustomGap           float64 `yaml:"custom_gap" toml:"custom_gap" json:"custom_gap" validate:"gte=0"`
	StatusBarHeight     float64 `yaml:"status_bar_height" toml:"status_bar_height" json:"status_bar_height" validate:"gte=0"`
	SupportsPartial     bool    `yaml:"supports_partial" toml:"supports_partial" json:"supports_partial"`
	DismissesInStages   bool    `yaml:"dismisses_in_stages" toml:"dismisses_in_stages" json:"dismisses_in_stages"`
	Draggable           bool    `yaml:"draggable" toml:"draggable" json:"draggable"`
	FlickSpeedThreshold float64 `yaml:"flick_speed_threshold" toml:"flick_speed_threshold" json:"flick_speed_threshold" validate:"gte=0"`
}

type Taps struct {
	DrawerTapsExpand       bool `yaml:"drawer_taps_expand" toml:"drawer_taps_expand" json:"drawer_taps_expand"`
	DrawerTapCount         int  `yaml:"drawer_tap_count" toml:"drawer_tap_count" json:"drawer_tap_count" validate:"gte=0"`
	OutsideTapsDismiss     bool `yaml:"outside_taps_dismiss" toml:"outside_taps_dismiss" json:"outside_taps_dismiss"`
	OutsideTapCount        int  `yaml:"outside_tap_count" toml:"outside_tap_count" json:"outside_tap_count" validate:"gte=0"`
	HandleTapsDismiss      bool `yaml:"handle_taps_dismiss" toml:"handle_taps_dismiss" json:"handle_taps_dismiss"`
	HandleTapCount         int  `yaml:"handle_tap_count" toml:"handle_tap_count" json:"handle_tap_count" validate:"gte=0"`
	MultiTapIntervalMillis int  `yaml:"multi_tap_interval_ms" toml:"multi_tap_interval_ms" json:"multi_tap_interval_ms" validate:"gte=0"`
}

type Corners struct {
	MaximumRadius float64 `yaml:"maximum_radius" toml:"maximum_radius" json:"maximum_radius" validate:"gte=0"`
	Animation     string  `yaml:"animation" toml:"animation" json:"animation" validate:"required,corner_option"`
}

type Handle struct {
	AutoAnimatesDimming bool   `yaml:"auto_animates_dimming" toml:"auto_animates_dimming" json:"auto_animates_dimming"`
	OpeningImage        string `yaml:"opening_image" toml:"opening_image" json:"opening_image"`
	ClosingImage        string `yaml:"closing_image" toml:"closing_image" json:"closing_image"`
	Width               int    `yaml:"width" toml:"width" json:"width" validate:"gte=0"`
	Top                 int    `yaml:"top" toml:"top" json:"top" validate:"gte=0"`
}

type Background struct {
	Color       string `yaml:"color" toml:"color" json:"color"`
	BlurEnabled bool   `yaml:"blur_enabled" toml:"blur_enabled" json:"blur_enabled"`
}

type Border struct {
	Thickness int    `yaml:"thickness" toml:"thickness" json:"thickness" validate:"gte=0"`
	Color     string `yaml:"color" toml:"color" json:"color"`
}

type Debug struct {
	Enabled      bool    `yaml:"enabled" toml:"enabled" json:"enabled"`
	UpperMarkGap float64 `yaml:"upper_mark_gap" toml:"upper_mark_gap" json:"upper_mark_gap" validate:"gte=0"`
	LowerMarkGap float64 `yaml:"lower_mark_gap" toml:"lower_mark_gap" json:"lower_mark_gap" validate:"gte=0"`
}

// Demo holds settings for the terminal demo that are not part of the drawer itself.
type Demo struct {
	CollapsedHeight float64 `yaml:"collapsed_height" toml:"collapsed_height" json:"collapsed_height" validate:"gte=0"`
	PartialHeight   float64 `yaml:"partial_height" toml:"partial_height" json:"partial_height" validate:"gte=0"`
	InitialState    string  `yaml:"initial_state,omitempty" toml:"initial_state,omitempty" json:"initial_state,omitempty" validate:"omitempty,drawer_state"`
	FPS             int     `yaml:"fps" toml:"fps" json:"fps" validate:"gte=0,lte=240"`
}

// Default returns the stock drawer behaviour scaled for a terminal, where one
// unit is one row.
func Default() *File {
	cfg := drawer.DefaultConfiguration()
	cfg.StatusBarHeight = 1
	cfg.UpperMarkGap = 3
	cfg.LowerMarkGap = 3
	cfg.MaximumCornerRadius = 4
	cfg.HandleView.Width = 6
	cfg.BackgroundView = &drawer.BackgroundViewConfiguration{Color: "236"}
	cfg.Border = &drawer.BorderConfiguration{Thickness: 1, Color: "63"}

	f := FromConfiguration(cfg)
	f.Taps.MultiTapIntervalMillis = 400
	f.Demo = Demo{CollapsedHeight: 4, PartialHeight: 12, FPS: 60}
	return f
}

// FromConfiguration converts a drawer configuration to its file form.
func FromConfiguration(cfg drawer.Configuration) *File {
	f := &File{
		Timing: Timing{
			TotalDuration:   cfg.TotalDuration.String(),
			MinimumDuration: cfg.MinimumDuration.String(),
			Proportional:    cfg.DurationIsProportionalToDistanceTraveled,
			Curve:           cfg.TimingCurve.Kind.String(),
			SpringFrequency: cfg.TimingCurve.Frequency,
			SpringDamping:   cfg.TimingCurve.Damping,
		},
		Expansion: Expansion{
			FullExpansion:       cfg.FullExpansionBehaviour.Kind.String(),
			CustomGap:           cfg.FullExpansionBehaviour.Gap,
			StatusBarHeight:     cfg.StatusBarHeight,
			SupportsPartial:     cfg.SupportsPartialExpansion,
			DismissesInStages:   cfg.DismissesInStages,
			Draggable:           cfg.IsDrawerDraggable,
			FlickSpeedThreshold: cfg.FlickSpeedThreshold,
		},
		Taps: Taps{
			DrawerTapsExpand:   cfg.IsFullyPresentableByDrawerTaps,
			DrawerTapCount:     cfg.NumberOfTapsForFullDrawerPresentation,
			OutsideTapsDismiss: cfg.IsDismissableByOutsideDrawerTaps,
			OutsideTapCount:    cfg.NumberOfTapsForOutsideDrawerDismissal,
			HandleTapsDismiss:  cfg.IsDismissableByHandleViewTaps,
			HandleTapCount:     cfg.NumberOfTapsForHandleViewDismissal,
		},
		Corners: Corners{
			MaximumRadius: cfg.MaximumCornerRadius,
			Animation:     cfg.CornerAnimationOption.String(),
		},
		Debug: Debug{
			Enabled:      cfg.InDebugMode,
			UpperMarkGap: cfg.UpperMarkGap,
			LowerMarkGap: cfg.LowerMarkGap,
		},
	}
	if h := cfg.HandleView; h != nil {
		f.Handle = Handle{
			AutoAnimatesDimming: h.AutoAnimatesDimming,
			OpeningImage:        h.OpeningImage,
			ClosingImage:        h.ClosingImage,
			Width:               h.Width,
			Top:                 h.Top,
		}
	}
	if b := cfg.BackgroundView; b != nil {
		f.Background = Background{Color: b.Color, BlurEnabled: b.IsBlurEnabled}
	}
	if b := cfg.Border; b != nil {
		f.Border = Border{Thickness: b.Thickness, Color: b.Color}
	}
	return f
}

// Validate checks field constraints. Failures wrap ErrInvalid.
func (f *File) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// ToConfiguration validates f and converts it to a drawer configuration.
func (f *File) ToConfiguration() (drawer.Configuration, error) {
	if err := f.Validate(); err != nil {
		return drawer.Configuration{}, err
	}

	total, err := time.ParseDuration(f.Timing.TotalDuration)
	if err != nil {
		return drawer.Configuration{}, fmt.Errorf("%w: total_duration: %w", ErrInvalid, err)
	}
	var minimum time.Duration
	if f.Timing.MinimumDuration != "" {
		if minimum, err = time.ParseDuration(f.Timing.MinimumDuration); err != nil {
			return drawer.Configuration{}, fmt.Errorf("%w: minimum_duration: %w", ErrInvalid, err)
		}
	}
	curve, err := drawer.ParseCurveKind(f.Timing.Curve)
	if err != nil {
		return drawer.Configuration{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	expansion, err := drawer.ParseExpansionKind(f.Expansion.FullExpansion)
	if err != nil {
		return drawer.Configuration{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	corners, err := drawer.ParseCornerAnimationOption(f.Corners.Animation)
	if err != nil {
		return drawer.Configuration{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return drawer.Configuration{
		TotalDuration:                            total,
		MinimumDuration:                          minimum,
		DurationIsProportionalToDistanceTraveled: f.Timing.Proportional,
		TimingCurve: drawer.TimingCurve{
			Kind:      curve,
			Frequency: f.Timing.SpringFrequency,
			Damping:   f.Timing.SpringDamping,
		},

		FullExpansionBehaviour:   drawer.FullExpansionBehaviour{Kind: expansion, Gap: f.Expansion.CustomGap},
		SupportsPartialExpansion: f.Expansion.SupportsPartial,
		DismissesInStages:        f.Expansion.DismissesInStages,
		IsDrawerDraggable:        f.Expansion.Draggable,
		FlickSpeedThreshold:      f.Expansion.FlickSpeedThreshold,
		StatusBarHeight:          f.Expansion.StatusBarHeight,

		IsFullyPresentableByDrawerTaps:        f.Taps.DrawerTapsExpand,
		NumberOfTapsForFullDrawerPresentation: f.Taps.DrawerTapCount,
		IsDismissableByOutsideDrawerTaps:      f.Taps.OutsideTapsDismiss,
		NumberOfTapsForOutsideDrawerDismissal: f.Taps.OutsideTapCount,
		IsDismissableByHandleViewTaps:         f.Taps.HandleTapsDismiss,
		NumberOfTapsForHandleViewDismissal:    f.Taps.HandleTapCount,

		UpperMarkGap: f.Debug.UpperMarkGap,
		LowerMarkGap: f.Debug.LowerMarkGap,
		InDebugMode:  f.Debug.Enabled,

		MaximumCornerRadius:   f.Corners.MaximumRadius,
		CornerAnimationOption: corners,

		HandleView: &drawer.HandleViewConfiguration{
			AutoAnimatesDimming: f.Handle.AutoAnimatesDimming,
			OpeningImage:        f.Handle.OpeningImage,
			ClosingImage:        f.Handle.ClosingImage,
			Width:               f.Handle.Width,
			Top:                 f.Handle.Top,
		},
		BackgroundView: &drawer.BackgroundViewConfiguration{
			Color:         f.Background.Color,
			IsBlurEnabled: f.Background.BlurEnabled,
		},
		Border: &drawer.BorderConfiguration{
			Thickness: f.Border.Thickness,
			Color:     f.Border.Color,
		},
	}, nil
}

// InitialState is the state the demo settles into after presenting, if configured.
func (f *File) InitialState() (drawer.State, bool) {
	if f.Demo.InitialState == "" {
		return drawer.State{}, false
	}
	s, err := drawer.ParseState(f.Demo.InitialState)
	if err != nil {
		return drawer.State{}, false
	}
	return s, true
}

// MultiTapInterval is the window in which successive clicks count as one multi-tap.
func (f *File) MultiTapInterval() time.Duration {
	return time.Duration(f.Taps.MultiTapIntervalMillis) * time.Millisecond
}
