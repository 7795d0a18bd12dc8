package validate

// This package adds struct and field validation as a thin wrapper around the go-playground/validator package.
//
// e.g. internal/config/config.go
//   type Timing struct {
//       TotalDuration string `yaml:"total_duration" validate:"required,positive_duration"`
//       Curve         string `yaml:"curve" validate:"timing_curve"`
//   }
//
// Custom tags:
//   drawer_state         one of the four discrete drawer states
//   corner_option        a drawer.CornerAnimationOption name
//   timing_curve         a drawer.CurveKind name
//   expansion_behaviour  a drawer.ExpansionKind name
//   positive_duration    a time.ParseDuration string greater than zero
//   duration             any time.ParseDuration string

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ensigniasec/drawerkit/internal/drawer"
)

// validatorInstance is a shared validator for the application.
// It is initialized once and reused to avoid repeated allocations.
//
//nolint:gochecknoglobals // Shared validator singleton.
var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

// get returns a process-wide singleton of the validator.
func get() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		mustRegister(v, "drawer_state", parses(func(s string) error { _, err := drawer.ParseState(s); return err }))
		mustRegister(v, "corner_option", parses(func(s string) error { _, err := drawer.ParseCornerAnimationOption(s); return err }))
		mustRegister(v, "timing_curve", parses(func(s string) error { _, err := drawer.ParseCurveKind(s); return err }))
		mustRegister(v, "expansion_behaviour", parses(func(s string) error { _, err := drawer.ParseExpansionKind(s); return err }))
		mustRegister(v, "duration", parses(func(s string) error { _, err := time.ParseDuration(s); return err }))
		mustRegister(v, "positive_duration", positiveDuration)
		validatorInst = v
	})
	return validatorInst
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// parses adapts a string parser to a validator.Func.
func parses(parse func(string) error) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return parse(fl.Field().String()) == nil
	}
}

func positiveDuration(fl validator.FieldLevel) bool {
	d, err := time.ParseDuration(fl.Field().String())
	return err == nil && d > 0
}

// Struct validates a struct using the shared validator instance.
func Struct(v any) error {
	return get().Struct(v)
}

// Var validates a single variable against the provided tag constraints.
func Var(field any, tag string) error {
	return get().Var(field, tag)
}
