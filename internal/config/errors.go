package config

import (
	"errors"
	"fmt"
)

// Sentinel errors for configuration files.
var (
	ErrUnknownFormat = errors.New("unknown config file format")
	ErrInvalid       = errors.New("invalid configuration")
	ErrTooLarge      = errors.New("config file too large")
)

// KeyCollisionError reports two JSON keys that differ only by letter case.
type KeyCollisionError struct {
	Path  string
	Key   string
	Other string
}

func (e KeyCollisionError) Error() string {
	return fmt.Sprintf("case-insensitive key collision at '%s': '%s' and '%s'", e.Path, e.Key, e.Other)
}
