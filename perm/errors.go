package perm

import (
	"errors"
	"fmt"
)

// MaxBits is the widest supported index domain.
const MaxBits = 32

// ErrInvalidConfig is matched (via errors.Is) by every ConfigError.
var ErrInvalidConfig = errors.New("perm: invalid configuration")

// A ConfigError describes a rejected construction parameter.
type ConfigError struct {
	Field  string
	Value  uint32
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("perm: invalid %s %d: %s", e.Field, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidConfig) hold for any ConfigError.
func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

func validate(rounds, bits uint32) error {
	switch {
	case bits == 0:
		return &ConfigError{Field: "bits", Value: bits, Reason: "domain must hold at least two indices"}
	case bits > MaxBits:
		return &ConfigError{Field: "bits", Value: bits, Reason: fmt.Sprintf("exceeds %d", MaxBits)}
	case bits%2 == 1 && rounds%2 == 1:
		return &ConfigError{Field: "rounds", Value: rounds, Reason: "odd bit widths need an even round count"}
	}
	return nil
}

// ValidateGroupSize checks that size is a usable group size for a domain of
// 2^bits indices: non-zero, and dividing the domain into whole groups.
func ValidateGroupSize(size, bits uint32) error {
	if size == 0 {
		return &ConfigError{Field: "group size", Value: size, Reason: "must be positive"}
	}
	if uint64(size) > uint64(1)<<bits || size&(size-1) != 0 {
		return &ConfigError{Field: "group size", Value: size, Reason: fmt.Sprintf("does not divide 2^%d", bits)}
	}
	return nil
}
