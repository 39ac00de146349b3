package models

import (
	"errors"
	"fmt"
)

// Custom errors
var (
	ErrInsufficientData     = errors.New("insufficient data")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrNotFound             = errors.New("record not found")
	ErrDuplicateKey         = errors.New("duplicate key violation")
	ErrUnknownStage         = errors.New("unknown stage")
	ErrUnknownPosition      = errors.New("unknown position")
	ErrUnknownGameType      = errors.New("unknown game type")
)

// ErrEmptyDistribution signals a digit marginal that sums to zero and so
// cannot be normalized. It wraps ErrInsufficientData so callers may match
// either condition with errors.Is.
var ErrEmptyDistribution = fmt.Errorf("empty digit distribution: %w", ErrInsufficientData)
