// SPDX-License-Identifier: MIT

package entropy

import (
	"errors"
	"fmt"
)

var (
	// ErrNilDataset is returned when NewEstimator receives a nil dataset.
	ErrNilDataset = errors.New("entropy: dataset is nil")

	// ErrUnknownVariable indicates a variable name that is not a dataset column.
	ErrUnknownVariable = errors.New("entropy: unknown variable")

	// ErrEmptySet indicates an empty x or y argument.
	ErrEmptySet = errors.New("entropy: variable set is empty")

	// ErrOverlap indicates the argument sets share a variable.
	ErrOverlap = errors.New("entropy: variable sets overlap")

	// ErrInsufficientSamples indicates too few samples to estimate a
	// conditional quantity reliably.
	ErrInsufficientSamples = errors.New("entropy: insufficient samples for conditioning set")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("entropy: invalid option supplied")
)

// Option configures an Estimator.
type Option func(*Options)

// Options holds Estimator parameters.
type Options struct {
	// Cache memoizes joint entropies keyed by the sorted variable set.
	Cache bool

	// MinSamplesPerConfig, if positive, requires at least that many samples
	// per configuration of the conditioning set. Zero disables the check.
	MinSamplesPerConfig int

	err error
}

// DefaultOptions returns Options with caching off and no sample-size check.
func DefaultOptions() Options {
	return Options{Cache: false, MinSamplesPerConfig: 0}
}

// WithCache enables memoization of joint entropies.
func WithCache() Option {
	return func(o *Options) {
		o.Cache = true
	}
}

// WithMinSamplesPerConfig sets the sample-size guard for conditioning sets.
// Negative values are recorded and surfaced as ErrOptionViolation.
func WithMinSamplesPerConfig(k int) Option {
	return func(o *Options) {
		if k < 0 {
			o.err = fmt.Errorf("%w: MinSamplesPerConfig=%d must be >= 0", ErrOptionViolation, k)
			return
		}
		o.MinSamplesPerConfig = k
	}
}

// CacheStats reports memoization effectiveness.
type CacheStats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}
