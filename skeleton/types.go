// SPDX-License-Identifier: MIT

package skeleton

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/mblearn/bnet"
)

var (
	// ErrNilOracle is returned when Learn receives a nil oracle.
	ErrNilOracle = errors.New("skeleton: oracle is nil")

	// ErrNoVariables is returned when Learn receives no variables.
	ErrNoVariables = errors.New("skeleton: no variables")

	// ErrUnknownVariable indicates a blanket key or member that is not a variable.
	ErrUnknownVariable = errors.New("skeleton: unknown variable")

	// ErrSelfMember indicates a blanket that lists its own target.
	ErrSelfMember = errors.New("skeleton: blanket contains its own target")

	// ErrDuplicateVariable indicates a variable listed twice.
	ErrDuplicateVariable = errors.New("skeleton: duplicate variable")

	// ErrBadAlpha indicates a threshold that is not a positive finite number.
	ErrBadAlpha = errors.New("skeleton: alpha must be positive and finite")

	// ErrOracle wraps any failure of the independence oracle.
	ErrOracle = errors.New("skeleton: oracle failure")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("skeleton: invalid option supplied")
)

// Policy selects how two blankets must agree before x–y becomes a candidate.
type Policy int

const (
	// Symmetric requires y ∈ MB(x) and x ∈ MB(y).
	Symmetric Policy = iota
	// Union requires y ∈ MB(x) or x ∈ MB(y).
	Union
)

// String returns "symmetric" or "union".
func (p Policy) String() string {
	switch p {
	case Symmetric:
		return "symmetric"
	case Union:
		return "union"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy maps "symmetric" and "union" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "symmetric", "":
		return Symmetric, nil
	case "union":
		return Union, nil
	default:
		return 0, fmt.Errorf("%w: unknown policy %q", ErrOptionViolation, s)
	}
}

// Option configures Learn.
type Option func(*Options)

// Options holds Learn parameters.
type Options struct {
	// Policy is the neighbor-consistency rule. Default Symmetric.
	Policy Policy

	// MaxCondSize bounds the size of tried separating sets; -1 means no bound.
	MaxCondSize int

	// States, if set, is attached to the graph nodes (column → state names).
	States map[string][]string

	err error
}

// DefaultOptions returns Symmetric policy, unbounded separating sets and no states.
func DefaultOptions() Options {
	return Options{Policy: Symmetric, MaxCondSize: -1}
}

// WithPolicy sets the neighbor-consistency rule.
func WithPolicy(p Policy) Option {
	return func(o *Options) {
		if p != Symmetric && p != Union {
			o.err = fmt.Errorf("%w: policy=%d", ErrOptionViolation, int(p))
			return
		}
		o.Policy = p
	}
}

// WithMaxCondSize bounds separating-set size; n must be >= 0.
func WithMaxCondSize(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxCondSize=%d must be >= 0", ErrOptionViolation, n)
			return
		}
		o.MaxCondSize = n
	}
}

// WithStates attaches state names to the graph nodes.
func WithStates(states map[string][]string) Option {
	return func(o *Options) {
		o.States = states
	}
}

// Result reports how the skeleton was derived.
type Result struct {
	// SepSets maps a pruned candidate pair to the set that separated it.
	SepSets map[bnet.Edge][]string

	// Asymmetric lists pairs named by only one of the two blankets.
	Asymmetric []bnet.Edge

	// Checks counts oracle queries.
	Checks int
}
