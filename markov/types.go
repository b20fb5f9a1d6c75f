// SPDX-License-Identifier: MIT

package markov

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors for Markov Blanket discovery.
var (
	// ErrNilOracle is returned when NewGrowShrink receives a nil oracle.
	ErrNilOracle = errors.New("markov: oracle is nil")

	// ErrNoVariables is returned when NewGrowShrink receives no variables.
	ErrNoVariables = errors.New("markov: no variables")

	// ErrEmptyVariable indicates an empty variable name.
	ErrEmptyVariable = errors.New("markov: variable name is empty")

	// ErrDuplicateVariable indicates a variable listed twice.
	ErrDuplicateVariable = errors.New("markov: duplicate variable")

	// ErrBadAlpha indicates a threshold that is not a positive finite number.
	ErrBadAlpha = errors.New("markov: alpha must be positive and finite")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("markov: invalid option supplied")

	// ErrUnknownVariable indicates a requested target that is not a variable.
	ErrUnknownVariable = errors.New("markov: unknown variable")

	// ErrInvalidBlanket indicates a seed blanket containing the target,
	// an unknown variable or a duplicate.
	ErrInvalidBlanket = errors.New("markov: invalid blanket")

	// ErrOracle wraps any failure of the independence oracle.
	ErrOracle = errors.New("markov: oracle failure")

	// ErrBadCMI indicates the oracle answered with a negative or NaN value.
	ErrBadCMI = errors.New("markov: oracle returned negative or NaN CMI")
)

// Oracle answers conditional independence queries with a conditional mutual
// information estimate I(x; y | z) ≥ 0. z may be empty. Implementations must
// be deterministic, and safe for concurrent use when WithConcurrency > 1.
type Oracle interface {
	CondMutualInfo(x, y, z []string) (float64, error)
}

// OracleFunc adapts a plain function to Oracle.
type OracleFunc func(x, y, z []string) (float64, error)

// CondMutualInfo calls f(x, y, z).
func (f OracleFunc) CondMutualInfo(x, y, z []string) (float64, error) { return f(x, y, z) }

// Phase identifies a GS phase in traces and stats.
type Phase int

const (
	// PhaseGrow admits dependent candidates.
	PhaseGrow Phase = iota
	// PhaseShrink evicts redundant members.
	PhaseShrink
)

// String returns "grow" or "shrink".
func (p Phase) String() string {
	switch p {
	case PhaseGrow:
		return "grow"
	case PhaseShrink:
		return "shrink"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// PhaseStats counts the work of one phase for one target.
type PhaseStats struct {
	// Rounds is the number of passes, including the final pass that changed nothing.
	Rounds int
	// Checks is the number of oracle queries.
	Checks int
	// Changes is the number of additions (grow) or removals (shrink).
	Changes int
}

// Stats aggregates both phases of one target.
type Stats struct {
	Grow   PhaseStats
	Shrink PhaseStats
}

// Blankets maps each target to its discovered Markov Blanket. Members appear
// in admission order and never repeat; the order carries no meaning.
type Blankets map[string][]string

// Contains reports whether v is in the blanket of target.
func (b Blankets) Contains(target, v string) bool {
	for _, m := range b[target] {
		if m == v {
			return true
		}
	}

	return false
}

// Targets returns the targets in lexicographic order.
func (b Blankets) Targets() []string {
	out := make([]string, 0, len(b))
	for t := range b {
		out = append(out, t)
	}
	sort.Strings(out)

	return out
}

// Sorted returns a copy whose member lists are sorted, for stable output.
func (b Blankets) Sorted() Blankets {
	out := make(Blankets, len(b))
	for t, mb := range b {
		s := append([]string{}, mb...)
		sort.Strings(s)
		out[t] = s
	}

	return out
}

// Option configures a GrowShrink engine.
// Invalid values are recorded and surfaced as ErrOptionViolation by NewGrowShrink.
type Option func(*Options)

// Options holds engine parameters.
type Options struct {
	// Ctx allows a caller-level timeout or cancellation; checked before every
	// oracle call. Defaults to context.Background().
	Ctx context.Context

	// Tracer receives diagnostic events. Defaults to NopTracer.
	Tracer Tracer

	// Concurrency is the number of targets processed at once. Checks within
	// one target are always sequential. Default 1.
	Concurrency int

	// BatchRounds freezes the conditioning set for a whole pass and applies
	// qualifying changes at the end of the pass. Default false.
	BatchRounds bool

	err error
}

// DefaultOptions returns Options with:
//   - Background context
//   - NopTracer
//   - Concurrency 1
//   - sequential (in-place) rounds
func DefaultOptions() Options {
	return Options{
		Ctx:         context.Background(),
		Tracer:      NopTracer{},
		Concurrency: 1,
		BatchRounds: false,
	}
}

// WithContext sets the context checked between oracle calls.
// A nil context is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithTracer installs a diagnostic sink. A nil tracer restores NopTracer.
func WithTracer(tr Tracer) Option {
	return func(o *Options) {
		if tr == nil {
			tr = NopTracer{}
		}
		o.Tracer = tr
	}
}

// WithConcurrency processes up to n targets concurrently. n must be >= 1.
func WithConcurrency(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: concurrency=%d must be >= 1", ErrOptionViolation, n)
			return
		}
		o.Concurrency = n
	}
}

// WithBatchRounds enables per-pass batch updates instead of in-place ones.
func WithBatchRounds() Option {
	return func(o *Options) {
		o.BatchRounds = true
	}
}

// DefaultAlpha returns 5/n, a threshold a few times above the ≈1/n error of
// a plug-in entropy over n samples. It returns 0 (rejected by NewGrowShrink)
// for n <= 0.
func DefaultAlpha(n int) float64 {
	if n <= 0 {
		return 0
	}

	return 5 / float64(n)
}
