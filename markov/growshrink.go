// SPDX-License-Identifier: MIT

package markov

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// GrowShrink is the Markov Blanket discovery engine. It holds an immutable
// variable list, an independence oracle and the threshold alpha, all fixed at
// construction. A GrowShrink is safe for concurrent use as long as its
// Oracle and Tracer are.
type GrowShrink struct {
	vars   []string       // candidate iteration order
	index  map[string]int // name → position in vars
	oracle Oracle
	alpha  float64
	opts   Options
}

// NewGrowShrink builds an engine over vars (dataset column order), querying
// oracle and comparing against alpha.
//
// Errors: ErrNoVariables, ErrEmptyVariable, ErrDuplicateVariable,
// ErrNilOracle, ErrBadAlpha, ErrOptionViolation.
func NewGrowShrink(vars []string, oracle Oracle, alpha float64, opts ...Option) (*GrowShrink, error) {
	if len(vars) == 0 {
		return nil, ErrNoVariables
	}
	index := make(map[string]int, len(vars))
	for i, v := range vars {
		if v == "" {
			return nil, fmt.Errorf("position %d: %w", i, ErrEmptyVariable)
		}
		if _, dup := index[v]; dup {
			return nil, fmt.Errorf("%q: %w", v, ErrDuplicateVariable)
		}
		index[v] = i
	}
	if oracle == nil {
		return nil, ErrNilOracle
	}
	if !(alpha > 0) || math.IsInf(alpha, 0) {
		return nil, fmt.Errorf("alpha=%v: %w", alpha, ErrBadAlpha)
	}

	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if o.Concurrency > 1 {
		o.Tracer = &lockedTracer{tr: o.Tracer}
	}

	return &GrowShrink{
		vars:   append([]string(nil), vars...),
		index:  index,
		oracle: oracle,
		alpha:  alpha,
		opts:   o,
	}, nil
}

// Alpha returns the significance threshold.
func (gs *GrowShrink) Alpha() float64 { return gs.alpha }

// Variables returns a copy of the variables in iteration order.
func (gs *GrowShrink) Variables() []string { return append([]string(nil), gs.vars...) }

// DiscoverBlankets finds the Markov Blanket of each target, or of every
// variable when no target is given. Targets are validated up front; an
// unknown one fails with ErrUnknownVariable before any oracle call. Repeated
// targets are discovered once.
//
// The result is a fresh mapping holding exactly the requested targets.
// On any failure no mapping is returned.
func (gs *GrowShrink) DiscoverBlankets(targets ...string) (Blankets, error) {
	if len(targets) == 0 {
		targets = gs.vars
	}
	seen := make(map[string]struct{}, len(targets))
	list := make([]string, 0, len(targets))
	for _, t := range targets {
		if _, ok := gs.index[t]; !ok {
			return nil, fmt.Errorf("%q: %w", t, ErrUnknownVariable)
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		list = append(list, t)
	}

	gs.opts.Tracer.Start(gs.alpha, append([]string(nil), list...))

	found := make([][]string, len(list))
	if gs.opts.Concurrency <= 1 {
		for i, t := range list {
			mb, _, err := gs.discover(gs.opts.Ctx, t)
			if err != nil {
				return nil, err
			}
			found[i] = mb
		}
	} else {
		eg, ctx := errgroup.WithContext(gs.opts.Ctx)
		eg.SetLimit(gs.opts.Concurrency)
		for i, t := range list {
			i, t := i, t
			eg.Go(func() error {
				mb, _, err := gs.discover(ctx, t)
				if err != nil {
					return err
				}
				found[i] = mb // each goroutine owns its slot
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	}

	out := make(Blankets, len(list))
	for i, t := range list {
		out[t] = found[i]
	}

	return out, nil
}

// Discover runs Grow from an empty blanket and then Shrink for one target,
// returning the blanket and per-phase stats.
func (gs *GrowShrink) Discover(target string) ([]string, Stats, error) {
	if _, ok := gs.index[target]; !ok {
		return nil, Stats{}, fmt.Errorf("%q: %w", target, ErrUnknownVariable)
	}

	return gs.discover(gs.opts.Ctx, target)
}

// Grow runs the grow phase for target starting from mb (nil for empty) and
// returns the grown blanket. mb is not modified.
func (gs *GrowShrink) Grow(target string, mb []string) ([]string, PhaseStats, error) {
	seed, err := gs.seed(target, mb)
	if err != nil {
		return nil, PhaseStats{}, err
	}

	return gs.phase(gs.opts.Ctx, target, PhaseGrow, seed)
}

// Shrink runs the shrink phase for target starting from mb and returns the
// shrunk blanket. mb is not modified.
func (gs *GrowShrink) Shrink(target string, mb []string) ([]string, PhaseStats, error) {
	seed, err := gs.seed(target, mb)
	if err != nil {
		return nil, PhaseStats{}, err
	}

	return gs.phase(gs.opts.Ctx, target, PhaseShrink, seed)
}

// seed validates target and copies a caller supplied blanket.
func (gs *GrowShrink) seed(target string, mb []string) ([]string, error) {
	if _, ok := gs.index[target]; !ok {
		return nil, fmt.Errorf("%q: %w", target, ErrUnknownVariable)
	}
	seen := make(map[string]struct{}, len(mb))
	for _, v := range mb {
		if v == target {
			return nil, fmt.Errorf("%q contains its target: %w", target, ErrInvalidBlanket)
		}
		if _, ok := gs.index[v]; !ok {
			return nil, fmt.Errorf("member %q: %w", v, ErrInvalidBlanket)
		}
		if _, dup := seen[v]; dup {
			return nil, fmt.Errorf("member %q repeated: %w", v, ErrInvalidBlanket)
		}
		seen[v] = struct{}{}
	}

	return append([]string{}, mb...), nil
}

func (gs *GrowShrink) discover(ctx context.Context, target string) ([]string, Stats, error) {
	var st Stats
	mb, gst, err := gs.phase(ctx, target, PhaseGrow, []string{})
	if err != nil {
		return nil, st, err
	}
	st.Grow = gst

	mb, sst, err := gs.phase(ctx, target, PhaseShrink, mb)
	if err != nil {
		return nil, st, err
	}
	st.Shrink = sst

	return mb, st, nil
}

// phase runs one phase to its fixed point, framed by PhaseStart/PhaseEnd.
func (gs *GrowShrink) phase(ctx context.Context, target string, p Phase, mb []string) ([]string, PhaseStats, error) {
	w := &walker{gs: gs, ctx: ctx, target: target, mb: mb}
	gs.opts.Tracer.PhaseStart(target, p, w.snapshot())

	var err error
	switch {
	case p == PhaseGrow && gs.opts.BatchRounds:
		err = w.growBatch()
	case p == PhaseGrow:
		err = w.grow()
	case gs.opts.BatchRounds:
		err = w.shrinkBatch()
	default:
		err = w.shrink()
	}
	if err != nil {
		return nil, w.st, err
	}

	gs.opts.Tracer.PhaseEnd(target, p, w.snapshot(), w.st)

	return w.mb, w.st, nil
}
