// SPDX-License-Identifier: MIT

package markov

import (
	"context"
	"fmt"
	"math"
)

// walker owns the working blanket of one target during one phase.
// mb is mutated in place; member tracks it for O(1) membership tests.
type walker struct {
	gs     *GrowShrink
	ctx    context.Context
	target string
	mb     []string
	member map[string]bool
	st     PhaseStats
}

func (w *walker) init() {
	w.member = make(map[string]bool, len(w.gs.vars))
	for _, v := range w.mb {
		w.member[v] = true
	}
}

// snapshot returns a copy of the working blanket.
func (w *walker) snapshot() []string {
	return append([]string{}, w.mb...)
}

// without returns a copy of the working blanket minus y.
func (w *walker) without(y string) []string {
	out := make([]string, 0, len(w.mb))
	for _, v := range w.mb {
		if v != y {
			out = append(out, v)
		}
	}

	return out
}

// full reports whether every other variable is already a member.
func (w *walker) full() bool { return len(w.mb) >= len(w.gs.vars)-1 }

// grow: candidates in column order, each checked against the blanket as it
// stands at that moment. Additions take effect immediately.
func (w *walker) grow() error {
	w.init()
	for !w.full() {
		w.st.Rounds++
		progressed := false
		for _, y := range w.gs.vars {
			if y == w.target || w.member[y] {
				continue
			}
			cmi, err := w.query(PhaseGrow, y, w.mb)
			if err != nil {
				return err
			}
			if cmi > w.gs.alpha {
				w.add(y, cmi)
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}

	return nil
}

// shrink: members of the round-start blanket in admission order, each checked
// against the blanket minus itself as it stands at that moment. Removals take
// effect immediately.
func (w *walker) shrink() error {
	w.init()
	for len(w.mb) > 0 {
		w.st.Rounds++
		progressed := false
		for _, y := range w.snapshot() {
			if !w.member[y] {
				continue
			}
			cmi, err := w.query(PhaseShrink, y, w.without(y))
			if err != nil {
				return err
			}
			if cmi < w.gs.alpha {
				w.remove(y, cmi)
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}

	return nil
}

// growBatch freezes the conditioning set for a pass and admits every
// qualifying candidate at the end of it.
func (w *walker) growBatch() error {
	w.init()
	for !w.full() {
		w.st.Rounds++
		cond := w.snapshot()
		var admit []string
		var scores []float64
		for _, y := range w.gs.vars {
			if y == w.target || w.member[y] {
				continue
			}
			cmi, err := w.query(PhaseGrow, y, cond)
			if err != nil {
				return err
			}
			if cmi > w.gs.alpha {
				admit = append(admit, y)
				scores = append(scores, cmi)
			}
		}
		if len(admit) == 0 {
			break
		}
		for i, y := range admit {
			w.add(y, scores[i])
		}
	}

	return nil
}

// shrinkBatch evaluates every member against the round-start blanket and
// evicts all qualifying members at the end of the pass.
func (w *walker) shrinkBatch() error {
	w.init()
	for len(w.mb) > 0 {
		w.st.Rounds++
		round := w.snapshot()
		var evict []string
		var scores []float64
		for _, y := range round {
			cond := make([]string, 0, len(round)-1)
			for _, v := range round {
				if v != y {
					cond = append(cond, v)
				}
			}
			cmi, err := w.query(PhaseShrink, y, cond)
			if err != nil {
				return err
			}
			if cmi < w.gs.alpha {
				evict = append(evict, y)
				scores = append(scores, cmi)
			}
		}
		if len(evict) == 0 {
			break
		}
		for i, y := range evict {
			w.remove(y, scores[i])
		}
	}

	return nil
}

func (w *walker) add(y string, cmi float64) {
	w.mb = append(w.mb, y)
	w.member[y] = true
	w.st.Changes++
	w.gs.opts.Tracer.Added(w.target, y, cmi)
}

func (w *walker) remove(y string, cmi float64) {
	w.mb = w.without(y)
	delete(w.member, y)
	w.st.Changes++
	w.gs.opts.Tracer.Removed(w.target, y, cmi)
}

// query asks the oracle for I(target; y | cond). The oracle gets its own
// copy of cond.
func (w *walker) query(p Phase, y string, cond []string) (float64, error) {
	if err := w.ctx.Err(); err != nil {
		return 0, fmt.Errorf("markov: %s %q: %w", p, w.target, err)
	}

	w.st.Checks++
	cmi, err := w.gs.oracle.CondMutualInfo([]string{w.target}, []string{y}, append([]string{}, cond...))
	if err != nil {
		return 0, fmt.Errorf("%w: %s I(%s;%s|%v): %w", ErrOracle, p, w.target, y, cond, err)
	}
	if math.IsNaN(cmi) || cmi < 0 {
		return 0, fmt.Errorf("%w: %s I(%s;%s|%v)=%v: %w", ErrOracle, p, w.target, y, cond, cmi, ErrBadCMI)
	}
	w.gs.opts.Tracer.Checked(w.target, p, y, append([]string{}, cond...), cmi)

	return cmi, nil
}
