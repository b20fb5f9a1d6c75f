// SPDX-License-Identifier: MIT

package skeleton

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/mblearn/bnet"
	"github.com/katalvlaran/mblearn/markov"
)

// Learn builds the skeleton over vars (node order) from blankets, using
// oracle and alpha for spouse pruning. Targets missing from blankets count
// as having an empty blanket.
//
// Complexity: O(V² + Σ 2^|T|) oracle calls in the worst case, where T is the
// pair's smaller reduced blanket (bounded by MaxCondSize).
func Learn(vars []string, blankets markov.Blankets, oracle markov.Oracle, alpha float64, opts ...Option) (*bnet.Graph, *Result, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.err != nil {
		return nil, nil, o.err
	}
	if len(vars) == 0 {
		return nil, nil, ErrNoVariables
	}
	if oracle == nil {
		return nil, nil, ErrNilOracle
	}
	if !(alpha > 0) || math.IsInf(alpha, 0) {
		return nil, nil, fmt.Errorf("alpha=%v: %w", alpha, ErrBadAlpha)
	}

	known := make(map[string]bool, len(vars))
	for _, v := range vars {
		if known[v] {
			return nil, nil, fmt.Errorf("%q: %w", v, ErrDuplicateVariable)
		}
		known[v] = true
	}
	member := make(map[string]map[string]bool, len(vars))
	for t, mb := range blankets {
		if !known[t] {
			return nil, nil, fmt.Errorf("blanket target %q: %w", t, ErrUnknownVariable)
		}
		set := make(map[string]bool, len(mb))
		for _, v := range mb {
			if !known[v] {
				return nil, nil, fmt.Errorf("member %q of MB(%s): %w", v, t, ErrUnknownVariable)
			}
			if v == t {
				return nil, nil, fmt.Errorf("MB(%s): %w", t, ErrSelfMember)
			}
			set[v] = true
		}
		member[t] = set
	}

	g := bnet.NewGraph()
	for _, v := range vars {
		if err := g.AddNode(v, o.States[v]...); err != nil {
			return nil, nil, err
		}
	}

	res := &Result{SepSets: make(map[bnet.Edge][]string)}
	for i, x := range vars {
		for _, y := range vars[i+1:] {
			xy, yx := member[x][y], member[y][x]
			if !xy && !yx {
				continue
			}
			if xy != yx {
				res.Asymmetric = append(res.Asymmetric, pair(x, y))
				if o.Policy == Symmetric {
					continue
				}
			}

			sep, separated, err := separate(x, y, reduced(member[x], y), reduced(member[y], x), oracle, alpha, o.MaxCondSize, res)
			if err != nil {
				return nil, nil, err
			}
			if separated {
				res.SepSets[pair(x, y)] = sep
				continue
			}
			if err := g.AddEdge(x, y); err != nil {
				return nil, nil, err
			}
		}
	}

	return g, res, nil
}

// separate looks for S ⊆ smaller(tx, ty) with |S| ≤ maxSize and
// CMI(x;y|S) < alpha.
func separate(x, y string, tx, ty []string, oracle markov.Oracle, alpha float64, maxSize int, res *Result) ([]string, bool, error) {
	base := tx
	if len(ty) < len(tx) {
		base = ty
	}
	limit := len(base)
	if maxSize >= 0 && maxSize < limit {
		limit = maxSize
	}

	for k := 0; k <= limit; k++ {
		var found []string
		err := combinations(base, k, func(s []string) (bool, error) {
			res.Checks++
			cmi, err := oracle.CondMutualInfo([]string{x}, []string{y}, append([]string{}, s...))
			if err != nil {
				return false, fmt.Errorf("%w: I(%s;%s|%v): %w", ErrOracle, x, y, s, err)
			}
			if cmi < alpha {
				found = append([]string{}, s...)
				return true, nil
			}
			return false, nil
		})
		if err != nil {
			return nil, false, err
		}
		if found != nil {
			return found, true, nil
		}
	}

	return nil, false, nil
}

// combinations calls fn on every k-subset of items in lexicographic index
// order until fn reports stop or fails.
func combinations(items []string, k int, fn func([]string) (bool, error)) error {
	if k > len(items) {
		return nil
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	buf := make([]string, k)
	for {
		for i, j := range idx {
			buf[i] = items[j]
		}
		stop, err := fn(buf)
		if err != nil || stop {
			return err
		}

		// advance to the next combination
		i := k - 1
		for i >= 0 && idx[i] == len(items)-k+i {
			i--
		}
		if i < 0 {
			return nil
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// reduced returns the sorted members of set other than drop.
func reduced(set map[string]bool, drop string) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		if v != drop {
			out = append(out, v)
		}
	}
	sort.Strings(out)

	return out
}

func pair(x, y string) bnet.Edge {
	if y < x {
		x, y = y, x
	}

	return bnet.Edge{From: x, To: y}
}
