// SPDX-License-Identifier: MIT

package entropy

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/mblearn/dataset"
)

// maxRadixProduct bounds the mixed-radix key space; larger joint spaces fall
// back to string keys.
const maxRadixProduct = uint64(1) << 62

// Estimator computes plug-in entropies over an immutable dataset.
// It is safe for concurrent use.
type Estimator struct {
	ds   *dataset.Dataset
	opts Options

	mu    sync.RWMutex
	memo  map[string]float64
	hits  atomic.Uint64
	miss  atomic.Uint64
	nrows float64
}

// NewEstimator binds an Estimator to ds.
func NewEstimator(ds *dataset.Dataset, opts ...Option) (*Estimator, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	e := &Estimator{ds: ds, opts: o, nrows: float64(ds.NumRows())}
	if o.Cache {
		e.memo = make(map[string]float64)
	}

	return e, nil
}

// Entropy returns the joint entropy H(vars) in nats. Order and repetition of
// names do not matter; an empty set has zero entropy.
func (e *Estimator) Entropy(vars []string) (float64, error) {
	set := canonical(vars)
	if len(set) == 0 {
		return 0, nil
	}
	for _, v := range set {
		if !e.ds.Has(v) {
			return 0, fmt.Errorf("%q: %w", v, ErrUnknownVariable)
		}
	}
	if e.memo == nil {
		return e.joint(set), nil
	}

	key := strings.Join(set, "\x00")
	e.mu.RLock()
	h, ok := e.memo[key]
	e.mu.RUnlock()
	if ok {
		e.hits.Add(1)
		return h, nil
	}
	e.miss.Add(1)
	h = e.joint(set)
	e.mu.Lock()
	e.memo[key] = h
	e.mu.Unlock()

	return h, nil
}

// MutualInfo returns I(x;y).
func (e *Estimator) MutualInfo(x, y []string) (float64, error) {
	return e.CondMutualInfo(x, y, nil)
}

// CondMutualInfo returns I(x;y | z). x and y must be non-empty; x, y and z
// must be pairwise disjoint.
func (e *Estimator) CondMutualInfo(x, y, z []string) (float64, error) {
	if len(x) == 0 || len(y) == 0 {
		return 0, ErrEmptySet
	}
	if err := disjoint(x, y, z); err != nil {
		return 0, err
	}
	if err := e.checkSamples(z); err != nil {
		return 0, err
	}

	hxz, err := e.Entropy(concat(x, z))
	if err != nil {
		return 0, err
	}
	hyz, err := e.Entropy(concat(y, z))
	if err != nil {
		return 0, err
	}
	hxyz, err := e.Entropy(concat(x, y, z))
	if err != nil {
		return 0, err
	}
	hz, err := e.Entropy(z)
	if err != nil {
		return 0, err
	}

	cmi := hxz + hyz - hxyz - hz
	if cmi < 0 {
		cmi = 0 // plug-in CMI is non-negative; negatives are round-off
	}

	return cmi, nil
}

// CacheStats returns memo counters. Entries is zero when caching is off.
func (e *Estimator) CacheStats() CacheStats {
	e.mu.RLock()
	n := len(e.memo)
	e.mu.RUnlock()

	return CacheStats{Hits: e.hits.Load(), Misses: e.miss.Load(), Entries: n}
}

// checkSamples enforces MinSamplesPerConfig for the conditioning set z.
func (e *Estimator) checkSamples(z []string) error {
	k := e.opts.MinSamplesPerConfig
	if k == 0 || len(z) == 0 {
		return nil
	}
	need := float64(k)
	for _, v := range z {
		card, err := e.ds.Cardinality(v)
		if err != nil {
			return fmt.Errorf("%q: %w", v, ErrUnknownVariable)
		}
		need *= float64(card)
	}
	if e.nrows < need {
		return fmt.Errorf("%w: |z|=%d needs %.0f samples, have %.0f",
			ErrInsufficientSamples, len(z), need, e.nrows)
	}

	return nil
}

// joint counts joint configurations of set (canonical, validated) and
// returns their plug-in entropy.
func (e *Estimator) joint(set []string) float64 {
	cols := make([][]int, len(set))
	radix := make([]uint64, len(set))
	product := uint64(1)
	fits := true
	for i, v := range set {
		cols[i], _ = e.ds.Codes(v)
		card, _ := e.ds.Cardinality(v)
		radix[i] = uint64(card)
		if fits && card > 0 && product > maxRadixProduct/uint64(card) {
			fits = false
		}
		product *= uint64(card)
	}

	n := e.ds.NumRows()
	var counts []int
	if fits {
		byKey := make(map[uint64]int)
		for r := 0; r < n; r++ {
			var key uint64
			for i := range cols {
				key = key*radix[i] + uint64(cols[i][r])
			}
			byKey[key]++
		}
		counts = make([]int, 0, len(byKey))
		for _, c := range byKey {
			counts = append(counts, c)
		}
	} else {
		byKey := make(map[string]int)
		var sb strings.Builder
		for r := 0; r < n; r++ {
			sb.Reset()
			for i := range cols {
				sb.WriteString(strconv.Itoa(cols[i][r]))
				sb.WriteByte(',')
			}
			byKey[sb.String()]++
		}
		counts = make([]int, 0, len(byKey))
		for _, c := range byKey {
			counts = append(counts, c)
		}
	}

	// fixed summation order keeps results bit-identical across runs
	sort.Ints(counts)
	p := make([]float64, len(counts))
	for i, c := range counts {
		p[i] = float64(c) / e.nrows
	}

	return stat.Entropy(p)
}

// canonical returns the sorted, de-duplicated names of vars.
func canonical(vars []string) []string {
	if len(vars) == 0 {
		return nil
	}
	out := append([]string(nil), vars...)
	sort.Strings(out)
	w := 1
	for r := 1; r < len(out); r++ {
		if out[r] != out[w-1] {
			out[w] = out[r]
			w++
		}
	}

	return out[:w]
}

func concat(sets ...[]string) []string {
	var n int
	for _, s := range sets {
		n += len(s)
	}
	out := make([]string, 0, n)
	for _, s := range sets {
		out = append(out, s...)
	}

	return out
}

func disjoint(sets ...[]string) error {
	seen := make(map[string]struct{})
	for _, s := range sets {
		for _, v := range s {
			if _, dup := seen[v]; dup {
				return fmt.Errorf("%q: %w", v, ErrOverlap)
			}
			seen[v] = struct{}{}
		}
	}

	return nil
}
