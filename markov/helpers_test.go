package markov_test

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mblearn/dataset"
	"github.com/katalvlaran/mblearn/entropy"
	"github.com/katalvlaran/mblearn/markov"
)

// Variable names used across tests.
const (
	VarA = "A"
	VarB = "B"
	VarC = "C"
	VarD = "D"
)

// Thresholds and oracle answers used across tests.
const (
	Alpha     = 0.1
	Strong    = 1.0
	Weak      = 0.05
	Nothing   = 0.0
	NumGenRow = 4000
)

// query identifies one oracle call; Given is sorted.
type query struct {
	X, Y  string
	Given string
}

func key(x, y string, z []string) query {
	s := append([]string(nil), z...)
	sort.Strings(s)

	return query{X: x, Y: y, Given: strings.Join(s, ",")}
}

// tableOracle answers from a lookup table, falling back to def, and records
// every call in order. Safe for concurrent use.
type tableOracle struct {
	mu    sync.Mutex
	table map[query]float64
	def   func(x, y string, z []string) float64
	calls []query
}

func newTableOracle(def float64) *tableOracle {
	return &tableOracle{
		table: make(map[query]float64),
		def:   func(string, string, []string) float64 { return def },
	}
}

// set registers I(x;y|z) for the target x.
func (o *tableOracle) set(x, y string, z []string, v float64) *tableOracle {
	o.table[key(x, y, z)] = v
	return o
}

func (o *tableOracle) CondMutualInfo(x, y, z []string) (float64, error) {
	if len(x) != 1 || len(y) != 1 {
		return 0, fmt.Errorf("unexpected query shape %v %v", x, y)
	}
	k := key(x[0], y[0], z)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, k)
	if v, ok := o.table[k]; ok {
		return v, nil
	}

	return o.def(x[0], y[0], z), nil
}

func (o *tableOracle) numCalls() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return len(o.calls)
}

// hashOracle returns a deterministic pseudo-random CMI in [0,1) for every
// (target, candidate, conditioning set) triple.
func hashOracle(seed int) markov.OracleFunc {
	return func(x, y, z []string) (float64, error) {
		k := key(x[0], y[0], z)
		h := fnv.New64a()
		fmt.Fprintf(h, "%d|%s|%s|%s", seed, k.X, k.Y, k.Given)

		return float64(h.Sum64()%1000) / 1000, nil
	}
}

// recordingTracer flattens events into readable lines.
type recordingTracer struct {
	markov.NopTracer
	mu     sync.Mutex
	events []string
}

func (r *recordingTracer) add(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recordingTracer) Start(alpha float64, targets []string) {
	r.add("start %v %v", alpha, targets)
}

func (r *recordingTracer) PhaseStart(target string, p markov.Phase, mb []string) {
	r.add("begin %s %s %v", target, p, mb)
}

func (r *recordingTracer) Added(target, y string, _ float64) {
	r.add("add %s %s", target, y)
}

func (r *recordingTracer) Removed(target, y string, _ float64) {
	r.add("remove %s %s", target, y)
}

func (r *recordingTracer) PhaseEnd(target string, p markov.Phase, mb []string, _ markov.PhaseStats) {
	r.add("end %s %s %v", target, p, mb)
}

// chainData samples A → B → C with a 10% flip per link and an independent D.
func chainData(t testing.TB, rows int) *dataset.Dataset {
	t.Helper()
	rng := rand.New(rand.NewSource(7))
	flip := func(v int) int {
		if rng.Float64() < 0.1 {
			return 1 - v
		}
		return v
	}

	data := make([][]string, rows)
	for i := range data {
		a := rng.Intn(2)
		b := flip(a)
		c := flip(b)
		d := rng.Intn(2)
		data[i] = []string{fmt.Sprint(a), fmt.Sprint(b), fmt.Sprint(c), fmt.Sprint(d)}
	}
	ds, err := dataset.New([]string{VarA, VarB, VarC, VarD}, data)
	require.NoError(t, err)

	return ds
}

func chainEngine(t testing.TB, opts ...markov.Option) *markov.GrowShrink {
	t.Helper()
	ds := chainData(t, NumGenRow)
	est, err := entropy.NewEstimator(ds, entropy.WithCache())
	require.NoError(t, err)
	gs, err := markov.NewGrowShrink(ds.Columns(), est, 0.01, opts...)
	require.NoError(t, err)

	return gs
}
