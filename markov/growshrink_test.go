package markov_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mblearn/markov"
)

var abcd = []string{VarA, VarB, VarC, VarD}

func TestNewGrowShrink_Errors(t *testing.T) {
	oracle := newTableOracle(Nothing)
	cases := []struct {
		name   string
		vars   []string
		oracle markov.Oracle
		alpha  float64
		opts   []markov.Option
		want   error
	}{
		{"no variables", nil, oracle, Alpha, nil, markov.ErrNoVariables},
		{"empty name", []string{VarA, ""}, oracle, Alpha, nil, markov.ErrEmptyVariable},
		{"duplicate", []string{VarA, VarA}, oracle, Alpha, nil, markov.ErrDuplicateVariable},
		{"nil oracle", abcd, nil, Alpha, nil, markov.ErrNilOracle},
		{"zero alpha", abcd, oracle, 0, nil, markov.ErrBadAlpha},
		{"negative alpha", abcd, oracle, -1, nil, markov.ErrBadAlpha},
		{"NaN alpha", abcd, oracle, math.NaN(), nil, markov.ErrBadAlpha},
		{"Inf alpha", abcd, oracle, math.Inf(1), nil, markov.ErrBadAlpha},
		{"bad concurrency", abcd, oracle, Alpha, []markov.Option{markov.WithConcurrency(0)}, markov.ErrOptionViolation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gs, err := markov.NewGrowShrink(tc.vars, tc.oracle, tc.alpha, tc.opts...)
			assert.Nil(t, gs)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDefaultAlpha(t *testing.T) {
	assert.InDelta(t, 0.005, markov.DefaultAlpha(1000), 1e-15)
	assert.Zero(t, markov.DefaultAlpha(0))
}

// scenarioOracle: A depends on B directly, on C once B is known, never on D.
func scenarioOracle() *tableOracle {
	return newTableOracle(Nothing).
		set(VarA, VarB, nil, Strong).
		set(VarA, VarC, []string{VarB}, Strong).
		set(VarA, VarD, []string{VarB, VarC}, Weak).
		set(VarA, VarB, []string{VarC}, Strong).
		set(VarA, VarC, []string{VarB}, Strong)
}

func TestDiscoverBlankets_GrowThenShrinkScenario(t *testing.T) {
	oracle := scenarioOracle()
	tr := &recordingTracer{}
	gs, err := markov.NewGrowShrink(abcd, oracle, Alpha, markov.WithTracer(tr))
	require.NoError(t, err)

	got, err := gs.DiscoverBlankets(VarA)
	require.NoError(t, err)
	assert.Equal(t, markov.Blankets{VarA: {VarB, VarC}}, got)

	assert.Equal(t, []string{
		"start 0.1 [A]",
		"begin A grow []",
		"add A B",
		"add A C",
		"end A grow [B C]",
		"begin A shrink [B C]",
		"end A shrink [B C]",
	}, tr.events)

	// Round 1 checks B, C, D; round 2 re-checks D; shrink checks B and C once.
	assert.Equal(t, []query{
		key(VarA, VarB, nil),
		key(VarA, VarC, []string{VarB}),
		key(VarA, VarD, []string{VarB, VarC}),
		key(VarA, VarD, []string{VarB, VarC}),
		key(VarA, VarB, []string{VarC}),
		key(VarA, VarC, []string{VarB}),
	}, oracle.calls)
}

func TestDiscover_Stats(t *testing.T) {
	gs, err := markov.NewGrowShrink(abcd, scenarioOracle(), Alpha)
	require.NoError(t, err)

	mb, st, err := gs.Discover(VarA)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{VarB, VarC}, mb)
	assert.Equal(t, markov.PhaseStats{Rounds: 2, Checks: 4, Changes: 2}, st.Grow)
	assert.Equal(t, markov.PhaseStats{Rounds: 1, Checks: 2, Changes: 0}, st.Shrink)

	_, _, err = gs.Discover("nope")
	assert.ErrorIs(t, err, markov.ErrUnknownVariable)
}

func TestDiscoverBlankets_IndependentEverywhere(t *testing.T) {
	gs, err := markov.NewGrowShrink(abcd, newTableOracle(Nothing), Alpha)
	require.NoError(t, err)

	got, err := gs.DiscoverBlankets()
	require.NoError(t, err)
	assert.Equal(t, markov.Blankets{VarA: {}, VarB: {}, VarC: {}, VarD: {}}, got)
}

func TestDiscoverBlankets_UnknownVariable(t *testing.T) {
	oracle := newTableOracle(Strong)
	gs, err := markov.NewGrowShrink(abcd, oracle, Alpha)
	require.NoError(t, err)

	got, err := gs.DiscoverBlankets(VarA, "Z")
	assert.ErrorIs(t, err, markov.ErrUnknownVariable)
	assert.Nil(t, got)
	assert.Zero(t, oracle.numCalls(), "no oracle work before validation passes")
}

func TestDiscoverBlankets_RepeatedTargetAndFreshMapping(t *testing.T) {
	gs, err := markov.NewGrowShrink(abcd, scenarioOracle(), Alpha)
	require.NoError(t, err)

	first, err := gs.DiscoverBlankets(VarA, VarA)
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := gs.DiscoverBlankets(VarD)
	require.NoError(t, err)
	assert.Equal(t, []string{VarD}, second.Targets(), "earlier targets are not carried over")
	assert.Len(t, first, 1, "earlier mapping is untouched")
}

func TestThresholdBoundary_EqualIsDependent(t *testing.T) {
	gs, err := markov.NewGrowShrink(abcd, newTableOracle(Alpha), Alpha)
	require.NoError(t, err)

	grown, st, err := gs.Grow(VarA, nil)
	require.NoError(t, err)
	assert.Empty(t, grown, "CMI == alpha must not admit")
	assert.Equal(t, 1, st.Rounds)

	shrunk, st, err := gs.Shrink(VarA, []string{VarB, VarC, VarD})
	require.NoError(t, err)
	assert.Equal(t, []string{VarB, VarC, VarD}, shrunk, "CMI == alpha must not evict")
	assert.Zero(t, st.Changes)
}

func TestThresholdBoundary_JustAcross(t *testing.T) {
	above := math.Nextafter(Alpha, 1)
	below := math.Nextafter(Alpha, 0)

	gs, err := markov.NewGrowShrink(abcd, newTableOracle(above), Alpha)
	require.NoError(t, err)
	grown, _, err := gs.Grow(VarA, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{VarB, VarC, VarD}, grown)

	gs, err = markov.NewGrowShrink(abcd, newTableOracle(below), Alpha)
	require.NoError(t, err)
	shrunk, _, err := gs.Shrink(VarA, []string{VarB, VarC})
	require.NoError(t, err)
	assert.Empty(t, shrunk)
}

// redundantPair: B and C each carry the same information about A.
func redundantPair() *tableOracle {
	return newTableOracle(Nothing).
		set(VarA, VarB, nil, Strong).
		set(VarA, VarC, nil, Strong).
		set(VarA, VarC, []string{VarB}, Nothing).
		set(VarA, VarB, []string{VarC}, Nothing)
}

func TestGrow_AdditionsVisibleWithinRound(t *testing.T) {
	gs, err := markov.NewGrowShrink([]string{VarA, VarB, VarC}, redundantPair(), Alpha)
	require.NoError(t, err)

	// C is checked given {B} in the same pass B was admitted.
	mb, err := gs.DiscoverBlankets(VarA)
	require.NoError(t, err)
	assert.Equal(t, []string{VarB}, mb[VarA])

	// Column order decides which of the redundant pair survives.
	gs, err = markov.NewGrowShrink([]string{VarA, VarC, VarB}, redundantPair(), Alpha)
	require.NoError(t, err)
	mb, err = gs.DiscoverBlankets(VarA)
	require.NoError(t, err)
	assert.Equal(t, []string{VarC}, mb[VarA])
}

func TestShrink_RemovalsVisibleWithinRound(t *testing.T) {
	gs, err := markov.NewGrowShrink([]string{VarA, VarB, VarC}, redundantPair(), Alpha)
	require.NoError(t, err)

	// B leaves given {C}; C is then checked given {} and stays.
	mb, st, err := gs.Shrink(VarA, []string{VarB, VarC})
	require.NoError(t, err)
	assert.Equal(t, []string{VarC}, mb)
	assert.Equal(t, 1, st.Changes)
}

func TestBatchRounds_DeviatesOnRedundantPair(t *testing.T) {
	oracle := redundantPair()
	gs, err := markov.NewGrowShrink([]string{VarA, VarB, VarC}, oracle, Alpha, markov.WithBatchRounds())
	require.NoError(t, err)

	grown, gst, err := gs.Grow(VarA, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{VarB, VarC}, grown, "both admitted against the frozen empty set")
	assert.Equal(t, 1, gst.Rounds, "no candidate left after the first pass")

	shrunk, _, err := gs.Shrink(VarA, grown)
	require.NoError(t, err)
	assert.Empty(t, shrunk, "both evicted against the frozen {B,C}")
}

func TestBatchRounds_EqualIsDependent(t *testing.T) {
	gs, err := markov.NewGrowShrink(abcd, newTableOracle(Alpha), Alpha, markov.WithBatchRounds())
	require.NoError(t, err)

	grown, _, err := gs.Grow(VarA, nil)
	require.NoError(t, err)
	assert.Empty(t, grown, "CMI == alpha must not admit")

	shrunk, st, err := gs.Shrink(VarA, []string{VarB, VarC, VarD})
	require.NoError(t, err)
	assert.Equal(t, []string{VarB, VarC, VarD}, shrunk, "CMI == alpha must not evict")
	assert.Zero(t, st.Changes)
}

func TestBatchRounds_AgreesOnScenario(t *testing.T) {
	gs, err := markov.NewGrowShrink(abcd, scenarioOracle(), Alpha, markov.WithBatchRounds())
	require.NoError(t, err)

	got, err := gs.DiscoverBlankets(VarA)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{VarB, VarC}, got[VarA])
}

func TestGrowShrink_SeedValidation(t *testing.T) {
	gs, err := markov.NewGrowShrink(abcd, newTableOracle(Nothing), Alpha)
	require.NoError(t, err)

	_, _, err = gs.Grow(VarA, []string{VarA})
	assert.ErrorIs(t, err, markov.ErrInvalidBlanket)
	_, _, err = gs.Shrink(VarA, []string{VarB, VarB})
	assert.ErrorIs(t, err, markov.ErrInvalidBlanket)
	_, _, err = gs.Shrink(VarA, []string{"Z"})
	assert.ErrorIs(t, err, markov.ErrInvalidBlanket)
	_, _, err = gs.Grow("Z", nil)
	assert.ErrorIs(t, err, markov.ErrUnknownVariable)

	seed := []string{VarB}
	_, _, err = gs.Shrink(VarA, seed)
	require.NoError(t, err)
	assert.Equal(t, []string{VarB}, seed, "caller slice is not modified")
}

func TestOracleFailure_Propagates(t *testing.T) {
	boom := errors.New("too few samples")
	oracle := markov.OracleFunc(func(x, y, z []string) (float64, error) {
		if y[0] == VarC {
			return 0, boom
		}
		return Strong, nil
	})
	gs, err := markov.NewGrowShrink(abcd, oracle, Alpha)
	require.NoError(t, err)

	got, err := gs.DiscoverBlankets()
	assert.Nil(t, got)
	assert.ErrorIs(t, err, markov.ErrOracle)
	assert.ErrorIs(t, err, boom)
}

func TestOracleFailure_DuringShrink(t *testing.T) {
	// Grow asks about B only given {}; the first shrink check is B given {C,D}.
	boom := errors.New("too few samples")
	oracle := markov.OracleFunc(func(x, y, z []string) (float64, error) {
		if y[0] == VarB && len(z) > 0 {
			return 0, boom
		}
		return Strong, nil
	})
	rec := &recordingTracer{}
	gs, err := markov.NewGrowShrink(abcd, oracle, Alpha, markov.WithTracer(rec))
	require.NoError(t, err)

	got, err := gs.DiscoverBlankets(VarA)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, markov.ErrOracle)
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "shrink")
	assert.Contains(t, rec.events, "end A grow [B C D]")
	assert.Contains(t, rec.events, "begin A shrink [B C D]")
}

func TestOracleFailure_BadValues(t *testing.T) {
	for _, v := range []float64{-0.5, math.NaN()} {
		gs, err := markov.NewGrowShrink(abcd, newTableOracle(v), Alpha)
		require.NoError(t, err)

		_, err = gs.DiscoverBlankets(VarA)
		assert.ErrorIs(t, err, markov.ErrOracle)
		assert.ErrorIs(t, err, markov.ErrBadCMI)
	}
}

func TestWithContext_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	oracle := newTableOracle(Strong)
	gs, err := markov.NewGrowShrink(abcd, oracle, Alpha, markov.WithContext(ctx))
	require.NoError(t, err)

	_, err = gs.DiscoverBlankets()
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, oracle.numCalls())
}

func TestEntropyOracle_ChainBlankets(t *testing.T) {
	gs := chainEngine(t)

	got, err := gs.DiscoverBlankets()
	require.NoError(t, err)

	want := markov.Blankets{
		VarA: {VarB},
		VarB: {VarA, VarC},
		VarC: {VarB},
		VarD: {},
	}
	if diff := cmp.Diff(want, got.Sorted()); diff != "" {
		t.Errorf("blankets mismatch (-want +got):\n%s", diff)
	}
}

func TestInvariants_NoSelfAndSubset(t *testing.T) {
	vars := []string{"V0", "V1", "V2", "V3", "V4", "V5"}
	for seed := 0; seed < 25; seed++ {
		gs, err := markov.NewGrowShrink(vars, hashOracle(seed), 0.5)
		require.NoError(t, err)

		got, err := gs.DiscoverBlankets()
		require.NoError(t, err)
		for _, tgt := range vars {
			mb := got[tgt]
			seen := map[string]bool{}
			for _, v := range mb {
				assert.NotEqual(t, tgt, v, "seed %d: %s in its own blanket", seed, tgt)
				assert.Contains(t, vars, v)
				assert.False(t, seen[v], "seed %d: %s repeated in MB(%s)", seed, v, tgt)
				seen[v] = true
			}
		}
	}
}

func TestFixedPointsAndTerminationBounds(t *testing.T) {
	vars := []string{"V0", "V1", "V2", "V3", "V4", "V5", "V6"}
	for seed := 0; seed < 25; seed++ {
		gs, err := markov.NewGrowShrink(vars, hashOracle(seed), 0.4)
		require.NoError(t, err)

		for _, tgt := range vars {
			grown, gst, err := gs.Grow(tgt, nil)
			require.NoError(t, err)
			assert.LessOrEqual(t, gst.Rounds, len(vars))
			assert.GreaterOrEqual(t, gst.Changes, gst.Rounds-1, "every non-final grow round adds")

			again, st, err := gs.Grow(tgt, grown)
			require.NoError(t, err)
			assert.Zero(t, st.Changes)
			assert.Equal(t, grown, again)

			shrunk, sst, err := gs.Shrink(tgt, grown)
			require.NoError(t, err)
			assert.LessOrEqual(t, sst.Rounds, len(grown))
			assert.GreaterOrEqual(t, sst.Changes, sst.Rounds-1, "every non-final shrink round removes")

			_, st, err = gs.Shrink(tgt, shrunk)
			require.NoError(t, err)
			assert.Zero(t, st.Changes)
		}
	}
}
