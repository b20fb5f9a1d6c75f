// SPDX-License-Identifier: MIT

// Package markov discovers Markov Blankets with the Grow-Shrink (GS)
// procedure.
//
// The Markov Blanket MB(t) of a variable t is the minimal set of other
// variables that renders t conditionally independent of everything else. GS
// finds it with two fixed-point searches driven by a conditional mutual
// information (CMI) oracle and a significance threshold alpha:
//
//	Grow:   repeat passes over the variables in column order; a candidate y
//	        (y ≠ t, y ∉ MB) joins MB as soon as CMI(t; y | MB) > alpha.
//	        Stop after a pass that adds nothing.
//	Shrink: repeat passes over MB; a member y leaves MB as soon as
//	        CMI(t; y | MB − {y}) < alpha. Stop after a pass that removes nothing.
//
// MB is a single working set mutated in place, so an addition (or removal)
// is visible to every later check of the same pass. This makes the grown
// set depend on column order when candidates are related only through each
// other, and it is the reference convergence path. WithBatchRounds switches
// to the alternative that freezes the conditioning set for a whole pass and
// applies all changes at its end; results can differ on such inputs.
//
// Comparisons are strict. A CMI exactly equal to alpha counts as dependent:
// it neither admits a candidate in Grow nor evicts a member in Shrink.
//
// Termination: Grow only adds and Shrink only removes from a finite set, so
// Grow runs at most |vars| passes and Shrink at most |MB after Grow| passes.
//
// Usage:
//
//	est, _ := entropy.NewEstimator(ds, entropy.WithCache())
//	gs, err := markov.NewGrowShrink(ds.Columns(), est, markov.DefaultAlpha(ds.NumRows()))
//	if err != nil { ... }
//	blankets, err := gs.DiscoverBlankets()      // every variable
//	blankets, err = gs.DiscoverBlankets("A")    // only A
//
// Every DiscoverBlankets call builds a fresh mapping; the engine keeps no
// results between calls.
//
// Options:
//
//   - WithContext(ctx)      cancellation checked before each oracle call.
//   - WithTracer(tr)        diagnostic sink for phase boundaries and changes.
//   - WithConcurrency(n)    discover up to n targets concurrently.
//   - WithBatchRounds()     per-pass frozen conditioning set (see above).
//
// Errors:
//
//   - ErrNilOracle, ErrNoVariables, ErrEmptyVariable, ErrDuplicateVariable,
//     ErrBadAlpha, ErrOptionViolation - construction failures.
//   - ErrUnknownVariable - a requested target is not a variable; reported
//     before any oracle call.
//   - ErrInvalidBlanket  - Grow/Shrink got a seed set with the target, an
//     unknown name or a duplicate.
//   - ErrOracle          - wraps every oracle failure, including ErrBadCMI
//     for negative or NaN answers. The first failure aborts the whole call and
//     no mapping is returned.
//   - context errors from WithContext.
package markov
