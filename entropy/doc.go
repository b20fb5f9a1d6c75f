// SPDX-License-Identifier: MIT

// Package entropy estimates Shannon entropies and (conditional) mutual
// information between sets of categorical variables from raw samples.
//
// The estimator is the plug-in (maximum-likelihood) one: a joint
// configuration observed c times out of n samples has probability c/n, and
//
//	H(V)       = −Σ p·ln p                       (nats)
//	I(X;Y)     = H(X) + H(Y) − H(X,Y)
//	I(X;Y | Z) = H(X,Z) + H(Y,Z) − H(X,Y,Z) − H(Z)
//
// with H(∅) = 0, so an empty conditioning set yields unconditional mutual
// information. Results are clamped at zero to absorb floating round-off.
//
// An Estimator satisfies markov.Oracle through CondMutualInfo, so it serves
// both blanket discovery and skeleton pruning. The error of a plug-in
// entropy is on the order of ln(n+1) − ln(n) ≈ 1/n, so markov.DefaultAlpha
// is a small multiple of 1/n.
//
// Options:
//
//   - WithCache()                  memoize joint entropies by canonical variable set.
//   - WithMinSamplesPerConfig(k)   refuse conditioning sets whose configuration
//     count times k exceeds the number of samples (ErrInsufficientSamples).
//
// Errors:
//
//   - ErrNilDataset          - NewEstimator got a nil dataset.
//   - ErrUnknownVariable     - a name is not a dataset column.
//   - ErrEmptySet            - x or y is empty.
//   - ErrOverlap             - x, y and z are not pairwise disjoint, or repeat a name.
//   - ErrInsufficientSamples - the conditioning set is too large for the sample count.
//   - ErrOptionViolation     - an option was given an invalid value.
package entropy
