// SPDX-License-Identifier: MIT

// Package skeleton turns per-variable Markov Blankets into the undirected
// skeleton of a graphical model.
//
// A blanket holds a variable's neighbors (parents and children) plus its
// spouses (other parents of its children). Learn separates the two in two
// steps:
//
//  1. Neighbor consistency. A pair x–y is a candidate edge when y ∈ MB(x) and
//     x ∈ MB(y) (Symmetric policy, the default), or when either holds (Union
//     policy). Pairs listed by only one side are reported in Result.Asymmetric.
//  2. Spouse pruning. A candidate x–y survives unless some S ⊆ T, where T is
//     the smaller of MB(x)−{y} and MB(y)−{x}, makes CMI(x; y | S) < alpha.
//     Subsets are tried by increasing size (bounded by WithMaxCondSize) and in
//     lexicographic order; the first separating set is kept in
//     Result.SepSets, where a later orientation step can use it.
//
// Edge orientation is not done here.
package skeleton
