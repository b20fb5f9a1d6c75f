// Package mblearn discovers Markov Blankets in multivariate categorical data,
// the first step of learning the structure of a probabilistic graphical model
// from observations.
//
// The module is organized as small packages:
//
//	dataset/  - immutable categorical table: ordered columns, rows, state sets
//	entropy/  - plug-in entropy and conditional mutual information (the oracle)
//	markov/   - Grow-Shrink Markov Blanket engine, tracer hooks, zap tracer
//	bnet/     - thread-safe undirected graph of variables
//	skeleton/ - blankets → skeleton via neighbor consistency and spouse pruning
//
// and a command, cmd/mblearn, that wires them behind a cobra CLI.
//
// Quick example:
//
//	ds, _ := dataset.ReadCSV(f)
//	est, _ := entropy.NewEstimator(ds, entropy.WithCache())
//	gs, _ := markov.NewGrowShrink(ds.Columns(), est, markov.DefaultAlpha(ds.NumRows()))
//	blankets, _ := gs.DiscoverBlankets()
//	g, _, _ := skeleton.Learn(ds.Columns(), blankets, est, gs.Alpha())
//
// Edge orientation is out of scope.
package mblearn
