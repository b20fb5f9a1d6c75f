// SPDX-License-Identifier: MIT

// Package dataset provides an immutable view over a multivariate categorical
// dataset: an ordered list of columns (variables) and rows (samples), where
// each row assigns one discrete state to every column.
//
// Column order is meaningful: it is the iteration order used by the Markov
// Blanket engine when scanning candidates. Row order is irrelevant to every
// consumer in this module.
//
// Every column has a finite state set. States are either declared up front
// with WithStates, or learned from the data as the sorted set of distinct
// values observed in the column. Internally each column is also stored as a
// dense slice of integer codes (index into its state set) so that entropy
// estimators can count joint configurations without hashing strings.
//
// Construction:
//
//	ds, err := dataset.New([]string{"A", "B"}, [][]string{
//		{"0", "1"},
//		{"1", "1"},
//	})
//
//	ds, err := dataset.ReadCSV(file) // first record is the header
//
// Errors:
//
//   - ErrNoColumns        - no column names were given.
//   - ErrEmptyColumnName  - a column name is the empty string.
//   - ErrDuplicateColumn  - the same column name appears twice.
//   - ErrNoRows           - the dataset has no samples.
//   - ErrNonRectangular   - a row's length differs from the column count.
//   - ErrUnknownColumn    - an accessor referenced a missing column.
//   - ErrUnknownState     - a value is outside the declared state set.
//   - ErrDuplicateState   - a declared state set names a state twice.
package dataset
