// SPDX-License-Identifier: MIT

package dataset

import "errors"

var (
	// ErrNoColumns indicates the dataset was built without any column.
	ErrNoColumns = errors.New("dataset: at least one column is required")
	// ErrEmptyColumnName indicates a column name is the empty string.
	ErrEmptyColumnName = errors.New("dataset: column name is empty")
	// ErrDuplicateColumn indicates a column name appears more than once.
	ErrDuplicateColumn = errors.New("dataset: duplicate column name")
	// ErrNoRows indicates the dataset has no samples.
	ErrNoRows = errors.New("dataset: at least one row is required")
	// ErrNonRectangular indicates a row whose length differs from the column count.
	ErrNonRectangular = errors.New("dataset: all rows must have one value per column")
	// ErrUnknownColumn indicates an accessor referenced a column that does not exist.
	ErrUnknownColumn = errors.New("dataset: unknown column")
	// ErrRowOutOfRange indicates a row index outside [0, NumRows).
	ErrRowOutOfRange = errors.New("dataset: row index out of range")
	// ErrUnknownState indicates a value outside the column's declared states.
	ErrUnknownState = errors.New("dataset: value not among declared states")
	// ErrDuplicateState indicates a declared state set names a state twice.
	ErrDuplicateState = errors.New("dataset: duplicate declared state")
)
