// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"sort"
)

// Option configures dataset construction.
type Option func(*Options)

// Options holds construction parameters for New and ReadCSV.
type Options struct {
	// States maps a column name to its declared state names. Columns absent
	// from the map learn their states from the data.
	States map[string][]string

	// TrimSpace strips leading and trailing blanks from every value.
	TrimSpace bool
}

// DefaultOptions returns Options with no declared states and no trimming.
func DefaultOptions() Options {
	return Options{States: nil, TrimSpace: false}
}

// WithStates declares the state set of one or more columns. Declared order is
// kept as the state order; values outside the set fail with ErrUnknownState
// and a state named twice fails with ErrDuplicateState.
func WithStates(states map[string][]string) Option {
	return func(o *Options) {
		o.States = states
	}
}

// WithTrimSpace strips surrounding whitespace from every value before it is
// interpreted as a state.
func WithTrimSpace() Option {
	return func(o *Options) {
		o.TrimSpace = true
	}
}

// Dataset is an immutable categorical sample table.
//
// columns keeps the caller's order; index maps a column name to its position.
// codes[j][i] is the state index of row i in column j, states[j] the state
// names of column j.
type Dataset struct {
	columns []string
	index   map[string]int
	states  [][]string
	codes   [][]int
	rows    int
}

// New builds a Dataset from column names and rows of state values.
// The inputs are copied; later mutation by the caller has no effect.
// Complexity: O(R·C + C·S·log S) where S is the largest state set.
func New(columns []string, rows [][]string, opts ...Option) (*Dataset, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	index := make(map[string]int, len(columns))
	for j, name := range columns {
		if name == "" {
			return nil, fmt.Errorf("column %d: %w", j, ErrEmptyColumnName)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("%q: %w", name, ErrDuplicateColumn)
		}
		index[name] = j
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d: %w",
				i, len(row), len(columns), ErrNonRectangular)
		}
	}
	for name := range o.States {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("declared states for %q: %w", name, ErrUnknownColumn)
		}
	}

	ds := &Dataset{
		columns: append([]string(nil), columns...),
		index:   index,
		states:  make([][]string, len(columns)),
		codes:   make([][]int, len(columns)),
		rows:    len(rows),
	}

	for j, name := range columns {
		declared, hasDeclared := o.States[name]
		var states []string
		if hasDeclared {
			states = append([]string(nil), declared...)
		} else {
			states = observedStates(rows, j, o.TrimSpace)
		}
		lookup := make(map[string]int, len(states))
		for k, s := range states {
			if _, dup := lookup[s]; dup {
				return nil, fmt.Errorf("column %q state %q: %w", name, s, ErrDuplicateState)
			}
			lookup[s] = k
		}

		col := make([]int, len(rows))
		for i, row := range rows {
			v := normalize(row[j], o.TrimSpace)
			k, ok := lookup[v]
			if !ok {
				return nil, fmt.Errorf("row %d column %q value %q: %w", i, name, v, ErrUnknownState)
			}
			col[i] = k
		}
		ds.states[j] = states
		ds.codes[j] = col
	}

	return ds, nil
}

// observedStates collects the distinct values of column j in sorted order.
func observedStates(rows [][]string, j int, trim bool) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		seen[normalize(row[j], trim)] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)

	return out
}

// Columns returns a copy of the column names in dataset order.
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.columns...)
}

// NumColumns returns the number of variables.
func (d *Dataset) NumColumns() int { return len(d.columns) }

// NumRows returns the number of samples.
func (d *Dataset) NumRows() int { return d.rows }

// Has reports whether name is a column of the dataset.
func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Index returns the position of column name.
func (d *Dataset) Index(name string) (int, error) {
	j, ok := d.index[name]
	if !ok {
		return -1, fmt.Errorf("%q: %w", name, ErrUnknownColumn)
	}

	return j, nil
}

// States returns a copy of the state names of column name.
func (d *Dataset) States(name string) ([]string, error) {
	j, err := d.Index(name)
	if err != nil {
		return nil, err
	}

	return append([]string(nil), d.states[j]...), nil
}

// Cardinality returns the number of states of column name.
func (d *Dataset) Cardinality(name string) (int, error) {
	j, err := d.Index(name)
	if err != nil {
		return 0, err
	}

	return len(d.states[j]), nil
}

// Codes returns the per-row state indices of column name.
// The slice is shared with the dataset and must not be modified.
func (d *Dataset) Codes(name string) ([]int, error) {
	j, err := d.Index(name)
	if err != nil {
		return nil, err
	}

	return d.codes[j], nil
}

// StateMap returns column → state names for every column
// (the shape expected by WithStates).
func (d *Dataset) StateMap() map[string][]string {
	out := make(map[string][]string, len(d.columns))
	for j, name := range d.columns {
		out[name] = append([]string(nil), d.states[j]...)
	}

	return out
}

// Value returns the state name of row i in column name.
func (d *Dataset) Value(i int, name string) (string, error) {
	j, err := d.Index(name)
	if err != nil {
		return "", err
	}
	if i < 0 || i >= d.rows {
		return "", fmt.Errorf("row %d of %d: %w", i, d.rows, ErrRowOutOfRange)
	}

	return d.states[j][d.codes[j][i]], nil
}
