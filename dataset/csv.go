// SPDX-License-Identifier: MIT

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReadCSV parses a comma-separated table whose first record holds the column
// names and every later record one sample.
func ReadCSV(r io.Reader, opts ...Option) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rectangularity is reported by New with row context
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoColumns
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: read header: %w", err)
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read record %d: %w", len(rows)+1, err)
		}
		rows = append(rows, rec)
	}

	columns := make([]string, len(header))
	for j, h := range header {
		columns[j] = strings.TrimSpace(h)
	}

	return New(columns, rows, opts...)
}

func normalize(v string, trim bool) string {
	if trim {
		return strings.TrimSpace(v)
	}

	return v
}
