// Package table defines the immutable feature-table value objects the drift
// engine consumes. A table is fully materialized before comparison; nothing
// here is mutated after construction.
package table

import (
	"fmt"
	"math"
	"sort"
)

// Kind classifies a column for scoring purposes
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
)

// Column holds one column of values. Numeric columns carry their payload in
// Numbers, with NaN marking a missing cell. Categorical columns carry their
// payload in Labels, with the empty string marking a missing cell.
type Column struct {
	Kind    Kind
	Numbers []float64
	Labels  []string
}

// NumericColumn creates a numeric column from raw values
func NumericColumn(values []float64) Column {
	copied := make([]float64, len(values))
	copy(copied, values)
	return Column{Kind: KindNumeric, Numbers: copied}
}

// CategoricalColumn creates a categorical column from raw values
func CategoricalColumn(values []string) Column {
	copied := make([]string, len(values))
	copy(copied, values)
	return Column{Kind: KindCategorical, Labels: copied}
}

// Len returns the number of cells in the column
func (c Column) Len() int {
	if c.Kind == KindNumeric {
		return len(c.Numbers)
	}
	return len(c.Labels)
}

// IsNumeric reports whether the column participates in drift scoring
func (c Column) IsNumeric() bool {
	return c.Kind == KindNumeric
}

// MissingCount returns the number of missing cells (NaN for numeric columns,
// empty string for categorical columns)
func (c Column) MissingCount() int {
	count := 0
	if c.Kind == KindNumeric {
		for _, v := range c.Numbers {
			if math.IsNaN(v) {
				count++
			}
		}
		return count
	}
	for _, v := range c.Labels {
		if v == "" {
			count++
		}
	}
	return count
}

// Table is an immutable mapping from column name to column, all columns of
// equal length
type Table struct {
	columns map[string]Column
	rows    int
}

// New creates a table from the given columns, validating equal lengths
func New(columns map[string]Column) (*Table, error) {
	rows := -1
	for name, col := range columns {
		if rows == -1 {
			rows = col.Len()
			continue
		}
		if col.Len() != rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", name, col.Len(), rows)
		}
	}
	if rows == -1 {
		rows = 0
	}

	copied := make(map[string]Column, len(columns))
	for name, col := range columns {
		copied[name] = col
	}
	return &Table{columns: copied, rows: rows}, nil
}

// MustNew creates a table and panics on invalid input. Use only in tests and
// fixtures.
func MustNew(columns map[string]Column) *Table {
	t, err := New(columns)
	if err != nil {
		panic(err)
	}
	return t
}

// Rows returns the row count
func (t *Table) Rows() int {
	return t.rows
}

// ColumnNames returns all column names in sorted order
func (t *Table) ColumnNames() []string {
	names := make([]string, 0, len(t.columns))
	for name := range t.columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Column returns the named column
func (t *Table) Column(name string) (Column, bool) {
	col, ok := t.columns[name]
	return col, ok
}

// HasColumn reports whether the named column exists
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}
