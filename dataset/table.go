// Package dataset provides the typed feature table the pipeline consumes.
//
// A Table holds mixed-typed columns: numeric columns as float64 slices where
// NaN marks a missing value, and categorical columns as string slices where
// the empty string marks a missing value. Column types are declared once when
// the table is built (by the CSV loader or a constructor); downstream routing
// never re-inspects cell contents.
package dataset

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/carbonml/carbonml/pkg/errors"
)

// ColumnType declares how a column's values are interpreted.
type ColumnType int

const (
	// Numeric marks an integer or real-valued column.
	Numeric ColumnType = iota
	// Categorical marks a text or enumerated column.
	Categorical
)

// String returns the type name.
func (t ColumnType) String() string {
	switch t {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// Column is a single named, typed column. Exactly one of the value slices is
// populated, matching Type.
type Column struct {
	Name        string
	Type        ColumnType
	Numeric     []float64
	Categorical []string
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	if c.Type == Numeric {
		return len(c.Numeric)
	}
	return len(c.Categorical)
}

// NewNumericColumn builds a numeric column. Use NaN for missing values.
func NewNumericColumn(name string, values []float64) Column {
	return Column{Name: name, Type: Numeric, Numeric: values}
}

// NewCategoricalColumn builds a categorical column. Use "" for missing values.
func NewCategoricalColumn(name string, values []string) Column {
	return Column{Name: name, Type: Categorical, Categorical: values}
}

// Table is an ordered collection of equal-length columns.
type Table struct {
	Cols []Column
}

// NewTable builds a table from columns, validating that all columns have the
// same number of rows.
func NewTable(cols ...Column) (*Table, error) {
	if len(cols) > 0 {
		n := cols[0].Len()
		for _, c := range cols[1:] {
			if c.Len() != n {
				return nil, errors.NewDimensionError("dataset.NewTable", n, c.Len(), 0)
			}
		}
	}
	return &Table{Cols: cols}, nil
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	if len(t.Cols) == 0 {
		return 0
	}
	return t.Cols[0].Len()
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.Cols)
}

// ColumnNames returns all column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Cols))
	for i, c := range t.Cols {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column, or false when absent.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Cols {
		if t.Cols[i].Name == name {
			return &t.Cols[i], true
		}
	}
	return nil, false
}

// NumericColumns returns the names of all numeric columns in table order.
func (t *Table) NumericColumns() []string {
	var names []string
	for _, c := range t.Cols {
		if c.Type == Numeric {
			names = append(names, c.Name)
		}
	}
	return names
}

// CategoricalColumns returns the names of all categorical columns in table
// order.
func (t *Table) CategoricalColumns() []string {
	var names []string
	for _, c := range t.Cols {
		if c.Type == Categorical {
			names = append(names, c.Name)
		}
	}
	return names
}

// Select returns a new table containing the given rows, in the given order.
// The result shares no storage with the receiver.
func (t *Table) Select(rows []int) *Table {
	cols := make([]Column, len(t.Cols))
	for i, c := range t.Cols {
		nc := Column{Name: c.Name, Type: c.Type}
		switch c.Type {
		case Numeric:
			nc.Numeric = make([]float64, len(rows))
			for j, r := range rows {
				nc.Numeric[j] = c.Numeric[r]
			}
		case Categorical:
			nc.Categorical = make([]string, len(rows))
			for j, r := range rows {
				nc.Categorical[j] = c.Categorical[r]
			}
		}
		cols[i] = nc
	}
	return &Table{Cols: cols}
}

// SplitTarget removes the named numeric target column and returns the
// remaining feature table together with the target as a vector.
//
// Returns a SchemaError when the target column is absent or not numeric.
func (t *Table) SplitTarget(name string) (*Table, *mat.VecDense, error) {
	idx := -1
	for i := range t.Cols {
		if t.Cols[i].Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil, errors.NewSchemaError("Table.SplitTarget", name, "target column not found")
	}
	target := t.Cols[idx]
	if target.Type != Numeric {
		return nil, nil, errors.NewSchemaError("Table.SplitTarget", name, "target column is not numeric")
	}

	y := mat.NewVecDense(len(target.Numeric), nil)
	for i, v := range target.Numeric {
		y.SetVec(i, v)
	}

	cols := make([]Column, 0, len(t.Cols)-1)
	cols = append(cols, t.Cols[:idx]...)
	cols = append(cols, t.Cols[idx+1:]...)
	return &Table{Cols: cols}, y, nil
}

// HasMissingTarget reports whether y contains any NaN entry.
func HasMissingTarget(y *mat.VecDense) bool {
	for i := 0; i < y.Len(); i++ {
		if math.IsNaN(y.AtVec(i)) {
			return true
		}
	}
	return false
}
