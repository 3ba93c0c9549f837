// Package compose routes table columns through type-specific transformation
// branches and assembles the results into a single feature matrix.
package compose

import (
	"encoding/gob"

	"gonum.org/v1/gonum/mat"

	"github.com/carbonml/carbonml/core/model"
	"github.com/carbonml/carbonml/dataset"
	"github.com/carbonml/carbonml/pkg/errors"
	"github.com/carbonml/carbonml/preprocessing"
)

func init() {
	gob.Register(&NumericBranch{})
	gob.Register(&CategoricalBranch{})
}

// ColumnBranch is one named transformation branch over a fixed set of
// columns. New branch kinds plug into ColumnTransformer without any
// downstream change.
type ColumnBranch interface {
	// Name identifies the branch ("num", "cat").
	Name() string

	// Columns returns the input column names the branch consumes.
	Columns() []string

	// Fit learns the branch's parameters from the table.
	Fit(tbl *dataset.Table) error

	// Transform maps the branch's columns to a numeric block.
	Transform(tbl *dataset.Table) (*mat.Dense, error)

	// FeatureNamesOut returns one name per output column, in output order.
	FeatureNamesOut() ([]string, error)

	// Clone returns an unfitted copy of the branch.
	Clone() ColumnBranch
}

// ColumnTransformer applies its branches in order and horizontally stacks
// their outputs. The output column order is therefore branch order, then each
// branch's own output order.
type ColumnTransformer struct {
	model.BaseEstimator

	Branches []ColumnBranch
}

// NewColumnTransformer creates a ColumnTransformer over the given branches.
func NewColumnTransformer(branches ...ColumnBranch) *ColumnTransformer {
	return &ColumnTransformer{Branches: branches}
}

// Fit fits every branch on the table.
func (ct *ColumnTransformer) Fit(tbl *dataset.Table) error {
	for _, b := range ct.Branches {
		if err := b.Fit(tbl); err != nil {
			return errors.Wrapf(err, "ColumnTransformer: branch %q", b.Name())
		}
	}
	ct.SetFitted()
	return nil
}

// Transform maps the table through every fitted branch and stacks the blocks.
func (ct *ColumnTransformer) Transform(tbl *dataset.Table) (*mat.Dense, error) {
	if !ct.IsFitted() {
		return nil, errors.NewNotFittedError("ColumnTransformer", "Transform")
	}

	blocks := make([]*mat.Dense, len(ct.Branches))
	total := 0
	for i, b := range ct.Branches {
		block, err := b.Transform(tbl)
		if err != nil {
			return nil, errors.Wrapf(err, "ColumnTransformer: branch %q", b.Name())
		}
		blocks[i] = block
		_, c := block.Dims()
		total += c
	}

	// Every branch can legitimately emit zero columns (a categorical table
	// with no observed categories); a model cannot be fit on zero features,
	// so stop here instead of panicking on a zero-width allocation.
	if total == 0 {
		return nil, errors.NewSchemaError("ColumnTransformer.Transform", "", "branches produced no output columns")
	}

	rows := tbl.NumRows()
	result := mat.NewDense(rows, total, nil)
	offset := 0
	for _, block := range blocks {
		_, c := block.Dims()
		for i := 0; i < rows; i++ {
			for j := 0; j < c; j++ {
				result.Set(i, offset+j, block.At(i, j))
			}
		}
		offset += c
	}
	return result, nil
}

// FitTransform fits on the table and transforms it.
func (ct *ColumnTransformer) FitTransform(tbl *dataset.Table) (*mat.Dense, error) {
	if err := ct.Fit(tbl); err != nil {
		return nil, err
	}
	return ct.Transform(tbl)
}

// FeatureNamesOut concatenates every branch's output names in branch order.
// Order fidelity with Transform's output columns is what lets importances be
// labeled after encoding.
func (ct *ColumnTransformer) FeatureNamesOut() ([]string, error) {
	if !ct.IsFitted() {
		return nil, errors.NewNotFittedError("ColumnTransformer", "FeatureNamesOut")
	}
	var names []string
	for _, b := range ct.Branches {
		branchNames, err := b.FeatureNamesOut()
		if err != nil {
			return nil, errors.Wrapf(err, "ColumnTransformer: branch %q", b.Name())
		}
		names = append(names, branchNames...)
	}
	return names, nil
}

// Clone returns an unfitted deep copy. Every candidate pipeline owns its own
// clone so fitted scalers and encoders are never shared across candidates.
func (ct *ColumnTransformer) Clone() *ColumnTransformer {
	branches := make([]ColumnBranch, len(ct.Branches))
	for i, b := range ct.Branches {
		branches[i] = b.Clone()
	}
	return NewColumnTransformer(branches...)
}

// Branch returns the named branch, or false when absent.
func (ct *ColumnTransformer) Branch(name string) (ColumnBranch, bool) {
	for _, b := range ct.Branches {
		if b.Name() == name {
			return b, true
		}
	}
	return nil, false
}

// NewPreprocessor builds the standard preprocessing plan for a feature table
// (target already removed): a "num" branch standardizing numeric columns and
// a "cat" branch one-hot encoding categorical columns. Branches with no
// matching columns are omitted.
//
// Returns the plan plus the numeric and categorical column-name lists, both
// needed later for feature-name reconciliation. A table with zero feature
// columns is a configuration error.
func NewPreprocessor(tbl *dataset.Table) (*ColumnTransformer, []string, []string, error) {
	if tbl.NumColumns() == 0 {
		return nil, nil, nil, errors.NewSchemaError("compose.NewPreprocessor", "", "table has no feature columns")
	}

	numeric := tbl.NumericColumns()
	categorical := tbl.CategoricalColumns()

	var branches []ColumnBranch
	if len(numeric) > 0 {
		branches = append(branches, NewNumericBranch(numeric))
	}
	if len(categorical) > 0 {
		branches = append(branches, NewCategoricalBranch(categorical))
	}
	return NewColumnTransformer(branches...), numeric, categorical, nil
}

// NumericBranch standardizes a set of numeric columns.
type NumericBranch struct {
	Cols   []string
	Scaler *preprocessing.StandardScaler
}

// NewNumericBranch creates the standardization branch for the named columns.
func NewNumericBranch(columns []string) *NumericBranch {
	scaler := preprocessing.NewStandardScalerDefault()
	scaler.ColumnNames = columns
	return &NumericBranch{Cols: columns, Scaler: scaler}
}

// Name returns "num".
func (b *NumericBranch) Name() string { return "num" }

// Columns returns the branch's input column names.
func (b *NumericBranch) Columns() []string { return b.Cols }

// Fit learns scaling statistics from the table's numeric columns.
func (b *NumericBranch) Fit(tbl *dataset.Table) error {
	X, err := b.matrix(tbl)
	if err != nil {
		return err
	}
	return b.Scaler.Fit(X)
}

// Transform standardizes the table's numeric columns.
func (b *NumericBranch) Transform(tbl *dataset.Table) (*mat.Dense, error) {
	X, err := b.matrix(tbl)
	if err != nil {
		return nil, err
	}
	out, err := b.Scaler.Transform(X)
	if err != nil {
		return nil, err
	}
	return out.(*mat.Dense), nil
}

// FeatureNamesOut returns the column names unchanged; scaling does not expand
// columns.
func (b *NumericBranch) FeatureNamesOut() ([]string, error) {
	return append([]string(nil), b.Cols...), nil
}

// Clone returns an unfitted copy.
func (b *NumericBranch) Clone() ColumnBranch {
	return NewNumericBranch(append([]string(nil), b.Cols...))
}

func (b *NumericBranch) matrix(tbl *dataset.Table) (*mat.Dense, error) {
	rows := tbl.NumRows()
	X := mat.NewDense(rows, len(b.Cols), nil)
	for j, name := range b.Cols {
		col, ok := tbl.Column(name)
		if !ok {
			return nil, errors.NewSchemaError("NumericBranch", name, "column not found")
		}
		if col.Type != dataset.Numeric {
			return nil, errors.NewSchemaError("NumericBranch", name, "column is not numeric")
		}
		for i := 0; i < rows; i++ {
			X.Set(i, j, col.Numeric[i])
		}
	}
	return X, nil
}

// CategoricalBranch one-hot encodes a set of categorical columns.
type CategoricalBranch struct {
	Cols    []string
	Encoder *preprocessing.OneHotEncoder
}

// NewCategoricalBranch creates the indicator-expansion branch for the named
// columns.
func NewCategoricalBranch(columns []string) *CategoricalBranch {
	return &CategoricalBranch{
		Cols:    columns,
		Encoder: preprocessing.NewOneHotEncoder(columns),
	}
}

// Name returns "cat".
func (b *CategoricalBranch) Name() string { return "cat" }

// Columns returns the branch's input column names.
func (b *CategoricalBranch) Columns() []string { return b.Cols }

// Fit records the categories observed in the table's categorical columns.
func (b *CategoricalBranch) Fit(tbl *dataset.Table) error {
	values, err := b.values(tbl)
	if err != nil {
		return err
	}
	return b.Encoder.Fit(values)
}

// Transform encodes the table's categorical columns into indicators.
func (b *CategoricalBranch) Transform(tbl *dataset.Table) (*mat.Dense, error) {
	values, err := b.values(tbl)
	if err != nil {
		return nil, err
	}
	return b.Encoder.Transform(values)
}

// FeatureNamesOut returns one "<column>_<category>" name per indicator
// column.
func (b *CategoricalBranch) FeatureNamesOut() ([]string, error) {
	return b.Encoder.FeatureNamesOut()
}

// Clone returns an unfitted copy.
func (b *CategoricalBranch) Clone() ColumnBranch {
	return NewCategoricalBranch(append([]string(nil), b.Cols...))
}

func (b *CategoricalBranch) values(tbl *dataset.Table) ([][]string, error) {
	values := make([][]string, len(b.Cols))
	for j, name := range b.Cols {
		col, ok := tbl.Column(name)
		if !ok {
			return nil, errors.NewSchemaError("CategoricalBranch", name, "column not found")
		}
		if col.Type != dataset.Categorical {
			return nil, errors.NewSchemaError("CategoricalBranch", name, "column is not categorical")
		}
		values[j] = col.Categorical
	}
	return values, nil
}
