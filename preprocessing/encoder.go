package preprocessing

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/carbonml/carbonml/core/model"
	"github.com/carbonml/carbonml/pkg/errors"
)

// OneHotEncoder expands categorical string columns into one indicator column
// per category observed during fitting.
//
// Categories inside each column are ordered lexicographically, so refitting
// on identical data reproduces identical output columns. Values unseen at fit
// time, including missing values (""), encode as an all-zero indicator block
// rather than failing.
type OneHotEncoder struct {
	model.BaseEstimator

	// ColumnNames are the input column names, in input order.
	ColumnNames []string

	// Categories holds, per input column, the sorted distinct non-missing
	// values observed during fitting.
	Categories [][]string

	// NOutputs is the total number of indicator columns.
	NOutputs int
}

// NewOneHotEncoder creates an OneHotEncoder for the named columns.
func NewOneHotEncoder(columnNames []string) *OneHotEncoder {
	return &OneHotEncoder{ColumnNames: columnNames}
}

// Fit records the distinct categories of each column. values[i] carries the
// row values of the i-th column.
func (e *OneHotEncoder) Fit(values [][]string) error {
	if len(values) != len(e.ColumnNames) {
		return errors.NewDimensionError("OneHotEncoder.Fit", len(e.ColumnNames), len(values), 1)
	}

	e.Categories = make([][]string, len(values))
	e.NOutputs = 0
	for i, col := range values {
		seen := make(map[string]struct{}, 8)
		for _, v := range col {
			if v == "" {
				continue
			}
			seen[v] = struct{}{}
		}
		cats := make([]string, 0, len(seen))
		for v := range seen {
			cats = append(cats, v)
		}
		sort.Strings(cats)
		e.Categories[i] = cats
		e.NOutputs += len(cats)
	}

	e.SetFitted()
	return nil
}

// Transform encodes the columns into an n×NOutputs indicator matrix.
func (e *OneHotEncoder) Transform(values [][]string) (*mat.Dense, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "Transform")
	}
	if len(values) != len(e.ColumnNames) {
		return nil, errors.NewDimensionError("OneHotEncoder.Transform", len(e.ColumnNames), len(values), 1)
	}

	rows := 0
	if len(values) > 0 {
		rows = len(values[0])
	}
	// No categories observed anywhere: an empty block, never a panic from a
	// zero-width allocation.
	if e.NOutputs == 0 {
		return &mat.Dense{}, nil
	}

	result := mat.NewDense(rows, e.NOutputs, nil)
	offset := 0
	for i, col := range values {
		if len(col) != rows {
			return nil, errors.NewDimensionError("OneHotEncoder.Transform", rows, len(col), 0)
		}
		index := make(map[string]int, len(e.Categories[i]))
		for k, cat := range e.Categories[i] {
			index[cat] = k
		}
		for r, v := range col {
			// Unknown or missing value: the whole block stays zero.
			if k, ok := index[v]; ok {
				result.Set(r, offset+k, 1)
			}
		}
		offset += len(e.Categories[i])
	}

	return result, nil
}

// FitTransform fits on values and encodes them.
func (e *OneHotEncoder) FitTransform(values [][]string) (*mat.Dense, error) {
	if err := e.Fit(values); err != nil {
		return nil, err
	}
	return e.Transform(values)
}

// FeatureNamesOut returns one "<column>_<category>" name per indicator
// column, in output-column order.
func (e *OneHotEncoder) FeatureNamesOut() ([]string, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "FeatureNamesOut")
	}
	names := make([]string, 0, e.NOutputs)
	for i, cats := range e.Categories {
		for _, cat := range cats {
			names = append(names, fmt.Sprintf("%s_%s", e.ColumnNames[i], cat))
		}
	}
	return names, nil
}

// GetParams returns the encoder's parameters.
func (e *OneHotEncoder) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"handle_unknown": "ignore",
	}
}
