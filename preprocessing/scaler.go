// Package preprocessing provides the feature transformations the pipeline
// composes: standardization for numeric columns, indicator expansion for
// categorical columns, and missing-value imputation on the assembled matrix.
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/carbonml/carbonml/core/model"
	"github.com/carbonml/carbonml/pkg/errors"
)

// StandardScaler standardizes features to zero mean and unit variance.
//
// Fitting is NaN-aware: statistics are computed over observed values only,
// and Transform propagates NaN unchanged so the imputer downstream can fill
// it. Zero-variance columns keep a scale of 1 and emit a
// ConstantFeatureWarning.
type StandardScaler struct {
	model.BaseEstimator

	// Mean is the per-feature mean over observed values.
	Mean []float64

	// Scale is the per-feature standard deviation over observed values.
	Scale []float64

	// NFeatures is the number of features seen during fitting.
	NFeatures int

	// ColumnNames, when set before fitting, names features in warnings.
	ColumnNames []string

	// WithMean controls mean subtraction (default true).
	WithMean bool

	// WithStd controls division by the standard deviation (default true).
	WithStd bool
}

// NewStandardScaler creates a StandardScaler.
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		WithMean: withMean,
		WithStd:  withStd,
	}
}

// NewStandardScalerDefault creates a StandardScaler with default settings.
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// Fit computes per-feature means and standard deviations over observed
// (non-NaN) values.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	s.NFeatures = c
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	for j := 0; j < c; j++ {
		sum := 0.0
		count := 0
		for i := 0; i < r; i++ {
			v := X.At(i, j)
			if math.IsNaN(v) {
				continue
			}
			sum += v
			count++
		}
		if s.WithMean && count > 0 {
			s.Mean[j] = sum / float64(count)
		}

		if !s.WithStd {
			s.Scale[j] = 1.0
			continue
		}
		sumSquares := 0.0
		for i := 0; i < r; i++ {
			v := X.At(i, j)
			if math.IsNaN(v) {
				continue
			}
			diff := v - s.Mean[j]
			sumSquares += diff * diff
		}
		if count == 0 {
			s.Scale[j] = 1.0
			continue
		}
		variance := sumSquares / float64(count)
		s.Scale[j] = math.Sqrt(variance)

		// Constant column: clamp scale to avoid division by zero.
		if math.Abs(s.Scale[j]) < 1e-8 {
			s.Scale[j] = 1.0
			errors.Warn(errors.NewConstantFeatureWarning(s.columnName(j), s.Mean[j]))
		}
	}

	s.SetFitted()
	return nil
}

// Transform standardizes X using the fitted statistics. NaN entries stay NaN.
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.Transform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			value := X.At(i, j)
			if math.IsNaN(value) {
				result.Set(i, j, value)
				continue
			}
			result.Set(i, j, (value-s.Mean[j])/s.Scale[j])
		}
	}

	return result, nil
}

// FitTransform fits on X and transforms it.
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform maps standardized data back to the original scale.
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "InverseTransform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.InverseTransform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			value := X.At(i, j)
			result.Set(i, j, value*s.Scale[j]+s.Mean[j])
		}
	}

	return result, nil
}

// GetParams returns the scaler's parameters.
func (s *StandardScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"with_mean": s.WithMean,
		"with_std":  s.WithStd,
	}
}

// String returns a textual representation of the scaler.
func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.WithMean, s.WithStd)
	}
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, n_features=%d)",
		s.WithMean, s.WithStd, s.NFeatures)
}

func (s *StandardScaler) columnName(j int) string {
	if j < len(s.ColumnNames) {
		return s.ColumnNames[j]
	}
	return fmt.Sprintf("column_%d", j)
}
