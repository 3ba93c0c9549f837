package preprocessing

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/carbonml/carbonml/core/model"
	"github.com/carbonml/carbonml/pkg/errors"
)

// Imputation strategies.
const (
	StrategyMedian = "median"
	StrategyMean   = "mean"
)

// SimpleImputer fills NaN entries with a per-column statistic.
//
// It runs after encoding, so its input is always a fully numeric matrix of
// standardized and indicator columns. A column with no observed values gets a
// statistic of 0 to keep the transform total.
type SimpleImputer struct {
	model.BaseEstimator

	// Strategy is "median" (default) or "mean".
	Strategy string

	// Statistics is the fitted per-column fill value.
	Statistics []float64

	// NFeatures is the number of features seen during fitting.
	NFeatures int
}

// NewSimpleImputer creates a SimpleImputer with the given strategy.
func NewSimpleImputer(strategy string) *SimpleImputer {
	if strategy == "" {
		strategy = StrategyMedian
	}
	return &SimpleImputer{Strategy: strategy}
}

// Fit computes the per-column fill statistic over non-NaN entries.
func (im *SimpleImputer) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 {
		return errors.NewModelError("SimpleImputer.Fit", "empty data", errors.ErrEmptyData)
	}
	if im.Strategy != StrategyMedian && im.Strategy != StrategyMean {
		return errors.NewValueError("SimpleImputer.Fit", "unknown strategy "+im.Strategy)
	}

	im.NFeatures = c
	im.Statistics = make([]float64, c)
	for j := 0; j < c; j++ {
		observed := make([]float64, 0, r)
		for i := 0; i < r; i++ {
			v := X.At(i, j)
			if !math.IsNaN(v) {
				observed = append(observed, v)
			}
		}
		if len(observed) == 0 {
			im.Statistics[j] = 0
			continue
		}
		switch im.Strategy {
		case StrategyMean:
			sum := 0.0
			for _, v := range observed {
				sum += v
			}
			im.Statistics[j] = sum / float64(len(observed))
		default:
			im.Statistics[j] = median(observed)
		}
	}

	im.SetFitted()
	return nil
}

// Transform replaces NaN entries with the fitted statistics.
func (im *SimpleImputer) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !im.IsFitted() {
		return nil, errors.NewNotFittedError("SimpleImputer", "Transform")
	}

	r, c := X.Dims()
	if c != im.NFeatures {
		return nil, errors.NewDimensionError("SimpleImputer.Transform", im.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := X.At(i, j)
			if math.IsNaN(v) {
				v = im.Statistics[j]
			}
			result.Set(i, j, v)
		}
	}

	return result, nil
}

// FitTransform fits on X and transforms it.
func (im *SimpleImputer) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := im.Fit(X); err != nil {
		return nil, err
	}
	return im.Transform(X)
}

// GetParams returns the imputer's parameters.
func (im *SimpleImputer) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"strategy": im.Strategy,
	}
}

// median returns the middle value of vs; the mean of the two middle values
// for even lengths. vs is sorted in place.
func median(vs []float64) float64 {
	sort.Float64s(vs)
	n := len(vs)
	if n%2 == 1 {
		return vs[n/2]
	}
	return (vs[n/2-1] + vs[n/2]) / 2
}
