package ensemble

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/carbonml/carbonml/core/model"
	"github.com/carbonml/carbonml/pkg/errors"
)

// GradientBoostingRegressor fits shallow regression trees sequentially, each
// stage on the residuals of the running prediction (least-squares boosting).
type GradientBoostingRegressor struct {
	model.BaseEstimator

	NEstimators     int
	LearningRate    float64
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	Subsample       float64 // fraction of rows per stage; 1.0 uses all
	RandomState     int64

	InitValue float64
	Trees     []*RegressionTree
	NFeatures int
}

// NewGradientBoostingRegressor creates a boosting regressor with defaults
// matching the selection pipeline: 100 stages of depth-3 trees, learning
// rate 0.1, seed 42.
func NewGradientBoostingRegressor() *GradientBoostingRegressor {
	return &GradientBoostingRegressor{
		NEstimators:     100,
		LearningRate:    0.1,
		MaxDepth:        3,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Subsample:       1.0,
		RandomState:     42,
	}
}

// WithNEstimators sets the number of boosting stages.
func (gb *GradientBoostingRegressor) WithNEstimators(n int) *GradientBoostingRegressor {
	gb.NEstimators = n
	return gb
}

// WithRandomState sets the seed.
func (gb *GradientBoostingRegressor) WithRandomState(seed int64) *GradientBoostingRegressor {
	gb.RandomState = seed
	return gb
}

// Fit trains the boosting chain on X (n×p) and the column vector y.
func (gb *GradientBoostingRegressor) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("GradientBoostingRegressor.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("GradientBoostingRegressor.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("GradientBoostingRegressor.Fit", "y must be a column vector")
	}

	Xd := mat.DenseCopyOf(X)
	yv := make([]float64, r)
	sum := 0.0
	for i := 0; i < r; i++ {
		yv[i] = y.At(i, 0)
		sum += yv[i]
	}

	gb.NFeatures = c
	gb.InitValue = sum / float64(r)
	gb.Trees = make([]*RegressionTree, 0, gb.NEstimators)

	current := make([]float64, r)
	for i := range current {
		current[i] = gb.InitValue
	}
	residuals := make([]float64, r)

	allRows := make([]int, r)
	for i := range allRows {
		allRows[i] = i
	}
	subN := r
	if gb.Subsample > 0 && gb.Subsample < 1 {
		subN = int(float64(r) * gb.Subsample)
		if subN < 1 {
			subN = 1
		}
	}

	for m := 0; m < gb.NEstimators; m++ {
		for i := 0; i < r; i++ {
			residuals[i] = yv[i] - current[i]
		}

		rows := allRows
		if subN < r {
			rng := rand.New(rand.NewSource(gb.RandomState + int64(m)))
			perm := rng.Perm(r)
			rows = perm[:subN]
		}

		tree := &RegressionTree{
			MaxDepth:        gb.MaxDepth,
			MinSamplesSplit: gb.MinSamplesSplit,
			MinSamplesLeaf:  gb.MinSamplesLeaf,
			Seed:            gb.RandomState + int64(m),
		}
		tree.Fit(Xd, residuals, rows)
		gb.Trees = append(gb.Trees, tree)

		for i := 0; i < r; i++ {
			current[i] += gb.LearningRate * tree.PredictRow(Xd, i)
		}
	}

	gb.SetFitted()
	return nil
}

// Predict returns init + learning_rate * sum of stage predictions as an n×1
// matrix.
func (gb *GradientBoostingRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !gb.IsFitted() {
		return nil, errors.NewNotFittedError("GradientBoostingRegressor", "Predict")
	}
	r, c := X.Dims()
	if c != gb.NFeatures {
		return nil, errors.NewDimensionError("GradientBoostingRegressor.Predict", gb.NFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		pred := gb.InitValue
		for _, tree := range gb.Trees {
			pred += gb.LearningRate * tree.PredictRow(X, i)
		}
		predictions.Set(i, 0, pred)
	}
	return predictions, nil
}

// FeatureImportances returns the total impurity decrease per feature across
// all stages, normalized to sum to 1. Reports false before fitting.
func (gb *GradientBoostingRegressor) FeatureImportances() ([]float64, bool) {
	if !gb.IsFitted() || len(gb.Trees) == 0 {
		return nil, false
	}
	out := make([]float64, gb.NFeatures)
	for _, tree := range gb.Trees {
		for i, v := range tree.Importances {
			out[i] += v
		}
	}
	total := 0.0
	for _, v := range out {
		total += v
	}
	if total > 0 {
		for i := range out {
			out[i] /= total
		}
	}
	return out, true
}

// GetParams returns the regressor's hyperparameters.
func (gb *GradientBoostingRegressor) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_estimators":      gb.NEstimators,
		"learning_rate":     gb.LearningRate,
		"max_depth":         gb.MaxDepth,
		"min_samples_split": gb.MinSamplesSplit,
		"min_samples_leaf":  gb.MinSamplesLeaf,
		"subsample":         gb.Subsample,
		"random_state":      gb.RandomState,
	}
}
