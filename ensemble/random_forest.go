package ensemble

import (
	"encoding/gob"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/carbonml/carbonml/core/model"
	"github.com/carbonml/carbonml/pkg/errors"
)

func init() {
	gob.Register(&RandomForestRegressor{})
	gob.Register(&GradientBoostingRegressor{})
}

// RandomForestRegressor averages fully grown regression trees fitted on
// bootstrap samples. Trees are fitted sequentially; each draws its bootstrap
// from its own seeded source (RandomState + tree index), so a refit on
// identical data reproduces the forest exactly.
type RandomForestRegressor struct {
	model.BaseEstimator

	NEstimators     int
	MaxDepth        int // <= 0 means unlimited
	MinSamplesSplit int
	MinSamplesLeaf  int
	MaxFeatures     int // 0 uses all features at every split
	Bootstrap       bool
	RandomState     int64

	Trees     []*RegressionTree
	NFeatures int
}

// NewRandomForestRegressor creates a forest with defaults matching the
// selection pipeline: 100 trees, unlimited depth, bootstrap on, seed 42.
func NewRandomForestRegressor() *RandomForestRegressor {
	return &RandomForestRegressor{
		NEstimators:     100,
		MaxDepth:        0,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		MaxFeatures:     0,
		Bootstrap:       true,
		RandomState:     42,
	}
}

// WithNEstimators sets the number of trees.
func (rf *RandomForestRegressor) WithNEstimators(n int) *RandomForestRegressor {
	rf.NEstimators = n
	return rf
}

// WithRandomState sets the seed.
func (rf *RandomForestRegressor) WithRandomState(seed int64) *RandomForestRegressor {
	rf.RandomState = seed
	return rf
}

// Fit trains the forest on X (n×p) and the column vector y.
func (rf *RandomForestRegressor) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("RandomForestRegressor.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("RandomForestRegressor.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("RandomForestRegressor.Fit", "y must be a column vector")
	}

	Xd := mat.DenseCopyOf(X)
	yv := make([]float64, r)
	for i := 0; i < r; i++ {
		yv[i] = y.At(i, 0)
	}

	rf.NFeatures = c
	rf.Trees = make([]*RegressionTree, rf.NEstimators)
	for i := 0; i < rf.NEstimators; i++ {
		rng := rand.New(rand.NewSource(rf.RandomState + int64(i)))
		rows := make([]int, r)
		for j := 0; j < r; j++ {
			if rf.Bootstrap {
				rows[j] = rng.Intn(r)
			} else {
				rows[j] = j
			}
		}

		tree := &RegressionTree{
			MaxDepth:        rf.MaxDepth,
			MinSamplesSplit: rf.MinSamplesSplit,
			MinSamplesLeaf:  rf.MinSamplesLeaf,
			MaxFeatures:     rf.MaxFeatures,
			Seed:            rf.RandomState + int64(i),
		}
		tree.Fit(Xd, yv, rows)
		rf.Trees[i] = tree
	}

	rf.SetFitted()
	return nil
}

// Predict returns the mean prediction over all trees as an n×1 matrix.
func (rf *RandomForestRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !rf.IsFitted() {
		return nil, errors.NewNotFittedError("RandomForestRegressor", "Predict")
	}
	r, c := X.Dims()
	if c != rf.NFeatures {
		return nil, errors.NewDimensionError("RandomForestRegressor.Predict", rf.NFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		sum := 0.0
		for _, tree := range rf.Trees {
			sum += tree.PredictRow(X, i)
		}
		predictions.Set(i, 0, sum/float64(len(rf.Trees)))
	}
	return predictions, nil
}

// FeatureImportances returns the mean of per-tree normalized impurity
// importances, rescaled to sum to 1. Reports false before fitting.
func (rf *RandomForestRegressor) FeatureImportances() ([]float64, bool) {
	if !rf.IsFitted() || len(rf.Trees) == 0 {
		return nil, false
	}
	out := make([]float64, rf.NFeatures)
	for _, tree := range rf.Trees {
		for i, v := range tree.NormalizedImportances() {
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

// GetParams returns the forest's hyperparameters.
func (rf *RandomForestRegressor) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_estimators":      rf.NEstimators,
		"max_depth":         rf.MaxDepth,
		"min_samples_split": rf.MinSamplesSplit,
		"min_samples_leaf":  rf.MinSamplesLeaf,
		"max_features":      rf.MaxFeatures,
		"bootstrap":         rf.Bootstrap,
		"random_state":      rf.RandomState,
	}
}
