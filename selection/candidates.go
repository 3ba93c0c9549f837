package selection

import (
	"github.com/carbonml/carbonml/compose"
	"github.com/carbonml/carbonml/ensemble"
	"github.com/carbonml/carbonml/pipeline"
)

// Candidate is one named preprocessing+imputation+estimator chain competing
// for selection. Its identity is its name; names must be unique within a
// candidate set.
type Candidate struct {
	Name     string
	Pipeline *pipeline.Pipeline
}

// NewDefaultCandidates builds the fixed candidate set, in declared order:
// a random forest and a gradient-boosting regressor, 100 estimators each,
// seed 42. Each candidate gets its own clone of the preprocessing plan, so
// fitted scalers and encoders are never shared.
//
// Declared order is selection order: the earlier candidate wins an R² tie.
func NewDefaultCandidates(pre *compose.ColumnTransformer) []Candidate {
	return []Candidate{
		{
			Name:     "RandomForest",
			Pipeline: pipeline.New(pre.Clone(), ensemble.NewRandomForestRegressor()),
		},
		{
			Name:     "GradientBoosting",
			Pipeline: pipeline.New(pre.Clone(), ensemble.NewGradientBoostingRegressor()),
		},
	}
}
