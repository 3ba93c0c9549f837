package selection

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/carbonml/carbonml/dataset"
	"github.com/carbonml/carbonml/metrics"
	"github.com/carbonml/carbonml/pipeline"
	"github.com/carbonml/carbonml/pkg/errors"
	"github.com/carbonml/carbonml/pkg/log"
)

// EvaluationResult holds one candidate's held-out metrics and its fitted
// chain. Results are never mutated after Train returns them.
type EvaluationResult struct {
	Name string
	MAE  float64
	RMSE float64
	R2   float64

	Pipeline *pipeline.Pipeline
}

// Trainer fits a candidate set on a single deterministic split and evaluates
// every candidate on the same held-out rows.
type Trainer struct {
	// TestSize is the held-out fraction.
	TestSize float64

	// Seed drives the split shuffle.
	Seed int64

	// Progress, when set, is called before each candidate is fitted.
	// i is zero-based; n is the candidate count.
	Progress func(name string, i, n int)
}

// NewTrainer creates a trainer with the pipeline's fixed contract: 20%
// held out, seed 42.
func NewTrainer() *Trainer {
	return &Trainer{TestSize: 0.2, Seed: 42}
}

// Train splits once, then fits and evaluates every candidate sequentially in
// declared order against that one split.
//
// A candidate fit failure aborts the whole run: a partial candidate set
// would silently bias selection, so nothing is caught or skipped.
func (t *Trainer) Train(candidates []Candidate, tbl *dataset.Table, y *mat.VecDense) ([]EvaluationResult, error) {
	split, err := TrainTestSplit(tbl, y, t.TestSize, t.Seed)
	if err != nil {
		return nil, err
	}

	results := make([]EvaluationResult, 0, len(candidates))
	for i, cand := range candidates {
		if t.Progress != nil {
			t.Progress(cand.Name, i, len(candidates))
		}

		start := time.Now()
		if err := cand.Pipeline.Fit(split.TrainTable, split.YTrain); err != nil {
			return nil, errors.Wrapf(err, "fitting candidate %q", cand.Name)
		}

		result, err := Evaluate(cand.Name, cand.Pipeline, split.TestTable, split.YTest)
		if err != nil {
			return nil, err
		}

		slog.Info("candidate evaluated",
			log.ModelNameKey, cand.Name,
			log.OperationKey, "fit",
			log.SamplesKey, split.TrainTable.NumRows(),
			log.MAEKey, result.MAE,
			log.RMSEKey, result.RMSE,
			log.R2Key, result.R2,
			log.DurationMsKey, time.Since(start).Milliseconds(),
		)
		results = append(results, result)
	}

	return results, nil
}

// Evaluate computes the metric triple for one fitted chain on the held-out
// pair. It has no side effects; reporting belongs to the caller.
func Evaluate(name string, p *pipeline.Pipeline, testTable *dataset.Table, yTest *mat.VecDense) (EvaluationResult, error) {
	pred, err := p.Predict(testTable)
	if err != nil {
		return EvaluationResult{}, errors.Wrapf(err, "evaluating candidate %q", name)
	}

	mae, err := metrics.MAE(yTest, pred)
	if err != nil {
		return EvaluationResult{}, err
	}
	rmse, err := metrics.RMSE(yTest, pred)
	if err != nil {
		return EvaluationResult{}, err
	}
	r2, err := metrics.R2Score(yTest, pred)
	if err != nil {
		return EvaluationResult{}, err
	}

	return EvaluationResult{Name: name, MAE: mae, RMSE: rmse, R2: r2, Pipeline: p}, nil
}
