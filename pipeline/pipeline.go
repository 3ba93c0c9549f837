// Package pipeline composes the three fixed stages every candidate shares:
// column-routed preprocessing, missing-value imputation, and the estimator.
//
// Imputation runs after encoding on purpose: at that point every column is
// numeric (scaled values or indicators), so one median strategy covers the
// whole matrix instead of special-casing raw mixed-type columns.
package pipeline

import (
	"gonum.org/v1/gonum/mat"

	"github.com/carbonml/carbonml/compose"
	"github.com/carbonml/carbonml/core/model"
	"github.com/carbonml/carbonml/dataset"
	"github.com/carbonml/carbonml/pkg/errors"
	"github.com/carbonml/carbonml/preprocessing"
)

// Pipeline maps a raw feature table to predictions through its fitted stages.
// Once fitted it is self-contained: preprocessing parameters, imputation
// statistics, and the estimator all persist together.
type Pipeline struct {
	model.BaseEstimator

	Preprocessor *compose.ColumnTransformer
	Imputer      *preprocessing.SimpleImputer
	Estimator    model.Regressor
}

// New creates an unfitted pipeline with median imputation.
func New(pre *compose.ColumnTransformer, est model.Regressor) *Pipeline {
	return &Pipeline{
		Preprocessor: pre,
		Imputer:      preprocessing.NewSimpleImputer(preprocessing.StrategyMedian),
		Estimator:    est,
	}
}

// Fit fits preprocessing, imputation, and the estimator on the training
// table. Any stage failure propagates; a half-fitted pipeline is never
// marked fitted.
func (p *Pipeline) Fit(tbl *dataset.Table, y *mat.VecDense) error {
	if tbl.NumRows() != y.Len() {
		return errors.NewDimensionError("Pipeline.Fit", tbl.NumRows(), y.Len(), 0)
	}

	encoded, err := p.Preprocessor.FitTransform(tbl)
	if err != nil {
		return err
	}
	imputed, err := p.Imputer.FitTransform(encoded)
	if err != nil {
		return err
	}
	if err := p.Estimator.Fit(imputed, y); err != nil {
		return err
	}

	p.SetFitted()
	return nil
}

// Predict maps a raw table with the original column set to a prediction
// vector.
func (p *Pipeline) Predict(tbl *dataset.Table) (*mat.VecDense, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("Pipeline", "Predict")
	}

	encoded, err := p.Preprocessor.Transform(tbl)
	if err != nil {
		return nil, err
	}
	imputed, err := p.Imputer.Transform(encoded)
	if err != nil {
		return nil, err
	}
	pred, err := p.Estimator.Predict(imputed)
	if err != nil {
		return nil, err
	}

	r, c := pred.Dims()
	if c != 1 {
		return nil, errors.NewDimensionError("Pipeline.Predict", 1, c, 1)
	}
	out := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		out.SetVec(i, pred.At(i, 0))
	}
	return out, nil
}

// FeatureNamesOut returns the post-encoding feature names of the fitted
// preprocessing stage.
func (p *Pipeline) FeatureNamesOut() ([]string, error) {
	return p.Preprocessor.FeatureNamesOut()
}

// FeatureImportances queries the estimator's importance capability.
func (p *Pipeline) FeatureImportances() ([]float64, bool) {
	if fi, ok := p.Estimator.(model.FeatureImporter); ok {
		return fi.FeatureImportances()
	}
	return nil, false
}
