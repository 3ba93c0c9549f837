// Package model provides the shared estimator contracts for carbonml.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Regressor is the interface implemented by every candidate estimator.
type Regressor interface {
	// Fit trains the estimator on X (n_samples × n_features) and the
	// column-vector target y.
	Fit(X, y mat.Matrix) error

	// Predict returns an n×1 matrix of predictions for X.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// FeatureImporter is the capability query for per-feature importance scores.
//
// The second return value reports availability: estimators without an
// importance notion return (nil, false), which callers treat as "analysis
// unavailable" rather than an error.
type FeatureImporter interface {
	FeatureImportances() ([]float64, bool)
}

// ParameterGetter is the interface for models that expose their parameters.
type ParameterGetter interface {
	// GetParams returns the model's hyperparameters.
	GetParams() map[string]interface{}
}
