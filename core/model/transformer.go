package model

import "gonum.org/v1/gonum/mat"

// Transformer is the interface for matrix-to-matrix data transformations.
type Transformer interface {
	// Fit learns the parameters needed for the transformation.
	Fit(X mat.Matrix) error

	// Transform applies the fitted transformation.
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform runs Fit and Transform in one step.
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}
