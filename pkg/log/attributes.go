// Package log defines standard attribute keys for the carbonml pipeline.
//
// Using these keys keeps log output consistent across packages so a run can
// be filtered and compared across invocations. Keys follow a hierarchical
// naming convention (e.g. "model.name", "data.samples").
package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator or candidate by name.
	// Examples: "RandomForest", "GradientBoosting"
	ModelNameKey = "model.name"

	// OperationKey specifies the pipeline operation being performed.
	// Standard values: "fit", "predict", "transform", "select", "persist"
	OperationKey = "ml.operation"

	// ComponentKey identifies the package performing the operation.
	// Examples: "selection", "preprocessing", "inspect"
	ComponentKey = "ml.component"
)

// Data shape.
const (
	// SamplesKey is the number of rows being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature columns being processed.
	FeaturesKey = "data.features"

	// NumericColumnsKey lists the columns routed to the numeric branch.
	NumericColumnsKey = "data.numeric_columns"

	// CategoricalColumnsKey lists the columns routed to the categorical
	// branch.
	CategoricalColumnsKey = "data.categorical_columns"
)

// Evaluation metrics.
const (
	// MAEKey is the mean absolute error on the held-out split.
	MAEKey = "metric.mae"

	// RMSEKey is the root mean squared error on the held-out split.
	RMSEKey = "metric.rmse"

	// R2Key is the coefficient of determination on the held-out split.
	R2Key = "metric.r2"
)

// Performance.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)
