package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaError(t *testing.T) {
	err := NewSchemaError("SplitTarget", "CarbonEmission", "target column not found")

	var schemaErr *SchemaError
	assert.True(t, As(err, &schemaErr))
	assert.Equal(t, "CarbonEmission", schemaErr.Column)
	assert.Contains(t, err.Error(), "CarbonEmission")
	assert.Contains(t, err.Error(), "target column not found")
}

func TestUndefinedMetricError(t *testing.T) {
	err := NewUndefinedMetricError("R2Score", "y_true has zero variance")

	var metricErr *UndefinedMetricError
	assert.True(t, As(err, &metricErr))
	assert.Equal(t, "R2Score", metricErr.Metric)
	assert.Contains(t, err.Error(), "undefined")
}

func TestEmptyCandidateSetError(t *testing.T) {
	err := NewEmptyCandidateSetError("SelectBest")

	var emptyErr *EmptyCandidateSetError
	assert.True(t, As(err, &emptyErr))
	assert.Contains(t, err.Error(), "no candidates")
}

func TestFeatureNameMismatchError(t *testing.T) {
	err := NewFeatureNameMismatchError(7, 5)

	var mismatchErr *FeatureNameMismatchError
	assert.True(t, As(err, &mismatchErr))
	assert.Equal(t, 7, mismatchErr.Names)
	assert.Equal(t, 5, mismatchErr.Importances)
}

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("StandardScaler", "Transform")
	assert.Contains(t, err.Error(), "StandardScaler")
	assert.Contains(t, err.Error(), "not fitted")
}

func TestDimensionError(t *testing.T) {
	tests := []struct {
		name     string
		axis     int
		wantWord string
	}{
		{name: "row axis", axis: 0, wantWord: "rows"},
		{name: "feature axis", axis: 1, wantWord: "features"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDimensionError("Pipeline.Predict", 4, 3, tt.axis)
			if !strings.Contains(err.Error(), tt.wantWord) {
				t.Errorf("DimensionError message %q does not mention %q", err.Error(), tt.wantWord)
			}
		})
	}
}

func TestWarnUsesHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(nil)

	w := NewConstantFeatureWarning("HouseholdSize", 4)
	Warn(w)

	assert.Equal(t, w, captured)
	assert.Contains(t, w.Error(), "HouseholdSize")
}

func TestWrapPreservesType(t *testing.T) {
	base := NewSchemaError("ReadCSV", "", "no feature columns")
	wrapped := Wrap(base, "building preprocessor")

	var schemaErr *SchemaError
	assert.True(t, As(wrapped, &schemaErr))
}
