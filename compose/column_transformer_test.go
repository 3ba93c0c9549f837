package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonml/carbonml/dataset"
	scierrors "github.com/carbonml/carbonml/pkg/errors"
)

func mixedTable(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.NewTable(
		dataset.NewNumericColumn("MonthlyGroceryBill", []float64{100, 200, 300, 400}),
		dataset.NewCategoricalColumn("Transport", []string{"walk", "car", "car", "bike"}),
		dataset.NewNumericColumn("VehicleDistance", []float64{0, 120, 80, 5}),
	)
	require.NoError(t, err)
	return tbl
}

func TestNewPreprocessorRoutesByDeclaredType(t *testing.T) {
	tbl := mixedTable(t)

	pre, numeric, categorical, err := NewPreprocessor(tbl)
	require.NoError(t, err)

	assert.Equal(t, []string{"MonthlyGroceryBill", "VehicleDistance"}, numeric)
	assert.Equal(t, []string{"Transport"}, categorical)
	require.Len(t, pre.Branches, 2)
	assert.Equal(t, "num", pre.Branches[0].Name())
	assert.Equal(t, "cat", pre.Branches[1].Name())
}

func TestNewPreprocessorEmptyTable(t *testing.T) {
	tbl, err := dataset.NewTable()
	require.NoError(t, err)

	_, _, _, err = NewPreprocessor(tbl)
	require.Error(t, err)

	var schemaErr *scierrors.SchemaError
	assert.True(t, scierrors.As(err, &schemaErr))
}

func TestColumnTransformerOutputLayout(t *testing.T) {
	tbl := mixedTable(t)
	pre, _, _, err := NewPreprocessor(tbl)
	require.NoError(t, err)

	out, err := pre.FitTransform(tbl)
	require.NoError(t, err)

	r, c := out.Dims()
	assert.Equal(t, 4, r)
	// 2 scaled numeric columns + 3 Transport indicators.
	assert.Equal(t, 5, c)

	names, err := pre.FeatureNamesOut()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"MonthlyGroceryBill", "VehicleDistance",
		"Transport_bike", "Transport_car", "Transport_walk",
	}, names)

	// Indicator block: row 0 is "walk".
	assert.Equal(t, 0.0, out.At(0, 2))
	assert.Equal(t, 0.0, out.At(0, 3))
	assert.Equal(t, 1.0, out.At(0, 4))
}

func TestColumnTransformerCloneIsUnfittedAndIndependent(t *testing.T) {
	tbl := mixedTable(t)
	pre, _, _, err := NewPreprocessor(tbl)
	require.NoError(t, err)

	clone := pre.Clone()
	require.NoError(t, pre.Fit(tbl))

	assert.True(t, pre.IsFitted())
	assert.False(t, clone.IsFitted())

	// Fitting the original must not fit the clone's branches.
	_, err = clone.Transform(tbl)
	require.Error(t, err)
}

func TestColumnTransformerAllNumericTable(t *testing.T) {
	tbl, err := dataset.NewTable(
		dataset.NewNumericColumn("A", []float64{1, 2, 3}),
	)
	require.NoError(t, err)

	pre, numeric, categorical, err := NewPreprocessor(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, numeric)
	assert.Empty(t, categorical)
	require.Len(t, pre.Branches, 1)

	out, err := pre.FitTransform(tbl)
	require.NoError(t, err)
	_, c := out.Dims()
	assert.Equal(t, 1, c)
}

func TestColumnTransformerAllMissingCategoricalTable(t *testing.T) {
	// Every value missing: the encoder observes zero categories, so the
	// whole plan has zero output columns. That must surface as a schema
	// error, never a panic from the stacking step.
	tbl, err := dataset.NewTable(
		dataset.NewCategoricalColumn("Transport", []string{"", "", ""}),
	)
	require.NoError(t, err)

	pre, numeric, categorical, err := NewPreprocessor(tbl)
	require.NoError(t, err)
	assert.Empty(t, numeric)
	assert.Equal(t, []string{"Transport"}, categorical)

	_, err = pre.FitTransform(tbl)
	require.Error(t, err)

	var schemaErr *scierrors.SchemaError
	assert.True(t, scierrors.As(err, &schemaErr))
}

func TestColumnTransformerNotFitted(t *testing.T) {
	tbl := mixedTable(t)
	pre, _, _, err := NewPreprocessor(tbl)
	require.NoError(t, err)

	_, err = pre.Transform(tbl)
	require.Error(t, err)

	var nf *scierrors.NotFittedError
	assert.True(t, scierrors.As(err, &nf))
}
