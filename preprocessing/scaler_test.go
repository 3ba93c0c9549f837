package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	scierrors "github.com/carbonml/carbonml/pkg/errors"
)

func TestStandardScalerFitTransform(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
		4, 40,
	})

	scaler := NewStandardScalerDefault()
	scaled, err := scaler.FitTransform(X)
	require.NoError(t, err)

	r, c := scaled.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 2, c)

	// Each column should have zero mean and unit variance.
	for j := 0; j < c; j++ {
		var sum, sumSq float64
		for i := 0; i < r; i++ {
			sum += scaled.At(i, j)
		}
		mean := sum / float64(r)
		assert.InDelta(t, 0.0, mean, 1e-12)
		for i := 0; i < r; i++ {
			d := scaled.At(i, j) - mean
			sumSq += d * d
		}
		assert.InDelta(t, 1.0, math.Sqrt(sumSq/float64(r)), 1e-12)
	}
}

func TestStandardScalerIgnoresNaNInFit(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{2, math.NaN(), 4, 6})

	scaler := NewStandardScalerDefault()
	require.NoError(t, scaler.Fit(X))

	// Statistics over the observed values {2, 4, 6}.
	assert.InDelta(t, 4.0, scaler.Mean[0], 1e-12)
	assert.InDelta(t, math.Sqrt(8.0/3.0), scaler.Scale[0], 1e-12)

	out, err := scaler.Transform(X)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(out.At(1, 0)), "NaN must pass through for the imputer")
	assert.False(t, math.IsNaN(out.At(0, 0)))
}

func TestStandardScalerConstantColumnWarns(t *testing.T) {
	var warned error
	scierrors.SetWarningHandler(func(w error) { warned = w })
	defer scierrors.SetWarningHandler(func(error) {})

	X := mat.NewDense(3, 1, []float64{5, 5, 5})
	scaler := NewStandardScalerDefault()
	scaler.ColumnNames = []string{"HouseholdSize"}
	require.NoError(t, scaler.Fit(X))

	assert.Equal(t, 1.0, scaler.Scale[0])

	var cw *scierrors.ConstantFeatureWarning
	require.True(t, scierrors.As(warned, &cw))
	assert.Equal(t, "HouseholdSize", cw.Column)

	out, err := scaler.Transform(X)
	require.NoError(t, err)
	assert.Equal(t, 0.0, out.At(0, 0))
}

func TestStandardScalerNotFitted(t *testing.T) {
	scaler := NewStandardScalerDefault()
	_, err := scaler.Transform(mat.NewDense(1, 1, []float64{1}))
	require.Error(t, err)

	var nf *scierrors.NotFittedError
	assert.True(t, scierrors.As(err, &nf))
}

func TestStandardScalerDimensionMismatch(t *testing.T) {
	scaler := NewStandardScalerDefault()
	require.NoError(t, scaler.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))

	_, err := scaler.Transform(mat.NewDense(2, 3, nil))
	require.Error(t, err)

	var dimErr *scierrors.DimensionError
	assert.True(t, scierrors.As(err, &dimErr))
}

func TestStandardScalerInverseTransformRoundTrip(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 5, 9})
	scaler := NewStandardScalerDefault()
	scaled, err := scaler.FitTransform(X)
	require.NoError(t, err)

	back, err := scaler.InverseTransform(scaled)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, X.At(i, 0), back.At(i, 0), 1e-12)
	}
}
