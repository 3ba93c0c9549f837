package pipeline

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/carbonml/carbonml/compose"
	"github.com/carbonml/carbonml/core/model"
	"github.com/carbonml/carbonml/dataset"
	"github.com/carbonml/carbonml/ensemble"
	scierrors "github.com/carbonml/carbonml/pkg/errors"
)

func trainingData(t *testing.T) (*dataset.Table, *mat.VecDense) {
	t.Helper()
	n := 60
	dist := make([]float64, n)
	transport := make([]string, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		dist[i] = float64(i)
		if i%2 == 0 {
			transport[i] = "car"
		} else {
			transport[i] = "walk"
		}
		ys[i] = 4 * float64(i)
		if transport[i] == "car" {
			ys[i] += 200
		}
	}
	tbl, err := dataset.NewTable(
		dataset.NewNumericColumn("VehicleDistance", dist),
		dataset.NewCategoricalColumn("Transport", transport),
	)
	require.NoError(t, err)
	return tbl, mat.NewVecDense(n, ys)
}

func fitPipeline(t *testing.T) (*Pipeline, *dataset.Table, *mat.VecDense) {
	t.Helper()
	tbl, y := trainingData(t)
	pre, _, _, err := compose.NewPreprocessor(tbl)
	require.NoError(t, err)

	p := New(pre, ensemble.NewRandomForestRegressor().WithNEstimators(15))
	require.NoError(t, p.Fit(tbl, y))
	return p, tbl, y
}

func TestPipelineFitPredict(t *testing.T) {
	p, tbl, y := fitPipeline(t)

	pred, err := p.Predict(tbl)
	require.NoError(t, err)
	require.Equal(t, y.Len(), pred.Len())

	// In-sample predictions should track the structured target closely.
	var sumAbs float64
	for i := 0; i < y.Len(); i++ {
		diff := pred.AtVec(i) - y.AtVec(i)
		if diff < 0 {
			diff = -diff
		}
		sumAbs += diff
	}
	assert.Less(t, sumAbs/float64(y.Len()), 20.0)
}

func TestPipelineUnseenCategoryDoesNotFail(t *testing.T) {
	p, _, _ := fitPipeline(t)

	probe, err := dataset.NewTable(
		dataset.NewNumericColumn("VehicleDistance", []float64{30}),
		dataset.NewCategoricalColumn("Transport", []string{"helicopter"}),
	)
	require.NoError(t, err)

	pred, err := p.Predict(probe)
	require.NoError(t, err, "unseen category must degrade to a zero indicator block")
	assert.Equal(t, 1, pred.Len())
}

func TestPipelineRowMismatch(t *testing.T) {
	tbl, _ := trainingData(t)
	pre, _, _, err := compose.NewPreprocessor(tbl)
	require.NoError(t, err)

	p := New(pre, ensemble.NewRandomForestRegressor())
	err = p.Fit(tbl, mat.NewVecDense(3, nil))
	require.Error(t, err)

	var dimErr *scierrors.DimensionError
	assert.True(t, scierrors.As(err, &dimErr))
}

func TestPipelinePredictBeforeFit(t *testing.T) {
	tbl, _ := trainingData(t)
	pre, _, _, err := compose.NewPreprocessor(tbl)
	require.NoError(t, err)

	p := New(pre, ensemble.NewRandomForestRegressor())
	_, err = p.Predict(tbl)
	require.Error(t, err)

	var nf *scierrors.NotFittedError
	assert.True(t, scierrors.As(err, &nf))
}

func TestPipelineGobRoundTrip(t *testing.T) {
	p, tbl, _ := fitPipeline(t)

	want, err := p.Predict(tbl)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, model.SaveModelToWriter(p, &buf))

	var restored Pipeline
	require.NoError(t, model.LoadModelFromReader(&restored, &buf))

	got, err := restored.Predict(tbl)
	require.NoError(t, err)
	for i := 0; i < want.Len(); i++ {
		assert.Equal(t, want.AtVec(i), got.AtVec(i), "row %d differs after reload", i)
	}

	// The restored chain keeps its importance capability.
	imp, ok := restored.FeatureImportances()
	assert.True(t, ok)
	names, err := restored.FeatureNamesOut()
	require.NoError(t, err)
	assert.Equal(t, len(names), len(imp))
}

func TestPipelineFeatureNamesOut(t *testing.T) {
	p, _, _ := fitPipeline(t)

	names, err := p.FeatureNamesOut()
	require.NoError(t, err)
	assert.Equal(t, []string{"VehicleDistance", "Transport_car", "Transport_walk"}, names)
}
