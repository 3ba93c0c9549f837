package ensemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func allRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

func TestRegressionTreeSingleSplit(t *testing.T) {
	// One feature with a clean step: x < 5 -> 10, x >= 5 -> 20.
	X := mat.NewDense(8, 1, []float64{1, 2, 3, 4, 6, 7, 8, 9})
	y := []float64{10, 10, 10, 10, 20, 20, 20, 20}

	tree := &RegressionTree{}
	tree.Fit(X, y, allRows(8))

	require.NotNil(t, tree.Root)
	assert.False(t, tree.Root.IsLeaf)
	assert.Equal(t, 0, tree.Root.Feature)
	assert.Equal(t, 5.0, tree.Root.Threshold)

	assert.Equal(t, 10.0, tree.PredictRow(mat.NewDense(1, 1, []float64{0}), 0))
	assert.Equal(t, 20.0, tree.PredictRow(mat.NewDense(1, 1, []float64{100}), 0))
}

func TestRegressionTreeConstantTargetIsLeaf(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := []float64{7, 7, 7, 7}

	tree := &RegressionTree{}
	tree.Fit(X, y, allRows(4))

	assert.True(t, tree.Root.IsLeaf)
	assert.Equal(t, 7.0, tree.Root.Value)
}

func TestRegressionTreeMaxDepth(t *testing.T) {
	X := mat.NewDense(8, 1, []float64{1, 2, 3, 4, 5, 6, 7, 8})
	y := []float64{1, 2, 3, 4, 5, 6, 7, 8}

	tree := &RegressionTree{MaxDepth: 1}
	tree.Fit(X, y, allRows(8))

	require.False(t, tree.Root.IsLeaf)
	assert.True(t, tree.Root.Left.IsLeaf)
	assert.True(t, tree.Root.Right.IsLeaf)
}

func TestRegressionTreeImportancePicksInformativeFeature(t *testing.T) {
	// Feature 1 is noise; feature 0 fully determines y.
	rows := 20
	X := mat.NewDense(rows, 2, nil)
	y := make([]float64, rows)
	for i := 0; i < rows; i++ {
		X.Set(i, 0, float64(i))
		X.Set(i, 1, float64((i*7)%3))
		y[i] = float64(i) * 2
	}

	tree := &RegressionTree{}
	tree.Fit(X, y, allRows(rows))

	imp := tree.NormalizedImportances()
	require.Len(t, imp, 2)
	assert.Greater(t, imp[0], imp[1])

	sum := 0.0
	for _, v := range imp {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestRegressionTreeMinSamplesLeaf(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := []float64{1, 1, 1, 10}

	tree := &RegressionTree{MinSamplesLeaf: 2}
	tree.Fit(X, y, allRows(4))

	// The only worthwhile split isolates the last row, which the leaf
	// constraint forbids at that position; the chosen split must keep two
	// rows on each side.
	if !tree.Root.IsLeaf {
		assert.Equal(t, 2.5, tree.Root.Threshold)
	}
}
