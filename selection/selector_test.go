package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scierrors "github.com/carbonml/carbonml/pkg/errors"
)

func TestSelectBestPicksHighestR2(t *testing.T) {
	results := []EvaluationResult{
		{Name: "RandomForest", R2: 0.81},
		{Name: "GradientBoosting", R2: 0.93},
	}

	best, err := SelectBest(results)
	require.NoError(t, err)
	assert.Equal(t, "GradientBoosting", best.Name)
}

func TestSelectBestTieGoesToFirstDeclared(t *testing.T) {
	results := []EvaluationResult{
		{Name: "RandomForest", R2: 0.9},
		{Name: "GradientBoosting", R2: 0.9},
	}

	best, err := SelectBest(results)
	require.NoError(t, err)
	assert.Equal(t, "RandomForest", best.Name, "ties must keep the first-declared candidate")
}

func TestSelectBestNegativeScores(t *testing.T) {
	results := []EvaluationResult{
		{Name: "RandomForest", R2: -2.5},
		{Name: "GradientBoosting", R2: -0.1},
	}

	best, err := SelectBest(results)
	require.NoError(t, err)
	assert.Equal(t, "GradientBoosting", best.Name)
}

func TestSelectBestEmptySet(t *testing.T) {
	_, err := SelectBest(nil)
	require.Error(t, err)

	var emptyErr *scierrors.EmptyCandidateSetError
	assert.True(t, scierrors.As(err, &emptyErr))
}
