// Package selection trains the fixed candidate set on one deterministic
// split, evaluates every candidate on the same held-out rows, and picks the
// best by R².
package selection

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/carbonml/carbonml/dataset"
	"github.com/carbonml/carbonml/pkg/errors"
)

// Split is one train/test partition of a table and its target.
type Split struct {
	TrainTable *dataset.Table
	TestTable  *dataset.Table
	YTrain     *mat.VecDense
	YTest      *mat.VecDense
}

// TrainTestSplit partitions rows into train and held-out sets with a seeded
// shuffle. The same table, testSize, and seed always produce the same
// partition.
//
// The target must be label-complete: a NaN in y is a ValueError. NaN in the
// features is fine; imputation handles it later.
func TrainTestSplit(tbl *dataset.Table, y *mat.VecDense, testSize float64, seed int64) (*Split, error) {
	n := tbl.NumRows()
	if n == 0 {
		return nil, errors.NewValueError("TrainTestSplit", "empty table")
	}
	if y.Len() != n {
		return nil, errors.NewDimensionError("TrainTestSplit", n, y.Len(), 0)
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, errors.NewValueError("TrainTestSplit", "test size must be in (0, 1)")
	}
	if dataset.HasMissingTarget(y) {
		return nil, errors.NewValueError("TrainTestSplit", "target contains NaN; rows must be label-complete")
	}

	nTest := int(math.Ceil(float64(n) * testSize))
	if nTest >= n {
		return nil, errors.NewValueError("TrainTestSplit", "test size leaves no training rows")
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	testRows := perm[:nTest]
	trainRows := perm[nTest:]

	return &Split{
		TrainTable: tbl.Select(trainRows),
		TestTable:  tbl.Select(testRows),
		YTrain:     selectVec(y, trainRows),
		YTest:      selectVec(y, testRows),
	}, nil
}

func selectVec(y *mat.VecDense, rows []int) *mat.VecDense {
	out := mat.NewVecDense(len(rows), nil)
	for i, r := range rows {
		out.SetVec(i, y.AtVec(r))
	}
	return out
}
