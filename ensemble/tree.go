// Package ensemble implements the two candidate estimators: a bagged forest
// of regression trees and a sequential residual-boosting regressor. Both fit
// their trees sequentially with fixed seeds so identical input reproduces
// identical models.
package ensemble

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// TreeNode is one node of a fitted regression tree. Fields are exported for
// gob persistence.
type TreeNode struct {
	// Internal node: x[Feature] <= Threshold goes left.
	Feature   int
	Threshold float64
	Left      *TreeNode
	Right     *TreeNode

	// Leaf.
	IsLeaf bool
	Value  float64
}

// RegressionTree is a CART-style regression tree using variance reduction as
// the split criterion. Inputs must be NaN-free; the pipeline's imputer runs
// before any tree sees data.
type RegressionTree struct {
	// MaxDepth limits tree depth; <= 0 means unlimited.
	MaxDepth int
	// MinSamplesSplit is the minimum node size to attempt a split.
	MinSamplesSplit int
	// MinSamplesLeaf is the minimum size of each child.
	MinSamplesLeaf int
	// MaxFeatures is the number of features sampled per split; 0 uses all.
	MaxFeatures int
	// Seed drives feature subsampling when MaxFeatures > 0.
	Seed int64

	// Root is the fitted tree.
	Root *TreeNode
	// NFeatures is the number of features seen during fitting.
	NFeatures int
	// Importances accumulates per-feature weighted impurity decrease,
	// normalized by the number of training rows.
	Importances []float64

	rng *rand.Rand
}

// Fit grows the tree on the rows of X indexed by rows. y is indexed the same
// way as X's rows.
func (t *RegressionTree) Fit(X *mat.Dense, y []float64, rows []int) {
	_, c := X.Dims()
	t.NFeatures = c
	t.Importances = make([]float64, c)
	if t.MinSamplesSplit < 2 {
		t.MinSamplesSplit = 2
	}
	if t.MinSamplesLeaf < 1 {
		t.MinSamplesLeaf = 1
	}
	if t.MaxFeatures > 0 {
		t.rng = rand.New(rand.NewSource(t.Seed))
	}
	t.Root = t.build(X, y, rows, len(rows), 1)
	t.rng = nil
}

func (t *RegressionTree) build(X *mat.Dense, y []float64, rows []int, nTotal, depth int) *TreeNode {
	n := len(rows)
	sum, sumSq := 0.0, 0.0
	for _, r := range rows {
		sum += y[r]
		sumSq += y[r] * y[r]
	}
	meanVal := sum / float64(n)
	sse := sumSq - sum*sum/float64(n)

	leaf := func() *TreeNode { return &TreeNode{IsLeaf: true, Value: meanVal} }
	if n < t.MinSamplesSplit || sse <= 1e-12 {
		return leaf()
	}
	if t.MaxDepth > 0 && depth > t.MaxDepth {
		return leaf()
	}

	bestGain := 0.0
	bestFeature := -1
	bestThreshold := 0.0
	for _, f := range t.candidateFeatures() {
		gain, threshold, ok := t.bestSplitOnFeature(X, y, rows, f, sse)
		if ok && gain > bestGain+1e-12 {
			bestGain = gain
			bestFeature = f
			bestThreshold = threshold
		}
	}
	if bestFeature < 0 {
		return leaf()
	}

	t.Importances[bestFeature] += bestGain / float64(nTotal)

	left := make([]int, 0, n)
	right := make([]int, 0, n)
	for _, r := range rows {
		if X.At(r, bestFeature) <= bestThreshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}

	return &TreeNode{
		Feature:   bestFeature,
		Threshold: bestThreshold,
		Left:      t.build(X, y, left, nTotal, depth+1),
		Right:     t.build(X, y, right, nTotal, depth+1),
	}
}

// bestSplitOnFeature scans all split points of one feature via prefix sums
// over rows sorted by feature value. Returns the SSE reduction and the
// midpoint threshold of the best valid split.
func (t *RegressionTree) bestSplitOnFeature(X *mat.Dense, y []float64, rows []int, f int, nodeSSE float64) (float64, float64, bool) {
	n := len(rows)
	type pair struct {
		v float64
		y float64
	}
	pairs := make([]pair, n)
	for i, r := range rows {
		pairs[i] = pair{v: X.At(r, f), y: y[r]}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].v < pairs[j].v })

	totalSum := 0.0
	totalSq := 0.0
	for _, p := range pairs {
		totalSum += p.y
		totalSq += p.y * p.y
	}

	bestGain := 0.0
	bestThreshold := 0.0
	found := false
	leftSum, leftSq := 0.0, 0.0
	for i := 1; i < n; i++ {
		leftSum += pairs[i-1].y
		leftSq += pairs[i-1].y * pairs[i-1].y
		if pairs[i].v == pairs[i-1].v {
			continue
		}
		leftN := i
		rightN := n - i
		if leftN < t.MinSamplesLeaf || rightN < t.MinSamplesLeaf {
			continue
		}
		leftSSE := leftSq - leftSum*leftSum/float64(leftN)
		rightSum := totalSum - leftSum
		rightSSE := (totalSq - leftSq) - rightSum*rightSum/float64(rightN)
		gain := nodeSSE - leftSSE - rightSSE
		if gain > bestGain+1e-12 {
			bestGain = gain
			bestThreshold = (pairs[i-1].v + pairs[i].v) / 2
			found = true
		}
	}
	return bestGain, bestThreshold, found
}

// candidateFeatures returns the feature indices to scan at a node: all of
// them, or a random subset of size MaxFeatures in ascending order so ties
// stay deterministic.
func (t *RegressionTree) candidateFeatures() []int {
	all := make([]int, t.NFeatures)
	for i := range all {
		all[i] = i
	}
	if t.MaxFeatures <= 0 || t.MaxFeatures >= t.NFeatures {
		return all
	}
	t.rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	subset := all[:t.MaxFeatures]
	sort.Ints(subset)
	return subset
}

// PredictRow walks the tree for one row of X.
func (t *RegressionTree) PredictRow(X mat.Matrix, i int) float64 {
	node := t.Root
	for !node.IsLeaf {
		if X.At(i, node.Feature) <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Value
}

// NormalizedImportances returns the tree's importances scaled to sum to 1;
// all zeros when the tree is a single leaf.
func (t *RegressionTree) NormalizedImportances() []float64 {
	out := make([]float64, len(t.Importances))
	total := 0.0
	for _, v := range t.Importances {
		total += v
	}
	if total <= 0 || math.IsNaN(total) {
		return out
	}
	for i, v := range t.Importances {
		out[i] = v / total
	}
	return out
}
