package selection

import (
	"github.com/carbonml/carbonml/pkg/errors"
)

// SelectBest returns the result with the highest R², scanning in slice order
// and keeping only strictly greater scores, so the first-declared candidate
// wins ties. The slice order is the declared candidate order; Train preserves
// it.
func SelectBest(results []EvaluationResult) (EvaluationResult, error) {
	if len(results) == 0 {
		return EvaluationResult{}, errors.NewEmptyCandidateSetError("SelectBest")
	}

	best := results[0]
	for _, r := range results[1:] {
		if r.R2 > best.R2 {
			best = r
		}
	}
	return best, nil
}
