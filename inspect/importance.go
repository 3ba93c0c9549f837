// Package inspect reconstructs post-encoding feature names and pairs them
// with the selected model's learned importances.
package inspect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/carbonml/carbonml/pipeline"
	"github.com/carbonml/carbonml/pkg/errors"
)

// ImportanceRow is one (feature, importance) pair.
type ImportanceRow struct {
	Feature    string
	Importance float64
}

// ImportanceTable is the full importance ranking, sorted descending. Rows
// with equal scores keep their pre-sort order (numeric columns first, then
// indicator columns in encoder order).
type ImportanceTable struct {
	Rows []ImportanceRow
}

// Top returns the first n rows (all rows when n exceeds the table).
func (t *ImportanceTable) Top(n int) []ImportanceRow {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.Rows[:n]
}

// String renders the table as aligned "feature  importance" lines.
func (t *ImportanceTable) String() string {
	width := 0
	for _, r := range t.Rows {
		if len(r.Feature) > width {
			width = len(r.Feature)
		}
	}
	var b strings.Builder
	for _, r := range t.Rows {
		fmt.Fprintf(&b, "%-*s  %.6f\n", width, r.Feature, r.Importance)
	}
	return b.String()
}

// Explain builds the importance ranking for a fitted pipeline.
//
// The name sequence comes from the fitted preprocessing stage: numeric column
// names unchanged, then one "<column>_<category>" name per category observed
// at fit time, in the exact order the encoder emits its output columns.
// Order fidelity is what keeps labels truthful; a length mismatch against
// the importance vector is therefore a fatal FeatureNameMismatchError, never
// a truncation.
//
// The second return value reports availability: estimators without an
// importance capability yield (nil, false, nil), a valid terminal outcome.
func Explain(p *pipeline.Pipeline) (*ImportanceTable, bool, error) {
	if !p.IsFitted() {
		return nil, false, errors.NewNotFittedError("Pipeline", "Explain")
	}

	importances, ok := p.FeatureImportances()
	if !ok {
		return nil, false, nil
	}

	names, err := p.FeatureNamesOut()
	if err != nil {
		return nil, false, err
	}
	if len(names) != len(importances) {
		return nil, false, errors.NewFeatureNameMismatchError(len(names), len(importances))
	}

	rows := make([]ImportanceRow, len(names))
	for i, name := range names {
		rows[i] = ImportanceRow{Feature: name, Importance: importances[i]}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Importance > rows[j].Importance
	})

	return &ImportanceTable{Rows: rows}, true, nil
}
