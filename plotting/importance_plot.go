// Package plotting renders presentational artifacts for a finished run. The
// core pipeline never draws; callers invoke this package only when an
// importance ranking is available.
package plotting

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/carbonml/carbonml/inspect"
	"github.com/carbonml/carbonml/pkg/errors"
)

// SaveImportanceChart writes a horizontal bar chart of the top-N importance
// rows to path. The image format follows the path's extension (.png, .svg,
// .pdf).
func SaveImportanceChart(table *inspect.ImportanceTable, modelName, path string, topN int) error {
	rows := table.Top(topN)
	if len(rows) == 0 {
		return errors.NewValueError("plotting.SaveImportanceChart", "importance table is empty")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Top %d Feature Importances - %s", len(rows), modelName)
	p.X.Label.Text = "importance"

	// Reverse so the highest-ranked feature renders as the topmost bar.
	values := make(plotter.Values, len(rows))
	names := make([]string, len(rows))
	for i, r := range rows {
		j := len(rows) - 1 - i
		values[j] = r.Importance
		names[j] = r.Feature
	}

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return errors.Wrap(err, "plotting.SaveImportanceChart")
	}
	bars.Horizontal = true
	p.Add(bars)
	p.NominalY(names...)

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return errors.Wrap(err, "plotting.SaveImportanceChart")
	}
	return nil
}
