package plotting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonml/carbonml/inspect"
)

func TestSaveImportanceChart(t *testing.T) {
	table := &inspect.ImportanceTable{Rows: []inspect.ImportanceRow{
		{Feature: "VehicleDistance", Importance: 0.6},
		{Feature: "Transport_car", Importance: 0.3},
		{Feature: "Transport_walk", Importance: 0.1},
	}}

	path := filepath.Join(t.TempDir(), "feature_importance.png")
	require.NoError(t, SaveImportanceChart(table, "RandomForest", path, 15))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSaveImportanceChartEmptyTable(t *testing.T) {
	table := &inspect.ImportanceTable{}
	err := SaveImportanceChart(table, "RandomForest", "unused.png", 10)
	assert.Error(t, err)
}
