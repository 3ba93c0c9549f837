package dataset

import (
	"bufio"
	"encoding/csv"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/carbonml/carbonml/pkg/errors"
)

// ReadCSV loads a table from a CSV file. The first record is the header.
//
// Column types are declared here, once: a column whose every non-empty cell
// parses as a float64 becomes Numeric (empty cells become NaN), any other
// column becomes Categorical (empty cells stay ""). A column with no
// observed values at all is declared Numeric with every entry NaN.
func ReadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset.ReadCSV: open %s", path)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "dataset.ReadCSV: parse %s", path)
	}
	if len(records) == 0 {
		return nil, errors.NewSchemaError("dataset.ReadCSV", "", "file has no header row")
	}

	header := records[0]
	rows := records[1:]
	if len(rows) == 0 {
		return nil, errors.NewSchemaError("dataset.ReadCSV", "", "file has no data rows")
	}

	cols := make([]Column, len(header))
	for j, name := range header {
		cols[j] = buildColumn(strings.TrimSpace(name), rows, j)
	}
	return NewTable(cols...)
}

func buildColumn(name string, rows [][]string, j int) Column {
	numeric := true
	observed := 0
	for _, rec := range rows {
		cell := strings.TrimSpace(rec[j])
		if cell == "" {
			continue
		}
		observed++
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			numeric = false
			break
		}
	}

	if numeric || observed == 0 {
		values := make([]float64, len(rows))
		for i, rec := range rows {
			cell := strings.TrimSpace(rec[j])
			if cell == "" {
				values[i] = math.NaN()
				continue
			}
			v, _ := strconv.ParseFloat(cell, 64)
			values[i] = v
		}
		return NewNumericColumn(name, values)
	}

	values := make([]string, len(rows))
	for i, rec := range rows {
		values[i] = strings.TrimSpace(rec[j])
	}
	return NewCategoricalColumn(name, values)
}
