package ingest

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// readDataRows reads cell rows from a CSV or XLSX data file, dispatching
// on extension.
func readDataRows(path string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSVRows(path)
	case ".xlsx":
		return readXLSXRows(path)
	default:
		return nil, eris.Errorf("ingest: unsupported data file %q: want .csv or .xlsx", path)
	}
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open data csv")
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "ingest: read data csv")
	}
	return rows, nil
}

func readXLSXRows(path string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open data xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("ingest: xlsx %q has no sheets", path)
	}

	var rows [][]string
	for _, row := range f.Sheets[0].Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, c := range row.Cells {
			cells = append(cells, c.String())
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
