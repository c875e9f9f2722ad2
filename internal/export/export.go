// Package export writes lookup results to CSV or XLSX files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// CurveSet is a set of intensity curves ready for export: row i pairs
// (Lons[i], Lats[i]) with Curves[i], one column per return period.
type CurveSet struct {
	Lons          []float64
	Lats          []float64
	ReturnPeriods []float64
	Curves        [][]float64
}

func (cs CurveSet) header() []string {
	h := []string{"lon", "lat"}
	for _, rp := range cs.ReturnPeriods {
		h = append(h, fmt.Sprintf("rp_%s", strconv.FormatFloat(rp, 'f', -1, 64)))
	}
	return h
}

func (cs CurveSet) row(i int) []string {
	rec := []string{
		strconv.FormatFloat(cs.Lons[i], 'f', -1, 64),
		strconv.FormatFloat(cs.Lats[i], 'f', -1, 64),
	}
	for _, v := range cs.Curves[i] {
		rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return rec
}

// ParameterSet is a set of chronic hazard parameters ready for export.
type ParameterSet struct {
	Lons       []float64
	Lats       []float64
	Parameters []float64
}

// WriteCurves writes a curve set to path, dispatching on extension
// (.csv or .xlsx).
func WriteCurves(path string, cs CurveSet) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return writeCurvesCSV(path, cs)
	case ".xlsx":
		return writeCurvesXLSX(path, cs)
	default:
		return eris.Errorf("export: unsupported output file %q: want .csv or .xlsx", path)
	}
}

// WriteParameters writes a parameter set to path, dispatching on
// extension (.csv or .xlsx).
func WriteParameters(path string, ps ParameterSet) error {
	cs := CurveSet{Lons: ps.Lons, Lats: ps.Lats, Curves: make([][]float64, len(ps.Parameters))}
	for i, p := range ps.Parameters {
		cs.Curves[i] = []float64{p}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return writeCSV(path, []string{"lon", "lat", "parameter"}, cs)
	case ".xlsx":
		return writeXLSX(path, "parameters", []string{"lon", "lat", "parameter"}, cs)
	default:
		return eris.Errorf("export: unsupported output file %q: want .csv or .xlsx", path)
	}
}

func writeCurvesCSV(path string, cs CurveSet) error {
	return writeCSV(path, cs.header(), cs)
}

func writeCurvesXLSX(path string, cs CurveSet) error {
	return writeXLSX(path, "curves", cs.header(), cs)
}

func writeCSV(path string, header []string, cs CurveSet) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create csv")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for i := range cs.Lons {
		if err := w.Write(cs.row(i)); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}
	w.Flush()
	return eris.Wrap(w.Error(), "export: flush csv")
}

func writeXLSX(path, sheetName string, header []string, cs CurveSet) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return eris.Wrap(err, "export: add xlsx sheet")
	}

	hr := sheet.AddRow()
	for _, h := range header {
		hr.AddCell().SetString(h)
	}
	for i := range cs.Lons {
		row := sheet.AddRow()
		row.AddCell().SetFloat(cs.Lons[i])
		row.AddCell().SetFloat(cs.Lats[i])
		for _, v := range cs.Curves[i] {
			row.AddCell().SetFloat(v)
		}
	}

	return eris.Wrap(f.Save(path), "export: save xlsx")
}
