// Package sheet reads the product workbook and extracts typed rows from
// its product and sales tabs.
package sheet

import (
	"errors"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// ErrSheetNotFound reports a missing or misnamed sheet. Callers decide
// whether that is fatal (products) or degraded (sales).
var ErrSheetNotFound = errors.New("sheet not found")

// Open opens an XLSX workbook.
func Open(path string) (*xlsx.File, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "sheet: open %s", path)
	}
	return f, nil
}

// Rows returns all rows of the named sheet as string slices, skipping
// the first skip rows (title/blank rows above the data).
func Rows(f *xlsx.File, name string, skip int) ([][]string, error) {
	sh, ok := f.Sheet[name]
	if !ok {
		return nil, eris.Wrapf(ErrSheetNotFound, "sheet: %q", name)
	}

	var rows [][]string
	for i, row := range sh.Rows {
		if i < skip {
			continue
		}
		rows = append(rows, rowToStrings(row))
	}
	return rows, nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, c := range row.Cells {
		cells[j] = c.String()
	}
	return cells
}

// cell reads a column position from a row, degrading to "" when the row
// is shorter than the requested position.
func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
