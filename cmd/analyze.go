package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pdmedical/crm-import/internal/sheet"
)

var analyzeFile string

// analyze is a diagnostic for eyeballing an unfamiliar workbook before
// wiring up column positions. It never touches the backend.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Dump workbook structure (sheets, columns, sample rows)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		f, err := sheet.Open(analyzeFile)
		if err != nil {
			return eris.Wrap(err, "analyze: open workbook")
		}

		w := os.Stdout
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, "WORKBOOK STRUCTURE ANALYSIS")
		fmt.Fprintln(w, rule)

		fmt.Fprintf(w, "\nFound %d sheet(s):\n", len(f.Sheets))
		for _, sh := range f.Sheets {
			fmt.Fprintf(w, "  - %s\n", sh.Name)
		}

		for _, sh := range f.Sheets {
			rows, err := sheet.Rows(f, sh.Name, 0)
			if err != nil {
				return eris.Wrapf(err, "analyze: read sheet %q", sh.Name)
			}
			analyzeSheet(w, sh.Name, rows)
		}

		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "path to XLSX workbook (required)")
	_ = analyzeCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(analyzeCmd)
}

// Caps matching what fits on a terminal: the workbook's interesting
// columns all live left of column T.
const (
	analyzeMaxCols     = 20
	analyzePreviewRows = 5
	analyzeSampleRows  = 3
	analyzeCellWidth   = 100
)

func analyzeSheet(w io.Writer, name string, rows [][]string) {
	fmt.Fprintf(w, "\n%s\nSHEET: %s\n%s\n", rule, name, rule)

	maxCols := 0
	for _, row := range rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}
	fmt.Fprintf(w, "Total rows: %d\n", len(rows))
	fmt.Fprintf(w, "Total columns: %d\n", maxCols)

	fmt.Fprintf(w, "\nFirst %d rows (with column indices):\n", analyzePreviewRows)
	for i := 0; i < len(rows) && i < analyzePreviewRows; i++ {
		fmt.Fprintf(w, "\nRow %d (Excel row %d):\n", i, i+1)
		printRowCells(w, rows[i])
	}

	headerIdx := likelyHeaderRow(rows)
	fmt.Fprintf(w, "\nMost likely header row: %d (Excel row %d)\n", headerIdx, headerIdx+1)
	if headerIdx < len(rows) {
		printRowCells(w, rows[headerIdx])
	}

	fmt.Fprintf(w, "\nData sample (rows after header):\n")
	start := headerIdx + 1
	for i := start; i < len(rows) && i < start+analyzeSampleRows; i++ {
		fmt.Fprintf(w, "\nData row %d (Excel row %d):\n", i, i+1)
		printRowCells(w, rows[i])
	}
}

func printRowCells(w io.Writer, row []string) {
	empty := true
	for j, val := range row {
		if j >= analyzeMaxCols {
			break
		}
		val = strings.TrimSpace(val)
		if val == "" {
			continue
		}
		empty = false
		if len(val) > analyzeCellWidth {
			val = val[:analyzeCellWidth]
		}
		fmt.Fprintf(w, "  Column %d (%s): %s\n", j, columnLetter(j), val)
	}
	if empty {
		fmt.Fprintln(w, "  (no data in first 20 columns)")
	}
}

// likelyHeaderRow picks the row with the most non-empty cells among the
// first ten rows.
func likelyHeaderRow(rows [][]string) int {
	best, bestCount := 0, -1
	for i := 0; i < len(rows) && i < 10; i++ {
		count := 0
		for _, val := range rows[i] {
			if strings.TrimSpace(val) != "" {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = i, count
		}
	}
	return best
}

// columnLetter converts a zero-based column index to its spreadsheet
// letter ("A".."Z", "AA"...).
func columnLetter(idx int) string {
	letters := ""
	for idx >= 0 {
		letters = string(rune('A'+idx%26)) + letters
		idx = idx/26 - 1
	}
	return letters
}
