package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdmedical/crm-import/internal/model"
)

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, &model.ImportSummary{
		Imported:         42,
		Skipped:          3,
		ContactsCreated:  17,
		InterestsCreated: 20,
	})
	out := buf.String()

	assert.Contains(t, out, "IMPORT SUMMARY")
	assert.Contains(t, out, "Imported:          42 products")
	assert.Contains(t, out, "Skipped (exists):  3 products")
	assert.Contains(t, out, "Contacts created:  17")
	assert.Contains(t, out, "Failed:            0 products")
	assert.NotContains(t, out, "Errors:")
}

func TestPrintSummary_CapsErrorList(t *testing.T) {
	s := &model.ImportSummary{}
	for i := 0; i < 14; i++ {
		s.Errors = append(s.Errors, fmt.Sprintf("row %d broke", i))
	}
	s.Failed = 14

	var buf bytes.Buffer
	printSummary(&buf, s)
	out := buf.String()

	assert.Contains(t, out, "row 0 broke")
	assert.Contains(t, out, "row 9 broke")
	assert.NotContains(t, out, "row 10 broke")
	assert.Contains(t, out, "... and 4 more errors")
	assert.Equal(t, maxReportedErrors, strings.Count(out, "  - "))
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, &model.VerifyReport{
		TotalProducts:      10,
		TotalContacts:      4,
		TotalInterests:     6,
		TotalOrganizations: 2,
		ByCategory:         map[string]int{"Wound Care": 7, "Uncategorized": 3},
		ByPriority:         map[string]int{"1": 2, "No Priority": 8},
	})
	out := buf.String()

	assert.Contains(t, out, "Total products:      10")
	// Categories come out sorted.
	assert.Less(t, strings.Index(out, "Uncategorized: 3"), strings.Index(out, "Wound Care: 7"))
	assert.Contains(t, out, "No Priority: 8")
}

func TestColumnLetter(t *testing.T) {
	assert.Equal(t, "A", columnLetter(0))
	assert.Equal(t, "Z", columnLetter(25))
	assert.Equal(t, "AA", columnLetter(26))
	assert.Equal(t, "AZ", columnLetter(51))
	assert.Equal(t, "BA", columnLetter(52))
}

func TestLikelyHeaderRow(t *testing.T) {
	rows := [][]string{
		{"title", ""},
		{"", "", ""},
		{"Code", "Name", "Category", "Market"},
		{"A-1", "Widget"},
	}
	assert.Equal(t, 2, likelyHeaderRow(rows))

	assert.Equal(t, 0, likelyHeaderRow(nil))
}
