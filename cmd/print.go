package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pdmedical/crm-import/internal/model"
)

const maxReportedErrors = 10

const rule = "================================================================================"

// printSummary writes the human-readable import summary. The error list
// is capped; the counts are not.
func printSummary(w io.Writer, s *model.ImportSummary) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "IMPORT SUMMARY")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Imported:          %d products\n", s.Imported)
	fmt.Fprintf(w, "Skipped (exists):  %d products\n", s.Skipped)
	fmt.Fprintf(w, "Contacts created:  %d\n", s.ContactsCreated)
	fmt.Fprintf(w, "Interests created: %d\n", s.InterestsCreated)
	fmt.Fprintf(w, "Failed:            %d products\n", s.Failed)
	fmt.Fprintln(w, rule)

	if len(s.Errors) == 0 {
		return
	}
	fmt.Fprintln(w, "Errors:")
	for i, msg := range s.Errors {
		if i == maxReportedErrors {
			fmt.Fprintf(w, "  ... and %d more errors\n", len(s.Errors)-maxReportedErrors)
			break
		}
		fmt.Fprintf(w, "  - %s\n", msg)
	}
}

// printReport writes the post-import verification report.
func printReport(w io.Writer, r *model.VerifyReport) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "VERIFICATION")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total products:      %d\n", r.TotalProducts)
	fmt.Fprintf(w, "Total contacts:      %d\n", r.TotalContacts)
	fmt.Fprintf(w, "Total interests:     %d\n", r.TotalInterests)
	fmt.Fprintf(w, "Total organizations: %d\n", r.TotalOrganizations)

	fmt.Fprintln(w, "\nProducts by category:")
	for _, line := range sortedCounts(r.ByCategory) {
		fmt.Fprintf(w, "  %s\n", line)
	}

	fmt.Fprintln(w, "\nProducts by sales priority:")
	for _, line := range sortedCounts(r.ByPriority) {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

func sortedCounts(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %d", strings.TrimSpace(k), counts[k]))
	}
	return lines
}
