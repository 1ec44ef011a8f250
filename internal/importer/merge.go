// Package importer merges extracted spreadsheet records and upserts
// them into the backend.
package importer

import (
	"strings"

	"github.com/pdmedical/crm-import/internal/model"
	"github.com/pdmedical/crm-import/internal/parse"
)

// Merge joins products with sales annotations by normalized product
// name (lowercased, trimmed). Duplicate sales names are last-write-wins
// in sheet order. Every input product yields exactly one output record;
// unmatched products keep absent sales fields and an active status.
// Returns the merged records and the number of matches.
func Merge(products []model.Product, sales []model.SalesRecord) ([]model.Product, int) {
	lookup := make(map[string]model.SalesRecord, len(sales))
	for _, s := range sales {
		lookup[normalizeName(s.ProductName)] = s
	}

	merged := make([]model.Product, 0, len(products))
	matched := 0
	for _, p := range products {
		p.SalesStatus = model.SalesStatusActive
		if p.ProductName != nil {
			if s, ok := lookup[normalizeName(*p.ProductName)]; ok {
				applySales(&p, s)
				matched++
			}
		}
		merged = append(merged, p)
	}
	return merged, matched
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func applySales(p *model.Product, s model.SalesRecord) {
	label := ""
	if s.PriorityLabel != nil {
		label = *s.PriorityLabel
	}
	rank, status := parse.Priority(label)
	if rank > 0 {
		p.SalesPriority = &rank
	}
	p.SalesPriorityLabel = s.PriorityLabel
	p.SalesInstructions = s.Instructions
	p.SalesTimingNotes = s.TimingNotes
	p.SalesStatus = status

	if s.AdditionalNotes == nil {
		return
	}
	if p.SalesInstructions != nil {
		combined := *p.SalesInstructions + "\n\n" + *s.AdditionalNotes
		p.SalesInstructions = &combined
	} else {
		p.SalesInstructions = s.AdditionalNotes
	}
}
