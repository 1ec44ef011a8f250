package model

// SalesStatus tracks whether the sales team still carries a product.
type SalesStatus string

const (
	SalesStatusActive  SalesStatus = "active"
	SalesStatusRemoved SalesStatus = "removed"
)

// Product is one product row from the spreadsheet, enriched with sales
// annotations by the merge step. Pointer fields are absent when the
// source cell was blank.
type Product struct {
	ProductCode          string  `json:"product_code"`
	ProductName          *string `json:"product_name,omitempty"`
	CategoryName         *string `json:"category_name,omitempty"`
	MarketPotential      *string `json:"market_potential,omitempty"`
	BackgroundHistory    *string `json:"background_history,omitempty"`
	KeyContactsReference *string `json:"key_contacts_reference,omitempty"`
	ForecastNotes        *string `json:"forecast_notes,omitempty"`

	SalesPriority      *int        `json:"sales_priority,omitempty"`
	SalesPriorityLabel *string     `json:"sales_priority_label,omitempty"`
	SalesInstructions  *string     `json:"sales_instructions,omitempty"`
	SalesTimingNotes   *string     `json:"sales_timing_notes,omitempty"`
	SalesStatus        SalesStatus `json:"sales_status"`
}

// IsActive reports whether the product should be flagged active in the
// backend. Only a "removed" sales status turns it off.
func (p Product) IsActive() bool {
	return p.SalesStatus != SalesStatusRemoved
}

// SalesRecord is one row from the sales priority sheet. It exists only
// to feed the merge lookup and is discarded afterwards.
type SalesRecord struct {
	ProductName     string  `json:"product_name"`
	PriorityLabel   *string `json:"priority_label,omitempty"`
	CategoryName    *string `json:"category_name,omitempty"`
	Instructions    *string `json:"instructions,omitempty"`
	TimingNotes     *string `json:"timing_notes,omitempty"`
	AdditionalNotes *string `json:"additional_notes,omitempty"`
}

// ContactCandidate is one contact parsed out of a product's free-text
// contact reference field. Email is always set (possibly synthesized);
// RawText carries the full source text for provenance.
type ContactCandidate struct {
	Name    *string `json:"name,omitempty"`
	Email   string  `json:"email"`
	RawText string  `json:"raw_text"`
}
