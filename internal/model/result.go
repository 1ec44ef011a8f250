package model

// Outcome classifies what happened to a single product record.
type Outcome string

const (
	OutcomeImported Outcome = "imported"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeFailed   Outcome = "failed"
)

// RecordResult is the per-product outcome of the upsert pass.
type RecordResult struct {
	ProductCode string  `json:"product_code"`
	Outcome     Outcome `json:"outcome"`
	Error       string  `json:"error,omitempty"`
}

// ImportSummary aggregates the outcomes of one import run.
type ImportSummary struct {
	Imported         int            `json:"imported"`
	Skipped          int            `json:"skipped"`
	Failed           int            `json:"failed"`
	ContactsCreated  int            `json:"contacts_created"`
	InterestsCreated int            `json:"interests_created"`
	Errors           []string       `json:"errors,omitempty"`
	Records          []RecordResult `json:"records,omitempty"`
}

// AddImported records a successful product insert.
func (s *ImportSummary) AddImported(code string) {
	s.Imported++
	s.Records = append(s.Records, RecordResult{ProductCode: code, Outcome: OutcomeImported})
}

// AddSkipped records a product that already existed.
func (s *ImportSummary) AddSkipped(code string) {
	s.Skipped++
	s.Records = append(s.Records, RecordResult{ProductCode: code, Outcome: OutcomeSkipped})
}

// AddFailed records a per-record failure. The batch continues.
func (s *ImportSummary) AddFailed(code, msg string) {
	s.Failed++
	s.Errors = append(s.Errors, msg)
	s.Records = append(s.Records, RecordResult{ProductCode: code, Outcome: OutcomeFailed, Error: msg})
}

// VerifyReport holds read-only post-import statistics.
type VerifyReport struct {
	TotalProducts      int            `json:"total_products"`
	TotalContacts      int            `json:"total_contacts"`
	TotalInterests     int            `json:"total_interests"`
	TotalOrganizations int            `json:"total_organizations"`
	ByCategory         map[string]int `json:"by_category"`
	ByPriority         map[string]int `json:"by_priority"`
}
