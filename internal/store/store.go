// Package store persists products, categories, organizations, contacts,
// and contact-product interest links.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/pdmedical/crm-import/internal/config"
	"github.com/pdmedical/crm-import/internal/model"
)

// NewContact holds the fields for a contact insert.
type NewContact struct {
	Email          string
	FirstName      *string
	LastName       *string
	OrganizationID string
}

// Interest holds the fields for a contact-product interest insert.
type Interest struct {
	ContactID             string
	OrganizationID        string
	ProductID             string
	InterestLevel         string
	Status                string
	Source                string
	LeadScoreContribution int
}

// Counts holds the verifier's table totals.
type Counts struct {
	Products      int
	Contacts      int
	Interests     int
	Organizations int
}

// Store defines the persistence interface for the import pipeline.
// Lookup methods return "" (or false) with a nil error on a miss.
type Store interface {
	// Products
	GetProductIDByCode(ctx context.Context, code string) (string, error)
	InsertProduct(ctx context.Context, p model.Product, categoryID *string) (string, error)

	// Categories
	GetCategoryIDByName(ctx context.Context, name string) (string, error)
	InsertCategory(ctx context.Context, name, description string) (string, error)

	// Organizations
	GetOrganizationIDByDomain(ctx context.Context, domain string) (string, error)
	FindOrganizationIDByName(ctx context.Context, name string) (string, error)
	InsertOrganization(ctx context.Context, name, domain string) (string, error)

	// Contacts
	GetContactIDByEmail(ctx context.Context, email string) (string, error)
	InsertContact(ctx context.Context, c NewContact) (string, error)

	// Interest links
	InterestExists(ctx context.Context, contactID, productID string) (bool, error)
	InsertInterest(ctx context.Context, in Interest) error

	// Verification
	TotalCounts(ctx context.Context) (Counts, error)
	ProductsByCategory(ctx context.Context) (map[string]int, error)
	ProductsByPriority(ctx context.Context) (map[string]int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// Open creates a Store for the configured driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "postgres", "":
		return NewPostgres(ctx, cfg.DatabaseURL)
	case "sqlite":
		return NewSQLite(cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
