package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/pdmedical/crm-import/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. It exists for
// local and trial runs against a file (or in-memory) database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given DSN.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS product_categories (
	id            TEXT PRIMARY KEY,
	category_name TEXT NOT NULL UNIQUE,
	description   TEXT,
	is_active     INTEGER NOT NULL DEFAULT 1,
	created_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS products (
	id                     TEXT PRIMARY KEY,
	product_code           TEXT NOT NULL UNIQUE,
	product_name           TEXT,
	category_id            TEXT REFERENCES product_categories(id),
	category_name          TEXT,
	market_potential       TEXT,
	background_history     TEXT,
	key_contacts_reference TEXT,
	forecast_notes         TEXT,
	sales_priority         INTEGER,
	sales_priority_label   TEXT,
	sales_instructions     TEXT,
	sales_timing_notes     TEXT,
	sales_status           TEXT NOT NULL DEFAULT 'active',
	is_active              INTEGER NOT NULL DEFAULT 1,
	created_at             DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS organizations (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	domain     TEXT NOT NULL UNIQUE,
	status     TEXT NOT NULL DEFAULT 'active',
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS contacts (
	id              TEXT PRIMARY KEY,
	email           TEXT NOT NULL UNIQUE,
	first_name      TEXT,
	last_name       TEXT,
	organization_id TEXT REFERENCES organizations(id),
	status          TEXT NOT NULL DEFAULT 'active',
	created_at      DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS contact_product_interests (
	id                      TEXT PRIMARY KEY,
	contact_id              TEXT NOT NULL REFERENCES contacts(id),
	organization_id         TEXT REFERENCES organizations(id),
	product_id              TEXT NOT NULL REFERENCES products(id),
	interest_level          TEXT,
	status                  TEXT,
	source                  TEXT,
	lead_score_contribution INTEGER,
	created_at              DATETIME NOT NULL DEFAULT (datetime('now')),
	UNIQUE (contact_id, product_id)
);

CREATE INDEX IF NOT EXISTS idx_products_category_name ON products(category_name);
CREATE INDEX IF NOT EXISTS idx_interests_product_id ON contact_product_interests(product_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.db.PingContext(ctx), "sqlite: ping")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// lookupID maps sql.ErrNoRows to a miss ("" with nil error).
func lookupID(row *sql.Row, op string) (string, error) {
	var id string
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", eris.Wrapf(err, "sqlite: %s", op)
	}
	return id, nil
}

func (s *SQLiteStore) GetProductIDByCode(ctx context.Context, code string) (string, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id FROM products WHERE product_code = ?`,
		code,
	)
	return lookupID(row, "get product by code")
}

func (s *SQLiteStore) InsertProduct(ctx context.Context, p model.Product, categoryID *string) (string, error) {
	id := uuid.New().String()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO products
		 (id, product_code, product_name, category_id, category_name, market_potential,
		  background_history, key_contacts_reference, forecast_notes,
		  sales_priority, sales_priority_label, sales_instructions, sales_timing_notes,
		  sales_status, is_active)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.ProductCode, p.ProductName, categoryID, p.CategoryName, p.MarketPotential,
		p.BackgroundHistory, p.KeyContactsReference, p.ForecastNotes,
		p.SalesPriority, p.SalesPriorityLabel, p.SalesInstructions, p.SalesTimingNotes,
		string(p.SalesStatus), p.IsActive(),
	)
	if err != nil {
		return "", eris.Wrapf(err, "sqlite: insert product %s", p.ProductCode)
	}
	return id, nil
}

func (s *SQLiteStore) GetCategoryIDByName(ctx context.Context, name string) (string, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id FROM product_categories WHERE category_name = ?`,
		name,
	)
	return lookupID(row, "get category by name")
}

func (s *SQLiteStore) InsertCategory(ctx context.Context, name, description string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO product_categories (id, category_name, description, is_active) VALUES (?, ?, ?, 1)`,
		id, name, description,
	)
	if err != nil {
		return "", eris.Wrapf(err, "sqlite: insert category %s", name)
	}
	return id, nil
}

func (s *SQLiteStore) GetOrganizationIDByDomain(ctx context.Context, domain string) (string, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id FROM organizations WHERE domain = ?`,
		domain,
	)
	return lookupID(row, "get organization by domain")
}

func (s *SQLiteStore) FindOrganizationIDByName(ctx context.Context, name string) (string, error) {
	// SQLite LIKE is case-insensitive for ASCII by default.
	row := s.db.QueryRowContext(ctx,
		`SELECT id FROM organizations WHERE name LIKE '%' || ? || '%' LIMIT 1`,
		name,
	)
	return lookupID(row, "find organization by name")
}

func (s *SQLiteStore) InsertOrganization(ctx context.Context, name, domain string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO organizations (id, name, domain, status) VALUES (?, ?, ?, 'active')`,
		id, name, domain,
	)
	if err != nil {
		return "", eris.Wrapf(err, "sqlite: insert organization %s", domain)
	}
	return id, nil
}

func (s *SQLiteStore) GetContactIDByEmail(ctx context.Context, email string) (string, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id FROM contacts WHERE email = ?`,
		email,
	)
	return lookupID(row, "get contact by email")
}

func (s *SQLiteStore) InsertContact(ctx context.Context, c NewContact) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (id, email, first_name, last_name, organization_id, status)
		 VALUES (?, ?, ?, ?, ?, 'active')`,
		id, c.Email, c.FirstName, c.LastName, c.OrganizationID,
	)
	if err != nil {
		return "", eris.Wrapf(err, "sqlite: insert contact %s", c.Email)
	}
	return id, nil
}

func (s *SQLiteStore) InterestExists(ctx context.Context, contactID, productID string) (bool, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM contact_product_interests WHERE contact_id = ? AND product_id = ?`,
		contactID, productID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, eris.Wrap(err, "sqlite: interest exists")
	}
	return true, nil
}

func (s *SQLiteStore) InsertInterest(ctx context.Context, in Interest) error {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_product_interests
		 (id, contact_id, organization_id, product_id, interest_level, status, source, lead_score_contribution)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, in.ContactID, in.OrganizationID, in.ProductID,
		in.InterestLevel, in.Status, in.Source, in.LeadScoreContribution,
	)
	return eris.Wrap(err, "sqlite: insert interest")
}

func (s *SQLiteStore) TotalCounts(ctx context.Context) (Counts, error) {
	var c Counts
	for _, q := range []struct {
		sql  string
		dest *int
	}{
		{`SELECT COUNT(*) FROM products`, &c.Products},
		{`SELECT COUNT(*) FROM contacts`, &c.Contacts},
		{`SELECT COUNT(*) FROM contact_product_interests`, &c.Interests},
		{`SELECT COUNT(*) FROM organizations`, &c.Organizations},
	} {
		if err := s.db.QueryRowContext(ctx, q.sql).Scan(q.dest); err != nil {
			return Counts{}, eris.Wrap(err, "sqlite: total counts")
		}
	}
	return c, nil
}

func (s *SQLiteStore) ProductsByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT COALESCE(category_name, 'Uncategorized'), COUNT(*) FROM products GROUP BY 1`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: products by category")
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan category count")
		}
		out[name] = count
	}
	return out, eris.Wrap(rows.Err(), "sqlite: products by category iterate")
}

func (s *SQLiteStore) ProductsByPriority(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sales_priority, COUNT(*) FROM products GROUP BY sales_priority`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: products by priority")
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var priority *int
		var count int
		if err := rows.Scan(&priority, &count); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan priority count")
		}
		out[priorityLabel(priority)] = count
	}
	return out, eris.Wrap(rows.Err(), "sqlite: products by priority iterate")
}
