package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/pdmedical/crm-import/internal/db"
	"github.com/pdmedical/crm-import/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 4
	pgxCfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS product_categories (
	id            TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	category_name TEXT NOT NULL UNIQUE,
	description   TEXT,
	is_active     BOOLEAN NOT NULL DEFAULT true,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS products (
	id                     TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
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
	is_active              BOOLEAN NOT NULL DEFAULT true,
	created_at             TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS organizations (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	name       TEXT NOT NULL,
	domain     TEXT NOT NULL UNIQUE,
	status     TEXT NOT NULL DEFAULT 'active',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS contacts (
	id              TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	email           TEXT NOT NULL UNIQUE,
	first_name      TEXT,
	last_name       TEXT,
	organization_id TEXT REFERENCES organizations(id),
	status          TEXT NOT NULL DEFAULT 'active',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS contact_product_interests (
	id                      TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	contact_id              TEXT NOT NULL REFERENCES contacts(id),
	organization_id         TEXT REFERENCES organizations(id),
	product_id              TEXT NOT NULL REFERENCES products(id),
	interest_level          TEXT,
	status                  TEXT,
	source                  TEXT,
	lead_score_contribution INTEGER,
	created_at              TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (contact_id, product_id)
);

CREATE INDEX IF NOT EXISTS idx_products_category_name ON products(category_name);
CREATE INDEX IF NOT EXISTS idx_products_sales_priority ON products(sales_priority);
CREATE INDEX IF NOT EXISTS idx_contacts_organization_id ON contacts(organization_id);
CREATE INDEX IF NOT EXISTS idx_interests_product_id ON contact_product_interests(product_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

// scanID maps pgx.ErrNoRows to a miss ("" with nil error).
func scanID(row pgx.Row, op string) (string, error) {
	var id string
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", eris.Wrapf(err, "postgres: %s", op)
	}
	return id, nil
}

func (s *PostgresStore) GetProductIDByCode(ctx context.Context, code string) (string, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id FROM products WHERE product_code = $1`,
		code,
	)
	return scanID(row, "get product by code")
}

func (s *PostgresStore) InsertProduct(ctx context.Context, p model.Product, categoryID *string) (string, error) {
	id := uuid.New().String()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO products
		 (id, product_code, product_name, category_id, category_name, market_potential,
		  background_history, key_contacts_reference, forecast_notes,
		  sales_priority, sales_priority_label, sales_instructions, sales_timing_notes,
		  sales_status, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		id, p.ProductCode, p.ProductName, categoryID, p.CategoryName, p.MarketPotential,
		p.BackgroundHistory, p.KeyContactsReference, p.ForecastNotes,
		p.SalesPriority, p.SalesPriorityLabel, p.SalesInstructions, p.SalesTimingNotes,
		string(p.SalesStatus), p.IsActive(),
	)
	if err != nil {
		return "", eris.Wrapf(err, "postgres: insert product %s", p.ProductCode)
	}
	return id, nil
}

func (s *PostgresStore) GetCategoryIDByName(ctx context.Context, name string) (string, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id FROM product_categories WHERE category_name = $1`,
		name,
	)
	return scanID(row, "get category by name")
}

func (s *PostgresStore) InsertCategory(ctx context.Context, name, description string) (string, error) {
	id := uuid.New().String()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO product_categories (id, category_name, description, is_active) VALUES ($1, $2, $3, true)`,
		id, name, description,
	)
	if err != nil {
		return "", eris.Wrapf(err, "postgres: insert category %s", name)
	}
	return id, nil
}

func (s *PostgresStore) GetOrganizationIDByDomain(ctx context.Context, domain string) (string, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id FROM organizations WHERE domain = $1`,
		domain,
	)
	return scanID(row, "get organization by domain")
}

func (s *PostgresStore) FindOrganizationIDByName(ctx context.Context, name string) (string, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id FROM organizations WHERE name ILIKE '%' || $1 || '%' LIMIT 1`,
		name,
	)
	return scanID(row, "find organization by name")
}

func (s *PostgresStore) InsertOrganization(ctx context.Context, name, domain string) (string, error) {
	id := uuid.New().String()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO organizations (id, name, domain, status) VALUES ($1, $2, $3, 'active')`,
		id, name, domain,
	)
	if err != nil {
		return "", eris.Wrapf(err, "postgres: insert organization %s", domain)
	}
	return id, nil
}

func (s *PostgresStore) GetContactIDByEmail(ctx context.Context, email string) (string, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id FROM contacts WHERE email = $1`,
		email,
	)
	return scanID(row, "get contact by email")
}

func (s *PostgresStore) InsertContact(ctx context.Context, c NewContact) (string, error) {
	id := uuid.New().String()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO contacts (id, email, first_name, last_name, organization_id, status)
		 VALUES ($1, $2, $3, $4, $5, 'active')`,
		id, c.Email, c.FirstName, c.LastName, c.OrganizationID,
	)
	if err != nil {
		return "", eris.Wrapf(err, "postgres: insert contact %s", c.Email)
	}
	return id, nil
}

func (s *PostgresStore) InterestExists(ctx context.Context, contactID, productID string) (bool, error) {
	var id string
	err := s.pool.QueryRow(ctx,
		`SELECT id FROM contact_product_interests WHERE contact_id = $1 AND product_id = $2`,
		contactID, productID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, eris.Wrap(err, "postgres: interest exists")
	}
	return true, nil
}

func (s *PostgresStore) InsertInterest(ctx context.Context, in Interest) error {
	id := uuid.New().String()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO contact_product_interests
		 (id, contact_id, organization_id, product_id, interest_level, status, source, lead_score_contribution)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, in.ContactID, in.OrganizationID, in.ProductID,
		in.InterestLevel, in.Status, in.Source, in.LeadScoreContribution,
	)
	return eris.Wrap(err, "postgres: insert interest")
}

func (s *PostgresStore) TotalCounts(ctx context.Context) (Counts, error) {
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
		if err := s.pool.QueryRow(ctx, q.sql).Scan(q.dest); err != nil {
			return Counts{}, eris.Wrap(err, "postgres: total counts")
		}
	}
	return c, nil
}

func (s *PostgresStore) ProductsByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT COALESCE(category_name, 'Uncategorized'), COUNT(*) FROM products GROUP BY 1`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: products by category")
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, eris.Wrap(err, "postgres: scan category count")
		}
		out[name] = count
	}
	return out, eris.Wrap(rows.Err(), "postgres: products by category iterate")
}

func (s *PostgresStore) ProductsByPriority(ctx context.Context) (map[string]int, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT sales_priority, COUNT(*) FROM products GROUP BY sales_priority`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: products by priority")
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var priority *int
		var count int
		if err := rows.Scan(&priority, &count); err != nil {
			return nil, eris.Wrap(err, "postgres: scan priority count")
		}
		out[priorityLabel(priority)] = count
	}
	return out, eris.Wrap(rows.Err(), "postgres: products by priority iterate")
}

func priorityLabel(priority *int) string {
	if priority == nil {
		return "No Priority"
	}
	return strconv.Itoa(*priority)
}
