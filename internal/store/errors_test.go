package store

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicate_Postgres(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505"}
	assert.True(t, IsDuplicate(dup))
	assert.True(t, IsDuplicate(eris.Wrap(dup, "postgres: insert interest")))

	other := &pgconn.PgError{Code: "23503"}
	assert.False(t, IsDuplicate(other))
}

func TestIsDuplicate_Other(t *testing.T) {
	assert.False(t, IsDuplicate(nil))
	assert.False(t, IsDuplicate(errors.New("duplicate-sounding but plain")))
}
