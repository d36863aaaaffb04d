package testutil

import (
	"database/sql"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vytor/pricepulse/internal/catalog"
	"github.com/vytor/pricepulse/internal/db"
	"github.com/vytor/pricepulse/internal/logger"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
func NewTestDB(t *testing.T) *sql.DB {
	store, err := db.Open(":memory:")
	require.NoError(t, err)
	return store.DB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// Catalog returns the embedded catalog and fails the test if it does not load.
func Catalog(t *testing.T) *catalog.Catalog {
	c, err := catalog.Embedded()
	require.NoError(t, err)
	return c
}

// QuietLogger discards everything.
func QuietLogger() *logger.Logger {
	return logger.New(logger.WithOutput(io.Discard))
}
