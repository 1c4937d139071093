package testhelper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestDB_MigrationsApplied(t *testing.T) {
	pool := SetupTestDB(t)
	ctx := context.Background()

	var table bool
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT to_regclass('public.lookup_history') IS NOT NULL`,
	).Scan(&table))
	assert.True(t, table, "lookup_history should exist")

	var version int64
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT max(version_id) FROM goose_db_version`,
	).Scan(&version))
	assert.EqualValues(t, 1, version)
}
