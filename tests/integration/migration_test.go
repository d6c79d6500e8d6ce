//go:build integration

package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, tdb *TestDB, name string) bool {
	t.Helper()
	var exists bool
	require.NoError(t, tdb.DB.Raw(
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = 'public' AND table_name = ?)`, name,
	).Scan(&exists).Error)
	return exists
}

func TestMigrations_RoundTrip(t *testing.T) {
	tdb := NewTestDB(t)
	m := newMigrator(t, tdb.SqlDB)

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
	assert.True(t, tableExists(t, tdb, "payment_terms"))

	require.NoError(t, m.Down())
	assert.False(t, tableExists(t, tdb, "payment_terms"))
	version, _, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)

	require.NoError(t, m.Up())
	require.NoError(t, m.Up())
	assert.True(t, tableExists(t, tdb, "employees"))
}
