package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDialectorKnownDrivers(t *testing.T) {
	for _, d := range []string{"sqlite", "postgres", "mysql", "sqlserver"} {
		dial, err := buildDialector(d, "dsn")
		require.NoError(t, err, d)
		assert.Equal(t, d, dial.Name())
	}
}

func TestBuildDialectorUnknown(t *testing.T) {
	_, err := buildDialector("oracle", "dsn")
	assert.Error(t, err)
}

func TestOpenSQLiteInMemory(t *testing.T) {
	db, err := OpenSQL("sqlite", "file::memory:")
	require.NoError(t, err)
	var n int
	require.NoError(t, db.Raw("SELECT 1").Scan(&n).Error)
	assert.Equal(t, 1, n)
}
