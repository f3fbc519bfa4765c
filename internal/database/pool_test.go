package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoolRejectsMalformedConnString(t *testing.T) {
	_, err := NewPool("not a connection string", 5, 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToParseConnString)
}

func TestMigrationsAreEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
	for _, entry := range entries {
		assert.Contains(t, entry.Name(), ".sql")
	}
}
