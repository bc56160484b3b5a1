package migrate

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneURLWithQuery(t *testing.T) {
	u, err := url.Parse("postgres://app@localhost:5432/noderewards?sslmode=disable")
	require.NoError(t, err)

	clone := cloneURLWithQuery(u, url.Values{"x-migrations-table": {nodeRewardsMigrationTable}})
	assert.Equal(t, "disable", clone.Query().Get("sslmode"))
	assert.Equal(t, nodeRewardsMigrationTable, clone.Query().Get("x-migrations-table"))
	assert.Empty(t, u.Query().Get("x-migrations-table"))
}

func TestParseDatabaseURL(t *testing.T) {
	u, err := parseDatabaseURL("postgresql://app@localhost/noderewards")
	require.NoError(t, err)
	assert.Equal(t, "postgresql", u.Scheme)

	_, err = parseDatabaseURL("mysql://app@localhost/noderewards")
	require.Error(t, err)
}

func TestMigrateArgs(t *testing.T) {
	var up migrateUpCmdArgs
	require.NoError(t, up.ParseArgs([]string{"3"}))
	assert.Equal(t, 3, up.N)
	require.Error(t, up.ParseArgs([]string{"x"}))

	var down migrateDownCmdArgs
	require.NoError(t, down.ParseArgs(nil))
	assert.Zero(t, down.N)
	require.Error(t, down.ParseArgs([]string{"-1"}))
}
