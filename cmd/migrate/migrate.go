package migrate

import (
	"fmt"
	"net/url"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/node-rewards/internal/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const (
	nodeRewardsMigrationSource = "modules/noderewards/database/postgresql/migrations"
	nodeRewardsMigrationTable  = "noderewards_schema_migrations"
)

func cloneURLWithQuery(u *url.URL, newQuery url.Values) *url.URL {
	clone := *u
	query := clone.Query()
	for key, values := range newQuery {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	clone.RawQuery = query.Encode()
	return &clone
}

var supportedDrivers = map[string]struct{}{
	"postgres":   {},
	"postgresql": {},
}

// parseDatabaseURL falls back to the configured node rewards database when rawURL is empty.
func parseDatabaseURL(rawURL string) (*url.URL, error) {
	if rawURL == "" {
		conf := config.Load().Modules.NodeRewards
		if conf.Postgres.URL == "" && conf.Postgres.Host == "" {
			return nil, errors.New("--database is required")
		}
		rawURL = conf.Postgres.String()
	}
	databaseURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse database URL")
	}
	if _, ok := supportedDrivers[databaseURL.Scheme]; !ok {
		return nil, errors.Errorf("unsupported database driver: %s", databaseURL.Scheme)
	}
	return databaseURL, nil
}

func newMigrate(databaseURL *url.URL, sourcePath string) (*migrate.Migrate, error) {
	newDatabaseURL := cloneURLWithQuery(databaseURL, url.Values{"x-migrations-table": {nodeRewardsMigrationTable}})
	m, err := migrate.New("file://"+sourcePath, newDatabaseURL.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Migrate instance")
	}
	m.Log = &consoleLogger{
		prefix: fmt.Sprintf("[%s] ", "NodeRewards"),
	}
	return m, nil
}
