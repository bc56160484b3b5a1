package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigString(t *testing.T) {
	testCases := []struct {
		name     string
		config   Config
		expected string
	}{
		{
			name:     "defaults",
			expected: "host=127.0.0.1 dbname=postgres port=5432 sslmode=prefer",
		},
		{
			name:     "credentials",
			config:   Config{Host: "db", Port: "6432", DBName: "noderewards", SSLMode: "disable", User: "app", Password: "pw"},
			expected: "host=db dbname=noderewards port=6432 sslmode=disable user=app password=pw",
		},
		{
			name:     "url wins",
			config:   Config{Host: "db", URL: "postgres://app@db:5432/noderewards"},
			expected: "postgres://app@db:5432/noderewards",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.config.String())
		})
	}
}
