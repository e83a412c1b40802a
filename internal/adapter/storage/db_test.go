package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrateURL(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"postgres://u:p@localhost:5432/quota?sslmode=disable", "pgx5://u:p@localhost:5432/quota?sslmode=disable"},
		{"postgresql://localhost/quota", "pgx5://localhost/quota"},
		{"pgx5://localhost/quota", "pgx5://localhost/quota"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, migrateURL(tt.dsn))
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsDir.ReadDir("migrations")
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
}
