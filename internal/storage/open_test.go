package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/humidor/internal/storage/jsonfile"
	"github.com/julianstephens/humidor/internal/storage/memory"
	"github.com/julianstephens/humidor/internal/storage/postgres"
	"github.com/julianstephens/humidor/internal/storage/sqlite"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		dsn  string
		want Kind
	}{
		{":memory:", KindMemory},
		{"postgres://me@localhost/humidor", KindPostgres},
		{"postgresql://me@localhost/humidor", KindPostgres},
		{"host=localhost dbname=humidor", KindPostgres},
		{"/tmp/humidor.json", KindJSON},
		{"/tmp/HUMIDOR.JSON", KindJSON},
		{"/tmp/humidor.db", KindSQLite},
		{"humidor", KindSQLite},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectKind(tt.dsn))
		})
	}
}

func TestOpen(t *testing.T) {
	p, err := Open(":memory:")
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, p)

	p, err = Open("/tmp/x.db")
	require.NoError(t, err)
	assert.IsType(t, &sqlite.Store{}, p)
	assert.Implements(t, (*Migrator)(nil), p)

	p, err = Open("/tmp/x.json")
	require.NoError(t, err)
	assert.IsType(t, &jsonfile.Store{}, p)

	p, err = Open("postgres://me@localhost/humidor")
	require.NoError(t, err)
	assert.IsType(t, &postgres.Store{}, p)
	assert.Implements(t, (*Migrator)(nil), p)

	_, err = Open("  ")
	assert.Error(t, err)
}
