package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/humidor/internal/constants"
	"github.com/julianstephens/humidor/internal/storage/jsonfile"
	"github.com/julianstephens/humidor/internal/storage/memory"
	"github.com/julianstephens/humidor/internal/storage/postgres"
	"github.com/julianstephens/humidor/internal/storage/sqlite"
)

// Kind names a backing medium implementation.
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
	KindJSON     Kind = "json"
	KindMemory   Kind = "memory"
)

// Migrator is implemented by the SQL media.
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
	SchemaVersion() (current, latest int, err error)
}

// DetectKind picks the medium for a DSN. Anything that is not recognizably
// Postgres, JSON or in-memory is treated as a SQLite file path.
func DetectKind(dsn string) Kind {
	trimmed := strings.TrimSpace(dsn)
	switch {
	case trimmed == constants.MemoryDSN:
		return KindMemory
	case postgres.IsURL(trimmed), strings.HasPrefix(trimmed, "host="):
		return KindPostgres
	case strings.EqualFold(filepath.Ext(trimmed), ".json"):
		return KindJSON
	default:
		return KindSQLite
	}
}

// Open returns the unopened Provider for dsn. Callers run Init or Load before use.
func Open(dsn string) (Provider, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("no storage location configured")
	}

	switch DetectKind(dsn) {
	case KindMemory:
		return memory.New(), nil
	case KindPostgres:
		return postgres.New(strings.TrimSpace(dsn)), nil
	case KindJSON:
		return jsonfile.NewStore(dsn), nil
	default:
		return sqlite.NewStore(dsn), nil
	}
}
