package storage

import "context"

// Medium is the string-keyed persistence the record store sits on.
// Get reports found=false for keys that were never written or have been removed.
type Medium interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	MultiRemove(ctx context.Context, keys ...string) error
}

// Provider is a Medium with a lifecycle, as opened from a DSN.
type Provider interface {
	Medium

	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Utils
	GetConfigPath() string
}
