// Package storage provides the key-value blob store that backs the
// reminder list, history log and user settings. Each key holds one
// independently JSON-encoded blob.
package storage

import "fmt"

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// KV is a flat key-value blob store. A missing key is not an error:
// Get returns ok=false for it.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Close() error
}

// Options selects and configures a storage backend.
type Options struct {
	Backend string

	// SQLite
	Path string

	// Redis
	Addr     string
	Password string
	DB       int
}

// Open creates a KV store for the configured backend.
func Open(opts Options) (KV, error) {
	switch opts.Backend {
	case BackendSQLite:
		return NewSQLite(opts.Path)
	case BackendRedis:
		return NewRedis(opts.Addr, opts.Password, opts.DB), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %q (supported: %s, %s)",
			opts.Backend, BackendSQLite, BackendRedis)
	}
}
