package store

// KV is the key-value storage medium the board is persisted to
type KV interface {
	// Get returns the stored value and whether the key exists
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
	Close() error
}

// Backend names accepted by Open
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)
