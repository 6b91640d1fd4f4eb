package store

import "fmt"

// New constructs a Store for the given backend kind ("memory" or
// "sqlite").
func New(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return newSQLiteStore(sqlitePath)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

// CloseIfSupported closes a Store if its backend requires it (sqlite),
// and is a no-op otherwise (memory).
func CloseIfSupported(s Store) error {
	closer, ok := s.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
