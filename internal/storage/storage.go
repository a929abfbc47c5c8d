package storage

import (
	"fmt"
	"strings"
)

// Package storage provides the local append-only record store.

// Store is the persistence sink for extracted text records. It must
// tolerate concurrent callers; AppendRecords reports how many of the
// given texts were actually persisted so callers can count drops.
type Store interface {
	Close() error
	AppendRecords(texts ...string) (int, error)
	CountRecords() (int, error)
}

// NewStore creates the configured storage backend.
func NewStore(typ, path string) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

type noopStore struct{}

func (noopStore) Close() error { return nil }
func (noopStore) AppendRecords(texts ...string) (int, error) {
	return len(texts), nil
}
func (noopStore) CountRecords() (int, error) { return 0, nil }
