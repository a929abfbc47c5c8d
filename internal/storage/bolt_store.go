package storage

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

const recordBucket = "records"

// boltStore implements an append-only Store backed by BoltDB. Keys are
// the bucket sequence number, so insertion order is preserved and
// duplicate texts are stored as distinct records.
type boltStore struct {
	db *bolt.DB
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(recordBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	return &boltStore{db: db}, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// AppendRecords persists each non-blank text as one record and returns
// the number persisted. Blank texts are dropped, not errors. BoltDB
// serializes writers internally, so concurrent callers are safe.
func (b *boltStore) AppendRecords(texts ...string) (int, error) {
	if b == nil || b.db == nil {
		return 0, fmt.Errorf("store is not open")
	}
	if len(texts) == 0 {
		return 0, nil
	}

	stored := 0
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(recordBucket))
		if bucket == nil {
			return fmt.Errorf("record bucket missing")
		}

		for _, text := range texts {
			if strings.TrimSpace(text) == "" {
				continue
			}
			seq, err := bucket.NextSequence()
			if err != nil {
				return fmt.Errorf("next sequence: %w", err)
			}
			key := make([]byte, 8)
			binary.BigEndian.PutUint64(key, seq)
			if err := bucket.Put(key, []byte(text)); err != nil {
				return fmt.Errorf("put record: %w", err)
			}
			stored++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return stored, nil
}

// CountRecords returns the number of persisted records.
func (b *boltStore) CountRecords() (int, error) {
	if b == nil || b.db == nil {
		return 0, fmt.Errorf("store is not open")
	}

	count := 0
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(recordBucket))
		if bucket == nil {
			return fmt.Errorf("record bucket missing")
		}
		count = bucket.Stats().KeyN
		return nil
	})
	return count, err
}
