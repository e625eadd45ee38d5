// Package badgerstore persists console settings in a BadgerDB directory.
// The console keeps exactly one durable value, the ad server base URL,
// stored under a fixed key with no expiry and no versioning.
package badgerstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const baseURLKey = "settings:base_url"

// SettingsStore implements port.SettingsStore on top of badger.
type SettingsStore struct {
	db *badger.DB
}

// Open opens (creating if needed) the badger database at dir. The caller
// must Close the store when done.
func Open(dir string) (*SettingsStore, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open settings store: %w", err)
	}
	return &SettingsStore{db: db}, nil
}

// Close releases the underlying database.
func (s *SettingsStore) Close() error {
	return s.db.Close()
}

// Load returns the stored base URL, or an empty string when none has
// been saved yet.
func (s *SettingsStore) Load(ctx context.Context) (string, error) {
	var out string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(baseURLKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			out = string(val)
			return nil
		})
	})
	if err != nil {
		return "", fmt.Errorf("load base url: %w", err)
	}
	return out, nil
}

// Save stores the base URL under the fixed settings key, replacing any
// previous value.
func (s *SettingsStore) Save(ctx context.Context, baseURL string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(baseURLKey), []byte(baseURL))
	})
	if err != nil {
		return fmt.Errorf("save base url: %w", err)
	}
	return nil
}
