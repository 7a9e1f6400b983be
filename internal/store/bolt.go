package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

const (
	boltBucketPreferences = "preferences" // key: name -> raw string value

	keyLastUsername = "last_username"
)

var _ Store = (*Bolt)(nil)

type Bolt struct {
	storage *bbolt.DB
}

// NewBolt opens (or creates) the preferences database at path.
func NewBolt(path string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences %s: %w", path, err)
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketPreferences))

		return err
	}); err != nil {
		_ = instance.Close()

		return nil, err
	}

	return &Bolt{storage: instance}, nil
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.storage.Close()
}

func (b *Bolt) Ping() error {
	return b.storage.View(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(boltBucketPreferences)) == nil {
			return errors.New("preferences bucket missing")
		}

		return nil
	})
}

func (b *Bolt) Username() (string, error) {
	var name string

	err := b.storage.View(func(tx *bbolt.Tx) error {
		prefs := tx.Bucket([]byte(boltBucketPreferences))

		// Get returns a slice only valid inside the transaction
		name = string(prefs.Get([]byte(keyLastUsername)))

		return nil
	})

	return name, err
}

func (b *Bolt) SaveUsername(name string) error {
	return b.put(keyLastUsername, name)
}

func (b *Bolt) ClearUsername() error {
	return b.put(keyLastUsername, "")
}

func (b *Bolt) put(key, value string) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		prefs := tx.Bucket([]byte(boltBucketPreferences))

		return prefs.Put([]byte(key), []byte(value))
	})
}
