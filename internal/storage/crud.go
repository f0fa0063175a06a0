package storage

import (
	"errors"

	badger "github.com/dgraph-io/badger/v4"
)

// ErrKeyNotFound is returned by Fetch when a key holds no value.
var ErrKeyNotFound = errors.New("key not found")

// IsErrKeyNotFound reports whether err means the key was absent.
func IsErrKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound) || errors.Is(err, badger.ErrKeyNotFound)
}

// Fetch returns a copy of the value stored under key.
func (d *DB) Fetch(key string) ([]byte, error) {
	var out []byte
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrKeyNotFound
		}
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	return out, err
}

// Store replaces the value under key.
func (d *DB) Store(key string, value []byte) error {
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// Drop removes key. Dropping an absent key is not an error.
func (d *DB) Drop(key string) error {
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// Has reports whether key holds a value.
func (d *DB) Has(key string) (bool, error) {
	err := d.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		return err
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Keys lists the keys under prefix without loading their values.
func (d *DB) Keys(prefix string) ([]string, error) {
	var keys []string
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	return keys, err
}

// Size returns the on-disk size of the LSM tree plus the value log.
// In-memory databases report zero.
func (d *DB) Size() int64 {
	lsm, vlog := d.db.Size()
	return lsm + vlog
}
