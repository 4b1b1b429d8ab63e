package bolt

import (
	"errors"
	"time"

	"github.com/boltdb/bolt"
)

// Driver wraps the bolt database handle so the repositories can share a
// single open file.
type Driver struct {
	store *bolt.DB
}

// Open opens the bolt database at path and makes sure the buckets exist.
func (d *Driver) Open(path string) error {
	if d.store != nil {
		return errors.New("store already open")
	}

	store, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return err
	}

	err = store.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(paperBucket)
		return err
	})
	if err != nil {
		store.Close()
		return err
	}

	d.store = store
	return nil
}

// Close closes the underlying database.
func (d *Driver) Close() error {
	if d.store != nil {
		err := d.store.Close()
		d.store = nil
		return err
	}
	return nil
}
