// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package bolt

import (
	"gitlab.com/accumulatenetwork/starledger/pkg/database/keyvalue"
	"gitlab.com/accumulatenetwork/starledger/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var bucketName = []byte("ledger")

// Database is a Bolt-backed key-value store: a single file, a single bucket.
type Database struct {
	bolt *bolt.DB
}

var _ keyvalue.Store = (*Database)(nil)

// Open opens a Bolt database at the given path.
func Open(filepath string) (*Database, error) {
	db, err := bolt.Open(filepath, 0600, nil)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.UnknownError.WithFormat("open bolt: create bucket: %w", err)
	}

	return &Database{bolt: db}, nil
}

func (d *Database) Get(key []byte) ([]byte, error) {
	var value []byte
	err := d.bolt.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get(key)
		if v == nil {
			return errors.NotFound.WithFormat("key %x not found", key)
		}

		// The value is only valid within the transaction
		value = make([]byte, len(v))
		copy(value, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (d *Database) Put(key, value []byte) error {
	return d.PutAll([]keyvalue.Entry{{Key: key, Value: value}})
}

func (d *Database) PutAll(entries []keyvalue.Entry) error {
	return d.bolt.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		for _, e := range entries {
			if err := b.Put(e.Key, e.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *Database) Close() error {
	return d.bolt.Close()
}
