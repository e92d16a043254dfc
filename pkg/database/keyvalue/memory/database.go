// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package memory

import (
	"sync"

	"gitlab.com/accumulatenetwork/starledger/pkg/database/keyvalue"
	"gitlab.com/accumulatenetwork/starledger/pkg/errors"
)

// Database is an in-memory key-value store, used for tests and for ledgers
// that do not attach durable storage.
type Database struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

var _ keyvalue.Store = (*Database)(nil)

func New() *Database {
	return &Database{entries: map[string][]byte{}}
}

func (d *Database) Get(key []byte) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.entries[string(key)]
	if !ok {
		return nil, errors.NotFound.WithFormat("key %x not found", key)
	}
	u := make([]byte, len(v))
	copy(u, v)
	return u, nil
}

func (d *Database) Put(key, value []byte) error {
	return d.PutAll([]keyvalue.Entry{{Key: key, Value: value}})
}

func (d *Database) PutAll(entries []keyvalue.Entry) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, e := range entries {
		v := make([]byte, len(e.Value))
		copy(v, e.Value)
		d.entries[string(e.Key)] = v
	}
	return nil
}

func (d *Database) Close() error { return nil }
