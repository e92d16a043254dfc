// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package keyvalue

// Entry is a single record of a write batch.
type Entry struct {
	Key   []byte
	Value []byte
}

// Store is a flat key-value store. Implementations must be safe for
// concurrent use and must return a not-found error for missing keys.
type Store interface {
	// Get returns a copy of the value for the key.
	Get(key []byte) ([]byte, error)

	// Put writes one record. The record is written whole or not at all.
	Put(key, value []byte) error

	// PutAll writes the entries as one batch - all of them or none.
	PutAll(entries []Entry) error

	// Close releases the store's resources.
	Close() error
}
