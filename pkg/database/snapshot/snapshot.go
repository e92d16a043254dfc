// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package snapshot persists a ledger chain to a key-value store and restores
// it. A restore runs the full chain validation before any block becomes
// visible, so a tampered snapshot cannot be loaded.
package snapshot

import (
	"encoding/binary"
	"encoding/json"

	"gitlab.com/accumulatenetwork/starledger/pkg/database/keyvalue"
	"gitlab.com/accumulatenetwork/starledger/pkg/errors"
	"gitlab.com/accumulatenetwork/starledger/pkg/ledger"
)

var headKey = []byte("chain.head")

const blockKeyPrefix = "chain.block."

func blockKey(height uint64) []byte {
	key := make([]byte, len(blockKeyPrefix)+8)
	copy(key, blockKeyPrefix)
	binary.BigEndian.PutUint64(key[len(blockKeyPrefix):], height)
	return key
}

// Collect encodes the chain's blocks as store entries. The head entry records
// the block count so a partial write is detectable on load.
func Collect(chain *ledger.Chain) ([]keyvalue.Entry, error) {
	blocks := chain.Export()

	entries := make([]keyvalue.Entry, 0, len(blocks)+1)
	for i := range blocks {
		b := &blocks[i]
		data, err := json.Marshal(b)
		if err != nil {
			return nil, errors.EncodingError.WithFormat("marshal block %d: %w", b.Height, err)
		}
		entries = append(entries, keyvalue.Entry{Key: blockKey(b.Height), Value: data})
	}

	head := make([]byte, 8)
	binary.BigEndian.PutUint64(head, uint64(len(blocks)))
	entries = append(entries, keyvalue.Entry{Key: headKey, Value: head})
	return entries, nil
}

// Save writes the chain to the store as a single batch.
func Save(chain *ledger.Chain, store keyvalue.Store) error {
	entries, err := Collect(chain)
	if err != nil {
		return err
	}
	err = store.PutAll(entries)
	if err != nil {
		return errors.UnknownError.WithFormat("save snapshot: %w", err)
	}
	return nil
}

// Load reads the blocks of a saved chain from the store. An empty store loads
// as an empty block list.
func Load(store keyvalue.Store) ([]ledger.Block, error) {
	head, err := store.Get(headKey)
	switch {
	case err == nil:
		// Ok
	case errors.Is(err, errors.NotFound):
		return nil, nil
	default:
		return nil, errors.UnknownError.WithFormat("load snapshot head: %w", err)
	}
	if len(head) != 8 {
		return nil, errors.EncodingError.WithFormat("load snapshot head: want 8 bytes, got %d", len(head))
	}

	// The head count is untrusted until the block records confirm it, so cap
	// the pre-allocation instead of sizing it from the stored value
	count := binary.BigEndian.Uint64(head)
	alloc := count
	if alloc > 1<<16 {
		alloc = 1 << 16
	}
	blocks := make([]ledger.Block, 0, alloc)
	for height := uint64(0); height < count; height++ {
		data, err := store.Get(blockKey(height))
		if err != nil {
			return nil, errors.UnknownError.WithFormat("load block %d: %w", height, err)
		}

		var b ledger.Block
		err = json.Unmarshal(data, &b)
		if err != nil {
			return nil, errors.EncodingError.WithFormat("unmarshal block %d: %w", height, err)
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

// Restore loads a saved chain into an empty chain. The chain validates the
// blocks before accepting them.
func Restore(chain *ledger.Chain, store keyvalue.Store) error {
	blocks, err := Load(store)
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		return nil
	}
	return chain.Import(blocks)
}
