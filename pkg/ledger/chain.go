// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package ledger

import (
	"fmt"
	"sync"
	"time"

	"gitlab.com/accumulatenetwork/starledger/internal/logging"
	"gitlab.com/accumulatenetwork/starledger/pkg/errors"
	"gitlab.com/accumulatenetwork/starledger/protocol"
)

// ValidationError reports a single integrity finding: a tampered block or a
// broken link at a given height.
type ValidationError struct {
	Code   errors.Status
	Height uint64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("block %d: %v", e.Height, e.Code)
}

func (e *ValidationError) Unwrap() error { return e.Code }

// CorruptionError is returned when a pre-append scan finds the chain
// inconsistent. The append is refused and the chain is left unmodified.
type CorruptionError struct {
	Findings []*ValidationError
}

func (e *CorruptionError) Error() string {
	if len(e.Findings) == 1 {
		return fmt.Sprintf("chain corrupted: %v", e.Findings[0])
	}
	return fmt.Sprintf("chain corrupted: %d findings, first is %v", len(e.Findings), e.Findings[0])
}

func (e *CorruptionError) Unwrap() error { return errors.ChainCorrupted }

// Chain is the exclusive owner of the ordered block sequence. All mutation
// goes through Initialize, Append, and Import; external code never holds a
// reference to the live sequence.
type Chain struct {
	mu     sync.RWMutex
	blocks []Block
	byHash map[Hash]uint64
	now    func() time.Time
	logger logging.OptionalLogger
}

// NewChain creates an empty chain. The logger and clock may be nil.
func NewChain(logger logging.Logger, now func() time.Time) *Chain {
	c := new(Chain)
	c.logger.Set(logger, "module", "chain")
	c.byHash = map[Hash]uint64{}
	c.now = now
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Initialize synthesizes and appends the genesis block. Genesis is trusted by
// construction: it carries the fixed marker payload and skips ownership
// verification. Initialize is idempotent - on a non-empty chain it is a no-op
// and returns the existing genesis block.
func (c *Chain) Initialize() *Block {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.blocks) > 0 {
		return c.blocks[0].Copy()
	}

	blk := SealBlock(protocol.NewGenesisPayload(), NoPreviousHash, 0, c.now().Unix())
	c.blocks = append(c.blocks, *blk)
	c.byHash[blk.Hash] = blk.Height
	c.logger.Info("Genesis block sealed", "hash", blk.Hash)
	return blk.Copy()
}

// Height returns the current highest height, or -1 if the chain is
// uninitialized.
func (c *Chain) Height() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int64(len(c.blocks)) - 1
}

// Tip returns the hash of the highest block. The second return is false if
// the chain is uninitialized.
func (c *Chain) Tip() (Hash, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.blocks) == 0 {
		return Hash{}, false
	}
	return c.blocks[len(c.blocks)-1].Hash, true
}

// Append seals a block over the payload and commits it to the chain. The
// whole operation - next-height read, seal, validation, commit - runs under
// one lock, so concurrent appends cannot interleave.
//
// Before committing, Append validates the existing chain. If validation
// reports any finding the append fails with a CorruptionError and the chain
// is left unmodified. This deliberately refuses the write instead of logging
// and proceeding.
func (c *Chain) Append(payload []byte) (*Block, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if errs := c.validateLocked(); len(errs) > 0 {
		c.logger.Error("Refusing append, chain is corrupted", "findings", len(errs))
		return nil, &CorruptionError{Findings: errs}
	}

	height := uint64(len(c.blocks))
	previous := NoPreviousHash
	if height > 0 {
		previous = c.blocks[height-1].Hash
	}

	blk := SealBlock(payload, previous, height, c.now().Unix())
	c.blocks = append(c.blocks, *blk)
	c.byHash[blk.Hash] = blk.Height
	c.logger.Debug("Block appended", "height", blk.Height, "hash", blk.Hash)
	return blk.Copy(), nil
}

// GetByHash returns a copy of the block with the given identity hash, or nil
// if the chain contains no such block.
func (c *Chain) GetByHash(hash Hash) *Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	height, ok := c.byHash[hash]
	if !ok || height >= uint64(len(c.blocks)) {
		return nil
	}
	return c.blocks[height].Copy()
}

// GetByHeight returns a copy of the block at the given height, or nil if the
// height is out of range.
func (c *Chain) GetByHeight(height uint64) *Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if height >= uint64(len(c.blocks)) {
		return nil
	}
	return c.blocks[height].Copy()
}

// Validate scans the full chain once and reports every finding: a block whose
// stored hash does not match its recomputed hash is tampered, and a block
// whose previous-hash does not match its predecessor's hash is a broken link.
// An empty result means the chain is fully consistent. Validate is read-only
// and safe to call concurrently with other reads.
func (c *Chain) Validate() []*ValidationError {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.validateLocked()
}

func (c *Chain) validateLocked() []*ValidationError {
	var errs []*ValidationError
	for i := range c.blocks {
		b := &c.blocks[i]
		if b.RecomputeHash() != b.Hash {
			errs = append(errs, &ValidationError{Code: errors.TamperedBlock, Height: uint64(i)})
		}
		switch {
		case b.Height != uint64(i):
			errs = append(errs, &ValidationError{Code: errors.BrokenLink, Height: uint64(i)})
		case i == 0:
			if b.PreviousHash != NoPreviousHash {
				errs = append(errs, &ValidationError{Code: errors.BrokenLink, Height: 0})
			}
		default:
			if b.PreviousHash != c.blocks[i-1].Hash {
				errs = append(errs, &ValidationError{Code: errors.BrokenLink, Height: uint64(i)})
			}
		}
	}
	return errs
}

// Export returns an independent copy of the ordered block sequence, for
// persistence and read-side scans.
func (c *Chain) Export() []Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	blocks := make([]Block, len(c.blocks))
	for i := range c.blocks {
		blocks[i] = *c.blocks[i].Copy()
	}
	return blocks
}

// Import loads an ordered block sequence into an empty chain, validating it
// first. A sequence with any finding is rejected whole and the chain remains
// empty. Import exists for restoring persisted snapshots; it is not a second
// write path - restored blocks were sealed by Append in a previous life.
func (c *Chain) Import(blocks []Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.blocks) > 0 {
		return errors.InternalError.With("cannot import into a non-empty chain")
	}

	c.blocks = make([]Block, len(blocks))
	for i := range blocks {
		c.blocks[i] = *blocks[i].Copy()
	}

	if errs := c.validateLocked(); len(errs) > 0 {
		c.blocks = nil
		return &CorruptionError{Findings: errs}
	}

	for i := range c.blocks {
		c.byHash[c.blocks[i].Hash] = c.blocks[i].Height
	}
	c.logger.Info("Chain imported", "height", len(c.blocks)-1)
	return nil
}
