// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package ledger

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"

	"gitlab.com/accumulatenetwork/starledger/pkg/errors"
	"gitlab.com/accumulatenetwork/starledger/protocol"
)

// Hash is a SHA-256 digest.
type Hash [32]byte

// NoPreviousHash is the previous-hash sentinel of the genesis block.
var NoPreviousHash Hash

func (h Hash) String() string { return hex.EncodeToString(h[:]) }

func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(h[:]))
}

func (h *Hash) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	if len(b) != 32 {
		return errors.EncodingError.WithFormat("invalid hash length: want 32, got %d", len(b))
	}
	copy(h[:], b)
	return nil
}

// ParseHash parses a hex-encoded digest.
func ParseHash(s string) (Hash, error) {
	var h Hash
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, errors.EncodingError.WithFormat("parse hash: %w", err)
	}
	if len(b) != 32 {
		return h, errors.EncodingError.WithFormat("parse hash: invalid length %d", len(b))
	}
	copy(h[:], b)
	return h, nil
}

// Block is an immutable, hash-identified record. A block is sealed once, at
// construction; its hash is a pure function of the other fields at seal time
// and is never recomputed except by the validator.
type Block struct {
	Height       uint64          `json:"height"`
	Timestamp    int64           `json:"timestamp"`
	PreviousHash Hash            `json:"previousHash"`
	Payload      json.RawMessage `json:"payload"`
	Hash         Hash            `json:"hash"`
}

// SealBlock seals a new block over the given payload and linkage fields.
func SealBlock(payload []byte, previousHash Hash, height uint64, timestamp int64) *Block {
	b := &Block{
		Height:       height,
		Timestamp:    timestamp,
		PreviousHash: previousHash,
		Payload:      append(json.RawMessage(nil), payload...),
	}
	b.Hash = b.RecomputeHash()
	return b
}

// RecomputeHash re-derives the block's digest from its current field values.
// The serialization is canonical: fixed field order, big-endian integers. It
// never mutates the block.
func (b *Block) RecomputeHash() Hash {
	buf := make([]byte, 0, 48+len(b.Payload))
	buf = binary.BigEndian.AppendUint64(buf, b.Height)
	buf = binary.BigEndian.AppendUint64(buf, uint64(b.Timestamp))
	buf = append(buf, b.PreviousHash[:]...)
	buf = append(buf, b.Payload...)
	return sha256.Sum256(buf)
}

// IsGenesis returns true if the block carries the genesis marker payload.
func (b *Block) IsGenesis() bool {
	return b.Height == 0 && protocol.IsGenesisPayload(b.Payload)
}

// DecodePayload interprets the block's payload. It returns the star claim for
// claim blocks and nil for the genesis marker. Malformed payloads fail with an
// encoding error.
func (b *Block) DecodePayload() (*protocol.StarClaim, error) {
	if protocol.IsGenesisPayload(b.Payload) {
		return nil, nil
	}
	return protocol.DecodeClaim(b.Payload)
}

// Copy returns an independent copy of the block.
func (b *Block) Copy() *Block {
	c := *b
	c.Payload = append(json.RawMessage(nil), b.Payload...)
	return &c
}
