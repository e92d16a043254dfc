// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"encoding/json"

	"gitlab.com/accumulatenetwork/starledger/pkg/errors"
)

// GenesisMarker is the fixed payload content of the genesis block.
const GenesisMarker = "Genesis Block"

// StarClaim is the payload of every non-genesis block: an ownership claim for
// a star, bound to an address by a signed challenge message.
type StarClaim struct {
	// Address is the claimed owner.
	Address string `json:"address"`

	// Message is the challenge string that was signed.
	Message string `json:"message"`

	// Signature is the base64 compact signature of Message.
	Signature string `json:"signature"`

	// Star is the descriptive payload. The ledger does not interpret it.
	Star json.RawMessage `json:"star,omitempty"`
}

type genesisPayload struct {
	Data string `json:"data"`
}

// NewGenesisPayload returns the marker payload of the genesis block.
func NewGenesisPayload() []byte {
	b, err := json.Marshal(&genesisPayload{Data: GenesisMarker})
	if err != nil {
		// Marshaling a fixed struct cannot fail
		panic(err)
	}
	return b
}

// IsGenesisPayload returns true if the payload is the genesis marker.
func IsGenesisPayload(payload []byte) bool {
	g := new(genesisPayload)
	if err := json.Unmarshal(payload, g); err != nil {
		return false
	}
	return g.Data == GenesisMarker
}

// MarshalPayload encodes the claim as a block payload. The encoding is
// canonical: fields are emitted in declaration order, so the same claim always
// produces the same bytes.
func (c *StarClaim) MarshalPayload() ([]byte, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, errors.EncodingError.WithFormat("encode star claim: %w", err)
	}
	return b, nil
}

// DecodeClaim decodes a block payload as a star claim. Payloads that do not
// parse, or that are missing the address, message, or signature, fail with an
// encoding error.
func DecodeClaim(payload []byte) (*StarClaim, error) {
	c := new(StarClaim)
	if err := json.Unmarshal(payload, c); err != nil {
		return nil, errors.EncodingError.WithFormat("decode star claim: %w", err)
	}
	if c.Address == "" || c.Message == "" || c.Signature == "" {
		return nil, errors.EncodingError.With("decode star claim: missing required fields")
	}
	return c, nil
}
