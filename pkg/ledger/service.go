// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package ledger

import (
	"encoding/json"
	"time"

	"gitlab.com/accumulatenetwork/starledger/internal/logging"
	"gitlab.com/accumulatenetwork/starledger/pkg/errors"
	"gitlab.com/accumulatenetwork/starledger/protocol"
)

// Service orchestrates the verifier and the chain. It is the only component
// external callers touch.
type Service struct {
	chain    *Chain
	verifier *Verifier
	logger   logging.OptionalLogger
}

// Option configures a Service.
type Option func(*serviceOpts)

type serviceOpts struct {
	now    func() time.Time
	window time.Duration
	verify SignatureVerifier
	chain  *Chain
}

// WithClock overrides the clock used for block timestamps and challenge
// expiry.
func WithClock(now func() time.Time) Option {
	return func(o *serviceOpts) { o.now = now }
}

// WithChallengeWindow overrides the challenge validation window.
func WithChallengeWindow(window time.Duration) Option {
	return func(o *serviceOpts) { o.window = window }
}

// WithSignatureVerifier overrides the signature-verification primitive.
func WithSignatureVerifier(verify SignatureVerifier) Option {
	return func(o *serviceOpts) { o.verify = verify }
}

// WithChain serves an existing chain, such as one restored from a snapshot,
// instead of creating a fresh one.
func WithChain(chain *Chain) Option {
	return func(o *serviceOpts) { o.chain = chain }
}

// NewService creates a ledger service and initializes its chain. The logger
// may be nil.
func NewService(logger logging.Logger, opts ...Option) *Service {
	var o serviceOpts
	for _, opt := range opts {
		opt(&o)
	}

	s := new(Service)
	s.logger.Set(logger, "module", "ledger")
	s.chain = o.chain
	if s.chain == nil {
		s.chain = NewChain(logger, o.now)
	}
	s.verifier = NewVerifier(o.window, o.now, o.verify)
	s.chain.Initialize()
	return s
}

// Chain returns the service's chain, for persistence collaborators.
func (s *Service) Chain() *Chain { return s.chain }

// RequestChallenge issues a challenge message for the address. The caller
// signs it externally and submits the signature with SubmitStar.
func (s *Service) RequestChallenge(address string) string {
	return s.verifier.IssueChallenge(address)
}

// SubmitStar verifies ownership of the address and, on success, seals and
// appends a block carrying the star claim. On verification failure no block
// is constructed or appended and the error reports why. Chain failures are
// wrapped as chain errors, distinct from verification failures.
func (s *Service) SubmitStar(address, message, signature string, star json.RawMessage) (*Block, error) {
	err := s.verifier.Verify(address, message, signature)
	if err != nil {
		s.logger.Info("Star rejected", "address", address, "error", err)
		return nil, errors.VerificationFailed.Wrap(err)
	}

	claim := &protocol.StarClaim{
		Address:   address,
		Message:   message,
		Signature: signature,
		Star:      star,
	}
	payload, err := claim.MarshalPayload()
	if err != nil {
		// The star came from the caller, so an unencodable claim is their
		// problem, not the chain's
		return nil, errors.BadRequest.Wrap(err)
	}

	blk, err := s.chain.Append(payload)
	if err != nil {
		return nil, errors.ChainError.Wrap(err)
	}

	s.logger.Info("Star registered", "address", address, "height", blk.Height, "hash", blk.Hash)
	return blk, nil
}

// GetBlockByHash returns the block with the given identity hash, or nil.
func (s *Service) GetBlockByHash(hash Hash) *Block {
	return s.chain.GetByHash(hash)
}

// GetBlockByHeight returns the block at the given height, or nil.
func (s *Service) GetBlockByHeight(height uint64) *Block {
	return s.chain.GetByHeight(height)
}

// GetStarsByAddress returns every star claim registered for the address. The
// scan examines every block before returning. Blocks whose payload does not
// decode as a claim - the genesis block in particular - are skipped, not
// errors.
func (s *Service) GetStarsByAddress(address string) []*protocol.StarClaim {
	var claims []*protocol.StarClaim
	for _, blk := range s.chain.Export() {
		claim, err := blk.DecodePayload()
		if err != nil {
			s.logger.Debug("Skipping undecodable payload", "height", blk.Height, "error", err)
			continue
		}
		if claim == nil {
			// Genesis marker
			continue
		}
		if claim.Address == address {
			claims = append(claims, claim)
		}
	}
	return claims
}

// ValidateLedger scans the full chain and reports every integrity finding. An
// empty result means the ledger is valid.
func (s *Service) ValidateLedger() []*ValidationError {
	return s.chain.Validate()
}

// Height returns the current highest block height, or -1 before genesis.
func (s *Service) Height() int64 {
	return s.chain.Height()
}
