// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package ledger

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/starledger/pkg/errors"
)

const testAddress = "1FzpnkhbAteYFBA2xz6BSQTiDZm8yRBdcr"

var testStar = json.RawMessage(`{"dec":"68d 52' 56.9","ra":"16h 29m 1.0s","story":"Found star using https://www.google.com/sky/"}`)

func newTestService(clock *fakeClock, verify SignatureVerifier) *Service {
	return NewService(nil, WithClock(clock.Now), WithSignatureVerifier(verify))
}

func TestServiceStartsWithGenesis(t *testing.T) {
	s := newTestService(&fakeClock{t: time.Unix(1000, 0)}, acceptAll)
	require.Equal(t, int64(0), s.Height())

	genesis := s.GetBlockByHeight(0)
	require.NotNil(t, genesis)
	require.True(t, genesis.IsGenesis())
	require.Equal(t, int64(1000), genesis.Timestamp)
}

func TestSubmitStar(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	s := newTestService(clock, acceptAll)

	msg := s.RequestChallenge(testAddress)
	clock.Advance(200 * time.Second)

	blk, err := s.SubmitStar(testAddress, msg, "sig", testStar)
	require.NoError(t, err)
	require.Equal(t, uint64(1), blk.Height)
	require.Equal(t, int64(1200), blk.Timestamp)
	require.Equal(t, s.GetBlockByHeight(0).Hash, blk.PreviousHash)
	require.Equal(t, blk, s.GetBlockByHash(blk.Hash))

	claim, err := blk.DecodePayload()
	require.NoError(t, err)
	require.Equal(t, testAddress, claim.Address)
	require.Equal(t, testStar, claim.Star)
	require.Empty(t, s.ValidateLedger())
}

func TestSubmitStarExpired(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	s := newTestService(clock, acceptAll)

	msg := s.RequestChallenge(testAddress)

	// 600 seconds after issuance the window is long gone
	clock.Advance(600 * time.Second)
	_, err := s.SubmitStar(testAddress, msg, "sig", testStar)
	require.ErrorIs(t, err, errors.VerificationFailed)
	require.ErrorIs(t, err, errors.Expired)

	// The rejected submission did not touch the chain
	require.Equal(t, int64(0), s.Height())
}

func TestSubmitStarBadSignature(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	reject := func(message, address, signature string) error {
		return fmt.Errorf("recovered address mismatch")
	}
	s := newTestService(clock, reject)

	_, err := s.SubmitStar(testAddress, s.RequestChallenge(testAddress), "sig", testStar)
	require.ErrorIs(t, err, errors.VerificationFailed)
	require.ErrorIs(t, err, errors.SignatureInvalid)
	require.Equal(t, int64(0), s.Height())
}

func TestSubmitStarInvalidStar(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	s := newTestService(clock, acceptAll)

	// A raw message that is not valid JSON cannot be encoded into a payload
	star := json.RawMessage(`{"story":`)
	_, err := s.SubmitStar(testAddress, s.RequestChallenge(testAddress), "sig", star)
	require.ErrorIs(t, err, errors.BadRequest)
	require.ErrorIs(t, err, errors.EncodingError)
	require.Equal(t, int64(0), s.Height())
}

func TestGetStarsByAddress(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	s := newTestService(clock, acceptAll)

	other := "1Ez69SnzzmePmZX3WpEzMKTrcBF2gpNQ55"
	stars := []json.RawMessage{
		json.RawMessage(`{"star":"Orion"}`),
		json.RawMessage(`{"star":"Vega"}`),
		json.RawMessage(`{"star":"Sirius"}`),
	}

	_, err := s.SubmitStar(testAddress, s.RequestChallenge(testAddress), "sig", stars[0])
	require.NoError(t, err)
	_, err = s.SubmitStar(other, s.RequestChallenge(other), "sig", stars[1])
	require.NoError(t, err)
	_, err = s.SubmitStar(testAddress, s.RequestChallenge(testAddress), "sig", stars[2])
	require.NoError(t, err)

	claims := s.GetStarsByAddress(testAddress)
	require.Len(t, claims, 2)
	require.Equal(t, stars[0], claims[0].Star)
	require.Equal(t, stars[2], claims[1].Star)

	require.Len(t, s.GetStarsByAddress(other), 1)
	require.Empty(t, s.GetStarsByAddress("unknown"))
}

func TestSubmitStarChainCorrupted(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	s := newTestService(clock, acceptAll)

	_, err := s.SubmitStar(testAddress, s.RequestChallenge(testAddress), "sig", testStar)
	require.NoError(t, err)

	// Corrupt the stored block behind the service's back
	s.chain.blocks[1].Payload = json.RawMessage(`{"star":"forged"}`)

	findings := s.ValidateLedger()
	require.Len(t, findings, 1)
	require.Equal(t, errors.TamperedBlock, findings[0].Code)

	// Corruption blocks further writes
	_, err = s.SubmitStar(testAddress, s.RequestChallenge(testAddress), "sig", testStar)
	require.ErrorIs(t, err, errors.ChainError)
	require.ErrorIs(t, err, errors.ChainCorrupted)
	require.Equal(t, int64(1), s.Height())
}

func TestServiceWithRestoredChain(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	s := newTestService(clock, acceptAll)
	_, err := s.SubmitStar(testAddress, s.RequestChallenge(testAddress), "sig", testStar)
	require.NoError(t, err)

	restored := NewChain(nil, clock.Now)
	require.NoError(t, restored.Import(s.Chain().Export()))

	// NewService must not mint a second genesis on a restored chain
	s2 := NewService(nil, WithChain(restored), WithClock(clock.Now), WithSignatureVerifier(acceptAll))
	require.Equal(t, int64(1), s2.Height())
	require.Len(t, s2.GetStarsByAddress(testAddress), 1)
}
