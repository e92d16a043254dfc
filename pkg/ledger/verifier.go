// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gitlab.com/accumulatenetwork/starledger/pkg/errors"
	"gitlab.com/accumulatenetwork/starledger/protocol"
)

// DefaultChallengeWindow is how long an issued challenge remains valid.
// Elapsed time of exactly the window is accepted; anything past it is
// expired.
const DefaultChallengeWindow = 300 * time.Second

// challengeTag terminates every challenge message.
const challengeTag = "starRegistry"

// SignatureVerifier is the external signature-verification primitive. It
// returns nil if signature is a valid signature of message produced by the
// key behind address.
type SignatureVerifier func(message, address, signature string) error

// Verifier implements the ownership-verification protocol. It issues
// time-boxed challenge messages and checks signed responses. Verification is
// stateless - the challenge carries its own issuance time - so a Verifier
// holds no per-claim state and needs no locking.
type Verifier struct {
	window time.Duration
	now    func() time.Time
	verify SignatureVerifier
}

// NewVerifier creates a verifier. Zero or nil arguments select the defaults:
// the 300 second window, the wall clock, and the compact-signature primitive.
func NewVerifier(window time.Duration, now func() time.Time, verify SignatureVerifier) *Verifier {
	v := &Verifier{window: window, now: now, verify: verify}
	if v.window == 0 {
		v.window = DefaultChallengeWindow
	}
	if v.now == nil {
		v.now = time.Now
	}
	if v.verify == nil {
		v.verify = protocol.VerifySignature
	}
	return v
}

// IssueChallenge produces a challenge message for the address, stamped with
// the issuance time.
func (v *Verifier) IssueChallenge(address string) string {
	return fmt.Sprintf("%s:%d:%s", address, v.now().Unix(), challengeTag)
}

// Verify checks a signed challenge response. It parses the issuance time out
// of the message, enforces the validation window, then delegates to the
// signature primitive. A fault in the primitive is a verification failure,
// never a crash.
func (v *Verifier) Verify(address, message, signature string) error {
	issued, err := parseChallenge(message)
	if err != nil {
		return err
	}

	elapsed := v.now().Unix() - issued
	if elapsed > int64(v.window/time.Second) {
		return errors.Expired.WithFormat("challenge expired: issued %d seconds ago, window is %d", elapsed, int64(v.window/time.Second))
	}

	if err := v.callPrimitive(message, address, signature); err != nil {
		return errors.SignatureInvalid.Wrap(err)
	}
	return nil
}

func (v *Verifier) callPrimitive(message, address, signature string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("signature primitive fault: %v", r)
		}
	}()
	return v.verify(message, address, signature)
}

// parseChallenge extracts the issuance time from a challenge message of the
// form "{address}:{unix}:starRegistry". The address itself may contain
// colons, so the message is parsed from the right.
func parseChallenge(message string) (int64, error) {
	parts := strings.Split(message, ":")
	if len(parts) < 3 {
		return 0, errors.MalformedMessage.With("challenge does not match address:time:tag")
	}
	if parts[len(parts)-1] != challengeTag {
		return 0, errors.MalformedMessage.WithFormat("challenge tag is %q, want %q", parts[len(parts)-1], challengeTag)
	}
	issued, err := strconv.ParseInt(parts[len(parts)-2], 10, 64)
	if err != nil {
		return 0, errors.MalformedMessage.WithFormat("challenge timestamp: %w", err)
	}
	return issued, nil
}
