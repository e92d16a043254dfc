// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package ledger

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/starledger/pkg/errors"
)

// fakeClock is a settable clock for expiry tests.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func acceptAll(message, address, signature string) error { return nil }

func TestIssueChallenge(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	v := NewVerifier(0, clock.Now, acceptAll)

	msg := v.IssueChallenge("1FzpnkhbAteYFBA2xz6BSQTiDZm8yRBdcr")
	require.Equal(t, "1FzpnkhbAteYFBA2xz6BSQTiDZm8yRBdcr:1000:starRegistry", msg)
}

func TestVerifyWindow(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	v := NewVerifier(0, clock.Now, acceptAll)
	msg := v.IssueChallenge("addr")

	// Exactly at the window boundary is still valid
	clock.Advance(300 * time.Second)
	require.NoError(t, v.Verify("addr", msg, "sig"))

	// One second past it is not
	clock.Advance(time.Second)
	err := v.Verify("addr", msg, "sig")
	require.ErrorIs(t, err, errors.Expired)
}

func TestVerifyCustomWindow(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	v := NewVerifier(60*time.Second, clock.Now, acceptAll)
	msg := v.IssueChallenge("addr")

	clock.Advance(60 * time.Second)
	require.NoError(t, v.Verify("addr", msg, "sig"))
	clock.Advance(time.Second)
	require.ErrorIs(t, v.Verify("addr", msg, "sig"), errors.Expired)
}

func TestVerifyMalformed(t *testing.T) {
	v := NewVerifier(0, nil, acceptAll)

	cases := map[string]string{
		"NoSeparators": "starRegistry",
		"WrongTag":     "addr:1000:starLedger",
		"BadTimestamp": "addr:soon:starRegistry",
		"Empty":        "",
	}
	for name, msg := range cases {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, v.Verify("addr", msg, "sig"), errors.MalformedMessage)
		})
	}
}

func TestVerifyAddressWithColons(t *testing.T) {
	// Addresses are opaque strings and may themselves contain colons, so the
	// challenge must parse from the right.
	clock := &fakeClock{t: time.Unix(1000, 0)}
	v := NewVerifier(0, clock.Now, acceptAll)

	msg := v.IssueChallenge("pay:to:addr")
	require.Equal(t, "pay:to:addr:1000:starRegistry", msg)
	require.NoError(t, v.Verify("pay:to:addr", msg, "sig"))
}

func TestVerifyRejectedSignature(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	reject := func(message, address, signature string) error {
		return fmt.Errorf("no match")
	}
	v := NewVerifier(0, clock.Now, reject)

	err := v.Verify("addr", v.IssueChallenge("addr"), "sig")
	require.ErrorIs(t, err, errors.SignatureInvalid)
}

func TestVerifyPrimitivePanic(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	boom := func(message, address, signature string) error {
		panic("unexpected fault")
	}
	v := NewVerifier(0, clock.Now, boom)

	// A fault in the primitive surfaces as an invalid signature, not a crash
	err := v.Verify("addr", v.IssueChallenge("addr"), "sig")
	require.ErrorIs(t, err, errors.SignatureInvalid)
}
