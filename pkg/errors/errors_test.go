// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWith(t *testing.T) {
	err := NotFound.With("block 5 not found")
	require.Equal(t, "block 5 not found", err.Error())
	require.ErrorIs(t, err, NotFound)
	require.Equal(t, NotFound, Code(err))
}

func TestWithFormatWrapping(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := UnknownError.WithFormat("load block: %w", cause)
	require.ErrorIs(t, err, UnknownError)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "disk on fire")
}

func TestWrap(t *testing.T) {
	require.Nil(t, SignatureInvalid.Wrap(nil))

	cause := Expired.With("challenge expired")
	err := VerificationFailed.Wrap(cause)
	require.ErrorIs(t, err, VerificationFailed)
	require.ErrorIs(t, err, Expired)
	require.Equal(t, VerificationFailed, Code(err))
}

func TestCode(t *testing.T) {
	require.Equal(t, UnknownError, Code(fmt.Errorf("plain")))
	require.Equal(t, OK, Code(nil))
	require.Equal(t, TamperedBlock, Code(TamperedBlock.With("x")))

	wrapped := fmt.Errorf("outer: %w", BrokenLink.With("inner"))
	require.Equal(t, BrokenLink, Code(wrapped))
}

func TestStatusClassification(t *testing.T) {
	require.True(t, OK.Success())
	require.False(t, NotFound.Success())
	require.True(t, Expired.IsClientError())
	require.True(t, ChainCorrupted.IsServerError())
	require.False(t, ChainCorrupted.IsClientError())
}
