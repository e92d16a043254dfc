// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package kvtest is a conformance test suite for key-value store drivers.
package kvtest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/starledger/pkg/database/keyvalue"
	"gitlab.com/accumulatenetwork/starledger/pkg/errors"
)

// Opener creates a fresh store for a test.
type Opener func(t testing.TB) keyvalue.Store

// TestStore runs the conformance tests against a driver.
func TestStore(t *testing.T, open Opener) {
	t.Run("NotFound", func(t *testing.T) {
		store := open(t)
		defer func() { require.NoError(t, store.Close()) }()

		_, err := store.Get([]byte("missing"))
		require.ErrorIs(t, err, errors.NotFound)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		store := open(t)
		defer func() { require.NoError(t, store.Close()) }()

		require.NoError(t, store.Put([]byte("alpha"), []byte("one")))
		v, err := store.Get([]byte("alpha"))
		require.NoError(t, err)
		require.Equal(t, []byte("one"), v)
	})

	t.Run("Overwrite", func(t *testing.T) {
		store := open(t)
		defer func() { require.NoError(t, store.Close()) }()

		require.NoError(t, store.Put([]byte("alpha"), []byte("one")))
		require.NoError(t, store.Put([]byte("alpha"), []byte("two")))
		v, err := store.Get([]byte("alpha"))
		require.NoError(t, err)
		require.Equal(t, []byte("two"), v)
	})

	t.Run("Batch", func(t *testing.T) {
		store := open(t)
		defer func() { require.NoError(t, store.Close()) }()

		entries := []keyvalue.Entry{
			{Key: []byte("a"), Value: []byte("1")},
			{Key: []byte("b"), Value: []byte("2")},
			{Key: []byte("c"), Value: []byte("3")},
		}
		require.NoError(t, store.PutAll(entries))

		for _, e := range entries {
			v, err := store.Get(e.Key)
			require.NoError(t, err)
			require.Equal(t, e.Value, v)
		}
	})

	t.Run("ValueIsCopied", func(t *testing.T) {
		store := open(t)
		defer func() { require.NoError(t, store.Close()) }()

		value := []byte("original")
		require.NoError(t, store.Put([]byte("alpha"), value))
		value[0] = 'X'

		v, err := store.Get([]byte("alpha"))
		require.NoError(t, err)
		require.Equal(t, []byte("original"), v)
	})
}
