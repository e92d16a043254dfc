// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package badger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/starledger/pkg/database/keyvalue"
	"gitlab.com/accumulatenetwork/starledger/pkg/database/keyvalue/kvtest"
)

func open(t testing.TB) keyvalue.Store {
	db, err := New(t.TempDir(), nil)
	require.NoError(t, err)
	return db
}

func TestDatabase(t *testing.T) {
	kvtest.TestStore(t, open)
}
