// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package snapshot

import (
	"gitlab.com/accumulatenetwork/starledger/config"
	"gitlab.com/accumulatenetwork/starledger/internal/logging"
	"gitlab.com/accumulatenetwork/starledger/pkg/database/keyvalue"
	"gitlab.com/accumulatenetwork/starledger/pkg/database/keyvalue/badger"
	"gitlab.com/accumulatenetwork/starledger/pkg/database/keyvalue/bolt"
	"gitlab.com/accumulatenetwork/starledger/pkg/database/keyvalue/memory"
	"gitlab.com/accumulatenetwork/starledger/pkg/errors"
)

// OpenStore opens the key-value store described by the storage configuration.
func OpenStore(cfg config.Storage, logger logging.Logger) (keyvalue.Store, error) {
	switch cfg.Type {
	case config.MemoryStorage:
		return memory.New(), nil
	case config.BadgerStorage:
		return badger.New(cfg.Path, logger)
	case config.BoltStorage:
		return bolt.Open(cfg.Path)
	default:
		return nil, errors.BadRequest.WithFormat("unknown storage type %q", cfg.Type)
	}
}
