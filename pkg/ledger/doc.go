// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package ledger implements an append-only, self-verifying ledger of star
// ownership claims. Blocks are linked by SHA-256 digests and admitted only
// after the submitter proves control of the claimed address by signing a
// time-boxed challenge.
//
// The chain is a single-writer structure: one lock covers the whole of an
// append, from reading the next height through committing the sealed block.
// Reads may run concurrently and always observe a consistent snapshot.
//
// Validation failures block writes. If a pre-append scan finds the chain
// inconsistent, the append fails with a chain-corrupted error and the chain is
// left unmodified. Corruption is never repaired in place; restore from a
// persisted snapshot instead.
package ledger
