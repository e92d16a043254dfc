// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package starledger

const unknownVersion = "version unknown"

// Version is set by the build.
var Version = unknownVersion

func IsVersionKnown() bool {
	return Version != unknownVersion
}
