// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"golang.org/x/crypto/sha3"
)

// names of all chains
const (
	Live    = "live"
	Testing = "testing"
	Local   = "local"
)

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case Live, Testing, Local:
		return true
	default:
		return false
	}
}

// ProgramID - the ledger program identity used by every address
// derivation on the named chain
func ProgramID(name string) [32]byte {
	return sha3.Sum256([]byte("tellit program: " + name))
}

// FaucetAllowed - only the non-live chains credit balances on request
func FaucetAllowed(name string) bool {
	return Live != name
}
