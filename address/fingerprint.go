// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/tellit/fault"
)

// Fingerprint - Keccak-256 of a note's title followed by its body
type Fingerprint [32]byte

// NewFingerprint - hash the concatenation of title and body
//
// the order is significant: title then body
func NewFingerprint(title string, body string) Fingerprint {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(title))
	h.Write([]byte(body))

	f := Fingerprint{}
	copy(f[:], h.Sum(nil))
	return f
}

// String - hex form for logging
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// MarshalText - hex JSON form
func (f Fingerprint) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText - convert hex JSON text to a fingerprint
func (f *Fingerprint) UnmarshalText(s []byte) error {
	if hex.DecodedLen(len(s)) != len(f) {
		return fault.ErrUnmarshalTextFail
	}
	if _, err := hex.Decode(f[:], s); nil != err {
		return fault.ErrUnmarshalTextFail
	}
	return nil
}
