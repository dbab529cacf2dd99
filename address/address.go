// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/tellit/fault"
)

// limits on derivation inputs
const (
	Size          = 32
	MaxSeedLength = 32
	MaxSeeds      = 16
)

// appended to every derivation pre-image
var marker = []byte("ProgramDerivedAddress")

// Address - a record location, or the identity of the ledger program
type Address [Size]byte

// Disambiguator - the bump value that moved a derivation off the curve
type Disambiguator byte

// Derive - find the address for seeds under program
//
// disambiguators are searched from 255 down to 0 and the first one
// producing an off-curve digest wins
func Derive(program Address, seeds ...[]byte) (Address, Disambiguator, error) {
	if err := checkSeeds(seeds); nil != err {
		return Address{}, 0, err
	}

	for bump := 255; bump >= 0; bump -= 1 {
		a := hash(program, Disambiguator(bump), seeds)
		if !onCurve(a[:]) {
			return a, Disambiguator(bump), nil
		}
	}
	return Address{}, 0, fault.ErrNoViableAddress
}

// CreateWithDisambiguator - recompute an address for a known bump
//
// fails if that bump leaves the digest on the curve
func CreateWithDisambiguator(program Address, bump Disambiguator, seeds ...[]byte) (Address, error) {
	if err := checkSeeds(seeds); nil != err {
		return Address{}, err
	}

	a := hash(program, bump, seeds)
	if onCurve(a[:]) {
		return Address{}, fault.ErrNoViableAddress
	}
	return a, nil
}

func checkSeeds(seeds [][]byte) error {
	if len(seeds) > MaxSeeds {
		return fault.ErrTooManySeeds
	}
	for _, s := range seeds {
		if len(s) > MaxSeedLength {
			return fault.ErrSeedTooLong
		}
	}
	return nil
}

func hash(program Address, bump Disambiguator, seeds [][]byte) Address {
	h := sha3.New256()
	for _, s := range seeds {
		h.Write(s)
	}
	h.Write([]byte{byte(bump)})
	h.Write(program[:])
	h.Write(marker)

	a := Address{}
	copy(a[:], h.Sum(nil))
	return a
}

// true if the bytes decode as a point on the ed25519 curve
func onCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return nil == err
}

// FromBytes - convert a raw 32 byte slice
func FromBytes(buffer []byte) (Address, error) {
	a := Address{}
	if Size != len(buffer) {
		return a, fault.ErrInvalidKeyLength
	}
	copy(a[:], buffer)
	return a, nil
}

// FromBase58 - decode the text form of an address
func FromBase58(s string) (Address, error) {
	buffer, err := base58.Decode(s)
	if nil != err {
		return Address{}, fault.ErrCannotDecodeAccount
	}
	return FromBytes(buffer)
}

// Bytes - the raw address
func (a Address) Bytes() []byte {
	return a[:]
}

// IsZero - true for an unset address
func (a Address) IsZero() bool {
	return a == Address{}
}

// String - base58 text form
func (a Address) String() string {
	return base58.Encode(a[:])
}

// MarshalText - convert an address to its base58 JSON form
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert base58 JSON text to an address
func (a *Address) UnmarshalText(s []byte) error {
	decoded, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*a = decoded
	return nil
}
