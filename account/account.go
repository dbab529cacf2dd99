// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/tellit/fault"
	"github.com/bitmark-inc/tellit/util"
)

// enumeration of supported key algorithms
const (
	Nothing = iota // zero keytype, never valid for signing
	ED25519 = iota
)

// miscellaneous constants
const (
	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode = 0x01
	testKeyCode   = 0x02

	algorithmShift = 4 // shift 4 bits to get algorithm

	// PublicKeySize - bytes in the raw form of an account
	PublicKeySize = ed25519.PublicKeySize
)

// the leading byte of every encoded account
const keyVariant = ED25519<<algorithmShift | publicKeyCode

// Account - an ed25519 public key identifying a participant
//
// the zero value is the "no account" marker
type Account [PublicKeySize]byte

// FromBytes - build an account from a raw 32 byte public key
func FromBytes(buffer []byte) (Account, error) {
	a := Account{}
	if PublicKeySize != len(buffer) {
		return a, fault.ErrInvalidKeyLength
	}
	copy(a[:], buffer)
	return a, nil
}

// FromBase58 - decode the text form: keyVariant ++ key ++ checksum
func FromBase58(s string) (Account, error) {
	a := Account{}

	decoded, err := base58.Decode(s)
	if nil != err || 0 == len(decoded) {
		return a, fault.ErrCannotDecodeAccount
	}

	variant, variantLength := util.FromVarint64(decoded)
	if 0 == variantLength || variant&publicKeyCode != publicKeyCode {
		return a, fault.ErrNotPublicKey
	}
	if variant>>algorithmShift != ED25519 || 0 != variant&testKeyCode {
		return a, fault.ErrInvalidKeyType
	}

	checksumStart := len(decoded) - checksumLength
	if checksumStart-variantLength != PublicKeySize {
		return a, fault.ErrInvalidKeyLength
	}

	checksum := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return a, fault.ErrChecksumMismatch
	}

	copy(a[:], decoded[variantLength:checksumStart])
	return a, nil
}

// Bytes - the raw public key
func (a Account) Bytes() []byte {
	return a[:]
}

// IsZero - true for the "no account" marker
func (a Account) IsZero() bool {
	return a == Account{}
}

// CheckSignature - verify an ed25519 signature of message
func (a Account) CheckSignature(message []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.ErrInvalidSignature
	}
	if !ed25519.Verify(a[:], message, signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}

// String - base58 encoding with key variant and checksum
func (a Account) String() string {
	buffer := make([]byte, 0, 1+PublicKeySize+checksumLength)
	buffer = append(buffer, keyVariant)
	buffer = append(buffer, a[:]...)
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - convert an account to its base58 JSON form
func (a Account) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert a base58 JSON string to an account
func (a *Account) UnmarshalText(s []byte) error {
	decoded, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*a = decoded
	return nil
}
