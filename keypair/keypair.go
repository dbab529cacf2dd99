// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keypair

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/tellit/account"
	"github.com/bitmark-inc/tellit/fault"
)

// seed text layout: header ++ 32 byte core ++ 4 byte checksum
var seedHeader = []byte{0x5a, 0xfe, 0x02, 0x00}

const (
	seedCoreLength     = ed25519.SeedSize
	seedChecksumLength = 4
)

// KeyPair - an account together with the private key that signs for it
type KeyPair struct {
	seed       string
	account    account.Account
	privateKey ed25519.PrivateKey
}

// RawKeyPair - text version of seed and keys
type RawKeyPair struct {
	Seed       string          `json:"seed"`
	Account    account.Account `json:"account"`
	PublicKey  string          `json:"public_key"`
	PrivateKey string          `json:"private_key"`
}

// NewSeed - create a new seed from secure random data
func NewSeed() (string, error) {
	core := make([]byte, seedCoreLength)
	if _, err := rand.Read(core); nil != err {
		return "", err
	}

	packed := append(append([]byte{}, seedHeader...), core...)
	checksum := sha3.Sum256(packed)
	packed = append(packed, checksum[:seedChecksumLength]...)

	return base58.Encode(packed), nil
}

// New - create a key pair from a freshly generated seed
func New() (*KeyPair, error) {
	seed, err := NewSeed()
	if nil != err {
		return nil, err
	}
	return FromSeed(seed)
}

// FromSeed - regenerate the key pair belonging to a seed
func FromSeed(seed string) (*KeyPair, error) {
	packed, err := base58.Decode(seed)
	if nil != err {
		return nil, fault.ErrInvalidSeed
	}
	if len(seedHeader)+seedCoreLength+seedChecksumLength != len(packed) {
		return nil, fault.ErrInvalidSeed
	}
	if !bytes.Equal(seedHeader, packed[:len(seedHeader)]) {
		return nil, fault.ErrInvalidSeed
	}

	checksumStart := len(packed) - seedChecksumLength
	checksum := sha3.Sum256(packed[:checksumStart])
	if !bytes.Equal(checksum[:seedChecksumLength], packed[checksumStart:]) {
		return nil, fault.ErrChecksumMismatch
	}

	privateKey := ed25519.NewKeyFromSeed(packed[len(seedHeader):checksumStart])
	a, err := account.FromBytes(privateKey.Public().(ed25519.PublicKey))
	if nil != err {
		return nil, err
	}

	return &KeyPair{
		seed:       seed,
		account:    a,
		privateKey: privateKey,
	}, nil
}

// Account - the identity this key pair signs for
func (k *KeyPair) Account() account.Account {
	return k.account
}

// Sign - produce an ed25519 signature of message
func (k *KeyPair) Sign(message []byte) (account.Signature, error) {
	return ed25519.Sign(k.privateKey, message), nil
}

// Raw - text form for display
func (k *KeyPair) Raw() *RawKeyPair {
	return &RawKeyPair{
		Seed:       k.seed,
		Account:    k.account,
		PublicKey:  hex.EncodeToString(k.account.Bytes()),
		PrivateKey: hex.EncodeToString(k.privateKey),
	}
}
