// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/tellit/account"
	"github.com/bitmark-inc/tellit/address"
	"github.com/bitmark-inc/tellit/fault"
	"github.com/bitmark-inc/tellit/record"
	"github.com/bitmark-inc/tellit/util"
)

// TagType - type code for operations
type TagType uint64

// enumerate the possible operation types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks beginning of list - not used as an operation type
	NullTag = TagType(iota)

	InitialiseTag     = TagType(iota) // create the configuration singleton
	SubmitTag         = TagType(iota) // create a note
	ReactTag          = TagType(iota) // create or change a reaction
	RemoveReactionTag = TagType(iota) // set a reaction to none
	ChangeReactionTag = TagType(iota) // swap an active reaction
	DeleteTag         = TagType(iota) // destroy a note
	AirdropTag        = TagType(iota) // faucet credit on test chains

	// this item must be last
	InvalidTag = TagType(iota)
)

// byte sizes for various fields
const (
	maxSignatureLength = 1024
)

// Packed - packed operations are just a byte slice
type Packed []byte

// Operation - generic operation interface
type Operation interface {
	Pack() (Packed, error)
	SignedBy() account.Account
	Time() int64
	SetTime(int64)
	SetSignature(account.Signature)
}

// Signer - the capability to authorise operations for one account
type Signer interface {
	Account() account.Account
	Sign(message []byte) (account.Signature, error)
}

// Signed - fields common to every operation, the signature always
// covers everything packed before it
type Signed struct {
	Timestamp int64             `json:"timestamp"` // unix seconds chosen by the client
	Signature account.Signature `json:"signature"` // hex
}

// Time - client timestamp of the operation
func (s *Signed) Time() int64 {
	return s.Timestamp
}

// SetTime - set the client timestamp, any signature is invalidated
func (s *Signed) SetTime(timestamp int64) {
	s.Timestamp = timestamp
	s.Signature = nil
}

// SetSignature - attach a signature
func (s *Signed) SetSignature(signature account.Signature) {
	s.Signature = signature
}

// Initialise - create the configuration singleton
type Initialise struct {
	Authority account.Account `json:"authority"`
	Config    address.Address `json:"config"`
	Signed
}

// Submit - create a note from author to receiver
type Submit struct {
	Author   account.Account `json:"author"`
	Receiver account.Account `json:"receiver"`
	Title    string          `json:"title"`
	Body     string          `json:"body"`
	Note     address.Address `json:"note"`
	Config   address.Address `json:"config"`
	Signed
}

// React - create a reaction or change an existing one
type React struct {
	Reactor  account.Account `json:"reactor"`
	Note     address.Address `json:"note"`
	Reaction address.Address `json:"reaction"`
	Kind     record.Kind     `json:"kind"`
	Signed
}

// RemoveReaction - set an active reaction back to none
type RemoveReaction struct {
	Reactor  account.Account `json:"reactor"`
	Note     address.Address `json:"note"`
	Reaction address.Address `json:"reaction"`
	Signed
}

// ChangeReaction - swap an active reaction to a different kind
type ChangeReaction struct {
	Reactor  account.Account `json:"reactor"`
	Note     address.Address `json:"note"`
	Reaction address.Address `json:"reaction"`
	Kind     record.Kind     `json:"kind"`
	Signed
}

// Delete - destroy a note, only its author or receiver may do this
type Delete struct {
	Caller account.Account `json:"caller"`
	Note   address.Address `json:"note"`
	Config address.Address `json:"config"`
	Signed
}

// Airdrop - credit the recipient from the test faucet
type Airdrop struct {
	Recipient account.Account `json:"recipient"`
	Amount    uint64          `json:"amount,string"`
	Signed
}

// SignedBy - the account that must sign each operation
func (op *Initialise) SignedBy() account.Account     { return op.Authority }
func (op *Submit) SignedBy() account.Account         { return op.Author }
func (op *React) SignedBy() account.Account          { return op.Reactor }
func (op *RemoveReaction) SignedBy() account.Account { return op.Reactor }
func (op *ChangeReaction) SignedBy() account.Account { return op.Reactor }
func (op *Delete) SignedBy() account.Account         { return op.Caller }
func (op *Airdrop) SignedBy() account.Account        { return op.Recipient }

// Type - returns the operation type code
func (packed Packed) Type() TagType {
	tag, n := util.FromVarint64(packed)
	if 0 == n || tag >= uint64(InvalidTag) {
		return NullTag
	}
	return TagType(tag)
}

// ID - the identity of a packed operation, used to refuse replays
type ID [32]byte

// MakeID - SHA3-256 of the complete packed operation
func (packed Packed) MakeID() ID {
	return ID(sha3.Sum256(packed))
}

// String - hex form of an operation id
func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// MarshalText - hex JSON form of an operation id
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - decode the hex form of an operation id
func (id *ID) UnmarshalText(s []byte) error {
	if hex.EncodedLen(len(id)) != len(s) {
		return fault.ErrUnmarshalTextFail
	}
	if _, err := hex.Decode(id[:], s); nil != err {
		return fault.ErrUnmarshalTextFail
	}
	return nil
}

// MarshalText - packed operations travel as hex
func (packed Packed) MarshalText() ([]byte, error) {
	b := make([]byte, hex.EncodedLen(len(packed)))
	hex.Encode(b, packed)
	return b, nil
}

// UnmarshalText - decode the hex form of a packed operation
func (packed *Packed) UnmarshalText(s []byte) error {
	b := make([]byte, hex.DecodedLen(len(s)))
	n, err := hex.Decode(b, s)
	if nil != err {
		return err
	}
	*packed = b[:n]
	return nil
}

// Name - returns the name of an operation as a string
func Name(op interface{}) (string, bool) {
	switch op.(type) {
	case *Initialise:
		return "Initialise", true
	case *Submit:
		return "Submit", true
	case *React:
		return "React", true
	case *RemoveReaction:
		return "RemoveReaction", true
	case *ChangeReaction:
		return "ChangeReaction", true
	case *Delete:
		return "Delete", true
	case *Airdrop:
		return "Airdrop", true
	default:
		return "*unknown*", false
	}
}
