// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation

import (
	"github.com/bitmark-inc/tellit/account"
	"github.com/bitmark-inc/tellit/address"
	"github.com/bitmark-inc/tellit/fault"
	"github.com/bitmark-inc/tellit/record"
	"github.com/bitmark-inc/tellit/util"
)

// strings are bounded by the ledger's own checks, this only stops
// absurd lengths from being allocated
const maxStringLength = 8192

// Unpack - turn a byte slice into an operation and verify its
// signature
//
// must cast result to correct type
//
// e.g.
//   switch op := result.(type) {
//   case *operation.Submit:
func (packed Packed) Unpack() (Operation, error) {
	r := util.NewReader(packed)
	tag := TagType(r.Varint64())
	if !r.Ok() {
		return nil, fault.ErrUnexpectedRecordTag
	}

	var op Operation
	var signed *Signed

	switch tag {
	case InitialiseTag:
		o := &Initialise{}
		o.Authority = readAccount(r)
		o.Config = readAddress(r)
		op, signed = o, &o.Signed

	case SubmitTag:
		o := &Submit{}
		o.Author = readAccount(r)
		o.Receiver = readAccount(r)
		o.Title = r.String(maxStringLength)
		o.Body = r.String(maxStringLength)
		o.Note = readAddress(r)
		o.Config = readAddress(r)
		op, signed = o, &o.Signed

	case ReactTag:
		o := &React{}
		o.Reactor = readAccount(r)
		o.Note = readAddress(r)
		o.Reaction = readAddress(r)
		o.Kind = record.Kind(r.Byte())
		op, signed = o, &o.Signed

	case RemoveReactionTag:
		o := &RemoveReaction{}
		o.Reactor = readAccount(r)
		o.Note = readAddress(r)
		o.Reaction = readAddress(r)
		op, signed = o, &o.Signed

	case ChangeReactionTag:
		o := &ChangeReaction{}
		o.Reactor = readAccount(r)
		o.Note = readAddress(r)
		o.Reaction = readAddress(r)
		o.Kind = record.Kind(r.Byte())
		op, signed = o, &o.Signed

	case DeleteTag:
		o := &Delete{}
		o.Caller = readAccount(r)
		o.Note = readAddress(r)
		o.Config = readAddress(r)
		op, signed = o, &o.Signed

	case AirdropTag:
		o := &Airdrop{}
		o.Recipient = readAccount(r)
		o.Amount = r.Varint64()
		op, signed = o, &o.Signed

	default:
		return nil, fault.ErrUnexpectedRecordTag
	}

	signed.Timestamp = int64(r.Varint64())
	signed.Signature = account.Signature(r.Bytes(maxSignatureLength))

	if !r.Ok() || 0 != r.Remaining() {
		return nil, fault.ErrRecordTooShort
	}

	// repacking verifies the signature over the exact bytes
	if _, err := op.Pack(); nil != err {
		return nil, err
	}
	return op, nil
}

func readAccount(r *util.Reader) account.Account {
	a := account.Account{}
	copy(a[:], r.Fixed(account.PublicKeySize))
	return a
}

func readAddress(r *util.Reader) address.Address {
	a := address.Address{}
	copy(a[:], r.Fixed(address.Size))
	return a
}
