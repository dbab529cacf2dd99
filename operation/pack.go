// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation

import (
	"github.com/bitmark-inc/tellit/account"
	"github.com/bitmark-inc/tellit/fault"
	"github.com/bitmark-inc/tellit/util"
)

// every Pack below writes Varint64(tag) followed by the fields in the
// order of the struct with the timestamp then the signature last
//
// NOTE: returns the "unsigned" message on signature failure - for
//       signing and for debugging/testing

// Pack - Initialise
func (op *Initialise) Pack() (Packed, error) {
	message := util.ToVarint64(uint64(InitialiseTag))
	message = append(message, op.Authority[:]...)
	message = append(message, op.Config[:]...)
	return finish(message, op.Authority, &op.Signed)
}

// Pack - Submit
func (op *Submit) Pack() (Packed, error) {
	message := util.ToVarint64(uint64(SubmitTag))
	message = append(message, op.Author[:]...)
	message = append(message, op.Receiver[:]...)
	message = util.AppendString(message, op.Title)
	message = util.AppendString(message, op.Body)
	message = append(message, op.Note[:]...)
	message = append(message, op.Config[:]...)
	return finish(message, op.Author, &op.Signed)
}

// Pack - React
func (op *React) Pack() (Packed, error) {
	message := util.ToVarint64(uint64(ReactTag))
	message = append(message, op.Reactor[:]...)
	message = append(message, op.Note[:]...)
	message = append(message, op.Reaction[:]...)
	message = append(message, byte(op.Kind))
	return finish(message, op.Reactor, &op.Signed)
}

// Pack - RemoveReaction
func (op *RemoveReaction) Pack() (Packed, error) {
	message := util.ToVarint64(uint64(RemoveReactionTag))
	message = append(message, op.Reactor[:]...)
	message = append(message, op.Note[:]...)
	message = append(message, op.Reaction[:]...)
	return finish(message, op.Reactor, &op.Signed)
}

// Pack - ChangeReaction
func (op *ChangeReaction) Pack() (Packed, error) {
	message := util.ToVarint64(uint64(ChangeReactionTag))
	message = append(message, op.Reactor[:]...)
	message = append(message, op.Note[:]...)
	message = append(message, op.Reaction[:]...)
	message = append(message, byte(op.Kind))
	return finish(message, op.Reactor, &op.Signed)
}

// Pack - Delete
func (op *Delete) Pack() (Packed, error) {
	message := util.ToVarint64(uint64(DeleteTag))
	message = append(message, op.Caller[:]...)
	message = append(message, op.Note[:]...)
	message = append(message, op.Config[:]...)
	return finish(message, op.Caller, &op.Signed)
}

// Pack - Airdrop
func (op *Airdrop) Pack() (Packed, error) {
	message := util.ToVarint64(uint64(AirdropTag))
	message = append(message, op.Recipient[:]...)
	message = util.AppendVarint64(message, op.Amount)
	return finish(message, op.Recipient, &op.Signed)
}

// append the timestamp, verify the signature and append it
func finish(message []byte, signer account.Account, signed *Signed) (Packed, error) {
	if len(signed.Signature) > maxSignatureLength {
		return nil, fault.ErrInvalidSignature
	}

	message = util.AppendVarint64(message, uint64(signed.Timestamp))

	err := signer.CheckSignature(message, signed.Signature)
	if nil != err {
		return message, err
	}
	// Signature Last
	return util.AppendBytes(message, signed.Signature), nil
}

// Sign - pack an operation with a signature from signer
//
// the signer must be the account the operation names as its signer
func Sign(op Operation, signer Signer) (Packed, error) {
	if signer.Account() != op.SignedBy() {
		return nil, fault.ErrInvalidSignature
	}

	op.SetSignature(nil)
	message, err := op.Pack()
	if fault.ErrInvalidSignature != err {
		if nil == err {
			return nil, fault.ErrInvalidSignature
		}
		return nil, err
	}

	signature, err := signer.Sign(message)
	if nil != err {
		return nil, err
	}
	op.SetSignature(signature)

	return op.Pack()
}
