// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// every error that may cross an RPC connection
var transported = []error{
	ErrAccountInUse,
	ErrAddressMismatch,
	ErrAirdropNotAvailable,
	ErrAlreadyInitialised,
	ErrBodyTooLong,
	ErrCannotDecodeAccount,
	ErrCannotSendToSelf,
	ErrInsufficientFunds,
	ErrInvalidAmount,
	ErrInvalidCount,
	ErrMissingParameters,
	ErrInvalidReactionKind,
	ErrInvalidSignature,
	ErrNoConnectionsAvailable,
	ErrNoViableAddress,
	ErrNotAuthorised,
	ErrNotInitialised,
	ErrNoteAlreadyExists,
	ErrNoteNotFound,
	ErrOperationAlreadyApplied,
	ErrOperationExpired,
	ErrRateLimiting,
	ErrReactionAlreadyExists,
	ErrReactionNotFound,
	ErrRecordTooShort,
	ErrTitleTooLong,
	ErrUnexpectedRecordTag,
	ErrWrongChain,
}

var byMessage = func() map[string]error {
	m := make(map[string]error, len(transported))
	for _, e := range transported {
		m[e.Error()] = e
	}
	return m
}()

// Lookup - map an error message received from a remote node back
// onto its error instance
//
// unknown messages are returned as a ProcessError
func Lookup(message string) error {
	if e, ok := byMessage[message]; ok {
		return e
	}
	return ProcessError(message)
}
