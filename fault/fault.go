// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type AuthorisationError GenericError
type ExistsError GenericError
type InitialisedError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type TransientError GenericError

// common errors - keep in alphabetic order
var (
	ErrAccountInUse            = TransientError("account in use by a concurrent operation")
	ErrAddressMismatch         = InvalidError("derived address does not match")
	ErrAirdropNotAvailable     = AuthorisationError("airdrop is not available on this chain")
	ErrAlreadyInitialised      = InitialisedError("already initialised")
	ErrBodyTooLong             = InvalidError("content is too long (max 300 characters)")
	ErrCannotDecodeAccount     = InvalidError("cannot decode account")
	ErrCannotSendToSelf        = InvalidError("cannot send note to yourself")
	ErrCertificateFileExists   = ExistsError("certificate file already exists")
	ErrChecksumMismatch        = InvalidError("checksum mismatch")
	ErrConfigurationNotTable   = InvalidError("configuration did not return a table")
	ErrDatabaseIsNotSet        = ProcessError("database is not set")
	ErrInsufficientFunds       = InvalidError("insufficient funds")
	ErrInvalidAmount           = InvalidError("invalid amount")
	ErrInvalidCount            = InvalidError("invalid count")
	ErrInvalidCursor           = InvalidError("invalid cursor")
	ErrInvalidIPAddress        = InvalidError("invalid IP address")
	ErrInvalidKeyLength        = InvalidError("invalid key length")
	ErrInvalidKeyType          = InvalidError("invalid key type")
	ErrInvalidReactionKind     = InvalidError("invalid reaction kind")
	ErrInvalidSeed             = InvalidError("invalid seed")
	ErrInvalidSignature        = InvalidError("invalid signature")
	ErrInvalidStructPointer    = InvalidError("invalid struct pointer")
	ErrMissingParameters       = InvalidError("missing parameters")
	ErrNoConnectionsAvailable  = TransientError("no connections available")
	ErrNoViableAddress         = ProcessError("unable to find a viable address")
	ErrNotAuthorised           = AuthorisationError("not authorized to perform this action")
	ErrNotInitialised          = NotFoundError("not initialised")
	ErrNotPublicKey            = InvalidError("not a public key")
	ErrNoteAlreadyExists       = ExistsError("duplicate message - note already exists")
	ErrNoteNotFound            = NotFoundError("note not found")
	ErrOperationAlreadyApplied = ExistsError("operation already applied")
	ErrOperationExpired        = InvalidError("operation timestamp outside the accepted window")
	ErrQueueReset              = TransientError("request queue was reset")
	ErrQueueStopped            = ProcessError("request queue is stopped")
	ErrRateLimiting            = TransientError("rate limiting")
	ErrReactionAlreadyExists   = ExistsError("reaction already exists")
	ErrReactionNotFound        = NotFoundError("reaction not found")
	ErrRecordTooShort          = InvalidError("record too short")
	ErrSeedTooLong             = InvalidError("seed component too long")
	ErrTitleTooLong            = InvalidError("title is too long (max 50 characters)")
	ErrTooManySeeds            = InvalidError("too many seed components")
	ErrUnexpectedRecordTag     = InvalidError("unexpected record tag")
	ErrUnmarshalTextFail       = ProcessError("unmarshal text failed")
	ErrWrongChain              = InvalidError("wrong chain")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AuthorisationError) Error() string { return string(e) }
func (e ExistsError) Error() string        { return string(e) }
func (e InitialisedError) Error() string   { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e ProcessError) Error() string       { return string(e) }
func (e TransientError) Error() string     { return string(e) }

// determine the class of an error, wrapped errors are unwrapped
func IsErrAuthorisation(e error) bool { var c AuthorisationError; return errors.As(e, &c) }
func IsErrExists(e error) bool        { var c ExistsError; return errors.As(e, &c) }
func IsErrInitialised(e error) bool   { var c InitialisedError; return errors.As(e, &c) }
func IsErrInvalid(e error) bool       { var c InvalidError; return errors.As(e, &c) }
func IsErrNotFound(e error) bool      { var c NotFoundError; return errors.As(e, &c) }
func IsErrProcess(e error) bool       { var c ProcessError; return errors.As(e, &c) }
func IsErrTransient(e error) bool     { var c TransientError; return errors.As(e, &c) }
