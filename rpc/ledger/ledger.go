// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/tellit/account"
	"github.com/bitmark-inc/tellit/address"
	"github.com/bitmark-inc/tellit/fault"
	"github.com/bitmark-inc/tellit/operation"
	"github.com/bitmark-inc/tellit/record"
	"github.com/bitmark-inc/tellit/rpc/metrics"
	"github.com/bitmark-inc/tellit/rpc/ratelimit"
)

const (
	rateLimitLedger = 200
	rateBurstLedger = 100
)

// Store - the ledger operations offered to clients
type Store interface {
	Apply(operation.Packed) (operation.ID, error)
	Inbox(account.Account) ([]record.Entry, error)
	Config() (*record.Config, error)
	Note(address.Address) (*record.Note, error)
	Reaction(address.Address) (*record.Reaction, error)
	Balance(account.Account) uint64
}

// Ledger - type for RPC calls
type Ledger struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Store   Store
}

// New - create the ledger service
func New(log *logger.L, store Store) *Ledger {
	return &Ledger{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitLedger, rateBurstLedger),
		Store:   store,
	}
}

// ---

// SubmitArguments - a signed operation in packed form
type SubmitArguments struct {
	Operation operation.Packed `json:"operation"`
}

// SubmitReply - identity of the applied operation
type SubmitReply struct {
	ID operation.ID `json:"id"`
}

// Submit - verify and apply one signed operation
func (l *Ledger) Submit(arguments *SubmitArguments, reply *SubmitReply) (err error) {
	defer func() { metrics.Observe("Ledger.Submit", err) }()

	if err = ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	if nil == arguments || 0 == len(arguments.Operation) {
		return fault.ErrMissingParameters
	}

	id, err := l.Store.Apply(arguments.Operation)
	if nil != err {
		l.Log.Debugf("submit: type: %d  error: %s", arguments.Operation.Type(), err)
		return err
	}

	reply.ID = id
	return nil
}

// ---

// NotesArguments - whose notes to list
type NotesArguments struct {
	Receiver account.Account `json:"receiver"`
}

// NotesReply - every note addressed to the receiver
type NotesReply struct {
	Notes []record.Entry `json:"notes"`
}

// Notes - list the notes addressed to one receiver
func (l *Ledger) Notes(arguments *NotesArguments, reply *NotesReply) (err error) {
	defer func() { metrics.Observe("Ledger.Notes", err) }()

	if err = ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	if nil == arguments || arguments.Receiver.IsZero() {
		return fault.ErrMissingParameters
	}

	notes, err := l.Store.Inbox(arguments.Receiver)
	if nil != err {
		return err
	}

	reply.Notes = notes
	return nil
}

// ---

// ConfigArguments - empty arguments for config request
type ConfigArguments struct{}

// ConfigReply - the configuration singleton
type ConfigReply struct {
	Config *record.Config `json:"config"`
}

// Config - fetch the configuration singleton
func (l *Ledger) Config(_ *ConfigArguments, reply *ConfigReply) (err error) {
	defer func() { metrics.Observe("Ledger.Config", err) }()

	if err = ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	c, err := l.Store.Config()
	if nil != err {
		return err
	}

	reply.Config = c
	return nil
}

// ---

// NoteArguments - address of a note
type NoteArguments struct {
	Address address.Address `json:"address"`
}

// NoteReply - the stored note
type NoteReply struct {
	Note *record.Note `json:"note"`
}

// Note - fetch a single note
func (l *Ledger) Note(arguments *NoteArguments, reply *NoteReply) (err error) {
	defer func() { metrics.Observe("Ledger.Note", err) }()

	if err = ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	if nil == arguments || arguments.Address.IsZero() {
		return fault.ErrMissingParameters
	}

	n, err := l.Store.Note(arguments.Address)
	if nil != err {
		return err
	}

	reply.Note = n
	return nil
}

// ---

// ReactionArguments - address of a reaction
type ReactionArguments struct {
	Address address.Address `json:"address"`
}

// ReactionReply - the stored reaction
type ReactionReply struct {
	Reaction *record.Reaction `json:"reaction"`
}

// Reaction - fetch a single reaction
func (l *Ledger) Reaction(arguments *ReactionArguments, reply *ReactionReply) (err error) {
	defer func() { metrics.Observe("Ledger.Reaction", err) }()

	if err = ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	if nil == arguments || arguments.Address.IsZero() {
		return fault.ErrMissingParameters
	}

	r, err := l.Store.Reaction(arguments.Address)
	if nil != err {
		return err
	}

	reply.Reaction = r
	return nil
}

// ---

// BalanceArguments - whose balance to read
type BalanceArguments struct {
	Account account.Account `json:"account"`
}

// BalanceReply - the spendable amount
type BalanceReply struct {
	Balance uint64 `json:"balance,string"`
}

// Balance - read the spendable amount of an account
func (l *Ledger) Balance(arguments *BalanceArguments, reply *BalanceReply) (err error) {
	defer func() { metrics.Observe("Ledger.Balance", err) }()

	if err = ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	if nil == arguments || arguments.Account.IsZero() {
		return fault.ErrMissingParameters
	}

	reply.Balance = l.Store.Balance(arguments.Account)
	return nil
}
