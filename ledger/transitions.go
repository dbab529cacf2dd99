// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"

	"github.com/bitmark-inc/tellit/account"
	"github.com/bitmark-inc/tellit/address"
	"github.com/bitmark-inc/tellit/chain"
	"github.com/bitmark-inc/tellit/fault"
	"github.com/bitmark-inc/tellit/operation"
	"github.com/bitmark-inc/tellit/record"
	"github.com/bitmark-inc/tellit/storage"
)

func (l *Ledger) initialise(w *workingSet, op *operation.Initialise) error {
	configAddress, bump, err := address.Config(l.program)
	if nil != err {
		return err
	}
	if configAddress != op.Config {
		return fault.ErrAddressMismatch
	}

	e := w.load(storage.Pool.Configs, configAddress.Bytes())
	if e.exists {
		return fault.ErrAlreadyInitialised
	}

	c := &record.Config{
		Authority:     op.Authority,
		Disambiguator: bump,
		RecordCount:   0,
	}
	data := c.Pack()
	deposit := l.deposit(data)
	if err := w.debit(op.Authority, deposit); nil != err {
		return err
	}
	e.put(data, deposit)
	return nil
}

func (l *Ledger) submit(w *workingSet, op *operation.Submit) error {

	// validation before any storage is read
	if op.Author == op.Receiver {
		return fault.ErrCannotSendToSelf
	}
	if len(op.Title) > record.MaxTitleLength {
		return fault.ErrTitleTooLong
	}
	if len(op.Body) > record.MaxBodyLength {
		return fault.ErrBodyTooLong
	}

	configAddress, _, err := address.Config(l.program)
	if nil != err {
		return err
	}
	noteAddress, bump, err := address.Note(l.program, op.Author, op.Receiver, address.NewFingerprint(op.Title, op.Body))
	if nil != err {
		return err
	}
	if configAddress != op.Config || noteAddress != op.Note {
		return fault.ErrAddressMismatch
	}

	ce, c, err := loadConfig(w, configAddress)
	if nil != err {
		return err
	}

	ne := w.load(storage.Pool.Notes, noteAddress.Bytes())
	if ne.exists {
		return fault.ErrNoteAlreadyExists
	}

	now := l.clock().Unix()
	n := &record.Note{
		Author:        op.Author,
		Receiver:      op.Receiver,
		Title:         op.Title,
		Body:          op.Body,
		CreatedAt:     now,
		UpdatedAt:     now,
		Disambiguator: bump,
	}
	data := n.Pack()
	deposit := l.deposit(data)
	if err := w.debit(op.Author, deposit); nil != err {
		return err
	}
	ne.put(data, deposit)

	c.RecordCount += 1
	ce.put(c.Pack(), 0)
	return nil
}

func (l *Ledger) react(w *workingSet, op *operation.React) error {
	if !op.Kind.Active() {
		return fault.ErrInvalidReactionKind
	}

	reactionAddress, bump, err := l.checkReactionAddress(op.Note, op.Reactor, op.Reaction)
	if nil != err {
		return err
	}

	ne, n, err := loadNote(w, op.Note)
	if nil != err {
		return err
	}

	re := w.load(storage.Pool.Reactions, reactionAddress.Bytes())
	from := record.None
	var r *record.Reaction
	if re.exists {
		r, err = unpackReaction(re)
		if nil != err {
			return err
		}
		if r.Kind == op.Kind {
			return fault.ErrReactionAlreadyExists
		}
		from = r.Kind
	} else {
		r = &record.Reaction{
			Reactor:       op.Reactor,
			Note:          op.Note,
			Disambiguator: bump,
		}
	}
	r.Kind = op.Kind

	data := r.Pack()
	deposit := uint64(0)
	if !re.exists {
		deposit = l.deposit(data)
		if err := w.debit(op.Reactor, deposit); nil != err {
			return err
		}
	}
	re.put(data, deposit)

	l.updateCounters(ne, n, from, op.Kind)
	return nil
}

func (l *Ledger) removeReaction(w *workingSet, op *operation.RemoveReaction) error {
	return l.modifyReaction(w, op.Reactor, op.Note, op.Reaction, func(r *record.Reaction) error {
		r.Kind = record.None
		return nil
	})
}

func (l *Ledger) changeReaction(w *workingSet, op *operation.ChangeReaction) error {
	if !op.Kind.Active() {
		return fault.ErrInvalidReactionKind
	}
	return l.modifyReaction(w, op.Reactor, op.Note, op.Reaction, func(r *record.Reaction) error {
		if r.Kind == op.Kind {
			return fault.ErrReactionAlreadyExists
		}
		r.Kind = op.Kind
		return nil
	})
}

// shared path of remove and change: both need an active reaction
func (l *Ledger) modifyReaction(w *workingSet, reactor account.Account, note address.Address, reaction address.Address, modify func(*record.Reaction) error) error {
	_, _, err := l.checkReactionAddress(note, reactor, reaction)
	if nil != err {
		return err
	}

	ne, n, err := loadNote(w, note)
	if nil != err {
		return err
	}

	re := w.load(storage.Pool.Reactions, reaction.Bytes())
	if !re.exists {
		return fault.ErrReactionNotFound
	}
	r, err := unpackReaction(re)
	if nil != err {
		return err
	}
	if !r.Kind.Active() {
		return fault.ErrReactionNotFound
	}

	from := r.Kind
	if err := modify(r); nil != err {
		return err
	}
	re.put(r.Pack(), 0)

	l.updateCounters(ne, n, from, r.Kind)
	return nil
}

func (l *Ledger) delete(w *workingSet, op *operation.Delete) error {
	configAddress, _, err := address.Config(l.program)
	if nil != err {
		return err
	}
	if configAddress != op.Config {
		return fault.ErrAddressMismatch
	}

	ne, n, err := loadNote(w, op.Note)
	if nil != err {
		return err
	}
	if op.Caller != n.Author && op.Caller != n.Receiver {
		return fault.ErrNotAuthorised
	}

	ce, c, err := loadConfig(w, configAddress)
	if nil != err {
		return err
	}

	// reclaim every reaction to this note, deposits go back to the reactors
	keys := [][]byte{}
	err = storage.Pool.Reactions.NewFetchCursor().Map(func(key []byte, value []byte) error {
		if len(value) < envelopeSize+record.NoteOffset+address.Size {
			return nil
		}
		packed := value[envelopeSize:]
		if bytes.Equal(packed[record.NoteOffset:record.NoteOffset+address.Size], op.Note[:]) {
			keys = append(keys, key)
		}
		return nil
	})
	if nil != err {
		return err
	}
	for _, key := range keys {
		re := w.load(storage.Pool.Reactions, key)
		if !re.exists {
			continue
		}
		r, err := unpackReaction(re)
		if nil != err {
			return err
		}
		w.credit(r.Reactor, re.deposit)
		re.remove()
	}

	w.credit(op.Caller, ne.deposit)
	ne.remove()

	if c.RecordCount > 0 {
		c.RecordCount -= 1
	}
	ce.put(c.Pack(), 0)
	return nil
}

func (l *Ledger) airdrop(w *workingSet, op *operation.Airdrop) error {
	if !chain.FaucetAllowed(l.chain) {
		return fault.ErrAirdropNotAvailable
	}
	if 0 == op.Amount || op.Amount > l.faucetLimit {
		return fault.ErrInvalidAmount
	}
	w.credit(op.Recipient, op.Amount)
	return nil
}

// reaction addresses are derived from the note and the reactor
func (l *Ledger) checkReactionAddress(note address.Address, reactor account.Account, reaction address.Address) (address.Address, address.Disambiguator, error) {
	a, bump, err := address.Reaction(l.program, note, reactor)
	if nil != err {
		return address.Address{}, 0, err
	}
	if a != reaction {
		return address.Address{}, 0, fault.ErrAddressMismatch
	}
	return a, bump, nil
}

// apply a reaction change to the note counters and its update time
func (l *Ledger) updateCounters(ne *entry, n *record.Note, from record.Kind, to record.Kind) {
	n.React(from, to)
	n.UpdatedAt = l.clock().Unix()
	ne.put(n.Pack(), 0)
}

func loadConfig(w *workingSet, configAddress address.Address) (*entry, *record.Config, error) {
	e := w.load(storage.Pool.Configs, configAddress.Bytes())
	if !e.exists {
		return nil, nil, fault.ErrNotInitialised
	}
	unpacked, err := e.data.Unpack()
	if nil != err {
		return nil, nil, err
	}
	c, ok := unpacked.(*record.Config)
	if !ok {
		return nil, nil, fault.ErrUnexpectedRecordTag
	}
	return e, c, nil
}

func loadNote(w *workingSet, noteAddress address.Address) (*entry, *record.Note, error) {
	e := w.load(storage.Pool.Notes, noteAddress.Bytes())
	if !e.exists {
		return nil, nil, fault.ErrNoteNotFound
	}
	unpacked, err := e.data.Unpack()
	if nil != err {
		return nil, nil, err
	}
	n, ok := unpacked.(*record.Note)
	if !ok {
		return nil, nil, fault.ErrUnexpectedRecordTag
	}
	return e, n, nil
}

func unpackReaction(e *entry) (*record.Reaction, error) {
	unpacked, err := e.data.Unpack()
	if nil != err {
		return nil, err
	}
	r, ok := unpacked.(*record.Reaction)
	if !ok {
		return nil, fault.ErrUnexpectedRecordTag
	}
	return r, nil
}
