// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"

	"github.com/bitmark-inc/tellit/account"
	"github.com/bitmark-inc/tellit/address"
	"github.com/bitmark-inc/tellit/fault"
	"github.com/bitmark-inc/tellit/record"
	"github.com/bitmark-inc/tellit/storage"
)

// Config - the configuration singleton
func (l *Ledger) Config() (*record.Config, error) {
	configAddress, _, err := address.Config(l.program)
	if nil != err {
		return nil, err
	}
	_, c, err := loadConfig(newWorkingSet(), configAddress)
	return c, err
}

// Note - the note stored at an address
func (l *Ledger) Note(noteAddress address.Address) (*record.Note, error) {
	_, n, err := loadNote(newWorkingSet(), noteAddress)
	return n, err
}

// Reaction - the reaction stored at an address
func (l *Ledger) Reaction(reactionAddress address.Address) (*record.Reaction, error) {
	e := newWorkingSet().load(storage.Pool.Reactions, reactionAddress.Bytes())
	if !e.exists {
		return nil, fault.ErrReactionNotFound
	}
	return unpackReaction(e)
}

// Balance - spendable amount of an account
func (l *Ledger) Balance(a account.Account) uint64 {
	n, _ := storage.Pool.Balances.GetN(a.Bytes())
	return n
}

// ScanNotes - all notes whose packed form holds match at offset
//
// there is no index: every note is visited
func (l *Ledger) ScanNotes(offset int, match []byte) ([]record.Entry, error) {
	if offset < 0 {
		return nil, fault.ErrInvalidCount
	}

	results := []record.Entry{}
	err := storage.Pool.Notes.NewFetchCursor().Map(func(key []byte, value []byte) error {
		if len(value) < envelopeSize {
			return nil
		}
		packed := value[envelopeSize:]
		end := offset + len(match)
		if end > len(packed) || !bytes.Equal(packed[offset:end], match) {
			return nil
		}
		a, err := address.FromBytes(key)
		if nil != err {
			return err
		}
		results = append(results, record.Entry{
			Address: a,
			Packed:  record.Packed(packed),
		})
		return nil
	})
	if nil != err {
		return nil, err
	}
	return results, nil
}

// Inbox - every note addressed to receiver
func (l *Ledger) Inbox(receiver account.Account) ([]record.Entry, error) {
	return l.ScanNotes(record.ReceiverOffset, receiver.Bytes())
}
