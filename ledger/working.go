// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tellit/account"
	"github.com/bitmark-inc/tellit/fault"
	"github.com/bitmark-inc/tellit/record"
	"github.com/bitmark-inc/tellit/storage"
)

// stored value: version(8) ++ deposit(8) ++ packed record
const envelopeSize = 16

// one stored record as loaded
type entry struct {
	pool    *storage.PoolHandle
	key     []byte
	exists  bool
	version uint64
	deposit uint64
	data    record.Packed

	// pending change
	dirty   bool
	deleted bool
}

type balance struct {
	original uint64
	current  uint64
}

// workingSet - records loaded by one operation and the changes to
// apply to them
type workingSet struct {
	entries  []*entry
	balances map[account.Account]*balance
}

func newWorkingSet() *workingSet {
	return &workingSet{
		balances: make(map[account.Account]*balance),
	}
}

// load a record, remembering its version for the commit check
func (w *workingSet) load(pool *storage.PoolHandle, key []byte) *entry {
	e := &entry{
		pool: pool,
		key:  key,
	}
	w.entries = append(w.entries, e)

	version, rest := pool.GetNB(key)
	if nil == rest {
		return e
	}
	if len(rest) <= 8 {
		logger.Panicf("ledger: truncated envelope for: %x", key)
	}
	e.exists = true
	e.version = version
	e.deposit = binary.BigEndian.Uint64(rest[:8])
	e.data = append(record.Packed{}, rest[8:]...)
	return e
}

// store a new value, a new record also gets its deposit
func (e *entry) put(data record.Packed, deposit uint64) {
	if !e.exists || e.deleted {
		e.deposit = deposit
	}
	e.data = data
	e.dirty = true
	e.deleted = false
}

func (e *entry) remove() {
	e.dirty = true
	e.deleted = true
}

func (w *workingSet) balance(a account.Account) *balance {
	b, ok := w.balances[a]
	if !ok {
		n, _ := storage.Pool.Balances.GetN(a.Bytes())
		b = &balance{
			original: n,
			current:  n,
		}
		w.balances[a] = b
	}
	return b
}

func (w *workingSet) credit(a account.Account, amount uint64) {
	if 0 == amount {
		return
	}
	b := w.balance(a)
	if b.current+amount < b.current {
		b.current = ^uint64(0)
		return
	}
	b.current += amount
}

func (w *workingSet) debit(a account.Account, amount uint64) error {
	if 0 == amount {
		return nil
	}
	b := w.balance(a)
	if b.current < amount {
		return fault.ErrInsufficientFunds
	}
	b.current -= amount
	return nil
}

// commit - compare versions and write all changes atomically
//
// onCommit runs under the commit lock after a successful write
func (l *Ledger) commit(w *workingSet, onCommit func() error) error {
	l.commitLock.Lock()
	defer l.commitLock.Unlock()

	for _, e := range w.entries {
		version, found := e.pool.GetN(e.key)
		if found != e.exists || version != e.version {
			return fault.ErrAccountInUse
		}
	}
	for a, b := range w.balances {
		n, _ := storage.Pool.Balances.GetN(a.Bytes())
		if n != b.original {
			return fault.ErrAccountInUse
		}
	}

	if nil != onCommit {
		if err := onCommit(); nil != err {
			return err
		}
	}

	sequence := l.sequence + 1

	trx := storage.NewDBTransaction()
	for _, e := range w.entries {
		if !e.dirty {
			continue
		}
		if e.deleted {
			if e.exists {
				trx.Delete(e.pool, e.key)
			}
			continue
		}
		value := make([]byte, 8, 8+len(e.data))
		binary.BigEndian.PutUint64(value, e.deposit)
		trx.PutNB(e.pool, e.key, sequence, append(value, e.data...))
	}
	for a, b := range w.balances {
		if b.current != b.original {
			trx.PutN(storage.Pool.Balances, a.Bytes(), b.current)
		}
	}
	trx.PutN(storage.Pool.Ledger, sequenceKey, sequence)

	if err := trx.Commit(); nil != err {
		l.log.Criticalf("commit: %d  error: %s", sequence, err)
		return err
	}
	l.sequence = sequence
	return nil
}
