// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/tellit/fault"
)

// Transaction - a set of writes applied atomically by Commit
type Transaction interface {
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	PutNB(*PoolHandle, []byte, uint64, []byte)
	Delete(*PoolHandle, []byte)
	Commit() error
}

type transaction struct {
	batch *leveldb.Batch
}

// NewDBTransaction - begin collecting writes
func NewDBTransaction() Transaction {
	return &transaction{
		batch: new(leveldb.Batch),
	}
}

// Put - store a key/value bytes pair
func (t *transaction) Put(p *PoolHandle, key []byte, value []byte) {
	t.batch.Put(p.prefixKey(key), value)
}

// PutN - store a big endian uint64
func (t *transaction) PutN(p *PoolHandle, key []byte, n uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, n)
	t.batch.Put(p.prefixKey(key), buffer)
}

// PutNB - store a big endian uint64 followed by bytes, the inverse of GetNB
func (t *transaction) PutNB(p *PoolHandle, key []byte, n uint64, data []byte) {
	buffer := make([]byte, 8, 8+len(data))
	binary.BigEndian.PutUint64(buffer, n)
	t.batch.Put(p.prefixKey(key), append(buffer, data...))
}

// Delete - remove a key
func (t *transaction) Delete(p *PoolHandle, key []byte) {
	t.batch.Delete(p.prefixKey(key))
}

// Commit - write every change in one atomic batch
func (t *transaction) Commit() error {
	poolData.RLock()
	defer poolData.RUnlock()

	if nil == poolData.db {
		return fault.ErrDatabaseIsNotSet
	}
	err := poolData.db.Write(t.batch, nil)
	t.batch.Reset()
	return err
}
