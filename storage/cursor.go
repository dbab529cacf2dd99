// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/tellit/fault"
)

// FetchCursor - cursor structure
type FetchCursor struct {
	pool     *PoolHandle
	maxRange util.Range
}

// NewFetchCursor - initialise a cursor to the start of a key range
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool: p,
		maxRange: util.Range{
			Start: []byte{p.prefix}, // Start of key range, included in the range
			Limit: p.limit,          // Limit of key range, excluded from the range
		},
	}
}

// Seek - move cursor to specific key position
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.maxRange.Start = cursor.pool.prefixKey(key)
	return cursor
}

// Fetch - return up to count elements and advance the cursor past them
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.ErrInvalidCursor
	}
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}

	results := make([]Element, 0, count)
	err := cursor.Map(func(key []byte, value []byte) error {
		if len(results) >= count {
			return errStop
		}
		results = append(results, Element{Key: key, Value: value})
		return nil
	})
	if errStop == err {
		err = nil
	}

	if n := len(results); n > 0 {
		// next start is immediately after the last key returned
		last := cursor.pool.prefixKey(results[n-1].Key)
		cursor.maxRange.Start = append(last, 0x00)
	}
	return results, err
}

// internal marker to end a Map early
var errStop = fault.ProcessError("stop iteration")

// Map - run a function on all elements in the range
//
// the function receives copies of key (prefix stripped) and value
// and stops the scan by returning an error
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if nil == cursor {
		return fault.ErrInvalidCursor
	}

	poolData.RLock()
	defer poolData.RUnlock()

	if nil == cursor.pool.database {
		return fault.ErrDatabaseIsNotSet
	}

	iter := cursor.pool.database.NewIterator(&cursor.maxRange, nil)

	var err error
iterating:
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])              // ...

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		err = f(dataKey, dataValue)
		if nil != err {
			break iterating
		}
	}
	iter.Release()
	if nil == err {
		err = iter.Error()
	}
	return err
}
