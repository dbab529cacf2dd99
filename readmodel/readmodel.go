// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package readmodel - turn stored notes into time ordered views
package readmodel

import (
	"bytes"
	"sort"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tellit/address"
	"github.com/bitmark-inc/tellit/fault"
	"github.com/bitmark-inc/tellit/record"
)

// View - one note as presented to a reader
type View struct {
	Address   address.Address `json:"address"`
	Author    string          `json:"author"`
	Receiver  string          `json:"receiver"`
	Title     string          `json:"title"`
	Body      string          `json:"body"`
	Likes     uint64          `json:"likes"`
	Dislikes  uint64          `json:"dislikes"`
	CreatedAt int64           `json:"createdAt"`
	UpdatedAt int64           `json:"updatedAt"`

	// stored creation time was zero, the view sorts it as now
	MissingTimestamp bool `json:"missingTimestamp,omitempty"`

	sortTime int64
}

// Build - convert entries into views sorted newest first
//
// entries that are not notes are an error, ties on creation time are
// ordered by address so the result is stable
func Build(log *logger.L, entries []record.Entry, now time.Time) ([]View, error) {
	views := make([]View, 0, len(entries))

	for _, e := range entries {
		unpacked, err := e.Packed.Unpack()
		if nil != err {
			return nil, err
		}
		n, ok := unpacked.(*record.Note)
		if !ok {
			return nil, fault.ErrUnexpectedRecordTag
		}

		v := View{
			Address:   e.Address,
			Author:    n.Author.String(),
			Receiver:  n.Receiver.String(),
			Title:     n.Title,
			Body:      n.Body,
			Likes:     n.Likes,
			Dislikes:  n.Dislikes,
			CreatedAt: n.CreatedAt,
			UpdatedAt: n.UpdatedAt,
			sortTime:  n.CreatedAt,
		}
		if 0 == n.CreatedAt {
			v.MissingTimestamp = true
			v.sortTime = now.Unix()
			if nil != log {
				log.Warnf("note: %s has no creation time", e.Address)
			}
		}
		if 0 == n.UpdatedAt {
			v.MissingTimestamp = true
			if nil != log {
				log.Warnf("note: %s has no update time", e.Address)
			}
		}
		views = append(views, v)
	}

	sort.SliceStable(views, func(i, j int) bool {
		if views[i].sortTime != views[j].sortTime {
			return views[i].sortTime > views[j].sortTime
		}
		return bytes.Compare(views[i].Address[:], views[j].Address[:]) < 0
	})
	return views, nil
}
