// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/tellit/account"
	"github.com/bitmark-inc/tellit/address"
	"github.com/bitmark-inc/tellit/fault"
	"github.com/bitmark-inc/tellit/util"
)

// Note - a note from author to receiver
type Note struct {
	Author        account.Account       `json:"author"`
	Receiver      account.Account       `json:"receiver"`
	Title         string                `json:"title"`
	Body          string                `json:"body"`
	Likes         uint64                `json:"likes"`
	Dislikes      uint64                `json:"dislikes"`
	CreatedAt     int64                 `json:"createdAt"` // unix seconds
	UpdatedAt     int64                 `json:"updatedAt"` // unix seconds
	Disambiguator address.Disambiguator `json:"disambiguator"`
}

// Pack - tag ++ author ++ receiver at fixed offsets, then the
// variable length fields with the disambiguator last
func (n *Note) Pack() Packed {
	buffer := make([]byte, 0, 1+2*account.PublicKeySize+len(n.Title)+len(n.Body)+6*util.Varint64MaximumBytes+1)
	buffer = append(buffer, byte(NoteTag))
	buffer = append(buffer, n.Author[:]...)
	buffer = append(buffer, n.Receiver[:]...)
	buffer = util.AppendString(buffer, n.Title)
	buffer = util.AppendString(buffer, n.Body)
	buffer = util.AppendVarint64(buffer, n.Likes)
	buffer = util.AppendVarint64(buffer, n.Dislikes)
	buffer = util.AppendVarint64(buffer, uint64(n.CreatedAt))
	buffer = util.AppendVarint64(buffer, uint64(n.UpdatedAt))
	buffer = append(buffer, byte(n.Disambiguator))
	return buffer
}

// Fingerprint - the content hash that forms part of this note's address
func (n *Note) Fingerprint() address.Fingerprint {
	return address.NewFingerprint(n.Title, n.Body)
}

// React - adjust the counters for a reaction changing between kinds
//
// counters never wrap: adding saturates at the maximum and removing
// stops at zero
func (n *Note) React(from Kind, to Kind) {
	switch from {
	case Like:
		n.Likes = saturatingDecrement(n.Likes)
	case Dislike:
		n.Dislikes = saturatingDecrement(n.Dislikes)
	}
	switch to {
	case Like:
		n.Likes = saturatingIncrement(n.Likes)
	case Dislike:
		n.Dislikes = saturatingIncrement(n.Dislikes)
	}
}

func unpackNote(record Packed) (*Note, error) {
	r := util.NewReader(record)
	r.Byte()

	n := &Note{}
	copy(n.Author[:], r.Fixed(account.PublicKeySize))
	copy(n.Receiver[:], r.Fixed(account.PublicKeySize))
	n.Title = r.String(MaxTitleLength)
	n.Body = r.String(MaxBodyLength)
	n.Likes = r.Varint64()
	n.Dislikes = r.Varint64()
	n.CreatedAt = int64(r.Varint64())
	n.UpdatedAt = int64(r.Varint64())
	n.Disambiguator = address.Disambiguator(r.Byte())

	if !r.Ok() || 0 != r.Remaining() {
		return nil, fault.ErrRecordTooShort
	}
	return n, nil
}

func saturatingIncrement(n uint64) uint64 {
	if n == ^uint64(0) {
		return n
	}
	return n + 1
}

func saturatingDecrement(n uint64) uint64 {
	if 0 == n {
		return 0
	}
	return n - 1
}
