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

// NoteOffset - position of the note address inside a packed reaction
const NoteOffset = 1 + account.PublicKeySize

// Reaction - one participant's reaction to a note, kept in place
// with Kind None once removed
type Reaction struct {
	Reactor       account.Account       `json:"reactor"`
	Note          address.Address       `json:"note"`
	Kind          Kind                  `json:"kind"`
	Disambiguator address.Disambiguator `json:"disambiguator"`
}

// Pack - tag ++ reactor ++ note ++ kind ++ disambiguator
func (r *Reaction) Pack() Packed {
	buffer := make([]byte, 0, 3+account.PublicKeySize+address.Size)
	buffer = append(buffer, byte(ReactionTag))
	buffer = append(buffer, r.Reactor[:]...)
	buffer = append(buffer, r.Note[:]...)
	buffer = append(buffer, byte(r.Kind))
	buffer = append(buffer, byte(r.Disambiguator))
	return buffer
}

func unpackReaction(record Packed) (*Reaction, error) {
	r := util.NewReader(record)
	r.Byte()

	reaction := &Reaction{}
	copy(reaction.Reactor[:], r.Fixed(account.PublicKeySize))
	copy(reaction.Note[:], r.Fixed(address.Size))
	reaction.Kind = Kind(r.Byte())
	reaction.Disambiguator = address.Disambiguator(r.Byte())

	if !r.Ok() || 0 != r.Remaining() {
		return nil, fault.ErrRecordTooShort
	}
	if !reaction.Kind.Valid() {
		return nil, fault.ErrInvalidReactionKind
	}
	return reaction, nil
}
