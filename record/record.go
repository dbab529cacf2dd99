// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/hex"

	"github.com/bitmark-inc/tellit/account"
	"github.com/bitmark-inc/tellit/address"
	"github.com/bitmark-inc/tellit/fault"
)

// TagType - type code for stored records, first byte of "Packed"
type TagType byte

// enumerate the possible record types
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	ConfigTag   = TagType(iota) // configuration singleton
	NoteTag     = TagType(iota) // a note from author to receiver
	ReactionTag = TagType(iota) // one participant's reaction to a note

	// this item must be last
	InvalidTag = TagType(iota)
)

// field bounds, counted in bytes
const (
	MaxTitleLength = 50
	MaxBodyLength  = 300
)

// fixed offsets inside a packed note, so readers can filter without
// unpacking
const (
	AuthorOffset   = 1
	ReceiverOffset = AuthorOffset + account.PublicKeySize
)

// Packed - packed records are just a byte slice
type Packed []byte

// Type - returns the record type code
func (record Packed) Type() TagType {
	if 0 == len(record) {
		return NullTag
	}
	t := TagType(record[0])
	if t >= InvalidTag {
		return InvalidTag
	}
	return t
}

// Unpack - turn a byte slice into one of *Config, *Note or *Reaction
func (record Packed) Unpack() (interface{}, error) {
	switch record.Type() {
	case ConfigTag:
		return unpackConfig(record)
	case NoteTag:
		return unpackNote(record)
	case ReactionTag:
		return unpackReaction(record)
	default:
		return nil, fault.ErrUnexpectedRecordTag
	}
}

// RecordName - returns the name of a record as a string
func RecordName(r interface{}) (string, bool) {
	switch r.(type) {
	case *Config, Config:
		return "Config", true
	case *Note, Note:
		return "Note", true
	case *Reaction, Reaction:
		return "Reaction", true
	default:
		return "*unknown*", false
	}
}

// Entry - a stored record and the address it lives at
type Entry struct {
	Address address.Address `json:"address"`
	Packed  Packed          `json:"packed"`
}

// MarshalText - packed records travel as hex
func (record Packed) MarshalText() ([]byte, error) {
	b := make([]byte, hex.EncodedLen(len(record)))
	hex.Encode(b, record)
	return b, nil
}

// UnmarshalText - decode the hex form of a packed record
func (record *Packed) UnmarshalText(s []byte) error {
	b := make([]byte, hex.DecodedLen(len(s)))
	n, err := hex.Decode(b, s)
	if nil != err {
		return fault.ErrUnmarshalTextFail
	}
	*record = b[:n]
	return nil
}
