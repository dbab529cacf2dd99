// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"strings"

	"github.com/bitmark-inc/tellit/fault"
)

// Kind - the state of one participant's reaction to a note
type Kind byte

// reaction kinds, None marks a removed reaction
const (
	None    = Kind(0)
	Like    = Kind(1)
	Dislike = Kind(2)
)

// Valid - true for any kind that may be stored
func (k Kind) Valid() bool {
	return k <= Dislike
}

// Active - true for Like or Dislike
func (k Kind) Active() bool {
	return Like == k || Dislike == k
}

// String - lower case name of the kind
func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Like:
		return "like"
	case Dislike:
		return "dislike"
	default:
		return "invalid"
	}
}

// KindFromString - parse a reaction name
func KindFromString(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return None, nil
	case "like", "up", "+":
		return Like, nil
	case "dislike", "down", "-":
		return Dislike, nil
	default:
		return None, fault.ErrInvalidReactionKind
	}
}

// MarshalText - JSON form of a kind
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fault.ErrInvalidReactionKind
	}
	return []byte(k.String()), nil
}

// UnmarshalText - parse the JSON form of a kind
func (k *Kind) UnmarshalText(s []byte) error {
	kind, err := KindFromString(string(s))
	if nil != err {
		return err
	}
	*k = kind
	return nil
}
