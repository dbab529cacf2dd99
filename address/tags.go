// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"github.com/bitmark-inc/tellit/account"
)

// namespace tags for each record kind
var (
	TagConfig   = []byte("config")
	TagNote     = []byte("note")
	TagReaction = []byte("reaction")
)

// Config - the address of the configuration singleton
func Config(program Address) (Address, Disambiguator, error) {
	return Derive(program, TagConfig)
}

// Note - the address of the note from author to receiver with the
// given content fingerprint
func Note(program Address, author account.Account, receiver account.Account, fingerprint Fingerprint) (Address, Disambiguator, error) {
	return Derive(program, TagNote, author.Bytes(), receiver.Bytes(), fingerprint[:])
}

// Reaction - the address of reactor's reaction to a note
func Reaction(program Address, note Address, reactor account.Account) (Address, Disambiguator, error) {
	return Derive(program, TagReaction, note.Bytes(), reactor.Bytes())
}
