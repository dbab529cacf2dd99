// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk ledger state
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. address      = 32 byte derived record address
// 4. account      = 32 byte ed25519 public key
// 5. version      = big endian uint64 (8 bytes), bumped on every write
// 6. deposit      = big endian uint64 (8 bytes), refunded on delete
//
// Records:
//
//   C ++ address               - configuration singleton
//                                data: version ++ deposit ++ packed config
//   M ++ address               - notes
//                                data: version ++ deposit ++ packed note
//   R ++ address               - reactions
//                                data: version ++ deposit ++ packed reaction
//
// Balances:
//
//   B ++ account               - spendable balance
//                                data: amount (big endian uint64)
//
// Ledger state:
//
//   L ++ "sequence"            - last commit sequence, the source of every version
//                                data: sequence (big endian uint64)
package storage
