// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package address - deterministic record addresses
//
// Every record held by the ledger lives at an address computed from a
// namespace tag, a list of binary components and the ledger program
// identity.  The same inputs always produce the same address so a
// client and the ledger agree on placement without communicating.
//
// Derived addresses are never valid ed25519 public keys, so no
// private key can ever sign on behalf of a record.
package address
