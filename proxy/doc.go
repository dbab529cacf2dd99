// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package proxy - client side of the ledger
//
// the proxy derives every address itself, repeats the ledger's
// length and self send checks, signs one operation naming all the
// addresses and submits it through the single lane queue
//
// failures come back in the fault taxonomy wrapped with the
// operation name and the address concerned, e.g.
//
//   submit: 8ZRk…: duplicate message - note already exists
package proxy
