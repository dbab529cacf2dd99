// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package queue - single lane dispatcher for ledger submissions
//
// jobs run one at a time in arrival order with a minimum spacing
// between dispatches, reads go through Retry instead
package queue
