// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - a queuing system for ledger outcome events
//
// producers never block: when a queue is full the event is dropped
// and counted, events carry no state that correctness depends on
package messagebus
