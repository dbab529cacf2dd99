// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the note exchange state machine
//
// every operation is verified (signature, derived addresses, time
// window, replay) and then executed in two phases:
//
//   1. load each named record with its version and run the guarded
//      transition against this working set
//   2. under the commit lock compare every loaded version with the
//      stored one; any difference fails with fault.ErrAccountInUse,
//      otherwise all changes are written in one batch
//
// nothing holds a lock while a transition runs, a caller that loses
// a race simply resubmits
package ledger
