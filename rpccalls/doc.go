// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpccalls - JSON RPC client for tellitd
//
// Client satisfies proxy.Endpoint so a proxy can submit to a remote
// node exactly as it does to an in-process ledger.
package rpccalls
