// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - client access to the ledger
//
// JSON RPC over TLS carries the Node and Ledger services.  The
// optional HTTPS server offers the same services at /tellitd/rpc plus
// /tellitd/details and /metrics for hosts on the allow lists.
package rpc
