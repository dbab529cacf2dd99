// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tellit/counter"
	"github.com/bitmark-inc/tellit/rpc/ledger"
	"github.com/bitmark-inc/tellit/rpc/node"
)

// Ledger - everything the registered services need from the ledger
type Ledger interface {
	node.Ledger
	ledger.Store
}

// Create - an RPC server with every service registered, plus the node
// service for the HTTPS details page
func Create(log *logger.L, version string, rpcCount *counter.Counter, l Ledger) (*rpc.Server, *node.Node) {

	start := time.Now().UTC()

	n := node.New(log, l, start, version, rpcCount)

	server := rpc.NewServer()

	_ = server.Register(n)
	_ = server.Register(ledger.New(log, l))

	return server, n
}
