// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/tellit/address"
	"github.com/bitmark-inc/tellit/counter"
	"github.com/bitmark-inc/tellit/fault"
	"github.com/bitmark-inc/tellit/rpc/metrics"
	"github.com/bitmark-inc/tellit/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Ledger - the parts of the ledger reported by Info
type Ledger interface {
	Chain() string
	Program() address.Address
	Sequence() uint64
}

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	Ledger  Ledger
	counter *counter.Counter
}

// New - create the node service
func New(log *logger.L, l Ledger, start time.Time, version string, counter *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		Ledger:  l,
		counter: counter,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain    string          `json:"chain"`
	Program  address.Address `json:"program"`
	Sequence uint64          `json:"sequence"`
	RPCs     uint64          `json:"rpcs"`
	Version  string          `json:"version"`
	Uptime   string          `json:"uptime"`
}

// Info - return some information about this node
// only enough for clients to determine node state
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) (err error) {
	defer func() { metrics.Observe("Node.Info", err) }()

	if err = ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	if nil == node.Ledger {
		return fault.ErrDatabaseIsNotSet
	}

	reply.Chain = node.Ledger.Chain()
	reply.Program = node.Ledger.Program()
	reply.Sequence = node.Ledger.Sequence()
	reply.RPCs = node.counter.Uint64()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	return nil
}
