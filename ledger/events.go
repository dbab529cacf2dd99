// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/tellit/account"
	"github.com/bitmark-inc/tellit/operation"
)

// event commands
const (
	EventApplied  = "applied"
	EventRejected = "rejected"
)

// Event - outcome of one operation
type Event struct {
	ID        operation.ID    `json:"id"`
	Operation string          `json:"operation"`
	Signer    account.Account `json:"signer"`
	Error     string          `json:"error,omitempty"`
	Sequence  uint64          `json:"sequence"`
	Timestamp int64           `json:"timestamp"`
}

func (l *Ledger) publish(id operation.ID, op operation.Operation, err error) {
	if nil == l.events {
		return
	}

	e := &Event{
		ID:        id,
		Operation: "*unknown*",
		Sequence:  l.Sequence(),
		Timestamp: l.clock().Unix(),
	}
	command := EventApplied
	if nil != op {
		e.Operation, _ = operation.Name(op)
		e.Signer = op.SignedBy()
	}
	if nil != err {
		command = EventRejected
		e.Error = err.Error()
	}

	if !l.events.Send(command, e) {
		l.log.Warnf("event queue full, dropped: %s %s", command, id)
	}
}
