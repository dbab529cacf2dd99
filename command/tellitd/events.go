// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tellit/ledger"
	"github.com/bitmark-inc/tellit/messagebus"
)

// logs every ledger outcome published on the bus
type eventLogger struct {
	log   *logger.L
	queue *messagebus.Queue
}

func (e *eventLogger) Run(args interface{}, shutdown <-chan struct{}) {
	log := e.log
	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case item := <-e.queue.Chan():
			e.process(item)
		}
	}

	if dropped := e.queue.Dropped(); 0 != dropped {
		log.Warnf("events dropped: %d", dropped)
	}
	log.Info("stopped")
}

func (e *eventLogger) process(item messagebus.Message) {
	event, ok := item.Parameters.(*ledger.Event)
	if !ok {
		e.log.Errorf("unexpected event: %s  parameters: %v", item.Command, item.Parameters)
		return
	}

	switch item.Command {
	case ledger.EventApplied:
		e.log.Infof("applied: %s  id: %s  signer: %s  sequence: %d", event.Operation, event.ID, event.Signer, event.Sequence)
	case ledger.EventRejected:
		e.log.Warnf("rejected: %s  id: %s  signer: %s  error: %s", event.Operation, event.ID, event.Signer, event.Error)
	default:
		e.log.Errorf("unknown event: %s", item.Command)
	}
}
