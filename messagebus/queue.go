// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"github.com/bitmark-inc/tellit/counter"
)

// internal constants
const (
	defaultQueueSize = 1000
)

// Message - a command name and its parameters
type Message struct {
	Command    string
	Parameters interface{}
}

// Queue - a buffered single consumer channel
type Queue struct {
	c       chan Message
	dropped counter.Counter
}

// BusType - the set of available queues
type BusType struct {
	Events *Queue
}

// Bus - the process wide queues
var Bus = BusType{
	Events: New(defaultQueueSize),
}

// New - create a queue holding up to size messages
func New(size int) *Queue {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &Queue{
		c: make(chan Message, size),
	}
}

// Send - queue a message, returns false if it was dropped
func (queue *Queue) Send(command string, parameters interface{}) bool {
	select {
	case queue.c <- Message{Command: command, Parameters: parameters}:
		return true
	default:
		queue.dropped.Increment()
		return false
	}
}

// Chan - channel to read from
func (queue *Queue) Chan() <-chan Message {
	return queue.c
}

// Dropped - number of messages discarded because the queue was full
func (queue *Queue) Dropped() uint64 {
	return queue.dropped.Uint64()
}
