// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/tellit/address"
	"github.com/bitmark-inc/tellit/chain"
	"github.com/bitmark-inc/tellit/fault"
	"github.com/bitmark-inc/tellit/messagebus"
	"github.com/bitmark-inc/tellit/storage"
)

// defaults for zero configuration values
const (
	DefaultRecentWindow = 150 // seconds
	DefaultFaucetLimit  = 1000000
)

// key of the commit sequence in the ledger pool
var sequenceKey = []byte("sequence")

// Configuration - ledger economics and verification window
type Configuration struct {
	RentPerByte  uint64 `gluamapper:"rent_per_byte" json:"rent_per_byte"`
	FaucetLimit  uint64 `gluamapper:"faucet_limit" json:"faucet_limit"`
	RecentWindow int    `gluamapper:"recent_window" json:"recent_window"` // seconds
}

// Clock - source of ledger time
type Clock func() time.Time

// Ledger - an open ledger bound to one chain
type Ledger struct {
	log     *logger.L
	chain   string
	program address.Address

	rentPerByte  uint64
	faucetLimit  uint64
	recentWindow time.Duration

	clock  Clock
	events *messagebus.Queue

	// operation ids seen inside the window
	recent *cache.Cache

	// guards the compare and write phase only
	commitLock sync.Mutex
	sequence   uint64
}

// New - open the ledger on the already initialised storage pools
func New(log *logger.L, conf *Configuration, chainName string) (*Ledger, error) {
	if !chain.Valid(chainName) {
		return nil, fault.ErrWrongChain
	}
	if nil == storage.Pool.Ledger {
		return nil, fault.ErrDatabaseIsNotSet
	}

	window := conf.RecentWindow
	if window <= 0 {
		window = DefaultRecentWindow
	}
	faucet := conf.FaucetLimit
	if 0 == faucet {
		faucet = DefaultFaucetLimit
	}

	recentWindow := time.Duration(window) * time.Second

	sequence, _ := storage.Pool.Ledger.GetN(sequenceKey)

	l := &Ledger{
		log:          log,
		chain:        chainName,
		program:      address.Address(chain.ProgramID(chainName)),
		rentPerByte:  conf.RentPerByte,
		faucetLimit:  faucet,
		recentWindow: recentWindow,
		clock:        time.Now,
		events:       messagebus.Bus.Events,
		recent:       cache.New(2*recentWindow, recentWindow),
		sequence:     sequence,
	}

	log.Infof("chain: %s  program: %s  sequence: %d", chainName, l.program, sequence)
	log.Infof("rent per byte: %d  faucet limit: %d  window: %s", l.rentPerByte, l.faucetLimit, recentWindow)

	return l, nil
}

// SetClock - replace the time source, used by tests
func (l *Ledger) SetClock(clock Clock) {
	l.clock = clock
}

// SetEvents - publish outcome events to queue, nil disables them
func (l *Ledger) SetEvents(queue *messagebus.Queue) {
	l.events = queue
}

// Chain - name of the chain this ledger serves
func (l *Ledger) Chain() string {
	return l.chain
}

// Program - the program identity fed to every derivation
func (l *Ledger) Program() address.Address {
	return l.program
}

// Sequence - number of the last commit
func (l *Ledger) Sequence() uint64 {
	l.commitLock.Lock()
	defer l.commitLock.Unlock()
	return l.sequence
}

// deposit charged for storing data
func (l *Ledger) deposit(data []byte) uint64 {
	return l.rentPerByte * uint64(envelopeSize+len(data))
}
