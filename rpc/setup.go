// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tellit/counter"
	"github.com/bitmark-inc/tellit/fault"
	"github.com/bitmark-inc/tellit/rpc/certificate"
	"github.com/bitmark-inc/tellit/rpc/handler"
	"github.com/bitmark-inc/tellit/rpc/listeners"
	"github.com/bitmark-inc/tellit/rpc/server"
)

const (
	rpcName   = "client_rpc"
	httpsName = "http_rpc"
)

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	listeners []listeners.Listener

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// connection counter shared by both servers
var connectionCountRPC counter.Counter

// Initialise - start the RPC and HTTPS servers
func Initialise(rpcConfiguration *listeners.RPCConfiguration, httpsConfiguration *listeners.HTTPSConfiguration, version string, l server.Ledger) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	s, n := server.Create(log, version, &connectionCountRPC, l)

	tlsConfig, certificateFingerprint, err := certificate.Get(log, rpcName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
	if nil != err {
		return err
	}

	rpcListener, err := listeners.NewRPC(
		rpcConfiguration,
		log,
		&connectionCountRPC,
		s,
		tlsConfig,
		certificateFingerprint,
	)
	if nil != err {
		return err
	}

	if 0 != len(httpsConfiguration.Listen) {
		httpsTLSConfig, fingerprint, err := certificate.Get(log, httpsName, httpsConfiguration.Certificate, httpsConfiguration.PrivateKey)
		if nil != err {
			return err
		}
		log.Infof("%s: SHA3-256 fingerprint: %x", httpsName, fingerprint)

		hdlr := handler.New(log, s, n, httpsConfiguration.MaximumConnections)
		httpsListener, err := listeners.NewHTTPS(httpsConfiguration, log, httpsTLSConfig, hdlr)
		if nil != err {
			return err
		}
		if nil != httpsListener {
			globalData.listeners = append(globalData.listeners, httpsListener)
		}
	}

	globalData.listeners = append(globalData.listeners, rpcListener)

	for _, listener := range globalData.listeners {
		if err := listener.Serve(); nil != err {
			closeAll()
			return err
		}
	}

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop all servers
func Finalise() error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	closeAll()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

func closeAll() {
	for _, listener := range globalData.listeners {
		_ = listener.Close()
	}
	globalData.listeners = nil
}
