// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tellit/counter"
	"github.com/bitmark-inc/tellit/fault"
	"github.com/bitmark-inc/tellit/rpc/metrics"
)

const (
	logName      = "client_rpc"
	minBandwidth = 1000000 // 1Mbps
)

// RPCConfiguration - configuration file data for RPC setup
type RPCConfiguration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	Bandwidth          float64  `gluamapper:"bandwidth" json:"bandwidth"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
}

type rpcListener struct {
	sync.Mutex
	log            *logger.L
	count          *counter.Counter
	server         *rpc.Server
	maxConnections uint64
	tlsConfig      *tls.Config
	networks       []string
	listens        []string
	listeners      []net.Listener
}

// NewRPC - JSON RPC over TLS
func NewRPC(
	configuration *RPCConfiguration,
	log *logger.L,
	count *counter.Counter,
	server *rpc.Server,
	tlsConfig *tls.Config,
	certificateFingerprint [32]byte,
) (Listener, error) {
	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", logName, configuration.MaximumConnections)
		return nil, fault.ErrMissingParameters
	}
	if configuration.Bandwidth <= minBandwidth { // fail if < 1Mbps
		log.Errorf("invalid %s bandwidth: %f bps < 1Mbps", logName, configuration.Bandwidth)
		return nil, fault.ErrMissingParameters
	}
	if 0 == len(configuration.Listen) {
		log.Errorf("missing %s listen", logName)
		return nil, fault.ErrMissingParameters
	}

	log.Infof("%s: SHA3-256 fingerprint: %x", logName, certificateFingerprint)

	// validate all listen addresses
	networks, listens, err := parseListenAddress(configuration.Listen, log)
	if nil != err {
		return nil, err
	}

	r := &rpcListener{
		log:            log,
		maxConnections: configuration.MaximumConnections,
		networks:       networks,
		listens:        listens,
		server:         server,
		count:          count,
		tlsConfig:      tlsConfig,
	}

	return r, nil
}

// Serve - start accepting on every listen address
func (r *rpcListener) Serve() error {
	r.Lock()
	defer r.Unlock()

	for i, listen := range r.listens {
		r.log.Infof("starting RPC server: %s", listen)
		listener, err := tls.Listen(r.networks[i], listen, r.tlsConfig)
		if nil != err {
			r.log.Errorf("rpc server listen error: %s", err)
			return err
		}
		r.listeners = append(r.listeners, listener)

		go doServeRPC(listener, r.server, r.maxConnections, r.log, r.count)
	}
	return nil
}

// Close - stop accepting, open connections finish their requests
func (r *rpcListener) Close() error {
	r.Lock()
	defer r.Unlock()

	for _, listener := range r.listeners {
		_ = listener.Close()
	}
	r.listeners = nil
	return nil
}

func doServeRPC(listen net.Listener, server *rpc.Server, maximumConnections uint64, log *logger.L, count *counter.Counter) {
	for {
		conn, err := listen.Accept()
		if nil != err {
			log.Infof("rpc.server terminated: accept error: %s", err)
			break
		}
		if count.Increment() <= maximumConnections {
			go func() {
				metrics.ConnectionOpened()
				server.ServeCodec(jsonrpc.NewServerCodec(conn))
				_ = conn.Close()
				metrics.ConnectionClosed()
				count.Decrement()
			}()
		} else {
			count.Decrement()
			_ = conn.Close()
		}
	}
	_ = listen.Close()
	log.Info("RPC accept terminated")
}
