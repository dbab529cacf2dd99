// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/gorilla/mux"

	"github.com/bitmark-inc/tellit/fault"
	"github.com/bitmark-inc/tellit/rpc/handler"
)

const (
	httpsLogName     = "http_rpc"
	readWriteTimeout = 10 * time.Second
	shutdownTimeout  = 5 * time.Second
)

// HTTPSConfiguration - configuration file data for HTTPS setup
type HTTPSConfiguration struct {
	MaximumConnections uint64              `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string            `gluamapper:"listen" json:"listen"`
	Certificate        string              `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string              `gluamapper:"private_key" json:"private_key"`
	Allow              map[string][]string `gluamapper:"allow" json:"allow"`
}

type httpsListener struct {
	sync.Mutex
	log       *logger.L
	networks  []string
	listens   []string
	tlsConfig *tls.Config
	router    *mux.Router
	servers   []*http.Server
}

// NewHTTPS - JSON RPC, node details and metrics over HTTPS
//
// returns nil when no listen address is configured
func NewHTTPS(
	configuration *HTTPSConfiguration,
	log *logger.L,
	tlsConfig *tls.Config,
	hdlr handler.Handler,
) (Listener, error) {
	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", httpsLogName)
		return nil, nil
	}

	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", httpsLogName, configuration.MaximumConnections)
		return nil, fault.ErrMissingParameters
	}

	networks, listens, err := parseListenAddress(configuration.Listen, log)
	if nil != err {
		return nil, err
	}

	// create access control and format strings to match http.Request.RemoteAddr
	local := make(map[string][]*net.IPNet)
	for path, addresses := range configuration.Allow {
		set := make([]*net.IPNet, len(addresses))
		local[path] = set
		for i, ip := range addresses {
			_, cidr, err := net.ParseCIDR(strings.Trim(ip, " "))
			if nil != err {
				log.Errorf("allow: %s  cidr: %q  error: %s", path, ip, err)
				return nil, err
			}
			set[i] = cidr
		}
	}

	hdlr.SetAllow(local)

	router := mux.NewRouter()
	router.HandleFunc("/tellitd/rpc", hdlr.RPC).Methods(http.MethodPost)
	router.HandleFunc("/tellitd/details", hdlr.Details).Methods(http.MethodGet)
	router.HandleFunc("/metrics", hdlr.Metrics).Methods(http.MethodGet)
	router.NotFoundHandler = http.HandlerFunc(hdlr.Root)

	h := &httpsListener{
		log:       log,
		networks:  networks,
		listens:   listens,
		tlsConfig: tlsConfig,
		router:    router,
	}

	return h, nil
}

// Serve - start a server on every listen address
func (h *httpsListener) Serve() error {
	h.Lock()
	defer h.Unlock()

	for i, listen := range h.listens {
		h.log.Infof("starting server: %s on: %q", httpsLogName, listen)

		s := &http.Server{
			Addr:           listen,
			Handler:        h.router,
			ReadTimeout:    readWriteTimeout,
			WriteTimeout:   readWriteTimeout,
			MaxHeaderBytes: 1 << 20,
		}

		cfg := h.tlsConfig.Clone()
		cfg.NextProtos = []string{"http/1.1"}

		ln, err := net.Listen(h.networks[i], listen)
		if nil != err {
			h.log.Errorf("%s listen error: %s", httpsLogName, err)
			return err
		}
		h.servers = append(h.servers, s)

		go doServeHTTPS(s, tls.NewListener(ln, cfg), h.log)
	}

	return nil
}

// Close - shut every server down
func (h *httpsListener) Close() error {
	h.Lock()
	defer h.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, s := range h.servers {
		_ = s.Shutdown(ctx)
	}
	h.servers = nil
	return nil
}

func doServeHTTPS(s *http.Server, ln net.Listener, log *logger.L) {
	err := s.Serve(ln)
	if nil != err && http.ErrServerClosed != err {
		log.Errorf("%s terminated: %s", httpsLogName, err)
	}
}
