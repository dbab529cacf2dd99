// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handler

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tellit/counter"
	"github.com/bitmark-inc/tellit/rpc/metrics"
	"github.com/bitmark-inc/tellit/rpc/node"
)

// Handler - the HTTPS endpoints
type Handler interface {
	RPC(http.ResponseWriter, *http.Request)
	Details(http.ResponseWriter, *http.Request)
	Metrics(http.ResponseWriter, *http.Request)
	Root(http.ResponseWriter, *http.Request)
	SetAllow(map[string][]*net.IPNet)
}

// InternalConnection - type to allow rpc system to interface to http request
type InternalConnection struct {
	in  io.Reader
	out io.Writer
}

func (c *InternalConnection) Read(p []byte) (n int, err error) {
	return c.in.Read(p)
}
func (c *InternalConnection) Write(d []byte) (n int, err error) {
	return c.out.Write(d)
}
func (c *InternalConnection) Close() error {
	return nil
}

// the argument passed to the handlers
type handler struct {
	log                *logger.L
	server             *rpc.Server
	node               *node.Node
	allow              map[string][]*net.IPNet
	maximumConnections uint64
	count              counter.Counter
	metrics            http.Handler
}

// New - create the HTTPS handlers
func New(log *logger.L, server *rpc.Server, n *node.Node, maximumConnections uint64) Handler {
	return &handler{
		log:                log,
		server:             server,
		node:               n,
		allow:              make(map[string][]*net.IPNet),
		maximumConnections: maximumConnections,
		metrics:            metrics.Handler(),
	}
}

// SetAllow - access lists keyed by endpoint name
func (h *handler) SetAllow(allow map[string][]*net.IPNet) {
	h.allow = allow
}

// Root - this matches anything not matched and returns error
func (h *handler) Root(w http.ResponseWriter, _ *http.Request) {
	sendNotFound(w)
}

// RPC - performs a call to any normal RPC
func (h *handler) RPC(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.enter() {
		sendTooManyRequests(w)
		return
	}
	defer h.leave()

	serverCodec := jsonrpc.NewServerCodec(&InternalConnection{in: r.Body, out: w})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	err := h.server.ServeRequest(serverCodec)
	if nil != err {
		h.log.Debugf("serve request error: %s", err)
		sendInternalServerError(w)
		return
	}
}

// Details - to allow a GET for the same response as Node.Info RPC
func (h *handler) Details(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.allowed("details", r) {
		sendForbidden(w)
		return
	}

	if !h.enter() {
		sendTooManyRequests(w)
		return
	}
	defer h.leave()

	var reply node.InfoReply
	if err := h.node.Info(&node.InfoArguments{}, &reply); nil != err {
		h.log.Errorf("details error: %s", err)
		sendInternalServerError(w)
		return
	}

	sendReply(w, reply)
}

// Metrics - prometheus exposition of the request counters
func (h *handler) Metrics(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.allowed("metrics", r) {
		sendForbidden(w)
		return
	}

	h.metrics.ServeHTTP(w, r)
}

func (h *handler) enter() bool {
	if h.count.Increment() > h.maximumConnections {
		h.count.Decrement()
		return false
	}
	metrics.ConnectionOpened()
	return true
}

func (h *handler) leave() {
	metrics.ConnectionClosed()
	h.count.Decrement()
}

// check the remote address against the access list of an endpoint
func (h *handler) allowed(name string, r *http.Request) bool {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if nil == err {
		if ip := net.ParseIP(host); nil != ip {
			for _, cidr := range h.allow[name] {
				if cidr.Contains(ip) {
					return true
				}
			}
		}
	}
	h.log.Warnf("deny access: %s  from: %q", name, r.RemoteAddr)
	return false
}

// send an JSON encoded reply
func sendReply(w http.ResponseWriter, data interface{}) {
	text, err := json.Marshal(data)
	if nil != err {
		sendInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(text)
}

// selected errors as required above
func sendNotFound(w http.ResponseWriter) {
	sendError(w, "not found", http.StatusNotFound)
}
func sendMethodNotAllowed(w http.ResponseWriter) {
	sendError(w, "method not allowed", http.StatusMethodNotAllowed)
}
func sendForbidden(w http.ResponseWriter) {
	sendError(w, "forbidden", http.StatusForbidden)
}
func sendTooManyRequests(w http.ResponseWriter) {
	sendError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
}
func sendInternalServerError(w http.ResponseWriter) {
	sendError(w, "internal server error", http.StatusInternalServerError)
}

// to compose JSON error messages
type eType struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// output an error with a JSON body
func sendError(w http.ResponseWriter, message string, code int) {
	text, err := json.Marshal(eType{
		Code:  code,
		Error: message,
	})
	if nil != err {
		// manually composed error just incase JSON fails
		http.Error(w, `{"code":500,"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write(text)
}
