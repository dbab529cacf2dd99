// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package metrics - prometheus counters for the client facing servers
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bitmark-inc/tellit/fault"
)

const (
	namespace = "tellitd"
	subsystem = "rpc"
)

var (
	registry = prometheus.NewRegistry()

	requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requests_total",
			Help:      "RPC requests by method and result class.",
		},
		[]string{"method", "result"},
	)

	connections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "connections",
			Help:      "Client connections currently open.",
		},
	)
)

func init() {
	registry.MustRegister(requests, connections)
	registry.MustRegister(collectors.NewGoCollector())
}

// Observe - count one finished request
func Observe(method string, err error) {
	requests.WithLabelValues(method, Class(err)).Inc()
}

// ConnectionOpened - a client connected
func ConnectionOpened() {
	connections.Inc()
}

// ConnectionClosed - a client went away
func ConnectionClosed() {
	connections.Dec()
}

// Handler - serves the metrics in the prometheus exposition format
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// Class - the result label for an error
func Class(err error) string {
	switch {
	case nil == err:
		return "ok"
	case fault.IsErrInvalid(err):
		return "invalid"
	case fault.IsErrExists(err):
		return "exists"
	case fault.IsErrNotFound(err):
		return "not_found"
	case fault.IsErrAuthorisation(err):
		return "unauthorised"
	case fault.IsErrInitialised(err):
		return "initialised"
	case fault.IsErrTransient(err):
		return "transient"
	default:
		return "error"
	}
}
