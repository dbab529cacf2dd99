// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"net"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tellit/fault"
)

const (
	minConnectionCount = 1
)

// Listener - a server accepting client connections
type Listener interface {
	Serve() error
	Close() error
}

// translate the listen strings of a configuration into the network
// and address accepted by net.Listen
//
//   *:PORT          listen on tcp4 and tcp6
//   [IPv6]:PORT     tcp6 only
//   IPv4:PORT       tcp4 only
func parseListenAddress(addrs []string, log *logger.L) ([]string, []string, error) {
	networks := make([]string, len(addrs))
	listens := make([]string, len(addrs))
	for i, listen := range addrs {
		if 0 == len(listen) {
			log.Errorf("listen error: %s", fault.ErrInvalidIPAddress)
			return nil, nil, fault.ErrInvalidIPAddress
		}

		host, port, err := net.SplitHostPort(listen)
		if nil != err {
			log.Errorf("listen: %q  error: %s", listen, err)
			return nil, nil, fault.ErrInvalidIPAddress
		}

		switch {
		case "*" == host:
			host = "::"
			networks[i] = "tcp"
		case strings.Contains(host, ":"):
			networks[i] = "tcp6"
		default:
			networks[i] = "tcp4"
		}

		if ip := net.ParseIP(host); nil == ip {
			log.Errorf("listen: %q  error: %s", listen, fault.ErrInvalidIPAddress)
			return nil, nil, fault.ErrInvalidIPAddress
		}
		listens[i] = net.JoinHostPort(host, port)
	}

	return networks, listens, nil
}
