// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"fmt"
	"math/rand"
	"net/rpc"
	"net/rpc/jsonrpc"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/tellit/counter"
	"github.com/bitmark-inc/tellit/fault"
	"github.com/bitmark-inc/tellit/fixtures"
	"github.com/bitmark-inc/tellit/rpc/listeners"
)

type Echo struct{}

func (Echo) Echo(arg *string, reply *string) error {
	*reply = *arg
	return nil
}

func TestRPCListener(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	server := rpc.NewServer()
	_ = server.Register(Echo{})

	port := rand.Intn(30000) + 30000
	listen := fmt.Sprintf("127.0.0.1:%d", port)

	var count counter.Counter
	l, err := listeners.NewRPC(
		&listeners.RPCConfiguration{
			MaximumConnections: 2,
			Bandwidth:          25000000,
			Listen:             []string{listen},
		},
		logger.New(fixtures.LogCategory),
		&count,
		server,
		tlsConfig(t),
		[32]byte{},
	)
	require.NoError(t, err, "NewRPC")
	require.NoError(t, l.Serve(), "serve")
	defer l.Close()

	conn, err := tls.Dial("tcp", listen, &tls.Config{InsecureSkipVerify: true})
	require.NoError(t, err, "dial")

	c := jsonrpc.NewClient(conn)
	defer c.Close()

	var reply string
	err = c.Call("Echo.Echo", "hello", &reply)
	assert.Nil(t, err, "call")
	assert.Equal(t, "hello", reply, "wrong reply")
	assert.Equal(t, uint64(1), count.Uint64(), "wrong connection count")
}

func TestRPCInvalidConfiguration(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	log := logger.New(fixtures.LogCategory)
	var count counter.Counter

	items := []struct {
		conf     listeners.RPCConfiguration
		expected error
	}{
		{listeners.RPCConfiguration{MaximumConnections: 0, Bandwidth: 25000000, Listen: []string{"127.0.0.1:2130"}}, fault.ErrMissingParameters},
		{listeners.RPCConfiguration{MaximumConnections: 5, Bandwidth: 100, Listen: []string{"127.0.0.1:2130"}}, fault.ErrMissingParameters},
		{listeners.RPCConfiguration{MaximumConnections: 5, Bandwidth: 25000000}, fault.ErrMissingParameters},
		{listeners.RPCConfiguration{MaximumConnections: 5, Bandwidth: 25000000, Listen: []string{"no-port"}}, fault.ErrInvalidIPAddress},
		{listeners.RPCConfiguration{MaximumConnections: 5, Bandwidth: 25000000, Listen: []string{"host.example:2130"}}, fault.ErrInvalidIPAddress},
	}

	for i, item := range items {
		_, err := listeners.NewRPC(&item.conf, log, &count, rpc.NewServer(), nil, [32]byte{})
		assert.Equal(t, item.expected, err, "%d: wrong error", i)
	}
}

func TestRPCListenAddresses(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	log := logger.New(fixtures.LogCategory)
	var count counter.Counter

	for _, listen := range []string{"*:2130", "[::1]:2130", "0.0.0.0:2130"} {
		_, err := listeners.NewRPC(&listeners.RPCConfiguration{
			MaximumConnections: 5,
			Bandwidth:          25000000,
			Listen:             []string{listen},
		}, log, &count, rpc.NewServer(), nil, [32]byte{})
		assert.Nil(t, err, "listen: %q", listen)
	}
}
