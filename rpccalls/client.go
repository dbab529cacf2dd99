// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"
	"time"

	"github.com/bitmark-inc/tellit/fault"
)

const dialTimeout = 10 * time.Second

// Client - to hold RPC connections streams
type Client struct {
	sync.Mutex
	connect   string
	tlsConfig *tls.Config
	conn      net.Conn
	client    *rpc.Client
	verbose   bool
	handle    io.Writer // if verbose is set output items here
}

// NewClient - create a RPC connection to a tellitd
func NewClient(connect string, verbose bool, handle io.Writer) (*Client, error) {

	c := &Client{
		connect: connect,
		tlsConfig: &tls.Config{
			InsecureSkipVerify: true,
		},
		verbose: verbose,
		handle:  handle,
	}

	if _, err := c.connection(); nil != err {
		return nil, err
	}
	return c, nil
}

// Close - shutdown the tellitd connection
func (c *Client) Close() {
	c.Lock()
	defer c.Unlock()
	c.drop()
}

// the current client, dialling a fresh connection when there is none
func (c *Client) connection() (*rpc.Client, error) {
	c.Lock()
	defer c.Unlock()

	if nil != c.client {
		return c.client, nil
	}

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := tls.DialWithDialer(dialer, "tcp", c.connect, c.tlsConfig)
	if nil != err {
		return nil, fmt.Errorf("connect: %s: %w", c.connect, fault.ErrNoConnectionsAvailable)
	}

	c.conn = conn
	c.client = jsonrpc.NewClient(conn)
	return c.client, nil
}

// forget a broken connection so the next call dials again
func (c *Client) reset(broken *rpc.Client) {
	c.Lock()
	defer c.Unlock()
	if broken == c.client {
		c.drop()
	}
}

func (c *Client) drop() {
	if nil != c.client {
		_ = c.client.Close()
	}
	c.client = nil
	c.conn = nil
}

// call a remote method, the context only stops the wait
func (c *Client) call(ctx context.Context, method string, arguments interface{}, reply interface{}) error {
	client, err := c.connection()
	if nil != err {
		return err
	}

	if c.verbose {
		c.print("request: "+method, arguments)
	}

	call := client.Go(method, arguments, reply, make(chan *rpc.Call, 1))

	select {
	case <-ctx.Done():
		return ctx.Err()
	case done := <-call.Done:
		if nil != done.Error {
			if c.verbose {
				fmt.Fprintf(c.handle, "reply: %s  error: %s\n", method, done.Error)
			}
			return c.translate(client, done.Error)
		}
	}

	if c.verbose {
		c.print("reply: "+method, reply)
	}
	return nil
}

// errors from the server arrive as text and map back onto the fault
// instances, transport failures become a transient error
func (c *Client) translate(client *rpc.Client, err error) error {
	if e, ok := err.(rpc.ServerError); ok {
		return fault.Lookup(string(e))
	}
	c.reset(client)
	return fmt.Errorf("%s: %w", err, fault.ErrNoConnectionsAvailable)
}

func (c *Client) print(title string, message interface{}) {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return
	}
	fmt.Fprintf(c.handle, "%s:\n%s\n", title, b)
}
