// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/tellit/keypair"
	"github.com/bitmark-inc/tellit/proxy"
	"github.com/bitmark-inc/tellit/queue"
	"github.com/bitmark-inc/tellit/rpc/node"
	"github.com/bitmark-inc/tellit/rpccalls"
)

const (
	logFile  = "tellit-cli.log"
	logSize  = 1024 * 1024
	logCount = 5
)

// logging is process wide, start it once
var (
	logOnce    sync.Once
	logError   error
	logStarted bool
)

func startLogging(m *metadata) error {
	logOnce.Do(func() {
		dir := m.logDir
		if "" == dir {
			dir = filepath.Join(os.TempDir(), "tellit-cli")
		}
		if logError = os.MkdirAll(dir, 0700); nil != logError {
			return
		}

		level := "warn"
		if m.verbose {
			level = "info"
		}
		logError = logger.Initialise(logger.Configuration{
			Directory: dir,
			File:      logFile,
			Size:      logSize,
			Count:     logCount,
			Levels: map[string]string{
				logger.DefaultTag: level,
			},
		})
		logStarted = nil == logError
	})
	return logError
}

func stopLogging() {
	if logStarted {
		logger.Finalise()
	}
}

// a proxy to one node, close it when done
type session struct {
	ctx    context.Context
	info   *node.InfoReply
	client *rpccalls.Client
	queue  *queue.Queue
	proxy  *proxy.Proxy
}

func open(c *cli.Context) (*session, error) {
	m := c.App.Metadata["config"].(*metadata)

	if err := startLogging(m); nil != err {
		return nil, err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "connect: %s\n", m.connect)
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return nil, err
	}

	ctx := context.Background()

	info, err := client.Info(ctx)
	if nil != err {
		client.Close()
		return nil, err
	}
	if "" != m.chain && m.chain != info.Chain {
		client.Close()
		return nil, fmt.Errorf("expected: %s  actual: %s: %w", m.chain, info.Chain, ErrNodeMismatch)
	}

	q := queue.New(logger.New("queue"), m.spacing)
	q.Start()

	return &session{
		ctx:    ctx,
		info:   info,
		client: client,
		queue:  q,
		proxy:  proxy.New(logger.New("proxy"), info.Program, client, q, queue.DefaultRetryPolicy),
	}, nil
}

func (s *session) Close() {
	s.queue.Stop()
	s.client.Close()
}

// the key pair from the seed flag or environment
func signer(c *cli.Context) (*keypair.KeyPair, error) {
	m := c.App.Metadata["config"].(*metadata)
	if "" == m.seed {
		return nil, ErrMissingSeed
	}
	return keypair.FromSeed(m.seed)
}

// a required string flag of the current command
func required(c *cli.Context, name string) (string, error) {
	s := c.String(name)
	if "" == s {
		return "", fmt.Errorf("%s: %w", name, ErrMissingFlag)
	}
	return s, nil
}
