// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/tellit/keypair"
	"github.com/bitmark-inc/tellit/proxy"
)

type noteAction func(ctx context.Context, p *proxy.Proxy, kp *keypair.KeyPair, note string, kind string) (*proxy.Receipt, error)

// the shared shape of every command acting on a single note
func runNoteAction(c *cli.Context, needKind bool, action noteAction) error {

	m := c.App.Metadata["config"].(*metadata)

	note, err := required(c, "note")
	if nil != err {
		return err
	}

	kind := ""
	if needKind {
		kind, err = required(c, "kind")
		if nil != err {
			return err
		}
	}

	kp, err := signer(c)
	if nil != err {
		return err
	}

	s, err := open(c)
	if nil != err {
		return err
	}
	defer s.Close()

	receipt, err := action(s.ctx, s.proxy, kp, note, kind)
	if nil != err {
		return err
	}

	return printJson(m.w, receipt)
}

func runReact(c *cli.Context) error {
	return runNoteAction(c, true, func(ctx context.Context, p *proxy.Proxy, kp *keypair.KeyPair, note string, kind string) (*proxy.Receipt, error) {
		return p.React(ctx, kp, note, kind)
	})
}

func runChange(c *cli.Context) error {
	return runNoteAction(c, true, func(ctx context.Context, p *proxy.Proxy, kp *keypair.KeyPair, note string, kind string) (*proxy.Receipt, error) {
		return p.ChangeReaction(ctx, kp, note, kind)
	})
}

func runUnreact(c *cli.Context) error {
	return runNoteAction(c, false, func(ctx context.Context, p *proxy.Proxy, kp *keypair.KeyPair, note string, _ string) (*proxy.Receipt, error) {
		return p.RemoveReaction(ctx, kp, note)
	})
}

func runDelete(c *cli.Context) error {
	return runNoteAction(c, false, func(ctx context.Context, p *proxy.Proxy, kp *keypair.KeyPair, note string, _ string) (*proxy.Receipt, error) {
		return p.Delete(ctx, kp, note)
	})
}
