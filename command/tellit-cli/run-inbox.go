// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

// default to the signer's own identity
func accountOrSelf(c *cli.Context, name string) (string, error) {
	if a := c.String(name); "" != a {
		return a, nil
	}
	kp, err := signer(c)
	if nil != err {
		return "", err
	}
	return kp.Account().String(), nil
}

func runInbox(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	receiver, err := accountOrSelf(c, "receiver")
	if nil != err {
		return err
	}

	s, err := open(c)
	if nil != err {
		return err
	}
	defer s.Close()

	views, err := s.proxy.Inbox(s.ctx, receiver)
	if nil != err {
		return err
	}

	return printJson(m.w, views)
}

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	account, err := accountOrSelf(c, "account")
	if nil != err {
		return err
	}

	s, err := open(c)
	if nil != err {
		return err
	}
	defer s.Close()

	balance, err := s.proxy.Balance(s.ctx, account)
	if nil != err {
		return err
	}

	return printJson(m.w, struct {
		Account string `json:"account"`
		Balance uint64 `json:"balance"`
	}{
		Account: account,
		Balance: balance,
	})
}
