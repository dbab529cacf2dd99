// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runSend(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	receiver, err := required(c, "receiver")
	if nil != err {
		return err
	}
	title, err := required(c, "title")
	if nil != err {
		return err
	}
	body, err := required(c, "body")
	if nil != err {
		return err
	}

	kp, err := signer(c)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "author: %s\n", kp.Account())
		fmt.Fprintf(m.e, "receiver: %s\n", receiver)
		fmt.Fprintf(m.e, "title: %q\n", title)
	}

	s, err := open(c)
	if nil != err {
		return err
	}
	defer s.Close()

	receipt, err := s.proxy.Submit(s.ctx, kp, receiver, title, body)
	if nil != err {
		return err
	}

	return printJson(m.w, receipt)
}

// addresses are pure derivations but need the node's program id
func runAddress(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	receiver, err := required(c, "receiver")
	if nil != err {
		return err
	}
	title, err := required(c, "title")
	if nil != err {
		return err
	}
	body, err := required(c, "body")
	if nil != err {
		return err
	}

	author := c.String("author")
	if "" == author {
		kp, err := signer(c)
		if nil != err {
			return err
		}
		author = kp.Account().String()
	}

	s, err := open(c)
	if nil != err {
		return err
	}
	defer s.Close()

	addresses, err := s.proxy.Addresses(author, receiver, title, body)
	if nil != err {
		return err
	}

	return printJson(m.w, addresses)
}
