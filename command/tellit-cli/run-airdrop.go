// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runAirdrop(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	amount := c.Uint64("amount")
	if 0 == amount {
		return fmt.Errorf("amount: %w", ErrMissingFlag)
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

	receipt, err := s.proxy.Airdrop(s.ctx, kp, amount)
	if nil != err {
		return err
	}

	return printJson(m.w, receipt)
}
