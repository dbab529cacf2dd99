// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/tellit/fault"
)

// common errors - keep in alphabetic order
const (
	ErrMissingFlag  = fault.InvalidError("missing required flag")
	ErrMissingSeed  = fault.InvalidError("missing identity seed")
	ErrNodeMismatch = fault.InvalidError("node is on a different chain")
)
