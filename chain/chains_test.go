// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/tellit/chain"
)

func TestValid(t *testing.T) {
	for _, name := range []string{chain.Live, chain.Testing, chain.Local} {
		assert.True(t, chain.Valid(name), "%s not valid", name)
	}
	assert.False(t, chain.Valid("bitmark"), "unknown chain valid")
}

func TestProgramID(t *testing.T) {
	assert.Equal(t, chain.ProgramID(chain.Local), chain.ProgramID(chain.Local), "not deterministic")
	assert.NotEqual(t, chain.ProgramID(chain.Local), chain.ProgramID(chain.Live), "chains share a program")
}

func TestFaucetAllowed(t *testing.T) {
	assert.False(t, chain.FaucetAllowed(chain.Live), "live faucet")
	assert.True(t, chain.FaucetAllowed(chain.Local), "local faucet")
}
