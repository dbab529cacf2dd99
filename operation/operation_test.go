// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/tellit/address"
	"github.com/bitmark-inc/tellit/fault"
	"github.com/bitmark-inc/tellit/keypair"
	"github.com/bitmark-inc/tellit/operation"
	"github.com/bitmark-inc/tellit/record"
	"github.com/bitmark-inc/tellit/util"
)

func newKeyPair(t *testing.T) *keypair.KeyPair {
	k, err := keypair.New()
	require.Nil(t, err, "new key pair")
	return k
}

func TestSignAndUnpack(t *testing.T) {
	author := newKeyPair(t)
	receiver := newKeyPair(t)

	ops := []operation.Operation{
		&operation.Initialise{
			Authority: author.Account(),
			Config:    address.Address{1},
			Signed:    operation.Signed{Timestamp: 1},
		},
		&operation.Submit{
			Author:   author.Account(),
			Receiver: receiver.Account(),
			Title:    "Hello",
			Body:     "World",
			Note:     address.Address{2},
			Config:   address.Address{1},
			Signed:   operation.Signed{Timestamp: 1700000000},
		},
		&operation.React{
			Reactor:  author.Account(),
			Note:     address.Address{2},
			Reaction: address.Address{3},
			Kind:     record.Dislike,
		},
		&operation.RemoveReaction{
			Reactor:  author.Account(),
			Note:     address.Address{2},
			Reaction: address.Address{3},
		},
		&operation.ChangeReaction{
			Reactor:  author.Account(),
			Note:     address.Address{2},
			Reaction: address.Address{3},
			Kind:     record.Like,
		},
		&operation.Delete{
			Caller: author.Account(),
			Note:   address.Address{2},
			Config: address.Address{1},
		},
		&operation.Airdrop{
			Recipient: author.Account(),
			Amount:    1000000,
		},
	}

	for i, op := range ops {
		packed, err := operation.Sign(op, author)
		require.Nil(t, err, "%d: sign", i)

		unpacked, err := packed.Unpack()
		require.Nil(t, err, "%d: unpack", i)
		assert.Equal(t, op, unpacked, "%d: operation differs", i)

		name, ok := operation.Name(unpacked)
		assert.True(t, ok, "%d: unknown operation", i)
		assert.NotEqual(t, "", name, "%d: empty name", i)

		again, err := unpacked.Pack()
		assert.Nil(t, err, "%d: repack", i)
		assert.Equal(t, packed, again, "%d: repack differs", i)
		assert.Equal(t, packed.MakeID(), again.MakeID(), "%d: id differs", i)
	}
}

func TestSignWrongSigner(t *testing.T) {
	author := newKeyPair(t)
	other := newKeyPair(t)

	op := &operation.Delete{Caller: author.Account()}
	_, err := operation.Sign(op, other)
	assert.Equal(t, fault.ErrInvalidSignature, err, "foreign signer accepted")
}

func TestUnpackTampered(t *testing.T) {
	author := newKeyPair(t)
	op := &operation.Submit{
		Author: author.Account(),
		Title:  "Hello",
		Body:   "World",
	}
	packed, err := operation.Sign(op, author)
	require.Nil(t, err, "sign")

	// flip a byte of the title
	tampered := append(operation.Packed{}, packed...)
	tampered[1+32+32+1] ^= 0x01
	_, err = tampered.Unpack()
	assert.Equal(t, fault.ErrInvalidSignature, err, "tampered operation accepted")

	_, err = packed[:len(packed)-3].Unpack()
	assert.NotNil(t, err, "truncated operation accepted")

	_, err = operation.Packed(util.ToVarint64(99)).Unpack()
	assert.Equal(t, fault.ErrUnexpectedRecordTag, err, "unknown tag accepted")
}

func TestUnsignedPackReturnsMessage(t *testing.T) {
	author := newKeyPair(t)
	op := &operation.Airdrop{Recipient: author.Account(), Amount: 5}

	message, err := op.Pack()
	assert.Equal(t, fault.ErrInvalidSignature, err, "unsigned operation packed")
	assert.Equal(t, operation.AirdropTag, operation.Packed(message).Type(), "wrong message tag")
}

func TestPackedJSON(t *testing.T) {
	packed := operation.Packed{0x01, 0xab}
	buffer, err := json.Marshal(packed)
	require.Nil(t, err, "marshal")
	assert.Equal(t, `"01ab"`, string(buffer), "wrong JSON")

	var decoded operation.Packed
	assert.Nil(t, json.Unmarshal(buffer, &decoded), "unmarshal")
	assert.Equal(t, packed, decoded, "wrong packed")
}
