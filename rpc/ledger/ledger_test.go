// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/tellit/address"
	"github.com/bitmark-inc/tellit/chain"
	"github.com/bitmark-inc/tellit/fault"
	"github.com/bitmark-inc/tellit/fixtures"
	"github.com/bitmark-inc/tellit/keypair"
	"github.com/bitmark-inc/tellit/ledger"
	"github.com/bitmark-inc/tellit/messagebus"
	"github.com/bitmark-inc/tellit/operation"
	rpcledger "github.com/bitmark-inc/tellit/rpc/ledger"
)

func setup(t *testing.T) (*rpcledger.Ledger, *ledger.Ledger) {
	require.NoError(t, fixtures.SetupTestStorage(), "storage")

	l, err := ledger.New(logger.New(fixtures.LogCategory), &ledger.Configuration{}, chain.Local)
	require.NoError(t, err, "ledger")
	l.SetEvents(messagebus.New(10))

	return rpcledger.New(logger.New(fixtures.LogCategory), l), l
}

func sign(t *testing.T, op operation.Operation, signer *keypair.KeyPair) operation.Packed {
	packed, err := operation.Sign(op, signer)
	require.NoError(t, err, "sign")
	return packed
}

func TestSubmitAndQuery(t *testing.T) {
	service, l := setup(t)
	defer fixtures.TeardownTestStorage()

	authority := fixtures.MustKeyPair()
	author := fixtures.MustKeyPair()
	receiver := fixtures.MustKeyPair()

	configAddress, _, err := address.Config(l.Program())
	require.NoError(t, err, "config address")

	now := time.Now().Unix()

	var submitted rpcledger.SubmitReply
	err = service.Submit(&rpcledger.SubmitArguments{
		Operation: sign(t, &operation.Initialise{
			Authority: authority.Account(),
			Config:    configAddress,
			Signed:    operation.Signed{Timestamp: now},
		}, authority),
	}, &submitted)
	assert.Nil(t, err, "initialise")

	var config rpcledger.ConfigReply
	err = service.Config(&rpcledger.ConfigArguments{}, &config)
	assert.Nil(t, err, "config")
	assert.Equal(t, authority.Account(), config.Config.Authority, "wrong authority")

	noteAddress, _, err := address.Note(l.Program(), author.Account(), receiver.Account(), address.NewFingerprint("hello", "world"))
	require.NoError(t, err, "note address")

	packed := sign(t, &operation.Submit{
		Author:   author.Account(),
		Receiver: receiver.Account(),
		Title:    "hello",
		Body:     "world",
		Note:     noteAddress,
		Config:   configAddress,
		Signed:   operation.Signed{Timestamp: now},
	}, author)
	err = service.Submit(&rpcledger.SubmitArguments{Operation: packed}, &submitted)
	assert.Nil(t, err, "submit")
	assert.Equal(t, packed.MakeID(), submitted.ID, "wrong id")

	err = service.Submit(&rpcledger.SubmitArguments{Operation: packed}, &submitted)
	assert.Equal(t, fault.ErrNoteAlreadyExists, err, "duplicate accepted")

	var note rpcledger.NoteReply
	err = service.Note(&rpcledger.NoteArguments{Address: noteAddress}, &note)
	assert.Nil(t, err, "note")
	assert.Equal(t, "hello", note.Note.Title, "wrong title")
	assert.Equal(t, "world", note.Note.Body, "wrong body")

	var inbox rpcledger.NotesReply
	err = service.Notes(&rpcledger.NotesArguments{Receiver: receiver.Account()}, &inbox)
	assert.Nil(t, err, "inbox")
	require.Equal(t, 1, len(inbox.Notes), "wrong note count")
	assert.Equal(t, noteAddress, inbox.Notes[0].Address, "wrong note address")

	var reaction rpcledger.ReactionReply
	missing, _, err := address.Reaction(l.Program(), noteAddress, author.Account())
	require.NoError(t, err, "reaction address")
	err = service.Reaction(&rpcledger.ReactionArguments{Address: missing}, &reaction)
	assert.Equal(t, fault.ErrReactionNotFound, err, "wrong error")
}

func TestMissingParameters(t *testing.T) {
	service, _ := setup(t)
	defer fixtures.TeardownTestStorage()

	err := service.Submit(&rpcledger.SubmitArguments{}, &rpcledger.SubmitReply{})
	assert.Equal(t, fault.ErrMissingParameters, err, "submit")

	err = service.Notes(&rpcledger.NotesArguments{}, &rpcledger.NotesReply{})
	assert.Equal(t, fault.ErrMissingParameters, err, "inbox")

	err = service.Note(&rpcledger.NoteArguments{}, &rpcledger.NoteReply{})
	assert.Equal(t, fault.ErrMissingParameters, err, "note")

	err = service.Reaction(&rpcledger.ReactionArguments{}, &rpcledger.ReactionReply{})
	assert.Equal(t, fault.ErrMissingParameters, err, "reaction")

	err = service.Balance(&rpcledger.BalanceArguments{}, &rpcledger.BalanceReply{})
	assert.Equal(t, fault.ErrMissingParameters, err, "balance")
}

func TestConfigBeforeInitialise(t *testing.T) {
	service, _ := setup(t)
	defer fixtures.TeardownTestStorage()

	err := service.Config(&rpcledger.ConfigArguments{}, &rpcledger.ConfigReply{})
	assert.Equal(t, fault.ErrNotInitialised, err, "wrong error")
}

func TestAirdropAndBalance(t *testing.T) {
	service, _ := setup(t)
	defer fixtures.TeardownTestStorage()

	recipient := fixtures.MustKeyPair()

	err := service.Submit(&rpcledger.SubmitArguments{
		Operation: sign(t, &operation.Airdrop{
			Recipient: recipient.Account(),
			Amount:    5000,
			Signed:    operation.Signed{Timestamp: time.Now().Unix()},
		}, recipient),
	}, &rpcledger.SubmitReply{})
	assert.Nil(t, err, "airdrop")

	var reply rpcledger.BalanceReply
	err = service.Balance(&rpcledger.BalanceArguments{Account: recipient.Account()}, &reply)
	assert.Nil(t, err, "balance")
	assert.Equal(t, uint64(5000), reply.Balance, "wrong balance")
}
