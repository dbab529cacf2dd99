// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"context"

	"github.com/bitmark-inc/tellit/account"
	"github.com/bitmark-inc/tellit/address"
	"github.com/bitmark-inc/tellit/operation"
	"github.com/bitmark-inc/tellit/record"
	rpcledger "github.com/bitmark-inc/tellit/rpc/ledger"
	"github.com/bitmark-inc/tellit/rpc/node"
)

// Submit - send a signed operation to be applied
func (c *Client) Submit(ctx context.Context, packed operation.Packed) (operation.ID, error) {
	var reply rpcledger.SubmitReply
	err := c.call(ctx, "Ledger.Submit", &rpcledger.SubmitArguments{Operation: packed}, &reply)
	return reply.ID, err
}

// Inbox - every note addressed to receiver
func (c *Client) Inbox(ctx context.Context, receiver account.Account) ([]record.Entry, error) {
	var reply rpcledger.NotesReply
	if err := c.call(ctx, "Ledger.Notes", &rpcledger.NotesArguments{Receiver: receiver}, &reply); nil != err {
		return nil, err
	}
	return reply.Notes, nil
}

// Config - the configuration singleton
func (c *Client) Config(ctx context.Context) (*record.Config, error) {
	var reply rpcledger.ConfigReply
	if err := c.call(ctx, "Ledger.Config", &rpcledger.ConfigArguments{}, &reply); nil != err {
		return nil, err
	}
	return reply.Config, nil
}

// Note - a single note
func (c *Client) Note(ctx context.Context, note address.Address) (*record.Note, error) {
	var reply rpcledger.NoteReply
	if err := c.call(ctx, "Ledger.Note", &rpcledger.NoteArguments{Address: note}, &reply); nil != err {
		return nil, err
	}
	return reply.Note, nil
}

// Reaction - a single reaction
func (c *Client) Reaction(ctx context.Context, reaction address.Address) (*record.Reaction, error) {
	var reply rpcledger.ReactionReply
	if err := c.call(ctx, "Ledger.Reaction", &rpcledger.ReactionArguments{Address: reaction}, &reply); nil != err {
		return nil, err
	}
	return reply.Reaction, nil
}

// Balance - spendable amount of an account
func (c *Client) Balance(ctx context.Context, a account.Account) (uint64, error) {
	var reply rpcledger.BalanceReply
	if err := c.call(ctx, "Ledger.Balance", &rpcledger.BalanceArguments{Account: a}, &reply); nil != err {
		return 0, err
	}
	return reply.Balance, nil
}

// Info - status of the node
func (c *Client) Info(ctx context.Context) (*node.InfoReply, error) {
	var reply node.InfoReply
	if err := c.call(ctx, "Node.Info", &node.InfoArguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
