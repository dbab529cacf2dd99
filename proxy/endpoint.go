// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proxy

import (
	"context"

	"github.com/bitmark-inc/tellit/account"
	"github.com/bitmark-inc/tellit/address"
	"github.com/bitmark-inc/tellit/ledger"
	"github.com/bitmark-inc/tellit/operation"
	"github.com/bitmark-inc/tellit/record"
)

//go:generate mockgen -source=endpoint.go -destination=mocks/endpoint.go -package=mocks

// Endpoint - connectivity to a ledger
type Endpoint interface {
	Submit(ctx context.Context, packed operation.Packed) (operation.ID, error)
	Inbox(ctx context.Context, receiver account.Account) ([]record.Entry, error)
	Config(ctx context.Context) (*record.Config, error)
	Note(ctx context.Context, note address.Address) (*record.Note, error)
	Reaction(ctx context.Context, reaction address.Address) (*record.Reaction, error)
	Balance(ctx context.Context, a account.Account) (uint64, error)
}

type local struct {
	ledger *ledger.Ledger
}

// NewLocal - an endpoint applying operations to an in-process ledger
func NewLocal(l *ledger.Ledger) Endpoint {
	return &local{ledger: l}
}

func (e *local) Submit(ctx context.Context, packed operation.Packed) (operation.ID, error) {
	if err := ctx.Err(); nil != err {
		return operation.ID{}, err
	}
	return e.ledger.Apply(packed)
}

func (e *local) Inbox(ctx context.Context, receiver account.Account) ([]record.Entry, error) {
	return e.ledger.Inbox(receiver)
}

func (e *local) Config(ctx context.Context) (*record.Config, error) {
	return e.ledger.Config()
}

func (e *local) Note(ctx context.Context, note address.Address) (*record.Note, error) {
	return e.ledger.Note(note)
}

func (e *local) Reaction(ctx context.Context, reaction address.Address) (*record.Reaction, error) {
	return e.ledger.Reaction(reaction)
}

func (e *local) Balance(ctx context.Context, a account.Account) (uint64, error) {
	return e.ledger.Balance(a), nil
}
