// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proxy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/go-playground/validator/v10"

	"github.com/bitmark-inc/tellit/account"
	"github.com/bitmark-inc/tellit/address"
	"github.com/bitmark-inc/tellit/fault"
	"github.com/bitmark-inc/tellit/operation"
	"github.com/bitmark-inc/tellit/queue"
	"github.com/bitmark-inc/tellit/readmodel"
	"github.com/bitmark-inc/tellit/record"
)

// operation names used in wrapped errors
const (
	opInitialise     = "initialise"
	opSubmit         = "submit"
	opReact          = "react"
	opRemoveReaction = "remove reaction"
	opChangeReaction = "change reaction"
	opDelete         = "delete"
	opAirdrop        = "airdrop"
	opInbox          = "inbox"
	opBalance        = "balance"
)

// Proxy - derives, validates, signs and submits operations
type Proxy struct {
	log      *logger.L
	program  address.Address
	endpoint Endpoint
	queue    *queue.Queue
	policy   queue.RetryPolicy
	validate *validator.Validate
	clock    func() time.Time
}

// Addresses - everything derived for one note
type Addresses struct {
	Config      address.Address     `json:"config"`
	Note        address.Address     `json:"note"`
	Fingerprint address.Fingerprint `json:"fingerprint"`
}

// Receipt - result of a successful submission
type Receipt struct {
	ID      operation.ID    `json:"id"`
	Address address.Address `json:"address"`
}

// New - create a proxy for the ledger program, submissions run
// through q which must be started
func New(log *logger.L, program address.Address, endpoint Endpoint, q *queue.Queue, policy queue.RetryPolicy) *Proxy {
	return &Proxy{
		log:      log,
		program:  program,
		endpoint: endpoint,
		queue:    q,
		policy:   policy,
		validate: newValidator(),
		clock:    time.Now,
	}
}

// SetClock - replace the time source for operation timestamps
func (p *Proxy) SetClock(clock func() time.Time) {
	p.clock = clock
}

// Addresses - derive the config and note addresses without submitting
func (p *Proxy) Addresses(author string, receiver string, title string, body string) (*Addresses, error) {
	a, err := account.FromBase58(author)
	if nil != err {
		return nil, err
	}
	r, err := account.FromBase58(receiver)
	if nil != err {
		return nil, err
	}
	return p.derive(a, r, title, body)
}

func (p *Proxy) derive(author account.Account, receiver account.Account, title string, body string) (*Addresses, error) {
	configAddress, _, err := address.Config(p.program)
	if nil != err {
		return nil, err
	}
	fingerprint := address.NewFingerprint(title, body)
	noteAddress, _, err := address.Note(p.program, author, receiver, fingerprint)
	if nil != err {
		return nil, err
	}
	return &Addresses{
		Config:      configAddress,
		Note:        noteAddress,
		Fingerprint: fingerprint,
	}, nil
}

// Initialise - create the configuration, an initialised ledger is
// success
func (p *Proxy) Initialise(ctx context.Context, signer operation.Signer) (*Receipt, error) {
	configAddress, _, err := address.Config(p.program)
	if nil != err {
		return nil, wrap(opInitialise, p.program, err)
	}

	op := &operation.Initialise{
		Authority: signer.Account(),
		Config:    configAddress,
	}
	id, err := p.submit(ctx, opInitialise, configAddress, op, signer)
	if fault.IsErrInitialised(err) {
		p.log.Infof("initialise: %s: already initialised", configAddress)
		return &Receipt{Address: configAddress}, nil
	}
	if nil != err {
		return nil, err
	}
	return &Receipt{ID: id, Address: configAddress}, nil
}

// Submit - send a note from the signer to receiver
func (p *Proxy) Submit(ctx context.Context, signer operation.Signer, receiver string, title string, body string) (*Receipt, error) {
	author := signer.Account()

	request := &submitRequest{
		Author:   author.String(),
		Receiver: receiver,
		Title:    title,
		Body:     body,
	}
	if err := check(p.validate, request); nil != err {
		return nil, wrap(opSubmit, receiver, err)
	}

	r, err := account.FromBase58(receiver)
	if nil != err {
		return nil, wrap(opSubmit, receiver, err)
	}
	if r == author {
		return nil, wrap(opSubmit, receiver, fault.ErrCannotSendToSelf)
	}

	addresses, err := p.derive(author, r, title, body)
	if nil != err {
		return nil, wrap(opSubmit, receiver, err)
	}

	op := &operation.Submit{
		Author:   author,
		Receiver: r,
		Title:    title,
		Body:     body,
		Note:     addresses.Note,
		Config:   addresses.Config,
	}
	id, err := p.submit(ctx, opSubmit, addresses.Note, op, signer)
	if nil != err {
		return nil, err
	}
	return &Receipt{ID: id, Address: addresses.Note}, nil
}

// React - like or dislike a note, changing any earlier reaction
func (p *Proxy) React(ctx context.Context, signer operation.Signer, note string, kind string) (*Receipt, error) {
	n, k, err := p.reactArguments(opReact, note, kind)
	if nil != err {
		return nil, err
	}
	reaction, err := p.reactionAddress(opReact, n, signer.Account())
	if nil != err {
		return nil, err
	}

	op := &operation.React{
		Reactor:  signer.Account(),
		Note:     n,
		Reaction: reaction,
		Kind:     k,
	}
	id, err := p.submit(ctx, opReact, reaction, op, signer)
	if nil != err {
		return nil, err
	}
	return &Receipt{ID: id, Address: reaction}, nil
}

// ChangeReaction - swap an active reaction to the other kind
func (p *Proxy) ChangeReaction(ctx context.Context, signer operation.Signer, note string, kind string) (*Receipt, error) {
	n, k, err := p.reactArguments(opChangeReaction, note, kind)
	if nil != err {
		return nil, err
	}
	reaction, err := p.reactionAddress(opChangeReaction, n, signer.Account())
	if nil != err {
		return nil, err
	}

	op := &operation.ChangeReaction{
		Reactor:  signer.Account(),
		Note:     n,
		Reaction: reaction,
		Kind:     k,
	}
	id, err := p.submit(ctx, opChangeReaction, reaction, op, signer)
	if nil != err {
		return nil, err
	}
	return &Receipt{ID: id, Address: reaction}, nil
}

// RemoveReaction - withdraw the signer's reaction to a note
func (p *Proxy) RemoveReaction(ctx context.Context, signer operation.Signer, note string) (*Receipt, error) {
	n, err := p.noteArgument(opRemoveReaction, note)
	if nil != err {
		return nil, err
	}
	reaction, err := p.reactionAddress(opRemoveReaction, n, signer.Account())
	if nil != err {
		return nil, err
	}

	op := &operation.RemoveReaction{
		Reactor:  signer.Account(),
		Note:     n,
		Reaction: reaction,
	}
	id, err := p.submit(ctx, opRemoveReaction, reaction, op, signer)
	if nil != err {
		return nil, err
	}
	return &Receipt{ID: id, Address: reaction}, nil
}

// Delete - destroy a note, the signer must be its author or receiver
func (p *Proxy) Delete(ctx context.Context, signer operation.Signer, note string) (*Receipt, error) {
	n, err := p.noteArgument(opDelete, note)
	if nil != err {
		return nil, err
	}
	configAddress, _, err := address.Config(p.program)
	if nil != err {
		return nil, wrap(opDelete, note, err)
	}

	op := &operation.Delete{
		Caller: signer.Account(),
		Note:   n,
		Config: configAddress,
	}
	id, err := p.submit(ctx, opDelete, n, op, signer)
	if nil != err {
		return nil, err
	}
	return &Receipt{ID: id, Address: n}, nil
}

// Airdrop - request test funds for the signer
func (p *Proxy) Airdrop(ctx context.Context, signer operation.Signer, amount uint64) (*Receipt, error) {
	if 0 == amount {
		return nil, wrap(opAirdrop, signer.Account(), fault.ErrInvalidAmount)
	}
	op := &operation.Airdrop{
		Recipient: signer.Account(),
		Amount:    amount,
	}
	id, err := p.submit(ctx, opAirdrop, signer.Account(), op, signer)
	if nil != err {
		return nil, err
	}
	return &Receipt{ID: id}, nil
}

// Inbox - notes addressed to receiver, newest first
func (p *Proxy) Inbox(ctx context.Context, receiver string) ([]readmodel.View, error) {
	r, err := account.FromBase58(receiver)
	if nil != err {
		return nil, wrap(opInbox, receiver, err)
	}

	var entries []record.Entry
	err = queue.Retry(ctx, p.policy, func() error {
		var err error
		entries, err = p.endpoint.Inbox(ctx, r)
		return translate(err)
	})
	if nil != err {
		return nil, wrap(opInbox, receiver, err)
	}

	views, err := readmodel.Build(p.log, entries, p.clock())
	if nil != err {
		return nil, wrap(opInbox, receiver, err)
	}
	return views, nil
}

// Balance - spendable amount of an identity
func (p *Proxy) Balance(ctx context.Context, identity string) (uint64, error) {
	a, err := account.FromBase58(identity)
	if nil != err {
		return 0, wrap(opBalance, identity, err)
	}

	var n uint64
	err = queue.Retry(ctx, p.policy, func() error {
		var err error
		n, err = p.endpoint.Balance(ctx, a)
		return translate(err)
	})
	if nil != err {
		return 0, wrap(opBalance, identity, err)
	}
	return n, nil
}

// sign and run through the queue, conflicts are retried with the
// same signed operation
func (p *Proxy) submit(ctx context.Context, name string, subject fmt.Stringer, op operation.Operation, signer operation.Signer) (operation.ID, error) {
	if op.SignedBy() != signer.Account() {
		return operation.ID{}, wrap(name, subject, fault.ErrInvalidSignature)
	}
	op.SetTime(p.clock().Unix())

	packed, err := operation.Sign(op, signer)
	if nil != err {
		return operation.ID{}, wrap(name, subject, err)
	}

	result, err := p.queue.Do(ctx, func(ctx context.Context) (interface{}, error) {
		var id operation.ID
		attempt := 0
		err := queue.Retry(ctx, p.policy, func() error {
			attempt += 1
			var err error
			id, err = p.endpoint.Submit(ctx, packed)
			err = translate(err)

			// an earlier attempt committed before its reply was lost
			if attempt > 1 && errors.Is(err, fault.ErrOperationAlreadyApplied) {
				id = packed.MakeID()
				return nil
			}
			return err
		})
		return id, err
	})
	if nil != err {
		p.log.Debugf("%s: %s: error: %s", name, subject, err)
		return operation.ID{}, wrap(name, subject, translate(err))
	}

	id := result.(operation.ID)
	p.log.Infof("%s: %s: id: %s", name, subject, id)
	return id, nil
}

func (p *Proxy) noteArgument(name string, note string) (address.Address, error) {
	if err := check(p.validate, &noteRequest{Note: note}); nil != err {
		return address.Address{}, wrap(name, note, err)
	}
	n, err := address.FromBase58(note)
	if nil != err {
		return address.Address{}, wrap(name, note, err)
	}
	return n, nil
}

func (p *Proxy) reactArguments(name string, note string, kind string) (address.Address, record.Kind, error) {
	if err := check(p.validate, &reactRequest{Note: note, Kind: kind}); nil != err {
		return address.Address{}, record.None, wrap(name, note, err)
	}
	n, err := address.FromBase58(note)
	if nil != err {
		return address.Address{}, record.None, wrap(name, note, err)
	}
	k, err := record.KindFromString(kind)
	if nil != err {
		return address.Address{}, record.None, wrap(name, note, err)
	}
	return n, k, nil
}

func (p *Proxy) reactionAddress(name string, note address.Address, reactor account.Account) (address.Address, error) {
	reaction, _, err := address.Reaction(p.program, note, reactor)
	if nil != err {
		return address.Address{}, wrap(name, note, err)
	}
	return reaction, nil
}
