// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proxy_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/tellit/address"
	"github.com/bitmark-inc/tellit/chain"
	"github.com/bitmark-inc/tellit/fault"
	"github.com/bitmark-inc/tellit/fixtures"
	"github.com/bitmark-inc/tellit/operation"
	"github.com/bitmark-inc/tellit/proxy"
	"github.com/bitmark-inc/tellit/proxy/mocks"
	"github.com/bitmark-inc/tellit/queue"
	"github.com/bitmark-inc/tellit/record"
)

var program = address.Address(chain.ProgramID(chain.Local))

var testPolicy = queue.RetryPolicy{
	MaxAttempts:     3,
	InitialInterval: time.Millisecond,
	MaxInterval:     2 * time.Millisecond,
}

func setupProxy(t *testing.T) (*proxy.Proxy, *mocks.MockEndpoint, *gomock.Controller, func()) {
	fixtures.SetupTestLogger()

	ctl := gomock.NewController(t)
	endpoint := mocks.NewMockEndpoint(ctl)

	q := queue.New(logger.New("queue"), time.Millisecond)
	q.Start()

	p := proxy.New(logger.New("proxy"), program, endpoint, q, testPolicy)

	return p, endpoint, ctl, func() {
		q.Stop()
		ctl.Finish()
		fixtures.TeardownTestLogger()
	}
}

func TestSubmitValidationNeverSubmits(t *testing.T) {
	p, _, _, teardown := setupProxy(t)
	defer teardown()

	author := fixtures.MustKeyPair()
	receiver := fixtures.MustKeyPair().Account().String()

	// the mock has no expectations, any submission fails the test
	items := []struct {
		receiver string
		title    string
		body     string
		expected error
	}{
		{author.Account().String(), "t", "b", fault.ErrCannotSendToSelf},
		{receiver, strings.Repeat("x", 51), "b", fault.ErrTitleTooLong},
		{receiver, "t", strings.Repeat("x", 301), fault.ErrBodyTooLong},
		{"", "t", "b", fault.ErrMissingParameters},
		{"not-an-account", "t", "b", fault.ErrCannotDecodeAccount},
	}

	for i, item := range items {
		_, err := p.Submit(context.Background(), author, item.receiver, item.title, item.body)
		assert.True(t, errors.Is(err, item.expected), "%d: actual: %v  expected: %v", i, err, item.expected)
		assert.True(t, strings.HasPrefix(err.Error(), "submit: "), "%d: no context: %s", i, err)
	}
}

func TestSubmitNamesDerivedAddresses(t *testing.T) {
	p, endpoint, _, teardown := setupProxy(t)
	defer teardown()

	author := fixtures.MustKeyPair()
	receiver := fixtures.MustKeyPair().Account()

	expected, err := p.Addresses(author.Account().String(), receiver.String(), "Hello", "World")
	require.NoError(t, err, "addresses")

	// deriving twice gives the same bytes
	again, err := p.Addresses(author.Account().String(), receiver.String(), "Hello", "World")
	require.NoError(t, err, "addresses again")
	assert.Equal(t, expected, again, "derivation not deterministic")

	id := operation.ID{1, 2, 3}
	endpoint.EXPECT().
		Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, packed operation.Packed) (operation.ID, error) {
			op, err := packed.Unpack()
			require.NoError(t, err, "unpack")
			s, ok := op.(*operation.Submit)
			require.True(t, ok, "not a submit")
			assert.Equal(t, author.Account(), s.Author, "author")
			assert.Equal(t, receiver, s.Receiver, "receiver")
			assert.Equal(t, expected.Note, s.Note, "note address")
			assert.Equal(t, expected.Config, s.Config, "config address")
			return id, nil
		}).
		Times(1)

	receipt, err := p.Submit(context.Background(), author, receiver.String(), "Hello", "World")
	require.NoError(t, err, "submit")
	assert.Equal(t, id, receipt.ID, "id")
	assert.Equal(t, expected.Note, receipt.Address, "receipt address")
}

func TestRemoteErrorsAreTranslated(t *testing.T) {
	p, endpoint, _, teardown := setupProxy(t)
	defer teardown()

	author := fixtures.MustKeyPair()
	receiver := fixtures.MustKeyPair().Account()

	endpoint.EXPECT().
		Submit(gomock.Any(), gomock.Any()).
		Return(operation.ID{}, errors.New(fault.ErrNoteAlreadyExists.Error())).
		Times(1)

	_, err := p.Submit(context.Background(), author, receiver.String(), "Hello", "World")
	assert.True(t, errors.Is(err, fault.ErrNoteAlreadyExists), "not translated: %v", err)
	assert.True(t, fault.IsErrExists(err), "class lost")

	a, err2 := p.Addresses(author.Account().String(), receiver.String(), "Hello", "World")
	require.NoError(t, err2, "addresses")
	assert.Contains(t, err.Error(), a.Note.String(), "address missing from error")
}

func TestConflictIsRetried(t *testing.T) {
	p, endpoint, _, teardown := setupProxy(t)
	defer teardown()

	author := fixtures.MustKeyPair()

	gomock.InOrder(
		endpoint.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(operation.ID{}, fault.ErrAccountInUse),
		endpoint.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(operation.ID{9}, nil),
	)

	receipt, err := p.Airdrop(context.Background(), author, 50)
	require.NoError(t, err, "airdrop")
	assert.Equal(t, operation.ID{9}, receipt.ID, "id")
}

func TestRetryAfterLostReply(t *testing.T) {
	p, endpoint, _, teardown := setupProxy(t)
	defer teardown()

	author := fixtures.MustKeyPair()

	var sent []operation.Packed
	capture := func(ctx context.Context, packed operation.Packed) {
		sent = append(sent, packed)
	}

	// the first attempt committed but reported a transient error
	gomock.InOrder(
		endpoint.EXPECT().Submit(gomock.Any(), gomock.Any()).Do(capture).Return(operation.ID{}, fault.ErrAccountInUse),
		endpoint.EXPECT().Submit(gomock.Any(), gomock.Any()).Do(capture).Return(operation.ID{}, fault.ErrOperationAlreadyApplied),
	)

	receipt, err := p.Airdrop(context.Background(), author, 50)
	require.NoError(t, err, "airdrop")
	require.Len(t, sent, 2, "attempts")
	assert.Equal(t, sent[0], sent[1], "retry changed the bytes")
	assert.Equal(t, sent[0].MakeID(), receipt.ID, "id")
}

func TestFirstAttemptAlreadyAppliedFails(t *testing.T) {
	p, endpoint, _, teardown := setupProxy(t)
	defer teardown()

	author := fixtures.MustKeyPair()

	endpoint.EXPECT().
		Submit(gomock.Any(), gomock.Any()).
		Return(operation.ID{}, fault.ErrOperationAlreadyApplied).
		Times(1)

	_, err := p.Airdrop(context.Background(), author, 50)
	assert.True(t, errors.Is(err, fault.ErrOperationAlreadyApplied), "error: %v", err)
}

func TestPermanentErrorNotRetried(t *testing.T) {
	p, endpoint, _, teardown := setupProxy(t)
	defer teardown()

	caller := fixtures.MustKeyPair()
	note := address.Address{7}

	endpoint.EXPECT().
		Submit(gomock.Any(), gomock.Any()).
		Return(operation.ID{}, fault.ErrNotAuthorised).
		Times(1)

	_, err := p.Delete(context.Background(), caller, note.String())
	assert.True(t, errors.Is(err, fault.ErrNotAuthorised), "error: %v", err)
	assert.True(t, strings.HasPrefix(err.Error(), "delete: "+note.String()), "context: %s", err)
}

func TestInitialiseAlreadyInitialised(t *testing.T) {
	p, endpoint, _, teardown := setupProxy(t)
	defer teardown()

	endpoint.EXPECT().
		Submit(gomock.Any(), gomock.Any()).
		Return(operation.ID{}, fault.ErrAlreadyInitialised).
		Times(1)

	receipt, err := p.Initialise(context.Background(), fixtures.MustKeyPair())
	assert.NoError(t, err, "initialise")

	configAddress, _, err := address.Config(program)
	require.NoError(t, err, "config address")
	assert.Equal(t, configAddress, receipt.Address, "config address")
}

func TestReactValidation(t *testing.T) {
	p, _, _, teardown := setupProxy(t)
	defer teardown()

	reactor := fixtures.MustKeyPair()
	note := address.Address{1}.String()

	_, err := p.React(context.Background(), reactor, note, "meh")
	assert.True(t, errors.Is(err, fault.ErrInvalidReactionKind), "bad kind: %v", err)

	_, err = p.React(context.Background(), reactor, note, "none")
	assert.True(t, errors.Is(err, fault.ErrInvalidReactionKind), "none kind: %v", err)

	_, err = p.ChangeReaction(context.Background(), reactor, "", "like")
	assert.True(t, errors.Is(err, fault.ErrMissingParameters), "missing note: %v", err)
}

func TestReactSendsReactionAddress(t *testing.T) {
	p, endpoint, _, teardown := setupProxy(t)
	defer teardown()

	reactor := fixtures.MustKeyPair()
	note := address.Address{1, 2, 3}
	expected, _, err := address.Reaction(program, note, reactor.Account())
	require.NoError(t, err, "reaction address")

	endpoint.EXPECT().
		Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, packed operation.Packed) (operation.ID, error) {
			op, err := packed.Unpack()
			require.NoError(t, err, "unpack")
			r := op.(*operation.React)
			assert.Equal(t, expected, r.Reaction, "reaction address")
			assert.Equal(t, record.Dislike, r.Kind, "kind")
			return operation.ID{}, nil
		})

	receipt, err := p.React(context.Background(), reactor, note.String(), "down")
	require.NoError(t, err, "react")
	assert.Equal(t, expected, receipt.Address, "receipt address")
}

func TestInboxRetriesThrottling(t *testing.T) {
	p, endpoint, _, teardown := setupProxy(t)
	defer teardown()

	receiver := fixtures.MustKeyPair().Account()
	author := fixtures.MustKeyPair().Account()

	older := &record.Note{Author: author, Receiver: receiver, Title: "older", CreatedAt: 100, UpdatedAt: 100}
	newer := &record.Note{Author: author, Receiver: receiver, Title: "newer", CreatedAt: 200, UpdatedAt: 200}

	gomock.InOrder(
		endpoint.EXPECT().Inbox(gomock.Any(), receiver).Return(nil, fault.ErrRateLimiting),
		endpoint.EXPECT().Inbox(gomock.Any(), receiver).Return([]record.Entry{
			{Address: address.Address{1}, Packed: older.Pack()},
			{Address: address.Address{2}, Packed: newer.Pack()},
		}, nil),
	)

	views, err := p.Inbox(context.Background(), receiver.String())
	require.NoError(t, err, "inbox")
	require.Len(t, views, 2, "views")
	assert.Equal(t, "newer", views[0].Title, "newest first")
	assert.Equal(t, author.String(), views[0].Author, "author text")
}

func TestInboxGivesUp(t *testing.T) {
	p, endpoint, _, teardown := setupProxy(t)
	defer teardown()

	receiver := fixtures.MustKeyPair().Account()
	endpoint.EXPECT().
		Inbox(gomock.Any(), receiver).
		Return(nil, fault.ErrRateLimiting).
		Times(testPolicy.MaxAttempts)

	_, err := p.Inbox(context.Background(), receiver.String())
	assert.True(t, errors.Is(err, fault.ErrRateLimiting), "error: %v", err)
}

func TestBalance(t *testing.T) {
	p, endpoint, _, teardown := setupProxy(t)
	defer teardown()

	a := fixtures.MustKeyPair().Account()
	endpoint.EXPECT().Balance(gomock.Any(), a).Return(uint64(1234), nil)

	n, err := p.Balance(context.Background(), a.String())
	require.NoError(t, err, "balance")
	assert.Equal(t, uint64(1234), n, "amount")

	_, err = p.Balance(context.Background(), "x")
	assert.Error(t, err, "bad identity")
}
