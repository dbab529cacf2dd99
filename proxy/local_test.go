// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proxy_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/tellit/chain"
	"github.com/bitmark-inc/tellit/fault"
	"github.com/bitmark-inc/tellit/fixtures"
	"github.com/bitmark-inc/tellit/ledger"
	"github.com/bitmark-inc/tellit/proxy"
	"github.com/bitmark-inc/tellit/queue"
)

// end to end through the queue into an in-process ledger
func TestLocalLifecycle(t *testing.T) {
	require.NoError(t, fixtures.SetupTestStorage(), "storage")
	defer fixtures.TeardownTestStorage()

	l, err := ledger.New(logger.New("ledger"), &ledger.Configuration{}, chain.Local)
	require.NoError(t, err, "ledger")
	l.SetEvents(nil)

	q := queue.New(logger.New("queue"), time.Millisecond)
	q.Start()
	defer q.Stop()

	p := proxy.New(logger.New("proxy"), l.Program(), proxy.NewLocal(l), q, testPolicy)
	ctx := context.Background()

	// repeated calls sign identical bytes
	now := time.Now()
	p.SetClock(func() time.Time { return now })

	deployer := fixtures.MustKeyPair()
	a := fixtures.MustKeyPair()
	b := fixtures.MustKeyPair()
	stranger := fixtures.MustKeyPair()

	_, err = p.Initialise(ctx, deployer)
	require.NoError(t, err, "initialise")
	_, err = p.Initialise(ctx, deployer)
	require.NoError(t, err, "initialise again")

	c, err := l.Config()
	require.NoError(t, err, "config")
	assert.Equal(t, uint64(0), c.RecordCount, "count before submit")

	receipt, err := p.Submit(ctx, a, b.Account().String(), "Hello", "World")
	require.NoError(t, err, "submit")
	note := receipt.Address.String()

	_, err = p.Submit(ctx, a, b.Account().String(), "Hello", "World")
	assert.True(t, errors.Is(err, fault.ErrNoteAlreadyExists), "duplicate: %v", err)

	c, err = l.Config()
	require.NoError(t, err, "config")
	assert.Equal(t, uint64(1), c.RecordCount, "count after submit")

	views, err := p.Inbox(ctx, b.Account().String())
	require.NoError(t, err, "inbox")
	require.Len(t, views, 1, "inbox size")
	assert.Equal(t, "Hello", views[0].Title, "title")

	_, err = p.React(ctx, b, note, "like")
	require.NoError(t, err, "like")
	views, err = p.Inbox(ctx, b.Account().String())
	require.NoError(t, err, "inbox")
	assert.Equal(t, uint64(1), views[0].Likes, "likes")

	_, err = p.ChangeReaction(ctx, b, note, "dislike")
	require.NoError(t, err, "change")
	_, err = p.RemoveReaction(ctx, b, note)
	require.NoError(t, err, "remove")
	_, err = p.RemoveReaction(ctx, b, note)
	assert.True(t, errors.Is(err, fault.ErrReactionNotFound), "remove twice: %v", err)

	_, err = p.Delete(ctx, stranger, note)
	assert.True(t, errors.Is(err, fault.ErrNotAuthorised), "stranger: %v", err)

	_, err = p.Delete(ctx, a, note)
	require.NoError(t, err, "delete")

	views, err = p.Inbox(ctx, b.Account().String())
	require.NoError(t, err, "inbox")
	assert.Len(t, views, 0, "inbox after delete")

	c, err = l.Config()
	require.NoError(t, err, "config")
	assert.Equal(t, uint64(0), c.RecordCount, "count after delete")

	_, err = p.Airdrop(ctx, a, 500)
	require.NoError(t, err, "airdrop")
	n, err := p.Balance(ctx, a.Account().String())
	require.NoError(t, err, "balance")
	assert.Equal(t, uint64(500), n, "balance")
}
