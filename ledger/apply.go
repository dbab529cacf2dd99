// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/tellit/fault"
	"github.com/bitmark-inc/tellit/operation"
)

// Apply - verify and execute one packed operation
//
// returns the operation id on success, the id is also returned with
// most errors so the caller can correlate them
func (l *Ledger) Apply(packed operation.Packed) (operation.ID, error) {
	id := packed.MakeID()

	op, err := packed.Unpack()
	if nil != err {
		l.log.Debugf("id: %s  unpack error: %s", id, err)
		l.publish(id, nil, err)
		return id, err
	}

	err = l.verify(op)
	if nil == err {
		err = l.execute(id, op)
	}

	name, _ := operation.Name(op)
	if nil != err {
		l.log.Infof("%s: id: %s  signer: %s  rejected: %s", name, id, op.SignedBy(), err)
	} else {
		l.log.Infof("%s: id: %s  signer: %s  applied", name, id, op.SignedBy())
	}
	l.publish(id, op, err)
	return id, err
}

// checks common to every operation
//
// replays are only refused at commit, so an identical operation that
// would change nothing reports the state error instead
func (l *Ledger) verify(op operation.Operation) error {
	now := l.clock()
	ts := time.Unix(op.Time(), 0)
	if ts.Before(now.Add(-l.recentWindow)) || ts.After(now.Add(l.recentWindow)) {
		return fault.ErrOperationExpired
	}
	return nil
}

func (l *Ledger) execute(id operation.ID, op operation.Operation) error {
	w := newWorkingSet()

	var err error
	switch o := op.(type) {
	case *operation.Initialise:
		err = l.initialise(w, o)
	case *operation.Submit:
		err = l.submit(w, o)
	case *operation.React:
		err = l.react(w, o)
	case *operation.RemoveReaction:
		err = l.removeReaction(w, o)
	case *operation.ChangeReaction:
		err = l.changeReaction(w, o)
	case *operation.Delete:
		err = l.delete(w, o)
	case *operation.Airdrop:
		err = l.airdrop(w, o)
	default:
		err = fault.ErrUnexpectedRecordTag
	}
	if nil != err {
		return err
	}

	key := id.String()
	return l.commit(w, func() error {
		// Add fails if another commit of the same id won the race
		if err := l.recent.Add(key, struct{}{}, cache.DefaultExpiration); nil != err {
			return fault.ErrOperationAlreadyApplied
		}
		return nil
	})
}
