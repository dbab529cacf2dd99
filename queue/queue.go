// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package queue

import (
	"context"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/tellit/background"
	"github.com/bitmark-inc/tellit/fault"
)

// DefaultSpacing - minimum time between two dispatches
const DefaultSpacing = time.Second

// Job - one submission, ctx is the caller's context
type Job func(ctx context.Context) (interface{}, error)

type result struct {
	value interface{}
	err   error
}

type request struct {
	id     uuid.UUID
	ctx    context.Context
	job    Job
	result chan result
}

// deliver never blocks: the channel has room for exactly one result
func (r *request) deliver(value interface{}, err error) {
	r.result <- result{value: value, err: err}
}

// Queue - FIFO of pending jobs with a single worker
type Queue struct {
	sync.Mutex

	log     *logger.L
	limiter *rate.Limiter
	signal  chan struct{}

	pending    []*request
	processing bool
	stopped    bool

	background *background.T
}

// New - create a queue, Start must be called before jobs run
func New(log *logger.L, spacing time.Duration) *Queue {
	if spacing <= 0 {
		spacing = DefaultSpacing
	}
	return &Queue{
		log:     log,
		limiter: rate.NewLimiter(rate.Every(spacing), 1),
		signal:  make(chan struct{}, 1),
	}
}

// Start - run the worker
func (q *Queue) Start() {
	q.Lock()
	defer q.Unlock()
	if nil != q.background {
		return
	}
	q.stopped = false
	q.background = background.Start(background.Processes{q}, nil)
}

// Stop - end the worker, pending jobs fail with fault.ErrQueueStopped
func (q *Queue) Stop() {
	q.Lock()
	b := q.background
	q.background = nil
	q.Unlock()

	b.Stop()
}

// Do - queue job and wait for its result
//
// a context that ends before dispatch removes the job, one that ends
// while it runs only stops this wait
func (q *Queue) Do(ctx context.Context, job Job) (interface{}, error) {
	r := &request{
		id:     uuid.New(),
		ctx:    ctx,
		job:    job,
		result: make(chan result, 1),
	}

	q.Lock()
	if q.stopped || nil == q.background {
		q.Unlock()
		return nil, fault.ErrQueueStopped
	}
	q.pending = append(q.pending, r)
	n := len(q.pending)
	q.Unlock()

	q.log.Debugf("queued job: %s  pending: %d", r.id, n)
	q.notify()

	select {
	case res := <-r.result:
		return res.value, res.err
	case <-ctx.Done():
		q.log.Debugf("job: %s  caller gave up: %s", r.id, ctx.Err())
		return nil, ctx.Err()
	}
}

// Reset - fail every pending job with fault.ErrQueueReset and clear
// the processing flag
func (q *Queue) Reset() int {
	q.Lock()
	pending := q.pending
	q.pending = nil
	q.processing = false
	q.Unlock()

	for _, r := range pending {
		r.deliver(nil, fault.ErrQueueReset)
	}
	q.log.Warnf("reset: discarded %d pending jobs", len(pending))
	return len(pending)
}

// Pending - number of jobs waiting
func (q *Queue) Pending() int {
	q.Lock()
	defer q.Unlock()
	return len(q.pending)
}

// Processing - true while a job is running
func (q *Queue) Processing() bool {
	q.Lock()
	defer q.Unlock()
	return q.processing
}

func (q *Queue) notify() {
	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// next pending job or nil
func (q *Queue) pop() *request {
	q.Lock()
	defer q.Unlock()
	if 0 == len(q.pending) {
		return nil
	}
	r := q.pending[0]
	q.pending[0] = nil
	q.pending = q.pending[1:]
	return r
}

// Run - the worker loop
func (q *Queue) Run(args interface{}, shutdown <-chan struct{}) {
	log := q.log

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-shutdown
		cancel()
	}()

	log.Info("starting…")

loop:
	for {
		r := q.pop()
		if nil == r {
			select {
			case <-shutdown:
				break loop
			case <-q.signal:
			}
			continue loop
		}

		if err := r.ctx.Err(); nil != err {
			log.Debugf("job: %s  dropped before dispatch: %s", r.id, err)
			r.deliver(nil, err)
			continue loop
		}

		if err := q.limiter.Wait(ctx); nil != err {
			r.deliver(nil, fault.ErrQueueStopped)
			break loop
		}

		q.Lock()
		q.processing = true
		q.Unlock()

		log.Debugf("dispatch job: %s", r.id)
		value, err := r.job(r.ctx)
		if nil != err {
			log.Debugf("job: %s  error: %s", r.id, err)
		}

		q.Lock()
		q.processing = false
		q.Unlock()

		r.deliver(value, err)
	}

	q.Lock()
	q.stopped = true
	pending := q.pending
	q.pending = nil
	q.Unlock()

	for _, r := range pending {
		r.deliver(nil, fault.ErrQueueStopped)
	}
	cancel()
	log.Info("stopped")
}
