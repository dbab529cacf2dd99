// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package queue

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/bitmark-inc/tellit/fault"
)

// RetryPolicy - bounds of the exponential backoff
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy - five attempts starting half a second apart
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts:     5,
	InitialInterval: 500 * time.Millisecond,
	MaxInterval:     8 * time.Second,
}

// Retry - run op until it succeeds, fails with a non-transient error
// or the attempts run out
//
// only fault.TransientError values are retried, the last error is
// returned when attempts are exhausted
func Retry(ctx context.Context, policy RetryPolicy, op func() error) error {
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	exponential := backoff.NewExponentialBackOff()
	if policy.InitialInterval > 0 {
		exponential.InitialInterval = policy.InitialInterval
	}
	if policy.MaxInterval > 0 {
		exponential.MaxInterval = policy.MaxInterval
	}
	exponential.MaxElapsedTime = 0 // attempts bound the retries

	b := backoff.WithContext(backoff.WithMaxRetries(exponential, uint64(attempts-1)), ctx)

	return backoff.Retry(func() error {
		err := op()
		if nil == err || fault.IsErrTransient(err) {
			return err
		}
		return backoff.Permanent(err)
	}, b)
}
