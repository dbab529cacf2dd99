// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/tellit/fault"
)

// longest a caller is held before being refused
const maximumDelay = 2 * time.Second

// Limit - limiting for a single request
func Limit(limiter *rate.Limiter) error {
	return reserve(limiter, 1)
}

// LimitN - limiting for a multiple request
func LimitN(limiter *rate.Limiter, count int, maximumCount int) error {
	// invalid count gets limited as a single request
	if count <= 0 || count > maximumCount {
		if err := reserve(limiter, 1); nil != err {
			return err
		}
		return fault.ErrInvalidCount
	}
	return reserve(limiter, count)
}

func reserve(limiter *rate.Limiter, n int) error {
	r := limiter.ReserveN(time.Now(), n)
	if !r.OK() {
		return fault.ErrRateLimiting
	}
	delay := r.Delay()
	if delay > maximumDelay {
		r.Cancel()
		return fault.ErrRateLimiting
	}
	time.Sleep(delay)
	return nil
}
