// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proxy

import (
	"context"
	"errors"
	"fmt"

	"github.com/bitmark-inc/tellit/fault"
)

// wrap an error with the operation and the address or identity it
// concerns
func wrap(name string, subject interface{}, err error) error {
	return fmt.Errorf("%s: %s: %w", name, subject, err)
}

// translate - map any endpoint error onto the fault taxonomy
//
// errors already classified pass through, anything else is looked up
// by its message as errors from a remote node arrive as plain text
func translate(err error) error {
	if nil == err {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if fault.IsErrAuthorisation(err) ||
		fault.IsErrExists(err) ||
		fault.IsErrInitialised(err) ||
		fault.IsErrInvalid(err) ||
		fault.IsErrNotFound(err) ||
		fault.IsErrProcess(err) ||
		fault.IsErrTransient(err) {
		return err
	}
	return fault.Lookup(err.Error())
}
