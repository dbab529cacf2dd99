// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proxy

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/bitmark-inc/tellit/fault"
	"github.com/bitmark-inc/tellit/record"
)

// field checks mirror the ledger, the ledger stays authoritative
type submitRequest struct {
	Author   string `validate:"required"`
	Receiver string `validate:"required,nefield=Author"`
	Title    string `validate:"bytemax=50"`
	Body     string `validate:"bytemax=300"`
}

type reactRequest struct {
	Note string `validate:"required"`
	Kind string `validate:"required,reaction"`
}

type noteRequest struct {
	Note string `validate:"required"`
}

// failed field and tag to error
var validationErrors = map[string]error{
	"Receiver.nefield": fault.ErrCannotSendToSelf,
	"Title.bytemax":    fault.ErrTitleTooLong,
	"Body.bytemax":     fault.ErrBodyTooLong,
	"Kind.reaction":    fault.ErrInvalidReactionKind,
}

func newValidator() *validator.Validate {
	v := validator.New()

	// string length in bytes, not runes: the ledger counts bytes
	_ = v.RegisterValidation("bytemax", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if nil != err {
			return false
		}
		return len(fl.Field().String()) <= limit
	})

	// an active reaction kind
	_ = v.RegisterValidation("reaction", func(fl validator.FieldLevel) bool {
		k, err := record.KindFromString(fl.Field().String())
		return nil == err && k.Active()
	})
	return v
}

// run validation and map the first failure onto the fault taxonomy
func check(v *validator.Validate, request interface{}) error {
	err := v.Struct(request)
	if nil == err {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || 0 == len(errs) {
		return fault.ErrMissingParameters
	}
	first := errs[0]
	if e, ok := validationErrors[first.Field()+"."+first.Tag()]; ok {
		return e
	}
	return fault.ErrMissingParameters
}
