// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/tellit/account"
	"github.com/bitmark-inc/tellit/address"
	"github.com/bitmark-inc/tellit/fault"
	"github.com/bitmark-inc/tellit/util"
)

// Config - the ledger configuration singleton
type Config struct {
	Authority     account.Account       `json:"authority"`
	Disambiguator address.Disambiguator `json:"disambiguator"`
	RecordCount   uint64                `json:"recordCount"`
}

// Pack - tag ++ authority ++ disambiguator ++ Varint64(count)
func (c *Config) Pack() Packed {
	buffer := make([]byte, 0, 2+account.PublicKeySize+util.Varint64MaximumBytes)
	buffer = append(buffer, byte(ConfigTag))
	buffer = append(buffer, c.Authority[:]...)
	buffer = append(buffer, byte(c.Disambiguator))
	buffer = util.AppendVarint64(buffer, c.RecordCount)
	return buffer
}

func unpackConfig(record Packed) (*Config, error) {
	r := util.NewReader(record)
	r.Byte()

	c := &Config{}
	copy(c.Authority[:], r.Fixed(account.PublicKeySize))
	c.Disambiguator = address.Disambiguator(r.Byte())
	c.RecordCount = r.Varint64()

	if !r.Ok() || 0 != r.Remaining() {
		return nil, fault.ErrRecordTooShort
	}
	return c, nil
}
