// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// AppendBytes - append a length prefixed byte slice
func AppendBytes(buffer []byte, data []byte) []byte {
	buffer = AppendVarint64(buffer, uint64(len(data)))
	return append(buffer, data...)
}

// AppendString - append a length prefixed string
func AppendString(buffer []byte, s string) []byte {
	buffer = AppendVarint64(buffer, uint64(len(s)))
	return append(buffer, s...)
}

// Reader - sequential decoder for packed buffers
//
// the first failure is sticky: all later reads return zero values
// and Ok reports false
type Reader struct {
	buffer []byte
	n      int
	failed bool
}

// NewReader - start decoding at the beginning of buffer
func NewReader(buffer []byte) *Reader {
	return &Reader{buffer: buffer}
}

// Ok - true if every read so far succeeded
func (r *Reader) Ok() bool {
	return !r.failed
}

// Remaining - count of bytes not yet consumed
func (r *Reader) Remaining() int {
	return len(r.buffer) - r.n
}

// Byte - read a single byte
func (r *Reader) Byte() byte {
	if r.failed || r.n >= len(r.buffer) {
		r.failed = true
		return 0
	}
	b := r.buffer[r.n]
	r.n += 1
	return b
}

// Fixed - read exactly length bytes into a fresh slice
func (r *Reader) Fixed(length int) []byte {
	if r.failed || length < 0 || r.n+length > len(r.buffer) {
		r.failed = true
		return nil
	}
	b := make([]byte, length)
	copy(b, r.buffer[r.n:r.n+length])
	r.n += length
	return b
}

// Varint64 - read a Varint64 value
func (r *Reader) Varint64() uint64 {
	if r.failed {
		return 0
	}
	value, count := FromVarint64(r.buffer[r.n:])
	if 0 == count {
		r.failed = true
		return 0
	}
	r.n += count
	return value
}

// Bytes - read a length prefixed byte slice of at most maximum bytes
func (r *Reader) Bytes(maximum int) []byte {
	length := r.Varint64()
	if r.failed || length > uint64(maximum) {
		r.failed = true
		return nil
	}
	return r.Fixed(int(length))
}

// String - read a length prefixed string of at most maximum bytes
func (r *Reader) String(maximum int) string {
	return string(r.Bytes(maximum))
}
