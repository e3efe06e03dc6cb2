// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the erc20 codec library.

package abiutils

type BufferEncoder struct {
	buffer []byte
}

var _ Encoder = (*BufferEncoder)(nil)

// NewBufferEncoder creates a new BufferEncoder appending to the provided buffer.
// Existing content of buffer is kept as prefix of the output.
func NewBufferEncoder(buffer []byte) *BufferEncoder {
	return &BufferEncoder{
		buffer: buffer,
	}
}

func (e *BufferEncoder) GetPosition() int {
	return len(e.buffer)
}

func (e *BufferEncoder) Bytes() []byte {
	return e.buffer
}

func (e *BufferEncoder) EncodeBytes(v []byte) {
	e.buffer = append(e.buffer, v...)
}

func (e *BufferEncoder) EncodeZeroPadding(n int) {
	e.buffer = AppendZeroPadding(e.buffer, n)
}
