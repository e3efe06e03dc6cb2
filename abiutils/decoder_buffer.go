// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the erc20 codec library.

package abiutils

type BufferDecoder struct {
	buffer   []byte
	position int
}

var _ Decoder = (*BufferDecoder)(nil)

func NewBufferDecoder(buffer []byte) *BufferDecoder {
	return &BufferDecoder{
		buffer:   buffer,
		position: 0,
	}
}

func (e *BufferDecoder) GetPosition() int {
	return e.position
}

func (e *BufferDecoder) GetLength() int {
	return len(e.buffer) - e.position
}

func (e *BufferDecoder) check(n int) error {
	if n < 0 || e.GetLength() < n {
		return newShortDataError(e.position, n, e.GetLength())
	}
	return nil
}

func (e *BufferDecoder) DecodeBytes(buf []byte) ([]byte, error) {
	bufLen := len(buf)
	if err := e.check(bufLen); err != nil {
		return nil, err
	}
	copy(buf, e.buffer[e.position:e.position+bufLen])
	e.position += bufLen
	return buf, nil
}

func (e *BufferDecoder) DecodeBytesBuf(n int) ([]byte, error) {
	if err := e.check(n); err != nil {
		return nil, err
	}
	buf := e.buffer[e.position : e.position+n : e.position+n]
	e.position += n
	return buf, nil
}

func (e *BufferDecoder) SkipBytes(n int) error {
	if err := e.check(n); err != nil {
		return err
	}
	e.position += n
	return nil
}
