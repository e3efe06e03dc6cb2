// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the erc20 codec library.

package abiutils

import (
	"fmt"
	"io"
)

// StreamEncoder writes through to an io.Writer. The first write failure is
// latched and later writes are dropped.
type StreamEncoder struct {
	writer   io.Writer
	position int
	writeErr error
}

var _ Encoder = (*StreamEncoder)(nil)

func NewStreamEncoder(writer io.Writer) *StreamEncoder {
	return &StreamEncoder{
		writer: writer,
	}
}

func (e *StreamEncoder) GetPosition() int {
	return e.position
}

func (e *StreamEncoder) write(buf []byte) {
	if e.writeErr != nil {
		return
	}
	written, err := e.writer.Write(buf)
	e.position += written
	if err != nil {
		e.writeErr = err
		return
	}
	if written != len(buf) {
		e.writeErr = fmt.Errorf("expected to write %d bytes, wrote %d", len(buf), written)
	}
}

func (e *StreamEncoder) EncodeBytes(v []byte) {
	e.write(v)
}

func (e *StreamEncoder) EncodeZeroPadding(n int) {
	// failures are latched by Write
	_ = AppendZeroPaddingWriter(e, n)
}

// Write implements io.Writer so padding helpers can target the encoder.
func (e *StreamEncoder) Write(p []byte) (int, error) {
	e.write(p)
	if e.writeErr != nil {
		return 0, e.writeErr
	}
	return len(p), nil
}

func (e *StreamEncoder) GetWriteError() error {
	return e.writeErr
}
