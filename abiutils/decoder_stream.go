// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the erc20 codec library.

package abiutils

import (
	"errors"
	"io"
)

const (
	// maxDecoderBufferSize is the default read-ahead size for streaming decode
	maxDecoderBufferSize = 2 * 1024 // 2KB
)

// StreamDecoder decodes from an io.Reader whose total length is known up front.
//
// Reads are served from an internal read-ahead buffer. A read first makes sure
// the full span is buffered, so a stream that ends early leaves the position
// where it was and the already fetched bytes stay available.
type StreamDecoder struct {
	reader    io.Reader
	streamLen int
	position  int

	// Internal buffer for reading from stream
	buffer    []byte
	bufferPos int // Current read position within buffer
	bufferLen int // Amount of valid data in buffer
}

var _ Decoder = (*StreamDecoder)(nil)

func NewStreamDecoder(reader io.Reader, totalLen int) *StreamDecoder {
	// Use smaller buffer for small streams
	bufferSize := maxDecoderBufferSize
	if totalLen < bufferSize {
		bufferSize = totalLen
	}
	if bufferSize < WordSize {
		bufferSize = WordSize // Minimum size to hold a word
	}

	return &StreamDecoder{
		reader:    reader,
		streamLen: totalLen,
		position:  0,
		buffer:    make([]byte, bufferSize),
		bufferPos: 0,
		bufferLen: 0,
	}
}

func (e *StreamDecoder) GetPosition() int {
	return e.position
}

func (e *StreamDecoder) GetLength() int {
	return e.streamLen - e.position
}

// ensureBuffered ensures at least n bytes are available in the buffer.
// Returns error if not enough data can be read from the stream.
func (e *StreamDecoder) ensureBuffered(n int) error {
	if n < 0 || e.GetLength() < n {
		return newShortDataError(e.position, n, e.GetLength())
	}

	available := e.bufferLen - e.bufferPos
	if available >= n {
		return nil
	}

	// If buffer is too small, grow it
	if len(e.buffer) < n {
		newSize := len(e.buffer) * 2
		if newSize < n {
			newSize = n
		}
		newBuf := make([]byte, newSize)
		// Copy remaining data to start of new buffer
		copy(newBuf, e.buffer[e.bufferPos:e.bufferLen])
		e.buffer = newBuf
		e.bufferLen = available
		e.bufferPos = 0
	} else if e.bufferPos > 0 {
		// Shift remaining data to start of buffer
		copy(e.buffer, e.buffer[e.bufferPos:e.bufferLen])
		e.bufferLen = available
		e.bufferPos = 0
	}

	// Read as much as fits, but never past the declared stream length
	toRead := len(e.buffer) - e.bufferLen
	if remaining := e.streamLen - e.position - available; toRead > remaining {
		toRead = remaining
	}

	readBuf := e.buffer[e.bufferLen : e.bufferLen+toRead]
	totalRead := 0
	for e.bufferLen-e.bufferPos < n {
		nr, err := e.reader.Read(readBuf[totalRead:])
		totalRead += nr
		e.bufferLen += nr

		if err != nil {
			if e.bufferLen-e.bufferPos >= n {
				return nil
			}
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return newShortDataError(e.position, n, e.bufferLen-e.bufferPos)
			}
			return err
		}

		// If reader returned 0 bytes without error, it's an unusual case
		if nr == 0 {
			return newShortDataError(e.position, n, e.bufferLen-e.bufferPos)
		}
	}

	return nil
}

// readBytesRef returns a slice reference to n bytes in the buffer.
// The returned slice is only valid until the next read operation.
func (e *StreamDecoder) readBytesRef(n int) ([]byte, error) {
	if err := e.ensureBuffered(n); err != nil {
		return nil, err
	}
	buf := e.buffer[e.bufferPos : e.bufferPos+n : e.bufferPos+n]
	e.bufferPos += n
	e.position += n
	return buf, nil
}

func (e *StreamDecoder) DecodeBytes(buf []byte) ([]byte, error) {
	ref, err := e.readBytesRef(len(buf))
	if err != nil {
		return nil, err
	}
	copy(buf, ref)
	return buf, nil
}

func (e *StreamDecoder) DecodeBytesBuf(n int) ([]byte, error) {
	return e.readBytesRef(n)
}

func (e *StreamDecoder) SkipBytes(n int) error {
	_, err := e.readBytesRef(n)
	return err
}
