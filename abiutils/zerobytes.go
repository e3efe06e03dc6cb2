// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the erc20 codec library.

package abiutils

import "io"

// zeroBytes must never be written to.
var zeroBytes = make([]byte, 1024)

func ZeroBytes() []byte {
	return zeroBytes
}

// AppendZeroPadding appends the specified number of zero bytes to buf
func AppendZeroPadding(buf []byte, count int) []byte {
	for count > 0 {
		toCopy := count
		if toCopy > len(zeroBytes) {
			toCopy = len(zeroBytes)
		}
		buf = append(buf, zeroBytes[:toCopy]...)
		count -= toCopy
	}
	return buf
}

// AppendZeroPaddingWriter writes the specified number of zero bytes to writer
func AppendZeroPaddingWriter(writer io.Writer, count int) error {
	for count > 0 {
		toCopy := count
		if toCopy > len(zeroBytes) {
			toCopy = len(zeroBytes)
		}
		_, err := writer.Write(zeroBytes[:toCopy])
		if err != nil {
			return err
		}
		count -= toCopy
	}
	return nil
}
