// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the erc20 codec library.

package abiutils

// Decoder reads fixed-width spans off an input left to right.
// A failed read never moves the position.
type Decoder interface {
	GetPosition() int                       // return current position
	GetLength() int                         // return remaining length
	DecodeBytes(buf []byte) ([]byte, error) // fill buf completely
	DecodeBytesBuf(n int) ([]byte, error)   // returned slice may alias internal storage
	SkipBytes(n int) error
}
