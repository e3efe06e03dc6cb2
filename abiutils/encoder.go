// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the erc20 codec library.

package abiutils

// Encoder appends fixed-width spans to an output. Written bytes are never
// revisited.
type Encoder interface {
	GetPosition() int
	EncodeBytes(v []byte)
	EncodeZeroPadding(n int)
}
