// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the erc20 codec library.

package abiutils

const (
	// WordSize is the width of a single EVM ABI word.
	WordSize = 32

	AddressLength = 20
	HashLength    = 32
	Uint256Length = 32

	// AddressPadding is the number of zero bytes in front of an address
	// inside a word: (256 - 160) / 8.
	AddressPadding = WordSize - AddressLength
)
