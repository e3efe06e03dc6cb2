// Package erc20 encodes and decodes the fixed-width values of EVM ABI payloads:
// addresses, hashes and 256-bit unsigned integers laid out as 32-byte words.
//
// Values narrower than a word are left-padded with zero bytes, so an address
// occupies the last 20 bytes of its word. Integers are big-endian. Fields have
// no tags or length prefixes; their boundaries follow from the fixed sizes the
// reader and writer agree on.
//
// A Decoder pulls values off an input in order:
//
//	dec := erc20.NewDecoder(returnData)
//	owner, err := dec.NextAddress()
//	amount, err := dec.NextUint256()
//
// An Encoder builds a payload the same way:
//
//	data := erc20.NewEncoder().
//	    PushAddress(to).
//	    PushUint256(amount).
//	    Bytes()
//
// Copyright (c) 2025 pk910. See LICENSE file for details.
package erc20

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/nazgull08/erc20/abiutils"
)

type (
	Address = common.Address
	Hash    = common.Hash
)

const (
	WordSize       = abiutils.WordSize
	AddressLength  = abiutils.AddressLength
	AddressPadding = abiutils.AddressPadding
	HashLength     = abiutils.HashLength
	Uint256Length  = abiutils.Uint256Length
)

// Word is a single 32-byte ABI slot.
type Word [WordSize]byte

// Uint256 returns the word as a big-endian integer.
func (w Word) Uint256() *uint256.Int {
	return new(uint256.Int).SetBytes32(w[:])
}
