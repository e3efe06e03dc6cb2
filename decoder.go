// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the erc20 codec library.

package erc20

import (
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/nazgull08/erc20/abiutils"
)

// Decoder reads fixed-width values from an input, left to right.
//
// Every read either consumes exactly the bytes it needs or fails with an
// error matching ErrUnexpectedEndOfData and leaves the cursor untouched.
// Unread trailing bytes are not an error; check Remaining if that matters.
type Decoder struct {
	dec  abiutils.Decoder
	opts Options
}

// NewDecoder creates a decoder over data. The decoder takes ownership of data
// and the caller must not modify it afterwards.
func NewDecoder(data []byte, opts ...Option) *Decoder {
	return &Decoder{
		dec:  abiutils.NewBufferDecoder(data),
		opts: applyOptions(opts),
	}
}

// NewStreamDecoder creates a decoder reading length bytes from r.
func NewStreamDecoder(r io.Reader, length int, opts ...Option) *Decoder {
	return &Decoder{
		dec:  abiutils.NewStreamDecoder(r, length),
		opts: applyOptions(opts),
	}
}

// Position returns the cursor, the number of bytes consumed so far.
func (d *Decoder) Position() int {
	return d.dec.GetPosition()
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return d.dec.GetLength()
}

// NextBytes returns a copy of the next size bytes.
func (d *Decoder) NextBytes(size int) ([]byte, error) {
	if d.opts.Verbose {
		d.opts.logf("next_bytes offset=%d size=%d", d.Position(), size)
	}
	ref, err := d.dec.DecodeBytesBuf(size)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(ref))
	copy(out, ref)
	return out, nil
}

// Skip advances the cursor by size bytes.
func (d *Decoder) Skip(size int) error {
	if d.opts.Verbose {
		d.opts.logf("skip offset=%d size=%d", d.Position(), size)
	}
	return d.dec.SkipBytes(size)
}

// NextWord reads one raw 32-byte word.
func (d *Decoder) NextWord() (Word, error) {
	var word Word
	if _, err := d.dec.DecodeBytes(word[:]); err != nil {
		return Word{}, err
	}
	return word, nil
}

// NextAddress reads an address right-aligned in a 32-byte word. The padding
// bytes are skipped without inspection.
//
// The whole word must be available; on failure nothing is consumed, including
// the padding.
func (d *Decoder) NextAddress() (common.Address, error) {
	if d.opts.Verbose {
		d.opts.logf("next_address offset=%d", d.Position())
	}
	word, err := d.dec.DecodeBytesBuf(WordSize)
	if err != nil {
		return common.Address{}, err
	}
	var addr common.Address
	copy(addr[:], word[AddressPadding:])
	return addr, nil
}

// NextAddressUnpadded reads a bare 20-byte address.
func (d *Decoder) NextAddressUnpadded() (common.Address, error) {
	if d.opts.Verbose {
		d.opts.logf("next_address_unpadded offset=%d", d.Position())
	}
	var addr common.Address
	if _, err := d.dec.DecodeBytes(addr[:]); err != nil {
		return common.Address{}, err
	}
	return addr, nil
}

// NextHash reads 32 bytes as an opaque identifier.
func (d *Decoder) NextHash() (common.Hash, error) {
	if d.opts.Verbose {
		d.opts.logf("next_hash offset=%d", d.Position())
	}
	var hash common.Hash
	if _, err := d.dec.DecodeBytes(hash[:]); err != nil {
		return common.Hash{}, err
	}
	return hash, nil
}

// NextUint256 reads a big-endian unsigned 256-bit integer.
func (d *Decoder) NextUint256() (*uint256.Int, error) {
	if d.opts.Verbose {
		d.opts.logf("next_uint256 offset=%d", d.Position())
	}
	word, err := d.NextWord()
	if err != nil {
		return nil, err
	}
	return word.Uint256(), nil
}

// NextBigInt is NextUint256 converted to a big.Int.
func (d *Decoder) NextBigInt() (*big.Int, error) {
	val, err := d.NextUint256()
	if err != nil {
		return nil, err
	}
	return val.ToBig(), nil
}

// NextUint64 reads a 256-bit integer that must fit into 64 bits. The word is
// consumed even when the value overflows.
func (d *Decoder) NextUint64() (uint64, error) {
	val, err := d.NextUint256()
	if err != nil {
		return 0, err
	}
	if !val.IsUint64() {
		return 0, fmt.Errorf("%w: %s exceeds uint64", ErrValueOverflow, val.Dec())
	}
	return val.Uint64(), nil
}
