// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the erc20 codec library.

package erc20

import (
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/nazgull08/erc20/abiutils"
)

// Encoder appends fixed-width values to an output in call order. Sub-word
// values are left-padded to a full word unless the Unpadded variant is used.
//
// Push methods return the encoder so calls can be chained.
type Encoder struct {
	enc    abiutils.Encoder
	buf    *abiutils.BufferEncoder
	stream *abiutils.StreamEncoder
	opts   Options
}

// NewEncoder creates an empty in-memory encoder.
func NewEncoder(opts ...Option) *Encoder {
	return NewEncoderFrom(nil, opts...)
}

// NewEncoderFrom creates an in-memory encoder whose output starts with a copy
// of seed.
func NewEncoderFrom(seed []byte, opts ...Option) *Encoder {
	buf := make([]byte, len(seed), len(seed)+4*WordSize)
	copy(buf, seed)
	bufEnc := abiutils.NewBufferEncoder(buf)
	return &Encoder{
		enc:  bufEnc,
		buf:  bufEnc,
		opts: applyOptions(opts),
	}
}

// NewStreamEncoder creates an encoder writing straight to w. Write failures
// are reported by Err.
func NewStreamEncoder(w io.Writer, opts ...Option) *Encoder {
	streamEnc := abiutils.NewStreamEncoder(w)
	return &Encoder{
		enc:    streamEnc,
		stream: streamEnc,
		opts:   applyOptions(opts),
	}
}

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int {
	return e.enc.GetPosition()
}

// Bytes returns the encoded payload. It is nil for stream encoders.
func (e *Encoder) Bytes() []byte {
	if e.buf == nil {
		return nil
	}
	return e.buf.Bytes()
}

// Hex returns the encoded payload as 0x-prefixed hex.
func (e *Encoder) Hex() string {
	return hexutil.Encode(e.Bytes())
}

// Err returns the first write error of a stream encoder.
func (e *Encoder) Err() error {
	if e.stream == nil {
		return nil
	}
	return e.stream.GetWriteError()
}

// PushBytes appends seq verbatim.
func (e *Encoder) PushBytes(seq []byte) *Encoder {
	if e.opts.Verbose {
		e.opts.logf("push_bytes offset=%d size=%d", e.Len(), len(seq))
	}
	e.enc.EncodeBytes(seq)
	return e
}

// PushPadding appends n zero bytes.
func (e *Encoder) PushPadding(n int) *Encoder {
	if e.opts.Verbose {
		e.opts.logf("push_padding offset=%d size=%d", e.Len(), n)
	}
	e.enc.EncodeZeroPadding(n)
	return e
}

// PushAddress appends addr right-aligned in a 32-byte word.
func (e *Encoder) PushAddress(addr common.Address) *Encoder {
	if e.opts.Verbose {
		e.opts.logf("push_address offset=%d value=%s", e.Len(), addr.Hex())
	}
	e.enc.EncodeZeroPadding(AddressPadding)
	e.enc.EncodeBytes(addr[:])
	return e
}

// PushAddressUnpadded appends the 20 address bytes only.
func (e *Encoder) PushAddressUnpadded(addr common.Address) *Encoder {
	if e.opts.Verbose {
		e.opts.logf("push_address_unpadded offset=%d value=%s", e.Len(), addr.Hex())
	}
	e.enc.EncodeBytes(addr[:])
	return e
}

func (e *Encoder) PushHash(hash common.Hash) *Encoder {
	if e.opts.Verbose {
		e.opts.logf("push_hash offset=%d value=%s", e.Len(), hash.Hex())
	}
	e.enc.EncodeBytes(hash[:])
	return e
}

// PushUint256 appends val as a big-endian word, most significant byte first.
// A nil value is written as zero.
func (e *Encoder) PushUint256(val *uint256.Int) *Encoder {
	var word [WordSize]byte
	if val != nil {
		word = val.Bytes32()
	}
	if e.opts.Verbose {
		e.opts.logf("push_uint256 offset=%d value=%x", e.Len(), word)
	}
	e.enc.EncodeBytes(word[:])
	return e
}

func (e *Encoder) PushUint64(val uint64) *Encoder {
	return e.PushUint256(uint256.NewInt(val))
}

// PushBigInt appends val as a uint256 word. Negative values and values wider
// than 256 bits are rejected and nothing is written.
func (e *Encoder) PushBigInt(val *big.Int) error {
	u, err := toUint256(val)
	if err != nil {
		return err
	}
	e.PushUint256(u)
	return nil
}

func toUint256(val *big.Int) (*uint256.Int, error) {
	if val == nil {
		return new(uint256.Int), nil
	}
	if val.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative value %s", ErrValueOverflow, val)
	}
	u, overflow := uint256.FromBig(val)
	if overflow {
		return nil, fmt.Errorf("%w: %d bits", ErrValueOverflow, val.BitLen())
	}
	return u, nil
}
