// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the erc20 codec library.

package erc20

import (
	"bytes"
	"errors"
	"math/big"
	"math/rand"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	require "github.com/stretchr/testify/require"
)

func TestEncoderUint256(t *testing.T) {
	out := NewEncoder().PushUint256(uint256.NewInt(256)).Bytes()

	expected := make([]byte, WordSize)
	expected[30] = 0x01
	require.Equal(t, expected, out)
}

func TestEncoderUint256ByteOrder(t *testing.T) {
	val := new(uint256.Int).SetBytes(sequence(1, WordSize))
	out := NewEncoder().PushUint256(val).Bytes()

	require.Len(t, out, WordSize)
	require.Equal(t, byte(0x01), out[0], "most significant byte first")
	require.Equal(t, byte(0x20), out[31], "least significant byte last")
}

func TestEncoderNilUint256(t *testing.T) {
	out := NewEncoder().PushUint256(nil).Bytes()
	require.Equal(t, make([]byte, WordSize), out)
}

func TestEncoderPaddedAddress(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 32; i++ {
		var addr common.Address
		r.Read(addr[:])

		out := NewEncoder().PushAddress(addr).Bytes()
		require.Len(t, out, WordSize)
		require.Equal(t, make([]byte, AddressPadding), out[:AddressPadding])
		require.Equal(t, addr.Bytes(), out[AddressPadding:])
	}
}

func TestEncoderUnpaddedAndHash(t *testing.T) {
	addr := common.BytesToAddress(sequence(0x40, AddressLength))
	hash := common.BytesToHash(sequence(0x80, HashLength))

	out := NewEncoder().PushAddressUnpadded(addr).PushHash(hash).Bytes()
	require.Equal(t, concat(addr.Bytes(), hash.Bytes()), out)
}

func TestEncoderAppendOnly(t *testing.T) {
	enc := NewEncoder()
	enc.PushBytes([]byte{1, 2, 3})
	first := append([]byte{}, enc.Bytes()...)

	enc.PushPadding(5).PushUint64(9)
	require.Equal(t, 3+5+WordSize, enc.Len())
	require.Equal(t, first, enc.Bytes()[:3])
	require.Equal(t, make([]byte, 5), enc.Bytes()[3:8])
}

func TestEncoderFromSeed(t *testing.T) {
	seed := []byte{0xa9, 0x05, 0x9c, 0xbb}
	enc := NewEncoderFrom(seed)
	enc.PushUint64(1)

	// the seed slice itself is never written to
	require.Equal(t, []byte{0xa9, 0x05, 0x9c, 0xbb}, seed)
	require.Equal(t, seed, enc.Bytes()[:4])
	require.Equal(t, 4+WordSize, enc.Len())
	require.Equal(t, "0xa9059cbb0000000000000000000000000000000000000000000000000000000000000001", enc.Hex())
}

func TestEncoderBigInt(t *testing.T) {
	maxVal := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	enc := NewEncoder()
	require.NoError(t, enc.PushBigInt(maxVal))
	require.NoError(t, enc.PushBigInt(nil))
	require.Equal(t, concat(bytes.Repeat([]byte{0xff}, WordSize), make([]byte, WordSize)), enc.Bytes())

	tooBig := new(big.Int).Lsh(big.NewInt(1), 256)
	require.ErrorIs(t, enc.PushBigInt(tooBig), ErrValueOverflow)
	require.ErrorIs(t, enc.PushBigInt(big.NewInt(-1)), ErrValueOverflow)
	require.Equal(t, 2*WordSize, enc.Len())
}

func TestEncoderRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 64; i++ {
		var (
			addr common.Address
			hash common.Hash
			word [WordSize]byte
		)
		r.Read(addr[:])
		r.Read(hash[:])
		r.Read(word[:])
		val := new(uint256.Int).SetBytes32(word[:])

		data := NewEncoder().
			PushAddress(addr).
			PushHash(hash).
			PushUint256(val).
			PushAddressUnpadded(addr).
			Bytes()
		require.Len(t, data, 3*WordSize+AddressLength)

		dec := NewDecoder(data)
		gotAddr, err := dec.NextAddress()
		require.NoError(t, err)
		gotHash, err := dec.NextHash()
		require.NoError(t, err)
		gotVal, err := dec.NextUint256()
		require.NoError(t, err)
		gotUnpadded, err := dec.NextAddressUnpadded()
		require.NoError(t, err)

		require.Equal(t, addr, gotAddr)
		require.Equal(t, hash, gotHash)
		require.True(t, val.Eq(gotVal))
		require.Equal(t, addr, gotUnpadded)
		require.Equal(t, 0, dec.Remaining())
	}
}

type failingWriter struct {
	limit   int
	written bytes.Buffer
}

var errWriteFailed = errors.New("write failed")

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.written.Len()+len(p) > w.limit {
		n := w.limit - w.written.Len()
		w.written.Write(p[:n])
		return n, errWriteFailed
	}
	return w.written.Write(p)
}

func TestStreamEncoder(t *testing.T) {
	addr := common.HexToAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")

	var buf bytes.Buffer
	enc := NewStreamEncoder(&buf)
	enc.PushAddress(addr).PushUint64(7)
	require.NoError(t, enc.Err())
	require.Nil(t, enc.Bytes())
	require.Equal(t, NewEncoder().PushAddress(addr).PushUint64(7).Bytes(), buf.Bytes())
	require.Equal(t, 2*WordSize, enc.Len())

	w := &failingWriter{limit: 40}
	enc = NewStreamEncoder(w)
	enc.PushAddress(addr).PushUint64(7).PushHash(common.Hash{})
	require.ErrorIs(t, enc.Err(), errWriteFailed)
	require.Equal(t, 40, w.written.Len())
}

func TestEncoderVerboseLogging(t *testing.T) {
	var lines []string
	logCb := func(format string, args ...any) {
		lines = append(lines, format)
	}

	NewEncoder(WithVerbose(), WithLogCb(logCb)).
		PushAddress(common.Address{}).
		PushUint64(1)
	require.Len(t, lines, 2)
}
