// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the erc20 codec library.

package erc20

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	require "github.com/stretchr/testify/require"
)

func sequence(start byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = start + byte(i)
	}
	return out
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestDecoderPaddedAddress(t *testing.T) {
	payload := sequence(0x11, AddressLength)
	dec := NewDecoder(concat(make([]byte, AddressPadding), payload))

	addr, err := dec.NextAddress()
	require.NoError(t, err)
	require.Equal(t, common.HexToAddress("0x1112131415161718191a1b1c1d1e1f2021222324"), addr)
	require.Equal(t, WordSize, dec.Position())
	require.Equal(t, 0, dec.Remaining())
}

func TestDecoderUint256One(t *testing.T) {
	data := make([]byte, WordSize)
	data[31] = 0x01

	val, err := NewDecoder(data).NextUint256()
	require.NoError(t, err)
	require.Equal(t, uint256.NewInt(1), val)
}

func TestDecoderShortHash(t *testing.T) {
	dec := NewDecoder(make([]byte, 10))

	_, err := dec.NextHash()
	require.ErrorIs(t, err, ErrUnexpectedEndOfData)
	require.Equal(t, 0, dec.Position())

	var shortErr *ShortDataError
	require.True(t, errors.As(err, &shortErr))
	require.Equal(t, HashLength, shortErr.Need)
	require.Equal(t, 10, shortErr.Have)
}

func TestDecoderBigEndian(t *testing.T) {
	data := sequence(1, WordSize)
	val, err := NewDecoder(data).NextUint256()
	require.NoError(t, err)

	// byte 0 is the most significant byte
	expected := new(big.Int).SetBytes(data)
	require.Equal(t, expected, val.ToBig())
	require.Equal(t, uint64(0x191a1b1c1d1e1f20), val.Uint64())
}

func TestDecoderSequence(t *testing.T) {
	addr := common.HexToAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	hash := common.HexToHash("0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")
	data := NewEncoder().
		PushAddress(addr).
		PushAddressUnpadded(addr).
		PushHash(hash).
		PushUint64(42).
		PushBytes([]byte{0xca, 0xfe}).
		Bytes()

	dec := NewDecoder(data)
	steps := []struct {
		name string
		size int
		read func() (any, error)
		want any
	}{
		{"address", WordSize, func() (any, error) { return dec.NextAddress() }, addr},
		{"address_unpadded", AddressLength, func() (any, error) { return dec.NextAddressUnpadded() }, addr},
		{"hash", HashLength, func() (any, error) { return dec.NextHash() }, hash},
		{"uint256", WordSize, func() (any, error) { return dec.NextUint256() }, uint256.NewInt(42)},
		{"bytes", 2, func() (any, error) { return dec.NextBytes(2) }, []byte{0xca, 0xfe}},
	}

	for _, step := range steps {
		before := dec.Position()
		got, err := step.read()
		require.NoError(t, err, step.name)
		require.Equal(t, step.want, got, step.name)
		require.Equal(t, before+step.size, dec.Position(), step.name)
	}
	require.Equal(t, len(data), dec.Position())
}

func TestDecoderBoundaryFailures(t *testing.T) {
	reads := map[string]struct {
		size int
		read func(d *Decoder) error
	}{
		"NextAddress": {WordSize, func(d *Decoder) error {
			_, err := d.NextAddress()
			return err
		}},
		"NextAddressUnpadded": {AddressLength, func(d *Decoder) error {
			_, err := d.NextAddressUnpadded()
			return err
		}},
		"NextHash": {HashLength, func(d *Decoder) error {
			_, err := d.NextHash()
			return err
		}},
		"NextUint256": {Uint256Length, func(d *Decoder) error {
			_, err := d.NextUint256()
			return err
		}},
		"NextBytes": {7, func(d *Decoder) error {
			_, err := d.NextBytes(7)
			return err
		}},
		"Skip": {7, func(d *Decoder) error {
			return d.Skip(7)
		}},
	}

	for name, r := range reads {
		for have := 0; have < r.size; have++ {
			t.Run(fmt.Sprintf("%s/%d", name, have), func(t *testing.T) {
				// a leading byte is consumed first so the failing read starts mid-buffer
				dec := NewDecoder(make([]byte, 1+have))
				require.NoError(t, dec.Skip(1))

				err := r.read(dec)
				require.ErrorIs(t, err, ErrUnexpectedEndOfData)
				require.Equal(t, 1, dec.Position())
				require.Equal(t, have, dec.Remaining())
			})
		}

		t.Run(name+"/exact", func(t *testing.T) {
			dec := NewDecoder(make([]byte, r.size))
			require.NoError(t, r.read(dec))
			require.Equal(t, r.size, dec.Position())
		})
	}
}

func TestDecoderPaddedAddressIsAtomic(t *testing.T) {
	// only the padding is present
	dec := NewDecoder(make([]byte, AddressPadding))
	_, err := dec.NextAddress()
	require.ErrorIs(t, err, ErrUnexpectedEndOfData)
	require.Equal(t, 0, dec.Position())

	// retrying with the full word available succeeds from the same spot
	dec = NewDecoder(concat(make([]byte, AddressPadding), sequence(1, AddressLength)))
	addr, err := dec.NextAddress()
	require.NoError(t, err)
	require.Equal(t, common.BytesToAddress(sequence(1, AddressLength)), addr)
}

func TestDecoderNegativeSize(t *testing.T) {
	dec := NewDecoder(make([]byte, 8))
	require.NoError(t, dec.Skip(4))

	_, err := dec.NextBytes(-1)
	require.ErrorIs(t, err, ErrUnexpectedEndOfData)
	require.ErrorIs(t, dec.Skip(-2), ErrUnexpectedEndOfData)
	require.Equal(t, 4, dec.Position())
}

func TestDecoderNextBytesCopies(t *testing.T) {
	data := sequence(1, 8)
	dec := NewDecoder(data)

	got, err := dec.NextBytes(4)
	require.NoError(t, err)
	got[0] = 0xff
	require.Equal(t, byte(1), data[0])
}

func TestDecoderTrailingData(t *testing.T) {
	data := concat(NewEncoder().PushUint64(5).Bytes(), []byte{1, 2, 3})
	dec := NewDecoder(data)

	val, err := dec.NextUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(5), val)
	require.Equal(t, 3, dec.Remaining())
}

func TestDecoderNextUint64Overflow(t *testing.T) {
	data := NewEncoder().PushUint256(new(uint256.Int).Lsh(uint256.NewInt(1), 64)).Bytes()
	dec := NewDecoder(data)

	_, err := dec.NextUint64()
	require.ErrorIs(t, err, ErrValueOverflow)
	require.Equal(t, WordSize, dec.Position())
}

func TestDecoderNextBigInt(t *testing.T) {
	maxVal := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	data := bytes.Repeat([]byte{0xff}, WordSize)

	val, err := NewDecoder(data).NextBigInt()
	require.NoError(t, err)
	require.Equal(t, 0, maxVal.Cmp(val))
}

func TestStreamDecoder(t *testing.T) {
	addr := common.HexToAddress("0x00000000000000000000000000000000deadbeef")
	data := NewEncoder().PushAddress(addr).PushUint64(1000).Bytes()

	dec := NewStreamDecoder(bytes.NewReader(data), len(data))
	gotAddr, err := dec.NextAddress()
	require.NoError(t, err)
	require.Equal(t, addr, gotAddr)

	val, err := dec.NextUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(1000), val)

	_, err = dec.NextHash()
	require.ErrorIs(t, err, ErrUnexpectedEndOfData)
	require.Equal(t, 2*WordSize, dec.Position())
}

func TestDecoderVerboseLogging(t *testing.T) {
	var lines []string
	logCb := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	dec := NewDecoder(make([]byte, 2*WordSize), WithVerbose(), WithLogCb(logCb))
	_, err := dec.NextAddress()
	require.NoError(t, err)
	_, err = dec.NextUint256()
	require.NoError(t, err)

	require.Equal(t, []string{"next_address offset=0", "next_uint256 offset=32"}, lines)

	// without WithVerbose the callback stays silent
	lines = nil
	dec = NewDecoder(make([]byte, WordSize), WithLogCb(logCb))
	_, err = dec.NextHash()
	require.NoError(t, err)
	require.Empty(t, lines)
}
