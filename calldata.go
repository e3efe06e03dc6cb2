// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the erc20 codec library.

package erc20

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"gopkg.in/yaml.v3"
)

const SelectorLength = 4

// Selector is the 4-byte method id in front of call arguments. It is taken
// as given; this package does not derive selectors from signatures.
type Selector [SelectorLength]byte

func ParseSelector(s string) (Selector, error) {
	raw, err := hexutil.Decode(s)
	if err != nil {
		return Selector{}, fmt.Errorf("%w: selector %q: %w", ErrInvalidValue, s, err)
	}
	if len(raw) != SelectorLength {
		return Selector{}, fmt.Errorf("%w: selector %q has %d bytes", ErrInvalidValue, s, len(raw))
	}
	var sel Selector
	copy(sel[:], raw)
	return sel, nil
}

func (s Selector) Hex() string {
	return hexutil.Encode(s[:])
}

func (s Selector) String() string {
	return s.Hex()
}

func (s *Selector) UnmarshalYAML(value *yaml.Node) error {
	sel, err := ParseSelector(value.Value)
	if err != nil {
		return err
	}
	*s = sel
	return nil
}

func (s Selector) MarshalYAML() (any, error) {
	return s.Hex(), nil
}

// EncodeCall returns sel followed by args encoded with layout.
func EncodeCall(sel Selector, layout Layout, args ...any) ([]byte, error) {
	enc := NewEncoderFrom(sel[:])
	if err := layout.Encode(enc, args...); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}

// SplitCallData separates the selector from the arguments and returns a
// decoder positioned at the first argument word.
func SplitCallData(data []byte, opts ...Option) (Selector, *Decoder, error) {
	if len(data) < SelectorLength {
		return Selector{}, nil, &ShortDataError{
			Offset: 0,
			Need:   SelectorLength,
			Have:   len(data),
		}
	}
	var sel Selector
	copy(sel[:], data)
	return sel, NewDecoder(data[SelectorLength:], opts...), nil
}
