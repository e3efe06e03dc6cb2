// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the erc20 codec library.

package abiutils

import (
	"errors"
	"fmt"
)

var ErrUnexpectedEndOfData = errors.New("unexpected end of data")

// ShortDataError is returned by decoders when fewer bytes remain than a read
// requires. It matches ErrUnexpectedEndOfData with errors.Is.
type ShortDataError struct {
	Offset int // cursor position at the time of the failed read
	Need   int
	Have   int
}

func newShortDataError(offset, need, have int) *ShortDataError {
	return &ShortDataError{
		Offset: offset,
		Need:   need,
		Have:   have,
	}
}

func (e *ShortDataError) Error() string {
	return fmt.Sprintf("%v: need %d bytes at offset %d, have %d", ErrUnexpectedEndOfData, e.Need, e.Offset, e.Have)
}

func (e *ShortDataError) Unwrap() error {
	return ErrUnexpectedEndOfData
}
