// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the erc20 codec library.

package erc20

import (
	"errors"

	"github.com/nazgull08/erc20/abiutils"
)

var (
	// ErrUnexpectedEndOfData is returned when a read needs more bytes than
	// remain. Decoders return it wrapped in an *abiutils.ShortDataError.
	ErrUnexpectedEndOfData = abiutils.ErrUnexpectedEndOfData

	ErrValueOverflow = errors.New("value does not fit")
	ErrInvalidLayout = errors.New("invalid layout")
	ErrInvalidValue  = errors.New("invalid value for field")
)

// ShortDataError carries the offset and sizes of a failed read.
type ShortDataError = abiutils.ShortDataError
