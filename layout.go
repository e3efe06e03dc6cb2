// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the erc20 codec library.

package erc20

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/nazgull08/erc20/abiutils"
)

// MaxLayoutSize bounds the encoded size of a single layout, and so of any
// raw or skip field in it.
const MaxLayoutSize = 1 << 24

type FieldKind uint8

const (
	FieldUnspecified FieldKind = iota
	FieldAddress
	FieldAddressUnpadded
	FieldHash
	FieldUint256
	FieldRaw
	FieldSkip
)

func ParseFieldKind(kindStr string) (FieldKind, error) {
	switch kindStr {
	case "address":
		return FieldAddress, nil
	case "address_unpadded", "address20":
		return FieldAddressUnpadded, nil
	case "hash", "bytes32":
		return FieldHash, nil
	case "uint256", "uint":
		return FieldUint256, nil
	case "raw":
		return FieldRaw, nil
	case "skip":
		return FieldSkip, nil
	}
	return FieldUnspecified, fmt.Errorf("%w: unknown field kind %q", ErrInvalidLayout, kindStr)
}

func (k FieldKind) String() string {
	switch k {
	case FieldAddress:
		return "address"
	case FieldAddressUnpadded:
		return "address_unpadded"
	case FieldHash:
		return "hash"
	case FieldUint256:
		return "uint256"
	case FieldRaw:
		return "raw"
	case FieldSkip:
		return "skip"
	}
	return "unspecified"
}

// Field is one fixed-width slot of a Layout. Size is only set for raw and skip
// fields; the other kinds have an implied width.
type Field struct {
	Name string
	Kind FieldKind
	Size int
}

// ByteSize returns the number of bytes the field occupies on the wire.
func (f Field) ByteSize() int {
	switch f.Kind {
	case FieldAddress, FieldHash, FieldUint256:
		return WordSize
	case FieldAddressUnpadded:
		return AddressLength
	case FieldRaw, FieldSkip:
		return f.Size
	}
	return 0
}

func (f Field) String() string {
	var sb strings.Builder
	if f.Name != "" {
		sb.WriteString(f.Name)
		sb.WriteByte(':')
	}
	sb.WriteString(f.Kind.String())
	if f.Kind == FieldRaw || f.Kind == FieldSkip {
		sb.WriteByte('[')
		sb.WriteString(strconv.Itoa(f.Size))
		sb.WriteByte(']')
	}
	return sb.String()
}

// Layout is an ordered list of fixed-width fields, written back to back with
// no separators.
type Layout []Field

// ParseLayout parses a comma separated field list such as
//
//	to:address, value:uint256, raw[4], skip[12]
//
// Names are optional. raw and skip take a positive byte count in brackets.
// An empty string is an empty layout.
func ParseLayout(spec string) (Layout, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Layout{}, nil
	}

	parts := strings.Split(spec, ",")
	layout := make(Layout, 0, len(parts))
	for _, part := range parts {
		field, err := parseField(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		layout = append(layout, field)
	}
	if _, err := layout.checkedSize(); err != nil {
		return nil, err
	}
	return layout, nil
}

func parseField(fieldStr string) (Field, error) {
	field := Field{}
	kindStr := fieldStr
	if idx := strings.IndexByte(fieldStr, ':'); idx >= 0 {
		field.Name = strings.TrimSpace(fieldStr[:idx])
		kindStr = strings.TrimSpace(fieldStr[idx+1:])
		if field.Name == "" {
			return Field{}, fmt.Errorf("%w: empty field name in %q", ErrInvalidLayout, fieldStr)
		}
	}

	sizeStr := ""
	if idx := strings.IndexByte(kindStr, '['); idx >= 0 {
		if !strings.HasSuffix(kindStr, "]") {
			return Field{}, fmt.Errorf("%w: unterminated size in %q", ErrInvalidLayout, fieldStr)
		}
		sizeStr = kindStr[idx+1 : len(kindStr)-1]
		kindStr = kindStr[:idx]
	}

	kind, err := ParseFieldKind(kindStr)
	if err != nil {
		return Field{}, err
	}
	field.Kind = kind

	switch kind {
	case FieldRaw, FieldSkip:
		size, err := strconv.Atoi(sizeStr)
		if err != nil || size <= 0 {
			return Field{}, fmt.Errorf("%w: %s needs a positive size, got %q", ErrInvalidLayout, kind, sizeStr)
		}
		if size > MaxLayoutSize {
			return Field{}, fmt.Errorf("%w: %s size %d exceeds %d", ErrInvalidLayout, kind, size, MaxLayoutSize)
		}
		field.Size = size
	default:
		if sizeStr != "" {
			return Field{}, fmt.Errorf("%w: %s has a fixed size", ErrInvalidLayout, kind)
		}
	}

	return field, nil
}

// MustParseLayout is ParseLayout for static layouts. It panics on error.
func MustParseLayout(spec string) Layout {
	layout, err := ParseLayout(spec)
	if err != nil {
		panic(err)
	}
	return layout
}

func (l Layout) String() string {
	fields := make([]string, len(l))
	for i, f := range l {
		fields[i] = f.String()
	}
	return strings.Join(fields, ",")
}

// Size returns the encoded size of the layout in bytes, or -1 if the layout
// holds an invalid field or exceeds MaxLayoutSize.
func (l Layout) Size() int {
	size, err := l.checkedSize()
	if err != nil {
		return -1
	}
	return size
}

func (l Layout) checkedSize() (int, error) {
	size := 0
	for i, f := range l {
		n := f.ByteSize()
		if n <= 0 {
			return 0, fmt.Errorf("%w: field %d (%s) has no size", ErrInvalidLayout, i, f)
		}
		if n > MaxLayoutSize-size {
			return 0, fmt.Errorf("%w: layout exceeds %d bytes at field %d (%s)", ErrInvalidLayout, MaxLayoutSize, i, f)
		}
		size += n
	}
	return size, nil
}

// NumValues returns the number of values the layout produces or consumes;
// skip fields carry no value.
func (l Layout) NumValues() int {
	count := 0
	for _, f := range l {
		if f.Kind != FieldSkip {
			count++
		}
	}
	return count
}

// Decode reads one value per non-skip field from d. Addresses come back as
// common.Address, hashes as common.Hash, integers as *uint256.Int and raw
// fields as []byte.
//
// The whole layout is read from d in one step before any field is decoded,
// so a short input leaves d untouched, also for stream decoders whose
// reader ends before the declared length.
func (l Layout) Decode(d *Decoder) ([]any, error) {
	size, err := l.checkedSize()
	if err != nil {
		return nil, err
	}
	if d.opts.Verbose {
		d.opts.logf("decode_layout offset=%d size=%d", d.Position(), size)
	}

	raw, err := d.dec.DecodeBytesBuf(size)
	if err != nil {
		return nil, err
	}
	fields := &Decoder{
		dec:  abiutils.NewBufferDecoder(raw),
		opts: d.opts,
	}

	values := make([]any, 0, l.NumValues())
	for i, f := range l {
		var val any
		switch f.Kind {
		case FieldAddress:
			val, err = fields.NextAddress()
		case FieldAddressUnpadded:
			val, err = fields.NextAddressUnpadded()
		case FieldHash:
			val, err = fields.NextHash()
		case FieldUint256:
			val, err = fields.NextUint256()
		case FieldRaw:
			val, err = fields.NextBytes(f.Size)
		case FieldSkip:
			err = fields.Skip(f.Size)
		}
		if err != nil {
			return nil, fmt.Errorf("field %d (%s): %w", i, f, err)
		}
		if f.Kind != FieldSkip {
			values = append(values, val)
		}
	}
	return values, nil
}

// DecodeBytes decodes data from its first byte. Trailing bytes are ignored.
func (l Layout) DecodeBytes(data []byte, opts ...Option) ([]any, error) {
	return l.Decode(NewDecoder(data, opts...))
}

// Encode writes values to e, one per non-skip field; skip fields are written
// as zero bytes. All values are converted before the first byte is written,
// so a bad value leaves e unchanged.
//
// Accepted inputs: common.Address or a hex string for addresses;
// common.Hash, a 32 byte slice or a hex string for hashes; *uint256.Int,
// uint256.Int, *big.Int, uint64, uint, int or a decimal/0x-hex string for
// integers; a byte slice or hex string of exact size for raw fields.
func (l Layout) Encode(e *Encoder, values ...any) error {
	if _, err := l.checkedSize(); err != nil {
		return err
	}
	if len(values) != l.NumValues() {
		return fmt.Errorf("%w: layout %q takes %d values, got %d", ErrInvalidValue, l, l.NumValues(), len(values))
	}

	converted := make([]any, len(values))
	idx := 0
	for _, f := range l {
		if f.Kind == FieldSkip {
			continue
		}
		val, err := convertValue(f, values[idx])
		if err != nil {
			return fmt.Errorf("field %d (%s): %w", idx, f, err)
		}
		converted[idx] = val
		idx++
	}

	idx = 0
	for _, f := range l {
		if f.Kind == FieldSkip {
			e.PushPadding(f.Size)
			continue
		}
		switch val := converted[idx].(type) {
		case common.Address:
			if f.Kind == FieldAddress {
				e.PushAddress(val)
			} else {
				e.PushAddressUnpadded(val)
			}
		case common.Hash:
			e.PushHash(val)
		case *uint256.Int:
			e.PushUint256(val)
		case []byte:
			e.PushBytes(val)
		}
		idx++
	}
	return nil
}

// EncodeBytes encodes values into a new buffer.
func (l Layout) EncodeBytes(values ...any) ([]byte, error) {
	enc := NewEncoder()
	if err := l.Encode(enc, values...); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}

func convertValue(f Field, value any) (any, error) {
	switch f.Kind {
	case FieldAddress, FieldAddressUnpadded:
		return toAddress(value)
	case FieldHash:
		return toHash(value)
	case FieldUint256:
		return toUint256Value(value)
	case FieldRaw:
		return toRaw(value, f.Size)
	}
	return nil, fmt.Errorf("%w: unspecified field kind", ErrInvalidLayout)
}

func toAddress(value any) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		if v != nil {
			return *v, nil
		}
	case string:
		if common.IsHexAddress(v) {
			return common.HexToAddress(v), nil
		}
	}
	return common.Address{}, fmt.Errorf("%w: cannot use %v (%T) as address", ErrInvalidValue, value, value)
}

func toHash(value any) (common.Hash, error) {
	switch v := value.(type) {
	case common.Hash:
		return v, nil
	case *common.Hash:
		if v != nil {
			return *v, nil
		}
	case []byte:
		if len(v) == HashLength {
			return common.BytesToHash(v), nil
		}
	case string:
		raw, err := hexutil.Decode(v)
		if err == nil && len(raw) == HashLength {
			return common.BytesToHash(raw), nil
		}
	}
	return common.Hash{}, fmt.Errorf("%w: cannot use %v (%T) as hash", ErrInvalidValue, value, value)
}

func toUint256Value(value any) (*uint256.Int, error) {
	switch v := value.(type) {
	case *uint256.Int:
		if v == nil {
			return new(uint256.Int), nil
		}
		return v, nil
	case uint256.Int:
		return &v, nil
	case *big.Int:
		u, err := toUint256(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		return u, nil
	case uint64:
		return uint256.NewInt(v), nil
	case uint:
		return uint256.NewInt(uint64(v)), nil
	case int:
		if v >= 0 {
			return uint256.NewInt(uint64(v)), nil
		}
	case string:
		b, ok := new(big.Int).SetString(v, 0)
		if ok {
			u, err := toUint256(b)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidValue, err)
			}
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: cannot use %v (%T) as uint256", ErrInvalidValue, value, value)
}

func toRaw(value any, size int) ([]byte, error) {
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		decoded, err := hexutil.Decode(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		raw = decoded
	default:
		return nil, fmt.Errorf("%w: cannot use %T as raw bytes", ErrInvalidValue, value)
	}
	if len(raw) != size {
		return nil, fmt.Errorf("%w: raw field needs %d bytes, got %d", ErrInvalidValue, size, len(raw))
	}
	return raw, nil
}
