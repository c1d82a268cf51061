package wasm

import (
	"errors"
	"io"
)

// LEB128 helpers for callers that build or inspect raw byte sequences
// outside of a module reader (custom sections, DWARF fixtures).

// ErrOverflow is returned when a LEB128 value exceeds the maximum bit width.
var ErrOverflow = errors.New("leb128: overflow")

// AppendULEB128 appends the unsigned LEB128 encoding of v to dst.
func AppendULEB128(dst []byte, v uint64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
		if v == 0 {
			return dst
		}
	}
}

// AppendSLEB128 appends the signed LEB128 encoding of v to dst.
func AppendSLEB128(dst []byte, v int64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(dst, b)
		}
		dst = append(dst, b|0x80)
	}
}

// DecodeULEB128 decodes an unsigned LEB128 value from the start of b and
// returns it with the number of bytes consumed.
func DecodeULEB128(b []byte) (uint64, int, error) {
	var result uint64
	var shift uint
	for i, c := range b {
		result |= uint64(c&0x7f) << shift
		if c&0x80 == 0 {
			return result, i + 1, nil
		}
		shift += 7
		if shift >= 70 {
			return 0, 0, ErrOverflow
		}
	}
	return 0, 0, io.ErrUnexpectedEOF
}
