package bytebuf

import (
	"bytes"
	"context"
	"encoding/binary"
	"math"
	"sort"

	"github.com/wippyai/simd-detect/errors"
)

// ErrRejected is returned by reference transforms for inputs a guest
// answers with -1.
var ErrRejected = errors.New(errors.PhaseCall, errors.KindInvalidInput).Detail("input rejected").Build()

// Reference is a Go implementation of a guest transform.
type Reference struct {
	// Apply transforms input into at most outCap bytes.
	Apply func(input []byte, outCap int) ([]byte, error)
	// OutCap is the output capacity a caller should provide for inLen bytes.
	OutCap func(inLen int) int
	Name   string
	// Func is the export name used by the example guests.
	Func string
}

func sameLen(n int) int { return n }
func fourBytes(int) int { return 4 }

// Increment returns the process_bytes reference adding delta to each byte.
func Increment(delta byte) Reference {
	return Reference{
		Name: "increment",
		Func: "process_bytes",
		Apply: func(input []byte, outCap int) ([]byte, error) {
			if outCap < len(input) {
				return nil, ErrRejected
			}
			out := make([]byte, len(input))
			for i, b := range input {
				out[i] = b + delta
			}
			return out, nil
		},
		OutCap: sameLen,
	}
}

// LineOffsets is the find_line_offsets reference. It records the offset of
// every line terminator as a little-endian u32, stopping when outCap/4
// offsets were written. A CRLF pair is recorded once, at the CR.
var LineOffsets = Reference{
	Name: "line-offsets",
	Func: "find_line_offsets",
	Apply: func(input []byte, outCap int) ([]byte, error) {
		limit := outCap / 4
		out := make([]byte, 0, 4*max(0, min(limit, 64)))
		for i := 0; i < len(input) && len(out)/4 < limit; i++ {
			switch input[i] {
			case '\n':
				out = binary.LittleEndian.AppendUint32(out, uint32(i))
			case '\r':
				out = binary.LittleEndian.AppendUint32(out, uint32(i))
				if i+1 < len(input) && input[i+1] == '\n' {
					i++
				}
			}
		}
		return out, nil
	},
	OutCap: func(n int) int { return 4 * max(n, 1) },
}

// SplitLines is the split_lines_chunk reference. It replaces every line
// terminator (CRLF, CR or LF) with a single zero byte. outCap must be at
// least the input length.
var SplitLines = Reference{
	Name: "split-lines",
	Func: "split_lines_chunk",
	Apply: func(input []byte, outCap int) ([]byte, error) {
		if outCap < len(input) {
			return nil, ErrRejected
		}
		out := make([]byte, 0, len(input))
		for i := 0; i < len(input); i++ {
			switch input[i] {
			case '\r':
				out = append(out, 0)
				if i+1 < len(input) && input[i+1] == '\n' {
					i++
				}
			case '\n':
				out = append(out, 0)
			default:
				out = append(out, input[i])
			}
		}
		return out, nil
	},
	OutCap: sameLen,
}

// SumU8 is the sum_u8_bytes reference. Whole 16-byte chunks accumulate into
// four wrapping u32 lanes (lane k holds bytes 4k..4k+3 of each chunk); the
// lanes are converted and added in order, then the tail is added in f32.
var SumU8 = Reference{
	Name: "sum-u8",
	Func: "sum_u8_bytes",
	Apply: func(input []byte, outCap int) ([]byte, error) {
		var lanes [4]uint32
		n := len(input) &^ 15
		for i, b := range input[:n] {
			lanes[(i%16)/4] += uint32(b)
		}
		sum := float32(lanes[0])
		for _, l := range lanes[1:] {
			sum += float32(l)
		}
		for _, b := range input[n:] {
			sum += float32(b)
		}
		return f32Result(sum, outCap)
	},
	OutCap: fourBytes,
}

// SumU16 is the sum_u16_bytes reference over little-endian u16 values.
// Odd-length input is rejected.
var SumU16 = Reference{
	Name: "sum-u16",
	Func: "sum_u16_bytes",
	Apply: func(input []byte, outCap int) ([]byte, error) {
		if len(input)%2 != 0 {
			return nil, ErrRejected
		}
		var sum float32
		for i := 0; i < len(input); i += 2 {
			sum += float32(binary.LittleEndian.Uint16(input[i:]))
		}
		return f32Result(sum, outCap)
	},
	OutCap: fourBytes,
}

// SumF32 is the sum_f32_bytes reference over little-endian f32 values.
// Input whose length is not a multiple of 4 is rejected.
var SumF32 = Reference{
	Name: "sum-f32",
	Func: "sum_f32_bytes",
	Apply: func(input []byte, outCap int) ([]byte, error) {
		if len(input)%4 != 0 {
			return nil, ErrRejected
		}
		var sum float32
		for i := 0; i < len(input); i += 4 {
			sum += math.Float32frombits(binary.LittleEndian.Uint32(input[i:]))
		}
		return f32Result(sum, outCap)
	},
	OutCap: fourBytes,
}

func f32Result(v float32, outCap int) ([]byte, error) {
	if outCap < 4 {
		return nil, ErrRejected
	}
	return binary.LittleEndian.AppendUint32(nil, math.Float32bits(v)), nil
}

// References returns every reference, with Increment(1), sorted by name.
func References() []Reference {
	refs := []Reference{Increment(1), LineOffsets, SplitLines, SumU8, SumU16, SumF32}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs
}

// LookupReference finds a reference by name or export name. delta applies to
// the increment reference.
func LookupReference(name string, delta byte) (Reference, error) {
	for _, ref := range References() {
		if ref.Name == name || ref.Func == name {
			if ref.Name == "increment" {
				return Increment(delta), nil
			}
			return ref, nil
		}
	}
	return Reference{}, errors.NotFound(errors.PhaseCall, "reference transform", name)
}

// Verify runs fn on mod and ref over input with ref's output capacity and
// reports the first difference. A guest rejection matches a reference
// rejection.
func Verify(ctx context.Context, mod *Module, fn string, ref Reference, input []byte) error {
	outCap := ref.OutCap(len(input))
	want, refErr := ref.Apply(input, outCap)
	got, err := mod.Call(ctx, fn, input, uint32(outCap))

	guestRejected := errors.Is(err, ErrRejected)
	switch {
	case refErr != nil && guestRejected:
		return nil
	case refErr != nil:
		if err != nil {
			return err
		}
		return mismatch(fn, "guest accepted input the reference rejects")
	case err != nil:
		return err
	}

	if !bytes.Equal(got, want) {
		if len(got) != len(want) {
			return mismatch(fn, "wrote %d bytes, want %d", len(got), len(want))
		}
		for i := range got {
			if got[i] != want[i] {
				return errors.New(errors.PhaseCall, errors.KindInvalidData).
					Path(fn).
					Offset(uint32(i)).
					Detail("byte %d = 0x%02x, want 0x%02x", i, got[i], want[i]).
					Build()
			}
		}
	}
	return nil
}

func mismatch(fn, format string, args ...any) error {
	return errors.New(errors.PhaseCall, errors.KindInvalidData).Path(fn).Detail(format, args...).Build()
}
