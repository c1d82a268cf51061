package wasm_test

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	werrors "github.com/wippyai/simd-detect/errors"
	"github.com/wippyai/simd-detect/wasm"
)

const bodyBase = 0x100

func function(body ...byte) wasm.Function {
	return wasm.Function{Index: 3, Offset: bodyBase, Body: append([]byte{0x00}, body...)}
}

type decoded struct {
	Offset uint32
	Opcode byte
	Sub    uint32
}

func decodeAll(t *testing.T, fn wasm.Function) []decoded {
	t.Helper()
	ir := wasm.NewInstructionReader(fn)
	var out []decoded
	for {
		ins, err := ir.Next()
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		out = append(out, decoded{Offset: ins.Offset - bodyBase, Opcode: ins.Opcode, Sub: ins.SubOpcode})
	}
}

func TestInstructionReader(t *testing.T) {
	tests := []struct {
		name string
		body []byte
		want []decoded
	}{
		{
			name: "block and const",
			body: []byte{0x02, 0x40, 0x41, 0x05, 0x1a, 0x0b, 0x0b},
			want: []decoded{{1, 0x02, 0}, {3, 0x41, 0}, {5, 0x1a, 0}, {6, 0x0b, 0}, {7, 0x0b, 0}},
		},
		{
			name: "br_table and call_indirect",
			body: []byte{0x0e, 0x02, 0x00, 0x01, 0x00, 0x11, 0x00, 0x00, 0x0b},
			want: []decoded{{1, 0x0e, 0}, {6, 0x11, 0}, {9, 0x0b, 0}},
		},
		{
			name: "multi-memory memarg",
			body: []byte{0x28, 0x40, 0x01, 0x00, 0x0b},
			want: []decoded{{1, 0x28, 0}, {5, 0x0b, 0}},
		},
		{
			name: "float constants",
			body: []byte{0x43, 0, 0, 0x80, 0x3f, 0x44, 0, 0, 0, 0, 0, 0, 0xf0, 0x3f, 0x0b},
			want: []decoded{{1, 0x43, 0}, {6, 0x44, 0}, {15, 0x0b, 0}},
		},
		{
			name: "typed select",
			body: []byte{0x1c, 0x01, 0x7f, 0x1c, 0x01, 0x63, 0x70, 0x0b},
			want: []decoded{{1, 0x1c, 0}, {4, 0x1c, 0}, {8, 0x0b, 0}},
		},
		{
			name: "try_table catches",
			body: []byte{0x1f, 0x40, 0x02, 0x00, 0x00, 0x00, 0x02, 0x01, 0x0b, 0x0b},
			want: []decoded{{1, 0x1f, 0}, {9, 0x0b, 0}, {10, 0x0b, 0}},
		},
		{
			name: "simd immediates",
			body: append(append(append([]byte{0xfd, 0x0c}, make([]byte, 16)...),
				0xfd, 0x15, 0x00, // i8x16.extract_lane_s 0
				0xfd, 0x54, 0x00, 0x00, 0x03, // v128.load8_lane
				0xfd, 0x5c, 0x02, 0x00, // v128.load32_zero
				0xfd, 0x6e, // i8x16.add
				0xfd, 0xae, 0x01, // i32x4.add
				0xfd, 0x80, 0x02, // i8x16.relaxed_swizzle
				0xfd, 0x0d), append(make([]byte, 16), 0x0b)...),
			want: []decoded{
				{1, 0xfd, 0x0c}, {19, 0xfd, 0x15}, {22, 0xfd, 0x54}, {27, 0xfd, 0x5c},
				{31, 0xfd, 0x6e}, {33, 0xfd, 0xae}, {36, 0xfd, 0x100}, {39, 0xfd, 0x0d}, {57, 0x0b, 0},
			},
		},
		{
			name: "misc atomics gc",
			body: []byte{
				0xfc, 0x0a, 0x00, 0x00, // memory.copy
				0xfc, 0x0b, 0x00, // memory.fill
				0xfc, 0x00, // i32.trunc_sat_f32_s
				0xfe, 0x03, 0x00, // atomic.fence
				0xfe, 0x10, 0x02, 0x00, // i32.atomic.load
				0xfb, 0x01, 0x00, // struct.new_default
				0xfb, 0x18, 0x01, 0x00, 0x70, 0x70, // br_on_cast
				0x0b,
			},
			want: []decoded{
				{1, 0xfc, 0x0a}, {5, 0xfc, 0x0b}, {8, 0xfc, 0x00}, {10, 0xfe, 0x03},
				{13, 0xfe, 0x10}, {17, 0xfb, 0x01}, {20, 0xfb, 0x18}, {26, 0x0b, 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeAll(t, function(tt.body...))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("instructions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInstructionReaderLocals(t *testing.T) {
	fn := wasm.Function{Offset: bodyBase, Body: []byte{0x02, 0x03, 0x7f, 0x01, 0x63, 0x70, 0x0b}}
	ir := wasm.NewInstructionReader(fn)
	end, err := ir.LocalsEnd()
	if err != nil {
		t.Fatal(err)
	}
	if end != bodyBase+6 {
		t.Errorf("LocalsEnd = 0x%x, want 0x%x", end, bodyBase+6)
	}
	ins, err := ir.Next()
	if err != nil {
		t.Fatal(err)
	}
	if ins.Opcode != wasm.OpEnd || ins.Offset != bodyBase+6 {
		t.Errorf("got %+v", ins)
	}
	if ir.Remaining() != 0 {
		t.Errorf("Remaining = %d", ir.Remaining())
	}
}

func TestInstructionPredicates(t *testing.T) {
	simd := wasm.Instruction{Opcode: wasm.OpPrefixSIMD, SubOpcode: 0x6e}
	if !simd.IsSIMD() || !simd.Prefixed() {
		t.Errorf("0xFD instruction predicates wrong")
	}
	misc := wasm.Instruction{Opcode: wasm.OpPrefixMisc}
	if misc.IsSIMD() || !misc.Prefixed() {
		t.Errorf("0xFC instruction predicates wrong")
	}
	if (wasm.Instruction{Opcode: wasm.OpI32Add}).Prefixed() {
		t.Errorf("i32.add reported as prefixed")
	}
}

func TestInstructionReaderErrors(t *testing.T) {
	tests := []struct {
		name string
		body []byte
		kind werrors.Kind
	}{
		{"reserved opcode", []byte{0x27, 0x0b}, werrors.KindUnknownOpcode},
		{"unknown simd", []byte{0xfd, 0x80, 0x04, 0x0b}, werrors.KindUnknownOpcode},
		{"unknown misc", []byte{0xfc, 0x20, 0x0b}, werrors.KindUnknownOpcode},
		{"unknown gc", []byte{0xfb, 0x40, 0x0b}, werrors.KindUnknownOpcode},
		{"truncated immediate", []byte{0x41}, werrors.KindInvalidData},
		{"truncated v128 const", []byte{0xfd, 0x0c, 0x00}, werrors.KindInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ir := wasm.NewInstructionReader(function(tt.body...))
			var err error
			for err == nil {
				_, err = ir.Next()
			}
			if err == io.EOF {
				t.Fatal("expected decode error, got EOF")
			}
			if !errors.Is(err, &werrors.Error{Phase: werrors.PhaseDecode, Kind: tt.kind}) {
				t.Errorf("got %v, want kind %s", err, tt.kind)
			}
			var e *werrors.Error
			if !errors.As(err, &e) {
				t.Fatalf("got %T, want *errors.Error", err)
			}
			if e.Offset == nil {
				t.Errorf("error %v carries no offset", err)
			}
			if diff := cmp.Diff([]string{"func", "3"}, e.Path); diff != "" {
				t.Errorf("path mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnknownOpcodeOffset(t *testing.T) {
	ir := wasm.NewInstructionReader(function(0x01, 0x27))
	if _, err := ir.Next(); err != nil {
		t.Fatal(err)
	}
	_, err := ir.Next()
	var e *werrors.Error
	if !errors.As(err, &e) {
		t.Fatalf("got %T", err)
	}
	if *e.Offset != bodyBase+2 {
		t.Errorf("offset = 0x%x, want 0x%x", *e.Offset, bodyBase+2)
	}
}
