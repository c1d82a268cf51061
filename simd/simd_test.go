package simd_test

import (
	"strings"
	"testing"

	"github.com/wippyai/simd-detect/simd"
	"github.com/wippyai/simd-detect/wasm"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		ins  wasm.Instruction
		want string
		ok   bool
	}{
		{"v128.load", wasm.Instruction{Opcode: 0xFD, SubOpcode: 0x00}, "v128.load", true},
		{"v128.const", wasm.Instruction{Opcode: 0xFD, SubOpcode: 0x0c}, "v128.const", true},
		{"i8x16.add", wasm.Instruction{Opcode: 0xFD, SubOpcode: 0x6e}, "i8x16.add", true},
		{"f32x4.ceil", wasm.Instruction{Opcode: 0xFD, SubOpcode: 0x67}, "f32x4.ceil", true},
		{"f64x2.nearest", wasm.Instruction{Opcode: 0xFD, SubOpcode: 0x94}, "f64x2.nearest", true},
		{"f32x4.abs", wasm.Instruction{Opcode: 0xFD, SubOpcode: 0xe0}, "f32x4.abs", true},
		{"f64x2.sqrt", wasm.Instruction{Opcode: 0xFD, SubOpcode: 0xef}, "f64x2.sqrt", true},
		{"last standard", wasm.Instruction{Opcode: 0xFD, SubOpcode: 0xff}, "f64x2.convert_low_i32x4_u", true},
		{"relaxed madd", wasm.Instruction{Opcode: 0xFD, SubOpcode: 0x105}, "f32x4.relaxed_madd", true},
		{"reserved 0x9a", wasm.Instruction{Opcode: 0xFD, SubOpcode: 0x9a}, "", false},
		{"reserved 0xee", wasm.Instruction{Opcode: 0xFD, SubOpcode: 0xee}, "", false},
		{"beyond relaxed", wasm.Instruction{Opcode: 0xFD, SubOpcode: 0x114}, "", false},
		{"scalar add", wasm.Instruction{Opcode: wasm.OpI32Add}, "", false},
		{"misc prefix", wasm.Instruction{Opcode: 0xFC, SubOpcode: 0x0a}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := simd.Classify(tt.ins)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Classify = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestTableShape(t *testing.T) {
	ops := simd.Ops()
	if simd.Count() != 256 || len(ops) != 256 {
		t.Fatalf("Count = %d, len = %d, want 256", simd.Count(), len(ops))
	}

	var relaxed int
	names := make(map[string]bool)
	for i, op := range ops {
		if i > 0 && op.Code <= ops[i-1].Code {
			t.Errorf("table not sorted at %s", op.Name)
		}
		if names[op.Name] {
			t.Errorf("duplicate name %s", op.Name)
		}
		names[op.Name] = true

		if op.Relaxed {
			relaxed++
			if op.Code < 0x100 {
				t.Errorf("%s flagged relaxed below 0x100", op.Name)
			}
		}
		if !strings.HasPrefix(op.Name, string(op.Shape)+".") {
			t.Errorf("%s has shape %s", op.Name, op.Shape)
		}
		if got, ok := simd.Lookup(op.Code); !ok || got != op {
			t.Errorf("Lookup(0x%x) = %+v, %v", op.Code, got, ok)
		}
		if got, ok := simd.ByName(op.Name); !ok || got.Code != op.Code {
			t.Errorf("ByName(%s) = %+v, %v", op.Name, got, ok)
		}
	}
	if relaxed != 20 {
		t.Errorf("relaxed ops = %d, want 20", relaxed)
	}
}

func TestClasses(t *testing.T) {
	tests := []struct {
		name  string
		class simd.Class
	}{
		{"v128.load8_lane", simd.ClassMemory},
		{"v128.const", simd.ClassConstant},
		{"i8x16.shuffle", simd.ClassShuffle},
		{"i32x4.extract_lane", simd.ClassLane},
		{"f64x2.splat", simd.ClassLane},
		{"i64x2.ge_s", simd.ClassCompare},
		{"v128.bitselect", simd.ClassBitwise},
		{"i16x8.shr_u", simd.ClassBitwise},
		{"i32x4.relaxed_laneselect", simd.ClassBitwise},
		{"f32x4.demote_f64x2_zero", simd.ClassConversion},
		{"i32x4.trunc_sat_f32x4_s", simd.ClassConversion},
		{"f32x4.trunc", simd.ClassArithmetic},
		{"i32x4.dot_i16x8_s", simd.ClassArithmetic},
	}
	for _, tt := range tests {
		op, ok := simd.ByName(tt.name)
		if !ok {
			t.Errorf("%s missing", tt.name)
			continue
		}
		if op.Class != tt.class {
			t.Errorf("%s class = %s, want %s", tt.name, op.Class, tt.class)
		}
	}
}

func TestOpsReturnsCopy(t *testing.T) {
	ops := simd.Ops()
	ops[0].Name = "mutated"
	if op, _ := simd.Lookup(0); op.Name != "v128.load" {
		t.Error("Ops exposed the internal table")
	}
}
