// Package simd classifies decoded instructions against the static table of
// WebAssembly vector opcodes.
//
// Only 0xFD-prefixed instructions classify. The table holds the 236
// fixed-width SIMD instructions and the 20 relaxed-SIMD instructions; every
// sub-opcode maps to at most one canonical text-format name.
package simd

import "github.com/wippyai/simd-detect/wasm"

// Shape is the lane interpretation of an instruction.
type Shape string

const (
	ShapeV128  Shape = "v128"
	ShapeI8x16 Shape = "i8x16"
	ShapeI16x8 Shape = "i16x8"
	ShapeI32x4 Shape = "i32x4"
	ShapeI64x2 Shape = "i64x2"
	ShapeF32x4 Shape = "f32x4"
	ShapeF64x2 Shape = "f64x2"
)

// Class is a coarse operation category.
type Class string

const (
	ClassMemory     Class = "memory"
	ClassConstant   Class = "constant"
	ClassLane       Class = "lane"
	ClassCompare    Class = "compare"
	ClassBitwise    Class = "bitwise"
	ClassArithmetic Class = "arithmetic"
	ClassConversion Class = "conversion"
	ClassShuffle    Class = "shuffle"
)

// Op describes one vector instruction.
type Op struct {
	Code    uint32
	Name    string
	Shape   Shape
	Class   Class
	Relaxed bool
}

// Highest sub-opcode in the table.
const maxCode = 0x113

var (
	byCode [maxCode + 1]int16
	byName = make(map[string]int, len(table))
)

func init() {
	for i := range byCode {
		byCode[i] = -1
	}
	for i, op := range table {
		byCode[op.Code] = int16(i)
		byName[op.Name] = i
	}
}

// Lookup returns the table entry for a 0xFD sub-opcode.
func Lookup(sub uint32) (Op, bool) {
	if sub > maxCode || byCode[sub] < 0 {
		return Op{}, false
	}
	return table[byCode[sub]], true
}

// ByName returns the table entry for a canonical name.
func ByName(name string) (Op, bool) {
	i, ok := byName[name]
	if !ok {
		return Op{}, false
	}
	return table[i], true
}

// Classify maps an instruction to its canonical SIMD name.
func Classify(ins wasm.Instruction) (string, bool) {
	if !ins.IsSIMD() {
		return "", false
	}
	op, ok := Lookup(ins.SubOpcode)
	if !ok {
		return "", false
	}
	return op.Name, true
}

// Ops returns a copy of the table in sub-opcode order.
func Ops() []Op {
	out := make([]Op, len(table))
	copy(out, table[:])
	return out
}

// Count returns the number of table entries.
func Count() int {
	return len(table)
}
