package wasm

import (
	bin "github.com/wippyai/simd-detect/wasm/internal/binary"
)

// Emitter writes an instruction sequence. Methods mirror the text format
// closely enough that guest bodies read like their .wat counterparts.
type Emitter struct {
	w bin.Writer
}

// Bytes returns the encoded expression.
func (e *Emitter) Bytes() []byte {
	return e.w.Bytes()
}

// Len returns the current expression length, usable as a relative offset.
func (e *Emitter) Len() int {
	return e.w.Len()
}

// Op emits an immediate-free single-byte opcode.
func (e *Emitter) Op(op byte) *Emitter {
	e.w.Byte(op)
	return e
}

// Raw emits pre-encoded bytes.
func (e *Emitter) Raw(b []byte) *Emitter {
	e.w.WriteBytes(b)
	return e
}

func (e *Emitter) Block(bt byte) *Emitter { return e.block(OpBlock, bt) }
func (e *Emitter) Loop(bt byte) *Emitter  { return e.block(OpLoop, bt) }
func (e *Emitter) If(bt byte) *Emitter    { return e.block(OpIf, bt) }
func (e *Emitter) Else() *Emitter         { return e.Op(OpElse) }
func (e *Emitter) End() *Emitter          { return e.Op(OpEnd) }
func (e *Emitter) Return() *Emitter       { return e.Op(OpReturn) }
func (e *Emitter) Drop() *Emitter         { return e.Op(OpDrop) }

func (e *Emitter) block(op, bt byte) *Emitter {
	e.w.Byte(op)
	e.w.Byte(bt)
	return e
}

func (e *Emitter) Br(label uint32) *Emitter       { return e.idx(OpBr, label) }
func (e *Emitter) BrIf(label uint32) *Emitter     { return e.idx(OpBrIf, label) }
func (e *Emitter) Call(fn uint32) *Emitter        { return e.idx(OpCall, fn) }
func (e *Emitter) LocalGet(i uint32) *Emitter     { return e.idx(OpLocalGet, i) }
func (e *Emitter) LocalSet(i uint32) *Emitter     { return e.idx(OpLocalSet, i) }
func (e *Emitter) LocalTee(i uint32) *Emitter     { return e.idx(OpLocalTee, i) }
func (e *Emitter) GlobalGet(i uint32) *Emitter    { return e.idx(OpGlobalGet, i) }
func (e *Emitter) GlobalSet(i uint32) *Emitter    { return e.idx(OpGlobalSet, i) }
func (e *Emitter) MemoryGrow(mem uint32) *Emitter { return e.idx(OpMemoryGrow, mem) }
func (e *Emitter) MemorySize(mem uint32) *Emitter { return e.idx(OpMemorySize, mem) }

func (e *Emitter) idx(op byte, v uint32) *Emitter {
	e.w.Byte(op)
	e.w.WriteU32(v)
	return e
}

// I32Const emits i32.const.
func (e *Emitter) I32Const(v int32) *Emitter {
	e.w.Byte(OpI32Const)
	e.w.WriteS32(v)
	return e
}

// I64Const emits i64.const.
func (e *Emitter) I64Const(v int64) *Emitter {
	e.w.Byte(OpI64Const)
	e.w.WriteS64(v)
	return e
}

// F32Const emits f32.const.
func (e *Emitter) F32Const(v float32) *Emitter {
	e.w.Byte(OpF32Const)
	e.w.WriteF32(v)
	return e
}

// Mem emits a load or store with a memarg.
func (e *Emitter) Mem(op byte, align, offset uint32) *Emitter {
	e.w.Byte(op)
	e.w.WriteU32(align)
	e.w.WriteU32(offset)
	return e
}

// SIMD emits an immediate-free 0xFD instruction.
func (e *Emitter) SIMD(sub uint32) *Emitter {
	e.w.Byte(OpPrefixSIMD)
	e.w.WriteU32(sub)
	return e
}

// SIMDMem emits a vector load or store.
func (e *Emitter) SIMDMem(sub, align, offset uint32) *Emitter {
	e.SIMD(sub)
	e.w.WriteU32(align)
	e.w.WriteU32(offset)
	return e
}

// SIMDLane emits a lane extract or replace.
func (e *Emitter) SIMDLane(sub uint32, lane byte) *Emitter {
	e.SIMD(sub)
	e.w.Byte(lane)
	return e
}

// V128Const emits v128.const.
func (e *Emitter) V128Const(v [16]byte) *Emitter {
	e.SIMD(SimdV128Const)
	e.w.WriteBytes(v[:])
	return e
}

// Misc emits a 0xFC instruction with its index immediates.
func (e *Emitter) Misc(sub uint32, imms ...uint32) *Emitter {
	e.w.Byte(OpPrefixMisc)
	e.w.WriteU32(sub)
	for _, v := range imms {
		e.w.WriteU32(v)
	}
	return e
}
