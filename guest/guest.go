// Package guest builds small byte-buffer guest modules used to exercise the
// bytebuf host and the analyzer without an external toolchain.
//
// Every guest exports memory, alloc_bytes and free_bytes plus one or more
// transforms with the signature (in_ptr, in_len, out_ptr, out_len) -> i32.
// alloc_bytes is a 16-byte aligned bump allocator that grows memory on
// demand; free_bytes does nothing.
package guest

import (
	"sort"

	"github.com/wippyai/simd-detect/errors"
	"github.com/wippyai/simd-detect/wasm"
)

// Export names shared by all guests.
const (
	ExportMemory = "memory"
	ExportAlloc  = "alloc_bytes"
	ExportFree   = "free_bytes"

	FuncProcessBytes = "process_bytes"
	FuncSumU8        = "sum_u8_bytes"
)

// heapBase is the first address handed out by alloc_bytes.
const heapBase = 1024

var (
	i32 = wasm.ValI32

	allocType     = wasm.FuncType{Params: []wasm.ValType{i32}, Results: []wasm.ValType{i32}}
	freeType      = wasm.FuncType{Params: []wasm.ValType{i32, i32}}
	transformType = wasm.FuncType{Params: []wasm.ValType{i32, i32, i32, i32}, Results: []wasm.ValType{i32}}
)

// Transform parameter and local indices.
const (
	inPtr uint32 = iota
	inLen
	outPtr
	outLen
	idx
)

// Entry describes a catalog guest.
type Entry struct {
	Build       func() ([]byte, error)
	Name        string
	Description string
	Transform   string
	Delta       byte
	SIMD        bool
}

var catalog = []Entry{
	{Name: "increment", Description: "process_bytes adding 1 to every byte, scalar loop",
		Transform: FuncProcessBytes, Delta: 1},
	{Name: "increment-simd", Description: "process_bytes adding 1 with i8x16.add over 16-byte chunks",
		Transform: FuncProcessBytes, Delta: 1, SIMD: true},
	{Name: "increment2-simd", Description: "process_bytes adding 2 with i8x16.add over 16-byte chunks",
		Transform: FuncProcessBytes, Delta: 2, SIMD: true},
	{Name: "sum-u8", Description: "sum_u8_bytes widening with extadd_pairwise into i32x4 lanes",
		Transform: FuncSumU8, SIMD: true},
}

func init() {
	for i := range catalog {
		e := &catalog[i]
		switch e.Transform {
		case FuncProcessBytes:
			delta, simd := e.Delta, e.SIMD
			e.Build = func() ([]byte, error) { return Increment(delta, simd) }
		case FuncSumU8:
			e.Build = SumU8
		}
	}
}

// Catalog returns the built-in guests sorted by name.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup finds a catalog guest by name.
func Lookup(name string) (Entry, error) {
	for _, e := range catalog {
		if e.Name == name {
			return e, nil
		}
	}
	return Entry{}, errors.NotFound(errors.PhaseRuntime, "guest", name)
}

// newModule returns a builder with memory and the allocator exports.
func newModule(name string) *wasm.Builder {
	b := wasm.NewBuilder().ModuleName(name).WithNames().Memory(1, 0)
	heap := b.Global(wasm.ValI32, true, heapBase)

	alloc := b.Func(ExportAlloc, allocType, []wasm.ValType{i32, i32}, func(e *wasm.Emitter) {
		const size, ptr, end = 0, 1, 2
		e.GlobalGet(heap).I32Const(15).Op(wasm.OpI32Add).I32Const(-16).Op(wasm.OpI32And).LocalTee(ptr)
		e.LocalGet(size).Op(wasm.OpI32Add).LocalSet(end)

		e.LocalGet(end).MemorySize(0).I32Const(16).Op(wasm.OpI32Shl).Op(wasm.OpI32GtU).If(wasm.BlockTypeVoid)
		e.LocalGet(end).MemorySize(0).I32Const(16).Op(wasm.OpI32Shl).Op(wasm.OpI32Sub)
		e.I32Const(0xffff).Op(wasm.OpI32Add).I32Const(16).Op(wasm.OpI32ShrU)
		e.MemoryGrow(0).I32Const(-1).Op(wasm.OpI32Eq).If(wasm.BlockTypeVoid)
		e.I32Const(0).Return()
		e.End()
		e.End()

		e.LocalGet(end).GlobalSet(heap)
		e.LocalGet(ptr)
	})
	free := b.Func(ExportFree, freeType, nil, func(*wasm.Emitter) {})

	b.Export(ExportMemory, wasm.KindMemory, 0)
	b.Export(ExportAlloc, wasm.KindFunc, alloc)
	b.Export(ExportFree, wasm.KindFunc, free)
	return b
}

// rejectShortOutput returns -1 when out_len < min, where min is left on the
// stack by push.
func rejectShortOutput(e *wasm.Emitter, push func(e *wasm.Emitter)) {
	e.LocalGet(outLen)
	push(e)
	e.Op(wasm.OpI32LtU).If(wasm.BlockTypeVoid).I32Const(-1).Return().End()
}

// chunkLoop emits a loop running body while idx+16 <= in_len. body must
// leave idx unchanged; the loop advances it by 16.
func chunkLoop(e *wasm.Emitter, body func(e *wasm.Emitter)) {
	e.Block(wasm.BlockTypeVoid).Loop(wasm.BlockTypeVoid)
	e.LocalGet(idx).I32Const(16).Op(wasm.OpI32Add).LocalGet(inLen).Op(wasm.OpI32GtU).BrIf(1)
	body(e)
	e.LocalGet(idx).I32Const(16).Op(wasm.OpI32Add).LocalSet(idx)
	e.Br(0)
	e.End().End()
}

// byteLoop emits a loop running body while idx < in_len, advancing by 1.
func byteLoop(e *wasm.Emitter, body func(e *wasm.Emitter)) {
	e.Block(wasm.BlockTypeVoid).Loop(wasm.BlockTypeVoid)
	e.LocalGet(idx).LocalGet(inLen).Op(wasm.OpI32GeU).BrIf(1)
	body(e)
	e.LocalGet(idx).I32Const(1).Op(wasm.OpI32Add).LocalSet(idx)
	e.Br(0)
	e.End().End()
}

// addr pushes base+idx.
func addr(e *wasm.Emitter, base uint32) {
	e.LocalGet(base).LocalGet(idx).Op(wasm.OpI32Add)
}

// Increment builds a guest whose process_bytes writes in[i]+delta to out[i]
// and returns in_len. out_len must be at least in_len.
func Increment(delta byte, simd bool) ([]byte, error) {
	name := "increment"
	if simd {
		name += "-simd"
	}
	b := newModule(name)

	locals := []wasm.ValType{i32}
	if simd {
		locals = append(locals, wasm.ValV128)
	}
	fn := b.Func(FuncProcessBytes, transformType, locals, func(e *wasm.Emitter) {
		rejectShortOutput(e, func(e *wasm.Emitter) { e.LocalGet(inLen) })

		if simd {
			const splat = idx + 1
			e.I32Const(int32(delta)).SIMD(wasm.SimdI8x16Splat).LocalSet(splat)
			chunkLoop(e, func(e *wasm.Emitter) {
				addr(e, outPtr)
				addr(e, inPtr)
				e.SIMDMem(wasm.SimdV128Load, 0, 0)
				e.LocalGet(splat).SIMD(wasm.SimdI8x16Add)
				e.SIMDMem(wasm.SimdV128Store, 0, 0)
			})
		}

		byteLoop(e, func(e *wasm.Emitter) {
			addr(e, outPtr)
			addr(e, inPtr)
			e.Mem(wasm.OpI32Load8U, 0, 0)
			e.I32Const(int32(delta)).Op(wasm.OpI32Add)
			e.Mem(wasm.OpI32Store8, 0, 0)
		})

		e.LocalGet(inLen)
	})
	b.Export(FuncProcessBytes, wasm.KindFunc, fn)
	return b.Bytes()
}

// SumU8 builds a guest whose sum_u8_bytes writes the sum of the input bytes
// as a little-endian f32 and returns 4. out_len must be at least 4.
func SumU8() ([]byte, error) {
	b := newModule("sum-u8")

	const acc, sum = idx + 1, idx + 2
	fn := b.Func(FuncSumU8, transformType, []wasm.ValType{i32, wasm.ValV128, wasm.ValF32}, func(e *wasm.Emitter) {
		rejectShortOutput(e, func(e *wasm.Emitter) { e.I32Const(4) })

		chunkLoop(e, func(e *wasm.Emitter) {
			e.LocalGet(acc)
			addr(e, inPtr)
			e.SIMDMem(wasm.SimdV128Load, 0, 0)
			e.SIMD(wasm.SimdI16x8ExtAddPairwiseI8x16U)
			e.SIMD(wasm.SimdI32x4ExtAddPairwiseI16x8U)
			e.SIMD(wasm.SimdI32x4Add).LocalSet(acc)
		})

		for lane := byte(0); lane < 4; lane++ {
			e.LocalGet(acc).SIMDLane(wasm.SimdI32x4ExtractLane, lane).Op(wasm.OpF32ConvertI32U)
			if lane > 0 {
				e.Op(wasm.OpF32Add)
			}
		}
		e.LocalSet(sum)

		byteLoop(e, func(e *wasm.Emitter) {
			e.LocalGet(sum)
			addr(e, inPtr)
			e.Mem(wasm.OpI32Load8U, 0, 0).Op(wasm.OpF32ConvertI32U)
			e.Op(wasm.OpF32Add).LocalSet(sum)
		})

		e.LocalGet(outPtr).LocalGet(sum).Mem(wasm.OpF32Store, 2, 0)
		e.I32Const(4)
	})
	b.Export(FuncSumU8, wasm.KindFunc, fn)
	return b.Bytes()
}
