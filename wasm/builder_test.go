package wasm_test

import (
	"context"
	"testing"

	"github.com/tetratelabs/wazero"

	"github.com/wippyai/simd-detect/wasm"
)

func TestBuilderProducesValidModule(t *testing.T) {
	i32 := []wasm.ValType{wasm.ValI32}
	b := wasm.NewBuilder().WithNames().Memory(1, 4)
	b.ImportFunc("env", "trace", wasm.FuncType{Params: i32})
	heap := b.Global(wasm.ValI32, true, 1024)
	fn := b.Func("splat_add", wasm.FuncType{Params: i32, Results: i32}, []wasm.ValType{wasm.ValV128}, func(e *wasm.Emitter) {
		e.LocalGet(0).SIMD(wasm.SimdI8x16Splat).LocalSet(1)
		e.LocalGet(1).LocalGet(1).SIMD(wasm.SimdI8x16Add)
		e.SIMDLane(wasm.SimdI32x4ExtractLane, 0)
		e.GlobalGet(heap).Op(wasm.OpI32Add)
		e.Block(wasm.BlockTypeVoid).I32Const(0).BrIf(0).End()
		e.I32Const(0).Call(0)
	})
	b.Export("memory", wasm.KindMemory, 0)
	b.Export("splat_add", wasm.KindFunc, fn)

	data, err := b.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	compiled, err := rt.CompileModule(ctx, data)
	if err != nil {
		t.Fatalf("wazero rejected builder output: %v", err)
	}
	if _, ok := compiled.ExportedFunctions()["splat_add"]; !ok {
		t.Error("splat_add not exported")
	}
	if _, ok := compiled.ExportedMemories()["memory"]; !ok {
		t.Error("memory not exported")
	}

	bin, err := wasm.Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if bin.ImportedFuncs != 1 || len(bin.Functions) != 1 || bin.Functions[0].Index != fn {
		t.Errorf("parsed shape: imports=%d funcs=%+v", bin.ImportedFuncs, bin.Functions)
	}

	var simd int
	ir := wasm.NewInstructionReader(bin.Functions[0])
	for {
		ins, err := ir.Next()
		if err != nil {
			break
		}
		if ins.IsSIMD() {
			simd++
		}
	}
	if simd != 3 {
		t.Errorf("SIMD instructions = %d, want 3", simd)
	}
}

func TestBuilderImportAfterFunc(t *testing.T) {
	b := wasm.NewBuilder()
	b.Func("f", wasm.FuncType{}, nil, func(e *wasm.Emitter) {})
	b.ImportFunc("env", "late", wasm.FuncType{})
	if _, err := b.Bytes(); err == nil {
		t.Fatal("expected error for import declared after functions")
	}
}

func TestBuilderTypeInterning(t *testing.T) {
	b := wasm.NewBuilder()
	a := b.Type(wasm.FuncType{Params: []wasm.ValType{wasm.ValI32}})
	c := b.Type(wasm.FuncType{Params: []wasm.ValType{wasm.ValI32}})
	d := b.Type(wasm.FuncType{Results: []wasm.ValType{wasm.ValI32}})
	if a != c {
		t.Errorf("identical signatures got indices %d and %d", a, c)
	}
	if a == d {
		t.Error("different signatures share an index")
	}
}

func TestEmitterLen(t *testing.T) {
	e := &wasm.Emitter{}
	e.I32Const(300)
	if e.Len() != 3 {
		t.Errorf("Len = %d, want 3", e.Len())
	}
	e.V128Const([16]byte{})
	if e.Len() != 3+2+16 {
		t.Errorf("Len = %d, want 21", e.Len())
	}
}
