// Package wasm reads and writes just enough of the WebAssembly binary format
// to walk function bodies instruction by instruction.
//
// Parse records imported function count, code bodies with their absolute
// and code-section-relative offsets, custom sections, and the "name"
// section. Every other section is skipped by size. The decoder is not a
// validator: it checks section order and sizes, not types.
//
// # Supported Instructions
//
//	WebAssembly 2.0:
//	  - Control flow, calls, local/global/table access
//	  - Memory loads and stores (multi-memory memargs, memory64 limits)
//	  - Numeric, sign-extension and saturating truncation
//	  - Bulk memory and reference types (0xFC)
//
//	Post-2.0 Proposals:
//	  - SIMD and relaxed SIMD (0xFD)
//	  - Threads (0xFE)
//	  - GC (0xFB)
//	  - Exception handling (legacy try/catch and try_table)
//	  - Tail calls and typed function references
//
// # Walking Code
//
//	bin, err := wasm.Parse(data)
//	if err != nil {
//	    return err
//	}
//	for _, fn := range bin.Functions {
//	    ir := wasm.NewInstructionReader(fn)
//	    for {
//	        ins, err := ir.Next()
//	        if err == io.EOF {
//	            break
//	        }
//	        if err != nil {
//	            return err
//	        }
//	        // ins.Offset is absolute; ins.Offset-bin.CodeSection.Start is the
//	        // address DWARF line tables use.
//	    }
//	}
//
// # Building Modules
//
// Builder and Emitter produce small modules from Go code:
//
//	b := wasm.NewBuilder().WithNames().Memory(1, 0)
//	fn := b.Func("double", wasm.FuncType{
//	    Params:  []wasm.ValType{wasm.ValI32},
//	    Results: []wasm.ValType{wasm.ValI32},
//	}, nil, func(e *wasm.Emitter) {
//	    e.LocalGet(0).LocalGet(0).Op(wasm.OpI32Add)
//	})
//	b.Export("double", wasm.KindFunc, fn)
//	data, err := b.Bytes()
package wasm
