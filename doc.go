// Package simddetect reports how much of a WebAssembly module's code is
// SIMD, per function and per source line.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	simddetect/          Root package with file-level entry points
//	├── wasm/            Core module section walk, instruction decoder, module builder
//	├── simd/            Static table of SIMD opcodes with shape and class
//	├── debuginfo/       DWARF line tables from .debug_* custom sections
//	├── analyzer/        Per-function scanning and report aggregation
//	├── report/          JSON/YAML serialization and console summary
//	├── bytebuf/         wazero host for byte-buffer guest modules
//	├── guest/           Generated example guests (scalar and SIMD)
//	├── config/          viper-backed settings for the CLI
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
//	rep, err := simddetect.AnalyzeFile(ctx, "app.wasm", analyzer.Options{
//	    Variant: "simd128",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d of %d ops are SIMD\n", rep.TotalSIMDOps, rep.TotalOps)
//
// # Attribution
//
// Addresses handed to the DWARF line table are relative to the start of the
// code section payload, which is what wasm producers emit in .debug_line.
// By default every SIMD instruction is attributed to its own source line;
// analyzer.LineModeFunction attributes a function's whole histogram to its
// entry line instead.
//
// # Thread Safety
//
// Analyze may be called concurrently. A bytebuf.Module serializes calls into
// its guest.
package simddetect
