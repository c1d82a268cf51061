// Command simd-detect reports WebAssembly SIMD usage per function and per
// source line, and hosts byte-buffer guests for quick experiments.
//
// Usage:
//
//	simd-detect [flags] <file.wasm>
//	simd-detect guest <name> -o guest.wasm
//	simd-detect transform <file.wasm> --func process_bytes --in data.bin
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
