package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/simd-detect/bytebuf"
	"github.com/wippyai/simd-detect/errors"
)

type transformOptions struct {
	fn     string
	in     string
	out    string
	verify string
	outCap int
	delta  uint8
}

func newTransformCmd(root *rootOptions) *cobra.Command {
	var opts transformOptions

	cmd := &cobra.Command{
		Use:   "transform <file.wasm>",
		Short: "Run a byte-buffer transform exported by a guest module",
		Long: `Loads a guest exporting memory, alloc_bytes and free_bytes, copies the
--in file (or stdin with "-") into guest memory, calls --func and writes
the result to --out or stdout.

--verify compares the result with a Go reference implementation:
increment, line-offsets, split-lines, sum-u8, sum-u16 or sum-f32.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, root, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.fn, "func", "", "transform export (default: the only one)")
	f.StringVar(&opts.in, "in", "-", "input file, - for stdin")
	f.StringVar(&opts.out, "out", "", "output file (default stdout)")
	f.IntVar(&opts.outCap, "out-cap", 0, "output buffer capacity (default from the reference or the input length)")
	f.StringVar(&opts.verify, "verify", "", "reference transform to check against")
	f.Uint8Var(&opts.delta, "delta", 1, "delta for the increment reference")
	f.Uint32("memory-pages", 1024, "guest memory limit in 64KiB pages (0 = no limit)")
	return cmd
}

func runTransform(cmd *cobra.Command, root *rootOptions, opts transformOptions, path string) error {
	cfg, logger, err := setup(cmd, root)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	ctx := cmd.Context()

	wasmBytes, err := readInput(path)
	if err != nil {
		return err
	}
	input, err := readData(cmd.InOrStdin(), opts.in)
	if err != nil {
		return err
	}

	rt, err := bytebuf.NewRuntime(ctx, bytebuf.Config{MemoryLimitPages: cfg.Runtime.MemoryPages})
	if err != nil {
		return err
	}
	defer rt.Close(ctx)

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	mod, err := rt.Load(ctx, name, wasmBytes)
	if err != nil {
		return err
	}

	fn := opts.fn
	if fn == "" {
		transforms := mod.Transforms()
		if len(transforms) != 1 {
			return errors.InvalidInput(errors.PhaseCall,
				fmt.Sprintf("module exports %d transforms (%s); pick one with --func", len(transforms), strings.Join(transforms, ", ")))
		}
		fn = transforms[0]
	}

	var ref *bytebuf.Reference
	if opts.verify != "" {
		r, err := bytebuf.LookupReference(opts.verify, opts.delta)
		if err != nil {
			return err
		}
		ref = &r
	} else if r, err := bytebuf.LookupReference(fn, opts.delta); err == nil {
		ref = &r
	}

	outCap := opts.outCap
	if outCap <= 0 {
		outCap = len(input)
		if ref != nil {
			outCap = ref.OutCap(len(input))
		}
	}

	logger.Info("calling transform",
		zap.String("module", mod.Name()),
		zap.String("func", fn),
		zap.Int("input", len(input)),
		zap.Int("out_cap", outCap))
	result, err := mod.Call(ctx, fn, input, uint32(outCap))
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	if opts.verify != "" {
		if err := bytebuf.Verify(ctx, mod, fn, *ref, input); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "%s matches the %s reference\n", fn, ref.Name)
	}

	if opts.out != "" {
		if err := os.WriteFile(opts.out, result, 0o644); err != nil {
			return errors.New(errors.PhaseCall, errors.KindIO).Cause(err).Detail("write %s", opts.out).Build()
		}
	} else if _, err := cmd.OutOrStdout().Write(result); err != nil {
		return err
	}
	fmt.Fprintf(stderr, "%s: %s in, %s out\n", fn,
		humanize.Bytes(uint64(len(input))), humanize.Bytes(uint64(len(result))))
	return nil
}

func readData(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.ReadFailed("stdin", err)
		}
		return data, nil
	}
	return readInput(path)
}
