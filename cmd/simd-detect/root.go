package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	simddetect "github.com/wippyai/simd-detect"
	"github.com/wippyai/simd-detect/analyzer"
	"github.com/wippyai/simd-detect/bytebuf"
	"github.com/wippyai/simd-detect/config"
	"github.com/wippyai/simd-detect/debuginfo"
	"github.com/wippyai/simd-detect/errors"
	"github.com/wippyai/simd-detect/report"
)

type rootOptions struct {
	configPath  string
	verbose     bool
	interactive bool
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "simd-detect [flags] <file.wasm>",
		Short: "Report WebAssembly SIMD usage per function and source line",
		Long: `simd-detect decodes every function body of a core WebAssembly module,
counts fixed-width and relaxed SIMD instructions and, when DWARF line
tables are embedded, attributes them to source lines.

The JSON (or YAML) report goes to --output or stdout; a short summary
goes to stderr.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args[0])
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (yaml, toml or json)")
	pf.BoolVarP(&opts.verbose, "verbose", "V", false, "verbose logging")
	pf.String("log-level", "warn", "log level when not verbose (debug, info, warn, error)")

	f := cmd.Flags()
	f.StringP("variant", "v", analyzer.DefaultVariant, "build variant label recorded in the report")
	f.StringP("output", "o", "", "write the report to this file instead of stdout")
	f.String("format", "json", "report format: json or yaml")
	f.Int("top", report.DefaultTop, "number of opcodes in the summary")
	f.Int("lines", 5, "number of source lines in the summary")
	f.String("line-mode", string(analyzer.LineModeInstruction), "line attribution: instruction or function")
	f.Float64("min-density", 0, "hide functions below this SIMD density")
	f.Int("workers", 0, "concurrent function scans (0 = GOMAXPROCS)")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "browse the report in a terminal UI")

	cmd.AddCommand(newGuestCmd(), newTransformCmd(&opts))
	return cmd
}

// setup loads configuration and installs package loggers.
func setup(cmd *cobra.Command, opts *rootOptions) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(opts.configPath, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg, opts.verbose)
	if err != nil {
		return nil, nil, err
	}
	analyzer.SetLogger(logger.Named("analyzer"))
	debuginfo.SetLogger(logger.Named("debuginfo"))
	bytebuf.SetLogger(logger.Named("bytebuf"))
	return cfg, logger, nil
}

func newLogger(cfg *config.Config, verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "console"
	zc.DisableStacktrace = true
	return zc.Build()
}

func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ReadFailed(path, err)
	}
	return data, nil
}

func runAnalyze(cmd *cobra.Command, opts rootOptions, path string) error {
	cfg, logger, err := setup(cmd, &opts)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("analyzing", zap.String("path", path), zap.String("variant", cfg.Variant))
	aopts := cfg.AnalyzerOptions(path)
	aopts.Logger = logger.Named("analyzer")
	rep, err := simddetect.AnalyzeFile(cmd.Context(), path, aopts)
	if err != nil {
		return err
	}
	logger.Info("debug info", zap.Bool("found", rep.HasDebugInfo))

	if opts.interactive {
		return runInteractive(rep)
	}

	stderr := cmd.ErrOrStderr()
	if cfg.Output != "" {
		if err := report.WriteFile(cfg.Output, rep, cfg.ReportFormat()); err != nil {
			return err
		}
		logger.Info("wrote report", zap.String("path", cfg.Output))
		fmt.Fprintf(stderr, "Wrote report to: %s\n", cfg.Output)
	} else if err := report.Write(cmd.OutOrStdout(), rep, cfg.ReportFormat()); err != nil {
		return err
	}

	return report.Summary(stderr, rep, report.SummaryOptions{
		Top:   cfg.Top,
		Lines: cfg.Lines,
		Color: report.IsTerminal(stderr),
	})
}

