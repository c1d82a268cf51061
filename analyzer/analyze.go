package analyzer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"runtime"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/simd-detect/debuginfo"
	"github.com/wippyai/simd-detect/errors"
	"github.com/wippyai/simd-detect/wasm"
)

// DefaultVariant labels reports whose build variant was not given.
const DefaultVariant = "unknown"

// Options controls Analyze.
type Options struct {
	// Logger overrides the package logger for one call.
	Logger *zap.Logger
	// Variant is a free-form build label, e.g. "simd128" or "scalar".
	Variant string
	// Path is recorded in the report as given.
	Path     string
	LineMode LineMode
	// MinDensity drops function rows below this SIMD density.
	MinDensity float64
	// Workers bounds concurrent function scans. Zero means GOMAXPROCS.
	Workers int
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return Logger()
}

// Analyze decodes a core module, scans every function body and aggregates
// the SIMD report.
func Analyze(ctx context.Context, data []byte, opts Options) (*Report, error) {
	log := opts.logger()

	if opts.Variant == "" {
		opts.Variant = DefaultVariant
	}
	mode, err := ParseLineMode(string(opts.LineMode))
	if err != nil {
		return nil, err
	}
	if opts.MinDensity < 0 || opts.MinDensity > 1 {
		return nil, errors.New(errors.PhaseAnalyze, errors.KindInvalidInput).
			Value(opts.MinDensity).
			Detail("min density %v outside [0,1]", opts.MinDensity).
			Build()
	}
	if wasm.IsComponent(data) {
		return nil, errors.Unsupported(errors.PhaseAnalyze, "component binaries")
	}

	bin, err := wasm.Parse(data)
	if err != nil {
		return nil, err
	}

	resolver, err := debuginfo.Load(bin)
	if err != nil {
		log.Warn("failed to load debug info", zap.String("path", opts.Path), zap.Error(err))
		resolver = nil
	}
	var lines LineResolver
	if resolver != nil {
		lines = resolver
		for _, u := range resolver.Units() {
			log.Debug("debug info unit",
				zap.String("name", u.Name),
				zap.String("comp_dir", u.CompDir),
				zap.String("producer", u.Producer),
				zap.Int("rows", u.Rows))
		}
		log.Debug("line table loaded", zap.Int("rows", len(resolver.Rows())))
	}
	log.Debug("decoded module",
		zap.String("path", opts.Path),
		zap.Int("functions", len(bin.Functions)),
		zap.Uint32("imported_functions", bin.ImportedFuncs),
		zap.Bool("debug_info", resolver != nil))

	scans, err := scanAll(ctx, bin.Functions, lines, mode, opts.Workers)
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(data)
	rep := &Report{
		Variant:       opts.Variant,
		Path:          opts.Path,
		Hash:          hex.EncodeToString(sum[:8]),
		Size:          len(data),
		HasDebugInfo:  resolver != nil,
		FunctionCount: len(bin.Functions),
		OpcodeSummary: make(map[string]int),
		Functions:     []FunctionReport{},
		Lines:         []LineReport{},
	}

	merged := make(map[LineKey]map[string]int)
	for _, s := range scans {
		rep.TotalOps += s.TotalOps
		rep.TotalSIMDOps += s.SIMDOps
		for name, n := range s.Ops {
			rep.OpcodeSummary[name] += n
		}
		for key, ops := range s.Lines {
			m, ok := merged[key]
			if !ok {
				m = make(map[string]int)
				merged[key] = m
			}
			for name, n := range ops {
				m[name] += n
			}
		}

		if s.SIMDOps == 0 || s.Density() < opts.MinDensity {
			continue
		}
		rep.Functions = append(rep.Functions, functionRow(bin, s))
	}
	rep.Density = density(rep.TotalSIMDOps, rep.TotalOps)

	for key, ops := range merged {
		row := LineReport{File: key.File, Line: key.Line, Breakdown: ops}
		for _, n := range ops {
			row.SIMDOps += n
		}
		if row.SIMDOps == 0 {
			continue
		}
		rep.Lines = append(rep.Lines, row)
	}

	sortFunctions(rep.Functions)
	sortLines(rep.Lines)

	log.Info("analyzed module",
		zap.String("variant", rep.Variant),
		zap.String("hash", rep.Hash),
		zap.Int("total_ops", rep.TotalOps),
		zap.Int("simd_ops", rep.TotalSIMDOps),
		zap.Int("simd_functions", len(rep.Functions)))

	return rep, nil
}

// scanAll scans fns on a bounded pool and returns results in input order.
func scanAll(ctx context.Context, fns []wasm.Function, res LineResolver, mode LineMode, workers int) ([]FunctionScan, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	scans := make([]FunctionScan, len(fns))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, fn := range fns {
		i, fn := i, fn
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := ScanFunction(fn, res, mode)
			if err != nil {
				return err
			}
			scans[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scans, nil
}

func functionRow(bin *wasm.Binary, s FunctionScan) FunctionReport {
	row := FunctionReport{
		Index:     s.Index,
		SIMDOps:   s.SIMDOps,
		TotalOps:  s.TotalOps,
		Density:   s.Density(),
		Breakdown: s.Ops,
	}
	if name, ok := bin.FunctionName(s.Index); ok {
		row.Name = &name
	}
	if s.Entry != nil {
		file, line := s.Entry.File, s.Entry.Line
		row.File = &file
		row.Line = &line
	}
	return row
}

func sortFunctions(fns []FunctionReport) {
	sort.Slice(fns, func(i, j int) bool {
		a, b := fns[i], fns[j]
		if a.Density != b.Density {
			return a.Density > b.Density
		}
		if a.SIMDOps != b.SIMDOps {
			return a.SIMDOps > b.SIMDOps
		}
		return a.Index < b.Index
	})
}

func sortLines(lines []LineReport) {
	sort.Slice(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if a.SIMDOps != b.SIMDOps {
			return a.SIMDOps > b.SIMDOps
		}
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Line < b.Line
	})
}
