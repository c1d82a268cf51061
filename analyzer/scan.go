package analyzer

import (
	"io"

	"github.com/wippyai/simd-detect/debuginfo"
	"github.com/wippyai/simd-detect/errors"
	"github.com/wippyai/simd-detect/simd"
	"github.com/wippyai/simd-detect/wasm"
)

// LineMode selects how SIMD instructions are attributed to source lines.
type LineMode string

const (
	// LineModeInstruction attributes each SIMD instruction to its own line.
	LineModeInstruction LineMode = "instruction"
	// LineModeFunction attributes a function's whole histogram to its entry line.
	LineModeFunction LineMode = "function"
)

// ParseLineMode validates a line mode name. Empty selects the default.
func ParseLineMode(s string) (LineMode, error) {
	switch LineMode(s) {
	case "", LineModeInstruction:
		return LineModeInstruction, nil
	case LineModeFunction:
		return LineModeFunction, nil
	}
	return "", errors.InvalidInput(errors.PhaseConfig, "unknown line mode "+s+" (want instruction or function)")
}

// LineResolver maps a code-section-relative address to a source location.
// *debuginfo.Resolver implements it.
type LineResolver interface {
	Lookup(addr uint64) (debuginfo.Location, bool)
}

// LineKey identifies a source line.
type LineKey struct {
	File string
	Line int
}

// FunctionScan is the result of walking one function body.
type FunctionScan struct {
	Ops      map[string]int
	Lines    map[LineKey]map[string]int
	Entry    *debuginfo.Location
	Index    uint32
	TotalOps int
	SIMDOps  int
}

// Density returns SIMD ops over total ops, 0 for an empty body.
func (s FunctionScan) Density() float64 {
	return density(s.SIMDOps, s.TotalOps)
}

func density(simdOps, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(simdOps) / float64(total)
}

// ScanFunction walks fn, counting every instruction and classifying SIMD
// ones. res may be nil.
func ScanFunction(fn wasm.Function, res LineResolver, mode LineMode) (FunctionScan, error) {
	scan := FunctionScan{
		Index: fn.Index,
		Ops:   make(map[string]int),
		Lines: make(map[LineKey]map[string]int),
	}

	// fn.Offset - fn.CodeOffset is the code section payload start.
	base := fn.Offset - fn.CodeOffset
	ir := wasm.NewInstructionReader(fn)

	if res != nil {
		if loc, ok := res.Lookup(uint64(fn.CodeOffset)); ok {
			scan.Entry = &loc
		} else if first, err := ir.LocalsEnd(); err == nil {
			if loc, ok := res.Lookup(uint64(first - base)); ok {
				scan.Entry = &loc
			}
		}
	}

	for {
		ins, err := ir.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return FunctionScan{}, err
		}
		scan.TotalOps++

		name, ok := simd.Classify(ins)
		if !ok {
			continue
		}
		scan.SIMDOps++
		scan.Ops[name]++

		if mode == LineModeInstruction && res != nil {
			if loc, ok := res.Lookup(uint64(ins.Offset - base)); ok {
				scan.addLine(LineKey{File: loc.File, Line: loc.Line}, name, 1)
			}
		}
	}

	if mode == LineModeFunction && scan.Entry != nil {
		key := LineKey{File: scan.Entry.File, Line: scan.Entry.Line}
		for name, n := range scan.Ops {
			scan.addLine(key, name, n)
		}
	}

	return scan, nil
}

func (s *FunctionScan) addLine(key LineKey, name string, n int) {
	m, ok := s.Lines[key]
	if !ok {
		m = make(map[string]int)
		s.Lines[key] = m
	}
	m[name] += n
}
