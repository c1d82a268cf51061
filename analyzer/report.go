package analyzer

import (
	"sort"
	"strconv"

	"github.com/wippyai/simd-detect/simd"
)

// Report is the aggregated SIMD usage of one module.
type Report struct {
	Variant       string           `json:"variant" yaml:"variant"`
	Path          string           `json:"wasm_path" yaml:"wasm_path"`
	Hash          string           `json:"wasm_hash" yaml:"wasm_hash"`
	Size          int              `json:"wasm_size" yaml:"wasm_size"`
	TotalSIMDOps  int              `json:"total_simd_ops" yaml:"total_simd_ops"`
	TotalOps      int              `json:"total_ops" yaml:"total_ops"`
	Density       float64          `json:"overall_simd_density" yaml:"overall_simd_density"`
	HasDebugInfo  bool             `json:"has_debug_info" yaml:"has_debug_info"`
	FunctionCount int              `json:"function_count" yaml:"function_count"`
	OpcodeSummary map[string]int   `json:"opcode_summary" yaml:"opcode_summary"`
	Functions     []FunctionReport `json:"functions" yaml:"functions"`
	Lines         []LineReport     `json:"lines" yaml:"lines"`
}

// FunctionReport is one function row. Name, File and Line are nil when
// unknown.
type FunctionReport struct {
	Index     uint32         `json:"index" yaml:"index"`
	Name      *string        `json:"name" yaml:"name"`
	File      *string        `json:"file" yaml:"file"`
	Line      *int           `json:"line" yaml:"line"`
	SIMDOps   int            `json:"simd_ops_total" yaml:"simd_ops_total"`
	TotalOps  int            `json:"total_ops" yaml:"total_ops"`
	Density   float64        `json:"simd_density" yaml:"simd_density"`
	Breakdown map[string]int `json:"op_breakdown" yaml:"op_breakdown"`
}

// DisplayName returns the function name or a func[N] placeholder.
func (f FunctionReport) DisplayName() string {
	if f.Name != nil {
		return *f.Name
	}
	return "func[" + strconv.FormatUint(uint64(f.Index), 10) + "]"
}

// LineReport is the SIMD histogram of one source line.
type LineReport struct {
	File      string         `json:"file" yaml:"file"`
	Line      int            `json:"line" yaml:"line"`
	SIMDOps   int            `json:"simd_ops_total" yaml:"simd_ops_total"`
	Breakdown map[string]int `json:"breakdown" yaml:"breakdown"`
}

// OpcodeCount pairs an opcode name with its count.
type OpcodeCount struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// TopOpcodes returns the n most frequent opcodes, ties broken by name.
// n <= 0 returns all of them.
func (r *Report) TopOpcodes(n int) []OpcodeCount {
	return top(r.OpcodeSummary, n)
}

// TopOpcodes returns the function's n most frequent opcodes.
func (f FunctionReport) TopOpcodes(n int) []OpcodeCount {
	return top(f.Breakdown, n)
}

// ShapeSummary counts SIMD ops per lane shape.
func (r *Report) ShapeSummary() map[simd.Shape]int {
	out := make(map[simd.Shape]int)
	for name, n := range r.OpcodeSummary {
		if op, ok := simd.ByName(name); ok {
			out[op.Shape] += n
		}
	}
	return out
}

// ClassSummary counts SIMD ops per operation class.
func (r *Report) ClassSummary() map[simd.Class]int {
	out := make(map[simd.Class]int)
	for name, n := range r.OpcodeSummary {
		if op, ok := simd.ByName(name); ok {
			out[op.Class] += n
		}
	}
	return out
}

func top(m map[string]int, n int) []OpcodeCount {
	out := make([]OpcodeCount, 0, len(m))
	for name, c := range m {
		out = append(out, OpcodeCount{Name: name, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
