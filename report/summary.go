package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/wippyai/simd-detect/analyzer"
)

// DefaultTop is the number of opcodes listed when SummaryOptions.Top is 0.
const DefaultTop = 10

// SummaryOptions controls Summary.
type SummaryOptions struct {
	// Top opcodes to list; 0 means DefaultTop.
	Top int
	// Lines is the number of source lines to list; 0 lists none.
	Lines int
	Color bool
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type styles struct {
	title, label, count, op, dim lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain}
	}
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		label: r.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		count: r.NewStyle().Foreground(lipgloss.Color("#90EE90")),
		op:    r.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		dim:   r.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}

// Summary prints a console summary of r.
func Summary(w io.Writer, r *analyzer.Report, opts SummaryOptions) error {
	top := opts.Top
	if top <= 0 {
		top = DefaultTop
	}
	st := newStyles(w, opts.Color)

	var b strings.Builder
	field := func(label, format string, args ...any) {
		fmt.Fprintf(&b, "  %s %s\n", st.label.Render(label+":"), fmt.Sprintf(format, args...))
	}

	b.WriteString("\n" + st.title.Render("SIMD Analysis Summary:") + "\n")
	field("Variant", "%s", r.Variant)
	field("WASM hash", "%s", r.Hash)
	field("WASM size", "%s (%s bytes)", humanize.Bytes(uint64(r.Size)), humanize.Comma(int64(r.Size)))
	field("Debug info", "%s", yesNo(r.HasDebugInfo))
	field("Total ops", "%s, SIMD ops: %s (%.1f%%)",
		humanize.Comma(int64(r.TotalOps)),
		st.count.Render(humanize.Comma(int64(r.TotalSIMDOps))),
		r.Density*100)
	field("Functions with SIMD", "%d of %d", len(r.Functions), r.FunctionCount)
	if shapes := countLine(r.ShapeSummary()); shapes != "" {
		field("Shapes", "%s", shapes)
	}
	if classes := countLine(r.ClassSummary()); classes != "" {
		field("Classes", "%s", classes)
	}

	if ops := r.TopOpcodes(top); len(ops) > 0 {
		b.WriteString("\n  " + st.title.Render("Top SIMD opcodes:") + "\n")
		for _, op := range ops {
			fmt.Fprintf(&b, "    %s: %s\n", st.op.Render(op.Name), st.count.Render(humanize.Comma(int64(op.Count))))
		}
	}

	if opts.Lines > 0 && len(r.Lines) > 0 {
		b.WriteString("\n  " + st.title.Render("Top SIMD lines:") + "\n")
		lines := r.Lines
		if len(lines) > opts.Lines {
			lines = lines[:opts.Lines]
		}
		for _, l := range lines {
			fmt.Fprintf(&b, "    %s %s\n",
				st.dim.Render(fmt.Sprintf("%s:%d", l.File, l.Line)),
				st.count.Render(humanize.Comma(int64(l.SIMDOps))))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// countLine renders counts as "key=n" pairs, largest first.
func countLine[K ~string](counts map[K]int) string {
	keys := make([]K, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := counts[keys[i]], counts[keys[j]]
		if a != b {
			return a > b
		}
		return keys[i] < keys[j]
	})
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, counts[k])
	}
	return strings.Join(parts, " ")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
