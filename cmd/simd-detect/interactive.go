package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/simd-detect/analyzer"
	"github.com/wippyai/simd-detect/simd"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browserView int

const (
	viewFunctions browserView = iota
	viewBreakdown
	viewLines
	viewOpcodes
)

// browser is a read-only report viewer: a function table, with drill-down
// into one function's opcodes, the line histogram and the opcode summary.
type browser struct {
	report    *analyzer.Report
	functions table.Model
	detail    table.Model
	filter    textinput.Model
	visible   []int
	title     string
	view      browserView
	height    int
	filtering bool
}

func runInteractive(rep *analyzer.Report) error {
	_, err := tea.NewProgram(newBrowser(rep), tea.WithAltScreen()).Run()
	return err
}

func newBrowser(rep *analyzer.Report) *browser {
	fi := textinput.New()
	fi.Prompt = "/"
	fi.Placeholder = "function name"
	fi.Width = 40

	b := &browser{
		report: rep,
		filter: fi,
		height: 20,
		functions: newTable([]table.Column{
			{Title: "Index", Width: 7},
			{Title: "Function", Width: 36},
			{Title: "SIMD", Width: 7},
			{Title: "Total", Width: 8},
			{Title: "Density", Width: 8},
			{Title: "Location", Width: 32},
		}),
	}
	b.detail = newTable(opcodeColumns)
	b.applyFilter()
	return b
}

func newTable(cols []table.Column) table.Model {
	t := table.New(table.WithColumns(cols), table.WithFocused(true), table.WithHeight(20))
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	s.Selected = selectedStyle
	t.SetStyles(s)
	return t
}

func (b *browser) applyFilter() {
	needle := strings.ToLower(b.filter.Value())
	b.visible = b.visible[:0]
	rows := make([]table.Row, 0, len(b.report.Functions))
	for i, fn := range b.report.Functions {
		if needle != "" && !strings.Contains(strings.ToLower(fn.DisplayName()), needle) {
			continue
		}
		b.visible = append(b.visible, i)
		loc := ""
		if fn.File != nil && fn.Line != nil {
			loc = fmt.Sprintf("%s:%d", *fn.File, *fn.Line)
		}
		rows = append(rows, table.Row{
			strconv.FormatUint(uint64(fn.Index), 10),
			fn.DisplayName(),
			strconv.Itoa(fn.SIMDOps),
			strconv.Itoa(fn.TotalOps),
			fmt.Sprintf("%.1f%%", fn.Density*100),
			loc,
		})
	}
	b.functions.SetRows(rows)
	b.functions.SetCursor(0)
}

// selected returns the function under the cursor.
func (b *browser) selected() (analyzer.FunctionReport, bool) {
	c := b.functions.Cursor()
	if c < 0 || c >= len(b.visible) {
		return analyzer.FunctionReport{}, false
	}
	return b.report.Functions[b.visible[c]], true
}

func opcodeRows(ops []analyzer.OpcodeCount) []table.Row {
	rows := make([]table.Row, len(ops))
	for i, op := range ops {
		shape, class := "", ""
		if o, ok := simd.ByName(op.Name); ok {
			shape, class = string(o.Shape), string(o.Class)
		}
		rows[i] = table.Row{op.Name, strconv.Itoa(op.Count), shape, class}
	}
	return rows
}

var opcodeColumns = []table.Column{
	{Title: "Opcode", Width: 34},
	{Title: "Count", Width: 8},
	{Title: "Shape", Width: 7},
	{Title: "Class", Width: 12},
}

func (b *browser) showDetail(view browserView) {
	switch view {
	case viewBreakdown:
		fn, ok := b.selected()
		if !ok {
			return
		}
		b.title = fmt.Sprintf("%s: %d of %d ops are SIMD", fn.DisplayName(), fn.SIMDOps, fn.TotalOps)
		b.detail = newTable(opcodeColumns)
		b.detail.SetRows(opcodeRows(fn.TopOpcodes(0)))

	case viewOpcodes:
		b.title = fmt.Sprintf("All SIMD opcodes: %d ops", b.report.TotalSIMDOps)
		b.detail = newTable(opcodeColumns)
		b.detail.SetRows(opcodeRows(b.report.TopOpcodes(0)))

	case viewLines:
		b.title = fmt.Sprintf("Source lines: %d", len(b.report.Lines))
		b.detail = newTable([]table.Column{
			{Title: "Location", Width: 44},
			{Title: "SIMD", Width: 7},
			{Title: "Opcodes", Width: 48},
		})
		rows := make([]table.Row, len(b.report.Lines))
		for i, l := range b.report.Lines {
			rows[i] = table.Row{fmt.Sprintf("%s:%d", l.File, l.Line), strconv.Itoa(l.SIMDOps), lineOpcodes(l)}
		}
		b.detail.SetRows(rows)
	}
	b.detail.SetHeight(b.height)
	b.view = view
}

func lineOpcodes(l analyzer.LineReport) string {
	ops := analyzer.FunctionReport{Breakdown: l.Breakdown}.TopOpcodes(3)
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = fmt.Sprintf("%s×%d", op.Name, op.Count)
	}
	return strings.Join(parts, " ")
}

func (b *browser) Init() tea.Cmd {
	return nil
}

func (b *browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.height = max(msg.Height-8, 5)
		b.functions.SetHeight(b.height)
		b.detail.SetHeight(b.height)
		return b, nil

	case tea.KeyMsg:
		if b.filtering {
			switch msg.String() {
			case "enter", "esc":
				b.filtering = false
				b.filter.Blur()
				return b, nil
			}
			var cmd tea.Cmd
			b.filter, cmd = b.filter.Update(msg)
			b.applyFilter()
			return b, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return b, tea.Quit

		case "esc", "backspace":
			if b.view != viewFunctions {
				b.view = viewFunctions
				return b, nil
			}

		case "enter":
			if b.view == viewFunctions {
				b.showDetail(viewBreakdown)
				return b, nil
			}

		case "l":
			b.showDetail(viewLines)
			return b, nil

		case "o":
			b.showDetail(viewOpcodes)
			return b, nil

		case "/":
			if b.view == viewFunctions {
				b.filtering = true
				return b, b.filter.Focus()
			}
		}
	}

	var cmd tea.Cmd
	if b.view == viewFunctions {
		b.functions, cmd = b.functions.Update(msg)
	} else {
		b.detail, cmd = b.detail.Update(msg)
	}
	return b, cmd
}

func (b *browser) View() string {
	var s strings.Builder
	r := b.report

	s.WriteString(titleStyle.Render("SIMD Report"))
	s.WriteString(" ")
	s.WriteString(funcStyle.Render(r.Path))
	s.WriteString(" ")
	s.WriteString(statStyle.Render(fmt.Sprintf("%s • %d/%d SIMD ops (%.1f%%) • %d functions",
		r.Variant, r.TotalSIMDOps, r.TotalOps, r.Density*100, len(r.Functions))))
	s.WriteString("\n\n")

	switch b.view {
	case viewFunctions:
		if len(r.Functions) == 0 {
			s.WriteString("No SIMD instructions found.\n")
		} else {
			s.WriteString(b.functions.View())
			s.WriteString("\n")
		}
		if b.filtering || b.filter.Value() != "" {
			s.WriteString(b.filter.View())
			s.WriteString("\n")
		}
		s.WriteString("\n")
		s.WriteString(helpStyle.Render("↑/↓ move • enter opcodes • / filter • l lines • o all opcodes • q quit"))

	default:
		s.WriteString(funcStyle.Render(b.title))
		s.WriteString("\n\n")
		s.WriteString(b.detail.View())
		s.WriteString("\n\n")
		s.WriteString(helpStyle.Render("↑/↓ move • esc back • l lines • o all opcodes • q quit"))
	}
	return s.String()
}
