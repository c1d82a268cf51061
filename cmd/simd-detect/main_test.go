package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/simd-detect/analyzer"
	"github.com/wippyai/simd-detect/guest"
)

func writeGuest(t *testing.T, name string) string {
	t.Helper()
	e, err := guest.Lookup(name)
	if err != nil {
		t.Fatal(err)
	}
	data, err := e.Build()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), name+".wasm")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, stdin []byte, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(bytes.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestAnalyzeToStdout(t *testing.T) {
	path := writeGuest(t, "increment-simd")
	stdout, stderr, err := execute(t, nil, path, "-v", "simd128")
	if err != nil {
		t.Fatal(err)
	}

	var rep analyzer.Report
	if err := json.Unmarshal([]byte(stdout), &rep); err != nil {
		t.Fatalf("stdout is not a json report: %v\n%s", err, stdout)
	}
	if rep.Variant != "simd128" || rep.Path != path {
		t.Errorf("variant/path = %q %q", rep.Variant, rep.Path)
	}
	if len(rep.Functions) != 1 || rep.Functions[0].DisplayName() != guest.FuncProcessBytes {
		t.Errorf("functions = %+v", rep.Functions)
	}
	for _, want := range []string{"SIMD Analysis Summary:", "Variant: simd128", "i8x16.add: 1"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
}

func TestAnalyzeToFile(t *testing.T) {
	path := writeGuest(t, "sum-u8")
	out := filepath.Join(t.TempDir(), "report.yaml")
	stdout, stderr, err := execute(t, nil, path, "--format", "yaml", "-o", out, "--top", "2")
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr, "Wrote report to: "+out) {
		t.Errorf("stderr = %s", stderr)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var rep analyzer.Report
	if err := yaml.Unmarshal(data, &rep); err != nil {
		t.Fatal(err)
	}
	if rep.TotalSIMDOps != 8 {
		t.Errorf("total_simd_ops = %d, want 8", rep.TotalSIMDOps)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	if _, _, err := execute(t, nil, filepath.Join(t.TempDir(), "missing.wasm")); err == nil {
		t.Error("missing file accepted")
	}
	if _, _, err := execute(t, nil, writeGuest(t, "increment"), "--line-mode", "block"); err == nil {
		t.Error("bad line mode accepted")
	}
	if _, _, err := execute(t, nil); err == nil {
		t.Error("missing argument accepted")
	}
}

func TestGuestCmd(t *testing.T) {
	stdout, _, err := execute(t, nil, "guest")
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range guest.Catalog() {
		if !strings.Contains(stdout, e.Name) {
			t.Errorf("listing missing %s:\n%s", e.Name, stdout)
		}
	}

	out := filepath.Join(t.TempDir(), "g.wasm")
	if _, _, err := execute(t, nil, "guest", "sum-u8", "-o", out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x00asm")) {
		t.Errorf("output is not a wasm module: % x", data[:min(8, len(data))])
	}

	if _, _, err := execute(t, nil, "guest", "nope"); err == nil {
		t.Error("unknown guest accepted")
	}
}

func TestTransformCmd(t *testing.T) {
	path := writeGuest(t, "increment2-simd")
	input := []byte("the quick brown fox jumps over")

	stdout, stderr, err := execute(t, input, "transform", path, "--verify", "increment", "--delta", "2")
	if err != nil {
		t.Fatal(err)
	}
	want := make([]byte, len(input))
	for i, b := range input {
		want[i] = b + 2
	}
	if stdout != string(want) {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
	if !strings.Contains(stderr, "matches the increment reference") {
		t.Errorf("stderr = %s", stderr)
	}

	// The default delta of 1 disagrees with this guest.
	if _, _, err := execute(t, input, "transform", path, "--verify", "increment"); err == nil {
		t.Error("verification passed with the wrong delta")
	}
	if _, _, err := execute(t, input, "transform", path, "--func", "nope"); err == nil {
		t.Error("unknown function accepted")
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowser(t *testing.T) {
	name1, name2 := "blend_rows", "sum_lanes"
	rep := &analyzer.Report{
		Path:          "x.wasm",
		OpcodeSummary: map[string]int{"i8x16.add": 3, "f32x4.add": 1},
		Functions: []analyzer.FunctionReport{
			{Name: &name1, Index: 3, SIMDOps: 3, TotalOps: 6, Density: 0.5, Breakdown: map[string]int{"i8x16.add": 3}},
			{Name: &name2, Index: 5, SIMDOps: 1, TotalOps: 10, Density: 0.1, Breakdown: map[string]int{"f32x4.add": 1}},
		},
		Lines: []analyzer.LineReport{{File: "a.rs", Line: 4, SIMDOps: 3, Breakdown: map[string]int{"i8x16.add": 3}}},
	}
	b := newBrowser(rep)

	if !strings.Contains(b.View(), "blend_rows") {
		t.Fatalf("function table missing rows:\n%s", b.View())
	}

	b.Update(key("enter"))
	if b.view != viewBreakdown || !strings.Contains(b.View(), "i8x16.add") {
		t.Errorf("enter did not open the breakdown:\n%s", b.View())
	}
	b.Update(key("esc"))
	if b.view != viewFunctions {
		t.Error("esc did not return to the function table")
	}

	b.Update(key("l"))
	if b.view != viewLines || !strings.Contains(b.View(), "a.rs:4") {
		t.Errorf("l did not open the line view:\n%s", b.View())
	}
	b.Update(key("esc"))

	b.Update(key("/"))
	for _, r := range "sum" {
		b.Update(key(string(r)))
	}
	b.Update(key("enter"))
	if b.filtering {
		t.Error("enter did not end filtering")
	}
	if len(b.visible) != 1 || b.report.Functions[b.visible[0]].DisplayName() != "sum_lanes" {
		t.Errorf("filter kept %v", b.visible)
	}
	if fn, ok := b.selected(); !ok || fn.Index != 5 {
		t.Errorf("selected = %+v, %v", fn, ok)
	}

	if _, cmd := b.Update(key("q")); cmd == nil {
		t.Error("q did not quit")
	}
}
