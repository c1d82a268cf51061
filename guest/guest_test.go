package guest_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tetratelabs/wazero"

	"github.com/wippyai/simd-detect/analyzer"
	"github.com/wippyai/simd-detect/guest"
)

func TestCatalogBuilds(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	entries := guest.Catalog()
	if len(entries) == 0 {
		t.Fatal("empty catalog")
	}
	for i, e := range entries {
		if i > 0 && entries[i-1].Name >= e.Name {
			t.Errorf("catalog not sorted at %s", e.Name)
		}
		t.Run(e.Name, func(t *testing.T) {
			data, err := e.Build()
			if err != nil {
				t.Fatal(err)
			}
			compiled, err := rt.CompileModule(ctx, data)
			if err != nil {
				t.Fatalf("invalid module: %v", err)
			}
			fns := compiled.ExportedFunctions()
			for _, name := range []string{guest.ExportAlloc, guest.ExportFree, e.Transform} {
				if _, ok := fns[name]; !ok {
					t.Errorf("missing export %s", name)
				}
			}
			if _, ok := compiled.ExportedMemories()[guest.ExportMemory]; !ok {
				t.Error("memory not exported")
			}
		})
	}
}

func TestLookup(t *testing.T) {
	e, err := guest.Lookup("increment2-simd")
	if err != nil {
		t.Fatal(err)
	}
	if e.Delta != 2 || !e.SIMD || e.Transform != guest.FuncProcessBytes {
		t.Errorf("entry = %+v", e)
	}
	if _, err := guest.Lookup("nope"); err == nil {
		t.Error("found unknown guest")
	}
}

func simdOps(t *testing.T, data []byte) map[string]map[string]int {
	t.Helper()
	rep, err := analyzer.Analyze(context.Background(), data, analyzer.Options{})
	if err != nil {
		t.Fatal(err)
	}
	out := make(map[string]map[string]int)
	for _, fn := range rep.Functions {
		out[fn.DisplayName()] = fn.Breakdown
	}
	return out
}

func TestIncrementInstructions(t *testing.T) {
	scalar, err := guest.Increment(1, false)
	if err != nil {
		t.Fatal(err)
	}
	if got := simdOps(t, scalar); len(got) != 0 {
		t.Errorf("scalar guest has SIMD functions: %v", got)
	}

	vector, err := guest.Increment(1, true)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]map[string]int{
		guest.FuncProcessBytes: {"i8x16.splat": 1, "v128.load": 1, "i8x16.add": 1, "v128.store": 1},
	}
	if diff := cmp.Diff(want, simdOps(t, vector)); diff != "" {
		t.Errorf("SIMD ops (-want +got):\n%s", diff)
	}
}

func TestSumU8Instructions(t *testing.T) {
	data, err := guest.SumU8()
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]map[string]int{
		guest.FuncSumU8: {
			"v128.load":                     1,
			"i16x8.extadd_pairwise_i8x16_u": 1,
			"i32x4.extadd_pairwise_i16x8_u": 1,
			"i32x4.add":                     1,
			"i32x4.extract_lane":            4,
		},
	}
	if diff := cmp.Diff(want, simdOps(t, data)); diff != "" {
		t.Errorf("SIMD ops (-want +got):\n%s", diff)
	}
}
