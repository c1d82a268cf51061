package bytebuf

import (
	"context"
	"sort"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/simd-detect/errors"
)

// Required guest exports.
const (
	ExportMemory = "memory"
	ExportAlloc  = "alloc_bytes"
	ExportFree   = "free_bytes"
)

// Config holds runtime configuration.
type Config struct {
	// MemoryLimitPages caps each guest's memory in 64KiB pages.
	// 0 means the wazero default (65536 pages = 4GiB).
	MemoryLimitPages uint32
}

// Runtime compiles and instantiates byte-buffer guests. SIMD is part of the
// wazero 2.0 core feature set and is always enabled.
type Runtime struct {
	runtime wazero.Runtime
}

// NewRuntime creates a runtime with cfg.
func NewRuntime(ctx context.Context, cfg Config) (*Runtime, error) {
	runtimeCfg := wazero.NewRuntimeConfig().WithCoreFeatures(api.CoreFeaturesV2)
	if cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	return &Runtime{runtime: wazero.NewRuntimeWithConfig(ctx, runtimeCfg)}, nil
}

// Close releases every module loaded by the runtime.
func (r *Runtime) Close(ctx context.Context) error {
	return r.runtime.Close(ctx)
}

// Load compiles and instantiates a guest, checking the protocol exports.
func (r *Runtime) Load(ctx context.Context, name string, wasmBytes []byte) (*Module, error) {
	compiled, err := r.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseRuntime, errors.KindInvalidData, err, "compile guest "+name)
	}
	if err := checkExports(compiled); err != nil {
		_ = compiled.Close(ctx)
		return nil, err
	}

	inst, err := r.runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		_ = compiled.Close(ctx)
		return nil, errors.Instantiation(err)
	}

	m := &Module{
		name:     name,
		instance: inst,
		compiled: compiled,
		memory:   &Memory{mem: inst.Memory()},
		alloc:    newGuestAllocator(inst.ExportedFunction(ExportAlloc), inst.ExportedFunction(ExportFree)),
		stackBuf: make([]uint64, 4),
	}
	Logger().Debug("loaded guest",
		zap.String("name", name),
		zap.Strings("transforms", m.Transforms()),
		zap.Uint32("memory_bytes", m.memory.Size()))
	return m, nil
}

func checkExports(compiled wazero.CompiledModule) error {
	if _, ok := compiled.ExportedMemories()[ExportMemory]; !ok {
		return errors.NotFound(errors.PhaseRuntime, "export", ExportMemory)
	}
	fns := compiled.ExportedFunctions()
	want := map[string][2][]api.ValueType{
		ExportAlloc: {{api.ValueTypeI32}, {api.ValueTypeI32}},
		ExportFree:  {{api.ValueTypeI32, api.ValueTypeI32}, nil},
	}
	for _, name := range []string{ExportAlloc, ExportFree} {
		def, ok := fns[name]
		if !ok {
			return errors.NotFound(errors.PhaseRuntime, "export", name)
		}
		sig := want[name]
		if !sameTypes(def.ParamTypes(), sig[0]) || !sameTypes(def.ResultTypes(), sig[1]) {
			return errors.New(errors.PhaseRuntime, errors.KindInvalidData).
				Path(name).
				Detail("%s has signature %s", name, signature(def)).
				Build()
		}
	}
	return nil
}

// Module is an instantiated guest. Calls are serialized.
type Module struct {
	instance api.Module
	compiled wazero.CompiledModule
	memory   *Memory
	alloc    Allocator
	name     string
	stackBuf []uint64
	mu       sync.Mutex
}

// Name returns the instance name.
func (m *Module) Name() string {
	return m.name
}

// Memory returns the guest's linear memory.
func (m *Module) Memory() *Memory {
	return m.memory
}

// Transforms lists exported functions with the transform signature.
func (m *Module) Transforms() []string {
	var out []string
	for name, def := range m.compiled.ExportedFunctions() {
		if isTransform(def) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Call runs transform fn over input with an output buffer of outCap bytes
// and returns the bytes the guest wrote.
func (m *Module) Call(ctx context.Context, fn string, input []byte, outCap uint32) ([]byte, error) {
	def, ok := m.compiled.ExportedFunctions()[fn]
	if !ok {
		return nil, errors.NotFound(errors.PhaseCall, "function", fn)
	}
	if !isTransform(def) {
		return nil, errors.New(errors.PhaseCall, errors.KindInvalidInput).
			Path(fn).
			Detail("%s has signature %s, want (i32, i32, i32, i32) -> i32", fn, signature(def)).
			Build()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.instance == nil {
		return nil, errors.NotInitialized(errors.PhaseCall, "module "+m.name)
	}

	inLen := uint32(len(input))
	inPtr, err := m.alloc.Alloc(ctx, inLen)
	if err != nil {
		return nil, err
	}
	defer m.alloc.Free(ctx, inPtr, inLen)

	if err := m.memory.Write(inPtr, input); err != nil {
		return nil, err
	}

	outPtr, err := m.alloc.Alloc(ctx, outCap)
	if err != nil {
		return nil, err
	}
	defer m.alloc.Free(ctx, outPtr, outCap)

	m.stackBuf[0] = uint64(inPtr)
	m.stackBuf[1] = uint64(inLen)
	m.stackBuf[2] = uint64(outPtr)
	m.stackBuf[3] = uint64(outCap)
	if err := m.instance.ExportedFunction(fn).CallWithStack(ctx, m.stackBuf); err != nil {
		return nil, errors.New(errors.PhaseCall, errors.KindInvalidData).
			Path(fn).
			Cause(err).
			Detail("call %s", fn).
			Build()
	}

	n := int32(uint32(m.stackBuf[0]))
	switch {
	case n < 0:
		return nil, errors.New(errors.PhaseCall, errors.KindInvalidInput).
			Path(fn).
			Value(n).
			Detail("%s rejected %d input bytes with output capacity %d", fn, inLen, outCap).
			Build()
	case uint32(n) > outCap:
		return nil, errors.OutOfBounds(errors.PhaseCall, []string{fn}, int(n), int(outCap))
	}

	out, err := m.memory.Read(outPtr, uint32(n))
	if err != nil {
		return nil, err
	}
	Logger().Debug("transform",
		zap.String("module", m.name),
		zap.String("func", fn),
		zap.Uint32("in", inLen),
		zap.Int32("out", n))
	return out, nil
}

// Close releases the instance.
func (m *Module) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var firstErr error
	if m.instance != nil {
		if err := m.instance.Close(ctx); err != nil {
			firstErr = err
		}
		m.instance = nil
	}
	if err := m.compiled.Close(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func isTransform(def api.FunctionDefinition) bool {
	i32 := api.ValueTypeI32
	return sameTypes(def.ParamTypes(), []api.ValueType{i32, i32, i32, i32}) &&
		sameTypes(def.ResultTypes(), []api.ValueType{i32})
}

func sameTypes(a, b []api.ValueType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func signature(def api.FunctionDefinition) string {
	s := "("
	for i, t := range def.ParamTypes() {
		if i > 0 {
			s += ", "
		}
		s += api.ValueTypeName(t)
	}
	s += ") -> ("
	for i, t := range def.ResultTypes() {
		if i > 0 {
			s += ", "
		}
		s += api.ValueTypeName(t)
	}
	return s + ")"
}
