package wasm

import (
	"github.com/wippyai/simd-detect/errors"
	bin "github.com/wippyai/simd-detect/wasm/internal/binary"
)

// FuncType is a function signature.
type FuncType struct {
	Params  []ValType
	Results []ValType
}

func (ft FuncType) equal(o FuncType) bool {
	if len(ft.Params) != len(o.Params) || len(ft.Results) != len(o.Results) {
		return false
	}
	for i := range ft.Params {
		if ft.Params[i] != o.Params[i] {
			return false
		}
	}
	for i := range ft.Results {
		if ft.Results[i] != o.Results[i] {
			return false
		}
	}
	return true
}

type builderImport struct {
	module, name string
	typeIdx      uint32
}

type builderFunc struct {
	name    string
	locals  []ValType
	body    []byte
	typeIdx uint32
}

type builderGlobal struct {
	typ     ValType
	mutable bool
	init    int64
}

type builderExport struct {
	name string
	kind byte
	idx  uint32
}

// Builder assembles a core module. It emits only what it was given, in
// canonical section order, followed by custom sections and the name section.
type Builder struct {
	memory  *[2]uint32
	types   []FuncType
	imports []builderImport
	funcs   []builderFunc
	globals []builderGlobal
	exports []builderExport
	customs []CustomSection
	err     error
	module  string
	names   bool
}

// NewBuilder returns an empty module builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// ModuleName sets the module name recorded in the name section.
func (b *Builder) ModuleName(name string) *Builder {
	b.module = name
	return b
}

// WithNames enables emission of the "name" custom section.
func (b *Builder) WithNames() *Builder {
	b.names = true
	return b
}

// Type interns a signature and returns its type index.
func (b *Builder) Type(ft FuncType) uint32 {
	for i, t := range b.types {
		if t.equal(ft) {
			return uint32(i)
		}
	}
	b.types = append(b.types, ft)
	return uint32(len(b.types) - 1)
}

// ImportFunc declares an imported function and returns its function index.
// Imports must be declared before any local function.
func (b *Builder) ImportFunc(module, name string, ft FuncType) uint32 {
	if len(b.funcs) > 0 && b.err == nil {
		b.err = errors.InvalidInput(errors.PhaseParse, "function import declared after local functions")
	}
	b.imports = append(b.imports, builderImport{module: module, name: name, typeIdx: b.Type(ft)})
	return uint32(len(b.imports) - 1)
}

// Memory declares memory 0 with the given page limits; max 0 means unbounded.
func (b *Builder) Memory(minPages, maxPages uint32) *Builder {
	b.memory = &[2]uint32{minPages, maxPages}
	return b
}

// Global declares a global with a constant initializer and returns its index.
func (b *Builder) Global(t ValType, mutable bool, init int64) uint32 {
	b.globals = append(b.globals, builderGlobal{typ: t, mutable: mutable, init: init})
	return uint32(len(b.globals) - 1)
}

// Func defines a local function. emit writes the expression; the final end
// is appended automatically.
func (b *Builder) Func(name string, ft FuncType, locals []ValType, emit func(e *Emitter)) uint32 {
	e := &Emitter{}
	emit(e)
	e.End()
	b.funcs = append(b.funcs, builderFunc{
		name:    name,
		typeIdx: b.Type(ft),
		locals:  locals,
		body:    e.Bytes(),
	})
	return uint32(len(b.imports) + len(b.funcs) - 1)
}

// Export exports an item by kind and index.
func (b *Builder) Export(name string, kind byte, idx uint32) *Builder {
	b.exports = append(b.exports, builderExport{name: name, kind: kind, idx: idx})
	return b
}

// Custom appends a custom section.
func (b *Builder) Custom(name string, data []byte) *Builder {
	b.customs = append(b.customs, CustomSection{Name: name, Data: data})
	return b
}

// Bytes encodes the module.
func (b *Builder) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}

	w := bin.NewWriter()
	w.WriteU32LE(Magic)
	w.WriteU32LE(Version)

	if len(b.types) > 0 {
		s := bin.NewWriter()
		s.WriteU32(uint32(len(b.types)))
		for _, ft := range b.types {
			s.Byte(FuncTypeByte)
			writeValTypes(s, ft.Params)
			writeValTypes(s, ft.Results)
		}
		writeSection(w, SectionType, s)
	}

	if len(b.imports) > 0 {
		s := bin.NewWriter()
		s.WriteU32(uint32(len(b.imports)))
		for _, imp := range b.imports {
			s.WriteName(imp.module)
			s.WriteName(imp.name)
			s.Byte(KindFunc)
			s.WriteU32(imp.typeIdx)
		}
		writeSection(w, SectionImport, s)
	}

	if len(b.funcs) > 0 {
		s := bin.NewWriter()
		s.WriteU32(uint32(len(b.funcs)))
		for _, f := range b.funcs {
			s.WriteU32(f.typeIdx)
		}
		writeSection(w, SectionFunction, s)
	}

	if b.memory != nil {
		s := bin.NewWriter()
		s.WriteU32(1)
		if b.memory[1] == 0 {
			s.Byte(0)
			s.WriteU32(b.memory[0])
		} else {
			s.Byte(LimitsHasMax)
			s.WriteU32(b.memory[0])
			s.WriteU32(b.memory[1])
		}
		writeSection(w, SectionMemory, s)
	}

	if len(b.globals) > 0 {
		s := bin.NewWriter()
		s.WriteU32(uint32(len(b.globals)))
		for _, g := range b.globals {
			s.Byte(byte(g.typ))
			if g.mutable {
				s.Byte(1)
			} else {
				s.Byte(0)
			}
			if g.typ == ValI64 {
				s.Byte(OpI64Const)
			} else {
				s.Byte(OpI32Const)
			}
			s.WriteS64(g.init)
			s.Byte(OpEnd)
		}
		writeSection(w, SectionGlobal, s)
	}

	if len(b.exports) > 0 {
		s := bin.NewWriter()
		s.WriteU32(uint32(len(b.exports)))
		for _, ex := range b.exports {
			s.WriteName(ex.name)
			s.Byte(ex.kind)
			s.WriteU32(ex.idx)
		}
		writeSection(w, SectionExport, s)
	}

	if len(b.funcs) > 0 {
		s := bin.NewWriter()
		s.WriteU32(uint32(len(b.funcs)))
		for _, f := range b.funcs {
			body := bin.NewWriter()
			writeLocals(body, f.locals)
			body.WriteBytes(f.body)
			s.WriteSized(body.Bytes())
		}
		writeSection(w, SectionCode, s)
	}

	for _, cs := range b.customs {
		writeCustom(w, cs.Name, cs.Data)
	}

	if b.names {
		ns := NameSection{Module: b.module, Functions: make(map[uint32]string)}
		for i, f := range b.funcs {
			if f.name != "" {
				ns.Functions[uint32(len(b.imports)+i)] = f.name
			}
		}
		writeCustom(w, "name", ns.Encode())
	}

	return w.Bytes(), nil
}

func writeSection(w *bin.Writer, id byte, payload *bin.Writer) {
	w.Byte(id)
	w.WriteSized(payload.Bytes())
}

func writeCustom(w *bin.Writer, name string, data []byte) {
	s := bin.NewWriter()
	s.WriteName(name)
	s.WriteBytes(data)
	writeSection(w, SectionCustom, s)
}

func writeValTypes(w *bin.Writer, ts []ValType) {
	w.WriteU32(uint32(len(ts)))
	for _, t := range ts {
		w.Byte(byte(t))
	}
}

// writeLocals run-length encodes consecutive locals of the same type.
func writeLocals(w *bin.Writer, locals []ValType) {
	type group struct {
		n uint32
		t ValType
	}
	var groups []group
	for _, t := range locals {
		if n := len(groups); n > 0 && groups[n-1].t == t {
			groups[n-1].n++
			continue
		}
		groups = append(groups, group{n: 1, t: t})
	}
	w.WriteU32(uint32(len(groups)))
	for _, g := range groups {
		w.WriteU32(g.n)
		w.Byte(byte(g.t))
	}
}
