package wasm

import (
	"encoding/binary"
	"strings"

	"github.com/wippyai/simd-detect/errors"
	bin "github.com/wippyai/simd-detect/wasm/internal/binary"
)

// Binary is the parsed view of a core module needed to walk its code.
// Sections other than import, code and custom are skipped by size.
type Binary struct {
	CodeSection    *SectionRange
	Names          *NameSection
	Functions      []Function
	CustomSections []CustomSection
	Size           int
	ImportedFuncs  uint32
}

// Function is one code-section body.
type Function struct {
	Body       []byte // locals followed by the expression
	Index      uint32 // index in the function index space
	Offset     uint32 // absolute offset of Body
	CodeOffset uint32 // offset of Body relative to the code section payload
}

// End returns the absolute offset one past the body.
func (f Function) End() uint32 {
	return f.Offset + uint32(len(f.Body))
}

// SectionRange is the absolute payload range of a section.
type SectionRange struct {
	Start uint32
	End   uint32
	ID    byte
}

// CustomSection is a named custom section. Offset is the absolute start of Data.
type CustomSection struct {
	Name   string
	Data   []byte
	Offset uint32
}

// IsComponent reports whether data is a component-model binary.
func IsComponent(data []byte) bool {
	return len(data) >= 8 &&
		binary.LittleEndian.Uint32(data[0:4]) == Magic &&
		binary.LittleEndian.Uint32(data[4:8]) == ComponentVersion
}

// Parse walks the section table of a core module.
func Parse(data []byte) (*Binary, error) {
	r := bin.NewReader(data)

	magic, err := r.ReadU32LE()
	if err != nil || magic != Magic {
		return nil, errors.InvalidData(errors.PhaseParse, "header", "invalid wasm magic number")
	}
	version, err := r.ReadU32LE()
	if err != nil {
		return nil, errors.InvalidData(errors.PhaseParse, "header", "truncated version")
	}
	if version == ComponentVersion {
		return nil, errors.Unsupported(errors.PhaseParse, "component binaries are not supported; analyze the embedded core module")
	}
	if version != Version {
		return nil, errors.New(errors.PhaseParse, errors.KindUnsupported).
			Section("header").
			Value(version).
			Detail("unsupported wasm version %d", version).
			Build()
	}

	b := &Binary{Size: len(data)}
	var lastOrder int

	for r.Len() > 0 {
		headerAt := r.Offset()
		id, _ := r.ReadByte()

		if id != SectionCustom {
			order := sectionOrder(id)
			if order == 0 {
				return nil, sectionError(id, headerAt, "unknown section id %d", id)
			}
			if order <= lastOrder {
				return nil, sectionError(id, headerAt, "section %d appears out of order", id)
			}
			lastOrder = order
		}

		size, err := r.ReadU32()
		if err != nil {
			return nil, sectionCause(id, headerAt, err)
		}
		sr, err := r.Sub(int(size))
		if err != nil {
			return nil, sectionCause(id, headerAt, err)
		}

		switch id {
		case SectionCustom:
			err = b.parseCustom(sr)
		case SectionImport:
			err = b.parseImports(sr)
		case SectionCode:
			b.CodeSection = &SectionRange{ID: id, Start: sr.Offset(), End: sr.Offset() + size}
			err = b.parseCode(sr)
		}
		if err != nil {
			return nil, sectionCause(id, sr.Offset(), err)
		}
	}

	if cs := b.Custom("name"); cs != nil {
		// A broken name section only costs us names.
		if names, err := parseNameSection(cs.Data, cs.Offset); err == nil {
			b.Names = names
		}
	}

	return b, nil
}

// Custom returns the first custom section with the given name.
func (b *Binary) Custom(name string) *CustomSection {
	for i := range b.CustomSections {
		if b.CustomSections[i].Name == name {
			return &b.CustomSections[i]
		}
	}
	return nil
}

// HasDebugInfo reports whether DWARF sections are embedded.
func (b *Binary) HasDebugInfo() bool {
	for _, cs := range b.CustomSections {
		if strings.HasPrefix(cs.Name, ".debug_") {
			return true
		}
	}
	return false
}

// FunctionName returns the name-section name of a function index.
func (b *Binary) FunctionName(idx uint32) (string, bool) {
	if b.Names == nil {
		return "", false
	}
	name, ok := b.Names.Functions[idx]
	return name, ok
}

func (b *Binary) parseCustom(r *bin.Reader) error {
	name, err := r.ReadName()
	if err != nil {
		return err
	}
	off := r.Offset()
	b.CustomSections = append(b.CustomSections, CustomSection{
		Name:   name,
		Data:   r.ReadRemaining(),
		Offset: off,
	})
	return nil
}

func (b *Binary) parseImports(r *bin.Reader) error {
	count, err := r.ReadU32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		if _, err := r.ReadName(); err != nil {
			return err
		}
		if _, err := r.ReadName(); err != nil {
			return err
		}
		kind, err := r.ReadByte()
		if err != nil {
			return err
		}

		switch kind {
		case KindFunc:
			_, err = r.ReadU32()
			b.ImportedFuncs++
		case KindTable:
			if err = skipValType(r); err == nil {
				err = skipLimits(r)
			}
		case KindMemory:
			err = skipLimits(r)
		case KindGlobal:
			if err = skipValType(r); err == nil {
				err = r.Skip(1)
			}
		case KindTag:
			// attribute, typeidx
			if err = r.Skip(1); err == nil {
				_, err = r.ReadU32()
			}
		default:
			return errors.New(errors.PhaseParse, errors.KindInvalidData).
				Section("import").
				Offset(r.Offset() - 1).
				Value(kind).
				Detail("unknown import kind %d", kind).
				Build()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *Binary) parseCode(r *bin.Reader) error {
	start := r.Offset()
	count, err := r.ReadU32()
	if err != nil {
		return err
	}
	// Each body needs at least its size byte.
	if uint64(count) > uint64(r.Len()) {
		return errors.New(errors.PhaseParse, errors.KindInvalidData).
			Section("code").
			Offset(start).
			Value(count).
			Detail("function count %d exceeds section size", count).
			Build()
	}
	b.Functions = make([]Function, 0, count)
	for i := uint32(0); i < count; i++ {
		size, err := r.ReadU32()
		if err != nil {
			return err
		}
		off := r.Offset()
		body, err := r.ReadBytes(int(size))
		if err != nil {
			return err
		}
		b.Functions = append(b.Functions, Function{
			Index:      b.ImportedFuncs + i,
			Offset:     off,
			CodeOffset: off - start,
			Body:       body,
		})
	}
	if r.Len() != 0 {
		return errors.InvalidData(errors.PhaseParse, "code", "trailing bytes after last function body")
	}
	return nil
}

// skipLimits consumes a limits record. Memory64 limits are u64; a custom
// page size trails as its log2.
func skipLimits(r *bin.Reader) error {
	flags, err := r.ReadByte()
	if err != nil {
		return err
	}
	n := 1
	if flags&LimitsHasMax != 0 {
		n = 2
	}
	for i := 0; i < n; i++ {
		if flags&LimitsMemory64 != 0 {
			_, err = r.ReadU64()
		} else {
			_, err = r.ReadU32()
		}
		if err != nil {
			return err
		}
	}
	if flags&LimitsPageSize != 0 {
		_, err = r.ReadU32()
	}
	return err
}

// sectionOrder returns the canonical position of a known section id, 0 otherwise.
func sectionOrder(id byte) int {
	switch id {
	case SectionType:
		return 1
	case SectionImport:
		return 2
	case SectionFunction:
		return 3
	case SectionTable:
		return 4
	case SectionMemory:
		return 5
	case SectionTag:
		return 6
	case SectionGlobal:
		return 7
	case SectionExport:
		return 8
	case SectionStart:
		return 9
	case SectionElement:
		return 10
	case SectionDataCount:
		return 11
	case SectionCode:
		return 12
	case SectionData:
		return 13
	}
	return 0
}

var sectionNames = map[byte]string{
	SectionCustom:    "custom",
	SectionType:      "type",
	SectionImport:    "import",
	SectionFunction:  "function",
	SectionTable:     "table",
	SectionMemory:    "memory",
	SectionGlobal:    "global",
	SectionExport:    "export",
	SectionStart:     "start",
	SectionElement:   "element",
	SectionCode:      "code",
	SectionData:      "data",
	SectionDataCount: "datacount",
	SectionTag:       "tag",
}

func sectionName(id byte) string {
	if n, ok := sectionNames[id]; ok {
		return n
	}
	return "unknown"
}

func sectionError(id byte, at uint32, msg string, args ...any) error {
	return errors.New(errors.PhaseParse, errors.KindInvalidData).
		Section(sectionName(id)).
		Offset(at).
		Detail(msg, args...).
		Build()
}

func sectionCause(id byte, at uint32, cause error) error {
	if e, ok := cause.(*errors.Error); ok {
		if e.Section == "" {
			e.Section = sectionName(id)
		}
		return e
	}
	return errors.New(errors.PhaseParse, errors.KindInvalidData).
		Section(sectionName(id)).
		Offset(at).
		Cause(cause).
		Detail("malformed section").
		Build()
}
