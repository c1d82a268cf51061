// Package dwarftest builds minimal DWARF 4 sections for tests: one
// compilation unit with a line table and nothing else.
package dwarftest

import (
	"encoding/binary"

	"github.com/wippyai/simd-detect/wasm"
)

// Row places a line at a code-section-relative address.
type Row struct {
	Addr uint64
	Line int
}

// Sequence is a run of rows ending at End (exclusive).
type Sequence struct {
	Rows []Row
	End  uint64
}

// Line number program opcodes.
const (
	lnsCopy       = 0x01
	lnsAdvancePC  = 0x02
	lnsAdvanceLn  = 0x03
	lneEndSeq     = 0x01
	lneSetAddress = 0x02
)

// Sections returns .debug_abbrev, .debug_info and .debug_line contents for a
// unit named file compiled in compDir.
func Sections(file, compDir string, seqs ...Sequence) map[string][]byte {
	return map[string][]byte{
		".debug_abbrev": abbrev(),
		".debug_info":   info(file, compDir),
		".debug_line":   line(file, seqs),
	}
}

// Attach adds the sections to a module builder.
func Attach(b *wasm.Builder, file, compDir string, seqs ...Sequence) *wasm.Builder {
	s := Sections(file, compDir, seqs...)
	for _, name := range []string{".debug_abbrev", ".debug_info", ".debug_line"} {
		b.Custom(name, s[name])
	}
	return b
}

func abbrev() []byte {
	return []byte{
		0x01,       // code
		0x11, 0x00, // DW_TAG_compile_unit, no children
		0x03, 0x08, // DW_AT_name, DW_FORM_string
		0x1b, 0x08, // DW_AT_comp_dir, DW_FORM_string
		0x10, 0x17, // DW_AT_stmt_list, DW_FORM_sec_offset
		0x00, 0x00,
		0x00,
	}
}

func info(file, compDir string) []byte {
	var body []byte
	body = binary.LittleEndian.AppendUint16(body, 4) // version
	body = binary.LittleEndian.AppendUint32(body, 0) // abbrev offset
	body = append(body, 4)                           // address size
	body = append(body, 0x01)
	body = append(append(body, file...), 0)
	body = append(append(body, compDir...), 0)
	body = binary.LittleEndian.AppendUint32(body, 0) // stmt_list

	out := binary.LittleEndian.AppendUint32(nil, uint32(len(body)))
	return append(out, body...)
}

func line(file string, seqs []Sequence) []byte {
	var hdr []byte
	hdr = append(hdr,
		1,          // minimum_instruction_length
		1,          // maximum_operations_per_instruction
		1,          // default_is_stmt
		0xfb,       // line_base -5
		14,         // line_range
		13,         // opcode_base
		0, 1, 1, 1, 1, 0, 0, 0, 1, 0, 0, 1, // standard_opcode_lengths
		0, // no include directories
	)
	hdr = append(append(hdr, file...), 0)
	hdr = append(hdr, 0, 0, 0) // dir, mtime, length
	hdr = append(hdr, 0)       // end of file names

	var prog []byte
	for _, s := range seqs {
		prog = program(prog, s)
	}

	var body []byte
	body = binary.LittleEndian.AppendUint16(body, 4)
	body = binary.LittleEndian.AppendUint32(body, uint32(len(hdr)))
	body = append(body, hdr...)
	body = append(body, prog...)

	out := binary.LittleEndian.AppendUint32(nil, uint32(len(body)))
	return append(out, body...)
}

func program(prog []byte, s Sequence) []byte {
	if len(s.Rows) == 0 {
		return prog
	}
	addr := s.Rows[0].Addr
	ln := 1

	prog = append(prog, 0x00, 5, lneSetAddress)
	prog = binary.LittleEndian.AppendUint32(prog, uint32(addr))

	for _, r := range s.Rows {
		if r.Addr != addr {
			prog = append(prog, lnsAdvancePC)
			prog = wasm.AppendULEB128(prog, r.Addr-addr)
			addr = r.Addr
		}
		if r.Line != ln {
			prog = append(prog, lnsAdvanceLn)
			prog = wasm.AppendSLEB128(prog, int64(r.Line-ln))
			ln = r.Line
		}
		prog = append(prog, lnsCopy)
	}

	prog = append(prog, lnsAdvancePC)
	prog = wasm.AppendULEB128(prog, s.End-addr)
	return append(prog, 0x00, 1, lneEndSeq)
}
