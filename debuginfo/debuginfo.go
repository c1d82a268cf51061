// Package debuginfo resolves code-section offsets of a WebAssembly binary to
// source locations using the DWARF line tables in its ".debug_*" custom
// sections.
//
// WebAssembly DWARF addresses are offsets from the start of the code section
// payload, so callers pass Instruction.Offset minus CodeSection.Start.
package debuginfo

import (
	"debug/dwarf"
	"io"
	"path"
	"sort"

	"go.uber.org/zap"

	"github.com/wippyai/simd-detect/errors"
	"github.com/wippyai/simd-detect/wasm"
)

// Sequences starting at these addresses belong to code the linker discarded.
const (
	tombstone    = 0xffffffff
	tombstoneAlt = 0xfffffffe
)

// Location is a resolved source position.
type Location struct {
	File   string `json:"file" yaml:"file"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column,omitempty" yaml:"column,omitempty"`
}

// Row is one line-table row.
type Row struct {
	Location
	Address uint64
}

type sequence struct {
	rows  []Row
	start uint64
	end   uint64
}

// Unit summarizes one compilation unit.
type Unit struct {
	Name     string
	CompDir  string
	Producer string
	Rows     int
}

// Resolver answers address-to-line queries. A nil *Resolver is valid and
// resolves nothing.
type Resolver struct {
	seqs  []sequence
	units []Unit
}

// Load builds a Resolver from the binary's DWARF sections. It returns
// (nil, nil) when the binary has no .debug_info section.
func Load(bin *wasm.Binary) (*Resolver, error) {
	info := section(bin, ".debug_info")
	if info == nil {
		return nil, nil
	}

	d, err := dwarf.New(
		section(bin, ".debug_abbrev"),
		section(bin, ".debug_aranges"),
		section(bin, ".debug_frame"),
		info,
		section(bin, ".debug_line"),
		section(bin, ".debug_pubnames"),
		section(bin, ".debug_ranges"),
		section(bin, ".debug_str"),
	)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDebugInfo, errors.KindInvalidData, err, "load DWARF")
	}

	// DWARF 5 auxiliary sections.
	for _, name := range []string{".debug_addr", ".debug_line_str", ".debug_str_offsets", ".debug_rnglists"} {
		if data := section(bin, name); data != nil {
			if err := d.AddSection(name, data); err != nil {
				return nil, errors.Wrap(errors.PhaseDebugInfo, errors.KindInvalidData, err, "load "+name)
			}
		}
	}

	return build(d)
}

func section(bin *wasm.Binary, name string) []byte {
	if cs := bin.Custom(name); cs != nil {
		return cs.Data
	}
	return nil
}

func build(d *dwarf.Data) (*Resolver, error) {
	res := &Resolver{}
	r := d.Reader()

	for {
		e, err := r.Next()
		if err != nil {
			return nil, errors.Wrap(errors.PhaseDebugInfo, errors.KindInvalidData, err, "read compilation unit")
		}
		if e == nil {
			break
		}
		if e.Tag != dwarf.TagCompileUnit {
			r.SkipChildren()
			continue
		}

		unit := Unit{}
		unit.Name, _ = e.Val(dwarf.AttrName).(string)
		unit.CompDir, _ = e.Val(dwarf.AttrCompDir).(string)
		unit.Producer, _ = e.Val(dwarf.AttrProducer).(string)

		lr, err := d.LineReader(e)
		if err != nil {
			return nil, errors.New(errors.PhaseDebugInfo, errors.KindInvalidData).
				Path(unit.Name).
				Cause(err).
				Detail("read line table header").
				Build()
		}
		if lr != nil {
			n, err := res.addLines(lr, unit.CompDir)
			if err != nil {
				return nil, errors.New(errors.PhaseDebugInfo, errors.KindInvalidData).
					Path(unit.Name).
					Cause(err).
					Detail("read line table").
					Build()
			}
			unit.Rows = n
		}
		res.units = append(res.units, unit)
		r.SkipChildren()
	}

	sort.SliceStable(res.seqs, func(i, j int) bool { return res.seqs[i].start < res.seqs[j].start })

	Logger().Debug("loaded DWARF line tables",
		zap.Int("units", len(res.units)),
		zap.Int("sequences", len(res.seqs)))
	return res, nil
}

func (res *Resolver) addLines(lr *dwarf.LineReader, compDir string) (int, error) {
	var (
		le    dwarf.LineEntry
		cur   sequence
		total int
	)
	for {
		err := lr.Next(&le)
		if err == io.EOF {
			break
		}
		if err != nil {
			return total, err
		}

		if len(cur.rows) == 0 && !le.EndSequence {
			cur.start = le.Address
		}
		if le.EndSequence {
			cur.end = le.Address
			res.addSequence(cur)
			cur = sequence{}
			continue
		}

		row := Row{Address: le.Address, Location: Location{Line: le.Line, Column: le.Column}}
		if le.File != nil {
			row.File = le.File.Name
			if row.File != "" && !path.IsAbs(row.File) && compDir != "" {
				row.File = path.Join(compDir, row.File)
			}
		}
		cur.rows = append(cur.rows, row)
		total++
	}
	return total, nil
}

func (res *Resolver) addSequence(s sequence) {
	if len(s.rows) == 0 || s.end <= s.start || s.start == tombstone || s.start == tombstoneAlt {
		return
	}
	sort.SliceStable(s.rows, func(i, j int) bool { return s.rows[i].Address < s.rows[j].Address })
	res.seqs = append(res.seqs, s)
}

// Lookup returns the source location of a code-section-relative address.
func (res *Resolver) Lookup(addr uint64) (Location, bool) {
	if res == nil {
		return Location{}, false
	}

	// Discarded code can leave sequences overlapping live ones, so the
	// nearest preceding sequence may not cover addr.
	i := sort.Search(len(res.seqs), func(i int) bool { return res.seqs[i].start > addr }) - 1
	for i >= 0 && addr >= res.seqs[i].end {
		i--
	}
	if i < 0 {
		return Location{}, false
	}
	rows := res.seqs[i].rows
	j := sort.Search(len(rows), func(j int) bool { return rows[j].Address > addr }) - 1
	if j < 0 || rows[j].Line == 0 {
		return Location{}, false
	}
	return rows[j].Location, true
}

// Units returns the compilation units seen while loading.
func (res *Resolver) Units() []Unit {
	if res == nil {
		return nil
	}
	return res.units
}

// Rows returns every line-table row in address order.
func (res *Resolver) Rows() []Row {
	if res == nil {
		return nil
	}
	var out []Row
	for _, s := range res.seqs {
		out = append(out, s.rows...)
	}
	return out
}
