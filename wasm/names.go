package wasm

import (
	"sort"

	"github.com/wippyai/simd-detect/errors"
	bin "github.com/wippyai/simd-detect/wasm/internal/binary"
)

// Name section subsection ids.
const (
	nameSubModule   byte = 0
	nameSubFunction byte = 1
)

// NameSection holds the decoded "name" custom section.
type NameSection struct {
	Functions map[uint32]string
	Module    string
}

func parseNameSection(data []byte, base uint32) (*NameSection, error) {
	r := bin.NewReaderAt(data, base)
	ns := &NameSection{Functions: make(map[uint32]string)}

	for r.Len() > 0 {
		id, _ := r.ReadByte()
		size, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		sub, err := r.Sub(int(size))
		if err != nil {
			return nil, err
		}

		switch id {
		case nameSubModule:
			if ns.Module, err = sub.ReadName(); err != nil {
				return nil, err
			}
		case nameSubFunction:
			count, err := sub.ReadU32()
			if err != nil {
				return nil, err
			}
			for i := uint32(0); i < count; i++ {
				idx, err := sub.ReadU32()
				if err != nil {
					return nil, err
				}
				name, err := sub.ReadName()
				if err != nil {
					return nil, err
				}
				ns.Functions[idx] = name
			}
		}
		// local, label and type name subsections are skipped
	}

	if len(ns.Functions) == 0 && ns.Module == "" {
		return nil, errors.NotFound(errors.PhaseParse, "name subsection", "function")
	}
	return ns, nil
}

// Encode serializes the name section payload (without the custom section name).
func (ns *NameSection) Encode() []byte {
	w := bin.NewWriter()
	if ns.Module != "" {
		sub := bin.NewWriter()
		sub.WriteName(ns.Module)
		w.Byte(nameSubModule)
		w.WriteSized(sub.Bytes())
	}
	if len(ns.Functions) > 0 {
		idxs := make([]uint32, 0, len(ns.Functions))
		for idx := range ns.Functions {
			idxs = append(idxs, idx)
		}
		sort.Slice(idxs, func(i, j int) bool { return idxs[i] < idxs[j] })

		sub := bin.NewWriter()
		sub.WriteU32(uint32(len(idxs)))
		for _, idx := range idxs {
			sub.WriteU32(idx)
			sub.WriteName(ns.Functions[idx])
		}
		w.Byte(nameSubFunction)
		w.WriteSized(sub.Bytes())
	}
	return w.Bytes()
}
