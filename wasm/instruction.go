package wasm

import (
	"io"
	"strconv"

	"github.com/wippyai/simd-detect/errors"
	"github.com/wippyai/simd-detect/wasm/internal/binary"
)

// Instruction is one decoded instruction. Immediates are skipped; only the
// opcode identity and its absolute file offset are kept.
type Instruction struct {
	Offset    uint32 // absolute offset of the opcode byte
	SubOpcode uint32 // valid when Prefixed
	Opcode    byte
}

// Prefixed reports whether the instruction uses a multi-byte prefix.
func (i Instruction) Prefixed() bool {
	return i.Opcode >= OpPrefixGC && i.Opcode <= OpPrefixAtomic
}

// IsSIMD reports whether the instruction is in the 0xFD vector space.
func (i Instruction) IsSIMD() bool {
	return i.Opcode == OpPrefixSIMD
}

// InstructionReader walks the expression of a function body.
type InstructionReader struct {
	r      *binary.Reader
	fn     Function
	locals bool
}

// NewInstructionReader returns a reader positioned at the start of fn's body.
// Local declarations are consumed on the first call to Next.
func NewInstructionReader(fn Function) *InstructionReader {
	return &InstructionReader{
		r:  binary.NewReaderAt(fn.Body, fn.Offset),
		fn: fn,
	}
}

// Remaining returns the number of undecoded body bytes.
func (ir *InstructionReader) Remaining() int {
	return ir.r.Len()
}

// Next decodes the next instruction. It returns io.EOF after the last one.
func (ir *InstructionReader) Next() (Instruction, error) {
	if !ir.locals {
		if err := ir.skipLocals(); err != nil {
			return Instruction{}, err
		}
		ir.locals = true
	}
	if ir.r.Len() == 0 {
		return Instruction{}, io.EOF
	}

	ins := Instruction{Offset: ir.r.Offset()}
	op, _ := ir.r.ReadByte()
	ins.Opcode = op

	var err error
	switch {
	case op >= OpPrefixGC && op <= OpPrefixAtomic:
		ins.SubOpcode, err = ir.r.ReadU32()
		if err == nil {
			err = ir.skipPrefixed(op, ins.SubOpcode, ins.Offset)
		}
	default:
		err = ir.skipImmediate(op, ins.Offset)
	}
	if err != nil {
		return Instruction{}, ir.wrap(err)
	}
	return ins, nil
}

// LocalsEnd returns the absolute offset of the first instruction, decoding
// the local declarations if needed.
func (ir *InstructionReader) LocalsEnd() (uint32, error) {
	if !ir.locals {
		if err := ir.skipLocals(); err != nil {
			return 0, err
		}
		ir.locals = true
	}
	return ir.r.Offset(), nil
}

func (ir *InstructionReader) skipLocals() error {
	groups, err := ir.r.ReadU32()
	if err != nil {
		return ir.wrap(err)
	}
	for i := uint32(0); i < groups; i++ {
		if _, err := ir.r.ReadU32(); err != nil {
			return ir.wrap(err)
		}
		if err := skipValType(ir.r); err != nil {
			return ir.wrap(err)
		}
	}
	return nil
}

func (ir *InstructionReader) wrap(err error) error {
	idx := strconv.FormatUint(uint64(ir.fn.Index), 10)
	if e, ok := err.(*errors.Error); ok {
		if len(e.Path) == 0 {
			e.Path = []string{"func", idx}
		}
		return e
	}
	return errors.New(errors.PhaseDecode, errors.KindInvalidData).
		Path("func", idx).
		Offset(ir.r.Offset()).
		Cause(err).
		Detail("malformed function body").
		Build()
}

func (ir *InstructionReader) skipImmediate(op byte, at uint32) error {
	r := ir.r
	switch {
	case op == OpBlock || op == OpLoop || op == OpIf || op == OpTry:
		_, err := r.ReadS33()
		return err

	case op == OpTryTable:
		if _, err := r.ReadS33(); err != nil {
			return err
		}
		n, err := r.ReadU32()
		if err != nil {
			return err
		}
		for i := uint32(0); i < n; i++ {
			kind, err := r.ReadByte()
			if err != nil {
				return err
			}
			if kind == CatchKindCatch || kind == CatchKindCatchRef {
				if _, err := r.ReadU32(); err != nil {
					return err
				}
			}
			if _, err := r.ReadU32(); err != nil {
				return err
			}
		}
		return nil

	case op == OpBrTable:
		n, err := r.ReadU32()
		if err != nil {
			return err
		}
		for i := uint32(0); i <= n; i++ {
			if _, err := r.ReadU32(); err != nil {
				return err
			}
		}
		return nil

	case op == OpCallIndirect || op == OpReturnCallIndirect:
		return skipU32s(r, 2)

	case op == OpCatch || op == OpThrow || op == OpRethrow || op == OpDelegate,
		op == OpBr || op == OpBrIf,
		op == OpCall || op == OpReturnCall || op == OpCallRef || op == OpReturnCallRef,
		op >= OpLocalGet && op <= OpTableSet,
		op == OpMemorySize || op == OpMemoryGrow,
		op == OpRefFunc || op == OpBrOnNull || op == OpBrOnNonNull:
		return skipU32s(r, 1)

	case op >= OpI32Load && op <= OpI64Store32:
		return skipMemArg(r)

	case op == OpI32Const:
		_, err := r.ReadS32()
		return err
	case op == OpI64Const:
		_, err := r.ReadS64()
		return err
	case op == OpF32Const:
		return r.Skip(4)
	case op == OpF64Const:
		return r.Skip(8)

	case op == OpRefNull:
		_, err := r.ReadS33()
		return err

	case op == OpSelectType:
		n, err := r.ReadU32()
		if err != nil {
			return err
		}
		for i := uint32(0); i < n; i++ {
			if err := skipValType(r); err != nil {
				return err
			}
		}
		return nil

	case op == OpUnreachable || op == OpNop || op == OpElse || op == OpThrowRef || op == OpEnd,
		op == OpReturn || op == OpCatchAll || op == OpDrop || op == OpSelect,
		op >= OpI32Eqz && op <= OpI64Extend32S,
		op == OpRefIsNull || op == OpRefAsNonNull || op == OpRefEq:
		return nil
	}
	return errors.UnknownOpcode(op, 0, at)
}

func (ir *InstructionReader) skipPrefixed(prefix byte, sub uint32, at uint32) error {
	r := ir.r
	switch prefix {
	case OpPrefixSIMD:
		switch {
		case sub <= SimdV128Store, sub == SimdV128Load32Zero, sub == SimdV128Load64Zero:
			return skipMemArg(r)
		case sub == SimdV128Const || sub == SimdI8x16Shuffle:
			return r.Skip(16)
		case sub >= SimdI8x16ExtractLaneS && sub <= SimdF64x2ReplaceLane:
			return r.Skip(1)
		case sub >= SimdV128Load8Lane && sub <= SimdV128Store64Lane:
			if err := skipMemArg(r); err != nil {
				return err
			}
			return r.Skip(1)
		case sub <= SimdRelaxedLast:
			return nil
		}

	case OpPrefixMisc:
		switch {
		case sub <= MiscI64TruncSatF64U:
			return nil
		case sub == MiscMemoryInit || sub == MiscMemoryCopy || sub == MiscTableInit || sub == MiscTableCopy:
			return skipU32s(r, 2)
		case sub <= MiscMemoryDiscard:
			return skipU32s(r, 1)
		}

	case OpPrefixAtomic:
		switch {
		case sub == AtomicFence:
			return r.Skip(1)
		case sub <= AtomicLastRMW:
			return skipMemArg(r)
		}

	case OpPrefixGC:
		return skipGCImmediate(r, sub, at)
	}
	return errors.UnknownOpcode(prefix, sub, at)
}

func skipGCImmediate(r *binary.Reader, sub uint32, at uint32) error {
	switch sub {
	case GCStructNew, GCStructNewDefault,
		GCArrayNew, GCArrayNewDefault, GCArrayGet, GCArrayGetS, GCArrayGetU,
		GCArraySet, GCArrayFill:
		return skipU32s(r, 1)

	case GCStructGet, GCStructGetS, GCStructGetU, GCStructSet,
		GCArrayNewFixed, GCArrayNewData, GCArrayInitData,
		GCArrayNewElem, GCArrayInitElem, GCArrayCopy:
		return skipU32s(r, 2)

	case GCRefTest, GCRefTestNull, GCRefCast, GCRefCastNull:
		_, err := r.ReadS33()
		return err

	case GCBrOnCast, GCBrOnCastFail:
		// castflags, labelidx, heaptype, heaptype
		if err := r.Skip(1); err != nil {
			return err
		}
		if _, err := r.ReadU32(); err != nil {
			return err
		}
		if _, err := r.ReadS33(); err != nil {
			return err
		}
		_, err := r.ReadS33()
		return err

	case GCArrayLen, GCAnyConvertExtern, GCExternConvertAny,
		GCRefI31, GCI31GetS, GCI31GetU:
		return nil
	}
	return errors.UnknownOpcode(OpPrefixGC, sub, at)
}

// skipMemArg consumes a memarg. Bit 6 of the alignment announces a memory index.
func skipMemArg(r *binary.Reader) error {
	align, err := r.ReadU32()
	if err != nil {
		return err
	}
	if align&memArgMultiMemBit != 0 {
		if _, err := r.ReadU32(); err != nil {
			return err
		}
	}
	_, err = r.ReadU64()
	return err
}

func skipU32s(r *binary.Reader, n int) error {
	for i := 0; i < n; i++ {
		if _, err := r.ReadU32(); err != nil {
			return err
		}
	}
	return nil
}

func skipValType(r *binary.Reader) error {
	b, err := r.ReadByte()
	if err != nil {
		return err
	}
	if hasHeapType(b) {
		_, err = r.ReadS33()
	}
	return err
}
