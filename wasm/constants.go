package wasm

// Binary header. A core module is "\0asm" followed by version 1; components
// share the magic but carry version 0x0d and layer 1.
const (
	// Magic is the WebAssembly binary magic number ("\0asm" in little-endian).
	Magic            uint32 = 0x6D736100

	// Version is the supported core module binary version.
	Version          uint32 = 0x01

	// ComponentVersion is the version/layer word of a component binary.
	ComponentVersion uint32 = 0x0001000d
)

// Section IDs define the binary identifiers for each module section.
const (
	SectionCustom    byte = 0
	SectionType      byte = 1
	SectionImport    byte = 2
	SectionFunction  byte = 3
	SectionTable     byte = 4
	SectionMemory    byte = 5
	SectionGlobal    byte = 6
	SectionExport    byte = 7
	SectionStart     byte = 8
	SectionElement   byte = 9
	SectionCode      byte = 10
	SectionData      byte = 11
	SectionDataCount byte = 12
	SectionTag       byte = 13
)

// Import/Export descriptor kinds.
const (
	KindFunc   byte = 0
	KindTable  byte = 1
	KindMemory byte = 2
	KindGlobal byte = 3
	KindTag    byte = 4
)

// ValType is a value type byte.
type ValType byte

// Value type encodings.
const (
	ValI32     ValType = 0x7F
	ValI64     ValType = 0x7E
	ValF32     ValType = 0x7D
	ValF64     ValType = 0x7C
	ValV128    ValType = 0x7B
	ValFuncRef ValType = 0x70
	ValExtern  ValType = 0x6F
	ValRefNull ValType = 0x63 // (ref null ht), heap type follows
	ValRef     ValType = 0x64 // (ref ht), heap type follows
)

// hasHeapType reports whether a value type byte is followed by a heap type.
func hasHeapType(b byte) bool {
	return b == byte(ValRefNull) || b == byte(ValRef)
}

// BlockTypeVoid is the empty block type (0x40).
const BlockTypeVoid byte = 0x40

// FuncTypeByte introduces a function type in the type section.
const FuncTypeByte byte = 0x60

// Control flow opcodes
const (
	OpUnreachable        byte = 0x00
	OpNop                byte = 0x01
	OpBlock              byte = 0x02
	OpLoop               byte = 0x03
	OpIf                 byte = 0x04
	OpElse               byte = 0x05
	OpTry                byte = 0x06
	OpCatch              byte = 0x07
	OpThrow              byte = 0x08
	OpRethrow            byte = 0x09
	OpThrowRef           byte = 0x0A
	OpEnd                byte = 0x0B
	OpBr                 byte = 0x0C
	OpBrIf               byte = 0x0D
	OpBrTable            byte = 0x0E
	OpReturn             byte = 0x0F
	OpCall               byte = 0x10
	OpCallIndirect       byte = 0x11
	OpReturnCall         byte = 0x12
	OpReturnCallIndirect byte = 0x13
	OpCallRef            byte = 0x14
	OpReturnCallRef      byte = 0x15
	OpDelegate           byte = 0x18
	OpCatchAll           byte = 0x19
	OpDrop               byte = 0x1A
	OpSelect             byte = 0x1B
	OpSelectType         byte = 0x1C
	OpTryTable           byte = 0x1F
)

// Variable and table access opcodes
const (
	OpLocalGet  byte = 0x20
	OpLocalSet  byte = 0x21
	OpLocalTee  byte = 0x22
	OpGlobalGet byte = 0x23
	OpGlobalSet byte = 0x24
	OpTableGet  byte = 0x25
	OpTableSet  byte = 0x26
)

// Memory opcodes. Every opcode in [OpI32Load, OpI64Store32] takes a memarg.
const (
	OpI32Load    byte = 0x28
	OpF32Load    byte = 0x2A
	OpI32Load8U  byte = 0x2D
	OpI32Load16U byte = 0x2F
	OpI32Store   byte = 0x36
	OpF32Store   byte = 0x38
	OpI32Store8  byte = 0x3A
	OpI64Store32 byte = 0x3E
	OpMemorySize byte = 0x3F
	OpMemoryGrow byte = 0x40
)

// Constant opcodes
const (
	OpI32Const byte = 0x41
	OpI64Const byte = 0x42
	OpF32Const byte = 0x43
	OpF64Const byte = 0x44
)

// Numeric opcodes used by the emitter. Everything in [OpI32Eqz,
// OpI64Extend32S] is immediate-free.
const (
	OpI32Eqz         byte = 0x45
	OpI32Eq          byte = 0x46
	OpI32Ne          byte = 0x47
	OpI32LtS         byte = 0x48
	OpI32LtU         byte = 0x49
	OpI32GtU         byte = 0x4B
	OpI32GeU         byte = 0x4F
	OpI32Add         byte = 0x6A
	OpI32Sub         byte = 0x6B
	OpI32Mul         byte = 0x6C
	OpI32And         byte = 0x71
	OpI32Or          byte = 0x72
	OpI32Shl         byte = 0x74
	OpI32ShrU        byte = 0x76
	OpF32Add         byte = 0x92
	OpF32ConvertI32U byte = 0xB3
	OpI64Extend32S   byte = 0xC4
)

// Reference opcodes
const (
	OpRefNull      byte = 0xD0
	OpRefIsNull    byte = 0xD1
	OpRefFunc      byte = 0xD2
	OpRefAsNonNull byte = 0xD3
	OpRefEq        byte = 0xD4
	OpBrOnNull     byte = 0xD5
	OpBrOnNonNull  byte = 0xD6
)

// Multi-byte opcode prefixes. Each is followed by a LEB128 sub-opcode.
const (
	OpPrefixGC     byte = 0xFB
	OpPrefixMisc   byte = 0xFC
	OpPrefixSIMD   byte = 0xFD
	OpPrefixAtomic byte = 0xFE
)

// Misc (0xFC) sub-opcodes with immediates.
const (
	MiscI64TruncSatF64U uint32 = 0x07
	MiscMemoryInit      uint32 = 0x08
	MiscDataDrop        uint32 = 0x09
	MiscMemoryCopy      uint32 = 0x0A
	MiscMemoryFill      uint32 = 0x0B
	MiscTableInit       uint32 = 0x0C
	MiscElemDrop        uint32 = 0x0D
	MiscTableCopy       uint32 = 0x0E
	MiscTableGrow       uint32 = 0x0F
	MiscTableSize       uint32 = 0x10
	MiscTableFill       uint32 = 0x11
	MiscMemoryDiscard   uint32 = 0x12
)

// GC (0xFB) sub-opcodes
const (
	GCStructNew        uint32 = 0x00
	GCStructNewDefault uint32 = 0x01
	GCStructGet        uint32 = 0x02
	GCStructGetS       uint32 = 0x03
	GCStructGetU       uint32 = 0x04
	GCStructSet        uint32 = 0x05
	GCArrayNew         uint32 = 0x06
	GCArrayNewDefault  uint32 = 0x07
	GCArrayNewFixed    uint32 = 0x08
	GCArrayNewData     uint32 = 0x09
	GCArrayNewElem     uint32 = 0x0A
	GCArrayGet         uint32 = 0x0B
	GCArrayGetS        uint32 = 0x0C
	GCArrayGetU        uint32 = 0x0D
	GCArraySet         uint32 = 0x0E
	GCArrayLen         uint32 = 0x0F
	GCArrayFill        uint32 = 0x10
	GCArrayCopy        uint32 = 0x11
	GCArrayInitData    uint32 = 0x12
	GCArrayInitElem    uint32 = 0x13
	GCRefTest          uint32 = 0x14
	GCRefTestNull      uint32 = 0x15
	GCRefCast          uint32 = 0x16
	GCRefCastNull      uint32 = 0x17
	GCBrOnCast         uint32 = 0x18
	GCBrOnCastFail     uint32 = 0x19
	GCAnyConvertExtern uint32 = 0x1A
	GCExternConvertAny uint32 = 0x1B
	GCRefI31           uint32 = 0x1C
	GCI31GetS          uint32 = 0x1D
	GCI31GetU          uint32 = 0x1E
)

// Atomic (0xFE) sub-opcodes. All but the fence take a memarg.
const (
	AtomicFence   uint32 = 0x03
	AtomicLastRMW uint32 = 0x4E
)

// SIMD (0xFD) sub-opcodes that carry immediates or are emitted by the builder.
const (
	SimdV128Load                  uint32 = 0x00
	SimdV128Load64Splat           uint32 = 0x0A
	SimdV128Store                 uint32 = 0x0B
	SimdV128Const                 uint32 = 0x0C
	SimdI8x16Shuffle              uint32 = 0x0D
	SimdI8x16Splat                uint32 = 0x0F
	SimdI8x16ExtractLaneS         uint32 = 0x15
	SimdI32x4ExtractLane          uint32 = 0x1B
	SimdF64x2ReplaceLane          uint32 = 0x22
	SimdV128Load8Lane             uint32 = 0x54
	SimdV128Store64Lane           uint32 = 0x5B
	SimdV128Load32Zero            uint32 = 0x5C
	SimdV128Load64Zero            uint32 = 0x5D
	SimdI8x16Add                  uint32 = 0x6E
	SimdI16x8ExtAddPairwiseI8x16U uint32 = 0x7D
	SimdI32x4ExtAddPairwiseI16x8U uint32 = 0x7F
	SimdI32x4Add                  uint32 = 0xAE
	SimdRelaxedLast               uint32 = 0x113
)

// Limits flags
const (
	LimitsHasMax   byte = 0x01
	LimitsShared   byte = 0x02
	LimitsMemory64 byte = 0x04
	LimitsPageSize byte = 0x08
)

// Catch clause kinds for try_table
const (
	CatchKindCatch    byte = 0x00
	CatchKindCatchRef byte = 0x01
)

// memArgMultiMemBit marks a memarg carrying an explicit memory index.
const memArgMultiMemBit = 0x40
