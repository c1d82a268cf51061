// Package errors provides structured error types for simd-detect.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the binary section, absolute byte offset, element path
// and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseParse, errors.KindInvalidData).
//		Section("import").
//		Offset(0x2a).
//		Detail("unknown import kind %d", kind).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownOpcode(0xFD, 0x1ff, off)
//	err := errors.NotFound(errors.PhaseCall, "export", "process_bytes")
//
// All errors implement the standard error interface and support errors.Is/As.
// Two errors match under errors.Is when Phase and Kind are equal.
package errors
