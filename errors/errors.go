package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRead      Phase = "read"      // reading input files
	PhaseParse     Phase = "parse"     // module section walk
	PhaseDecode    Phase = "decode"    // instruction stream decoding
	PhaseDebugInfo Phase = "debuginfo" // DWARF loading and lookup
	PhaseAnalyze   Phase = "analyze"   // scanning and aggregation
	PhaseReport    Phase = "report"    // report serialization
	PhaseConfig    Phase = "config"    // configuration loading
	PhaseRuntime   Phase = "runtime"   // guest runtime operations
	PhaseCall      Phase = "call"      // byte-buffer transform calls
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidData    Kind = "invalid_data"
	KindUnsupported    Kind = "unsupported"
	KindOutOfBounds    Kind = "out_of_bounds"
	KindNotFound       Kind = "not_found"
	KindInvalidInput   Kind = "invalid_input"
	KindAllocation     Kind = "allocation"
	KindInstantiation  Kind = "instantiation"
	KindUnknownOpcode  Kind = "unknown_opcode"
	KindIO             Kind = "io"
	KindNotInitialized Kind = "not_initialized"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value   any
	Cause   error
	Offset  *uint32
	Phase   Phase
	Kind    Kind
	Section string
	Detail  string
	Path    []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Section != "" {
		b.WriteString(" in ")
		b.WriteString(e.Section)
		b.WriteString(" section")
	}

	if e.Offset != nil {
		fmt.Fprintf(&b, " @0x%x", *e.Offset)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the element path, e.g. function index and field
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Section sets the binary section name
func (b *Builder) Section(name string) *Builder {
	b.err.Section = name
	return b
}

// Offset sets the absolute byte offset in the input
func (b *Builder) Offset(off uint32) *Builder {
	b.err.Offset = &off
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidData creates an invalid data error
func InvalidData(phase Phase, section string, detail string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindInvalidData,
		Section: section,
		Detail:  detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Value:  index,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
	}
}

// UnknownOpcode creates an error for an opcode the decoder cannot size
func UnknownOpcode(prefix byte, sub uint32, offset uint32) *Error {
	detail := fmt.Sprintf("unknown opcode 0x%02x", prefix)
	if prefix >= 0xFB {
		detail = fmt.Sprintf("unknown 0x%02X sub-opcode 0x%02x", prefix, sub)
	}
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnknownOpcode,
		Offset: &offset,
		Value:  sub,
		Detail: detail,
	}
}

// AllocationFailed creates a guest allocation failure error
func AllocationFailed(phase Phase, size uint32, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes", size),
		Cause:  cause,
	}
}

// NotInitialized creates a not-initialized error for missing module/instance
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Instantiation creates an instantiation error
func Instantiation(cause error) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindInstantiation,
		Detail: "instantiate module",
		Cause:  cause,
	}
}

// ReadFailed creates an I/O error for an input path
func ReadFailed(path string, cause error) *Error {
	return &Error{
		Phase:  PhaseRead,
		Kind:   KindIO,
		Detail: fmt.Sprintf("read %s", path),
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Cause:  cause,
		Detail: detail,
	}
}

// Is is errors.Is from the standard library.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As is errors.As from the standard library.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
