package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: New(PhaseParse, KindInvalidData).
				Path("func", "3").
				Section("code").
				Offset(0x2a).
				Detail("body overruns section").
				Build(),
			contains: []string{"[parse]", "invalid_data", "func.3", "code section", "@0x2a", "body overruns section"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindOutOfBounds,
			},
			contains: []string{"[decode]", "out_of_bounds"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseRuntime,
				Kind:   KindAllocation,
				Detail: "memory full",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[runtime]", "allocation", "memory full", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_NoOffset(t *testing.T) {
	err := InvalidData(PhaseParse, "import", "bad kind")
	if strings.Contains(err.Error(), "@0x") {
		t.Errorf("unexpected offset in %q", err.Error())
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseRead,
		Kind:  KindIO,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not walk to cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindUnknownOpcode,
		Path:  []string{"func", "7"},
	}

	if !err.Is(&Error{Phase: PhaseDecode, Kind: KindUnknownOpcode}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseParse, Kind: KindUnknownOpcode}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindOutOfBounds}) {
		t.Error("Is should not match different kind")
	}
	if err.Is(errors.New("plain")) {
		t.Error("Is should not match foreign error types")
	}

	var wrapped error = Wrap(PhaseAnalyze, KindInvalidData, err, "scan")
	if !errors.Is(wrapped, &Error{Phase: PhaseDecode, Kind: KindUnknownOpcode}) {
		t.Error("errors.Is should find wrapped structured error")
	}

	var target *Error
	if !errors.As(wrapped, &target) || target.Phase != PhaseAnalyze {
		t.Errorf("errors.As = %v", target)
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseCall, KindInvalidInput).
		Path("process_bytes").
		Section("export").
		Offset(16).
		Value(-1).
		Cause(cause).
		Detail("transform returned %d", -1).
		Build()

	if err.Phase != PhaseCall {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseCall)
	}
	if err.Kind != KindInvalidInput {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidInput)
	}
	if len(err.Path) != 1 || err.Path[0] != "process_bytes" {
		t.Errorf("Path = %v, want [process_bytes]", err.Path)
	}
	if err.Section != "export" {
		t.Errorf("Section = %q", err.Section)
	}
	if err.Offset == nil || *err.Offset != 16 {
		t.Errorf("Offset = %v, want 16", err.Offset)
	}
	if err.Value != -1 {
		t.Errorf("Value = %v, want -1", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "transform returned -1" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestBuilder_Detail(t *testing.T) {
	if err := New(PhaseReport, KindUnsupported).Detail("plain literal").Build(); err.Detail != "plain literal" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if err := New(PhaseReport, KindUnsupported).Detail("%d%% done", 100).Build(); err.Detail != "100% done" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		phase  Phase
		kind   Kind
		detail string
	}{
		{"InvalidData", InvalidData(PhaseParse, "code", "truncated"), PhaseParse, KindInvalidData, "truncated"},
		{"Unsupported", Unsupported(PhaseAnalyze, "component binaries"), PhaseAnalyze, KindUnsupported, "component binaries"},
		{"OutOfBounds", OutOfBounds(PhaseRuntime, []string{"memory"}, 70000, 65536), PhaseRuntime, KindOutOfBounds, "index 70000 out of bounds (length 65536)"},
		{"UnknownOpcode", UnknownOpcode(0xFD, 0x1ff, 0x40), PhaseDecode, KindUnknownOpcode, "unknown 0xFD sub-opcode 0x1ff"},
		{"UnknownOpcodeSingle", UnknownOpcode(0xd7, 0, 0x40), PhaseDecode, KindUnknownOpcode, "unknown opcode 0xd7"},
		{"AllocationFailed", AllocationFailed(PhaseCall, 64, nil), PhaseCall, KindAllocation, "failed to allocate 64 bytes"},
		{"NotInitialized", NotInitialized(PhaseRuntime, "runtime"), PhaseRuntime, KindNotInitialized, "runtime not initialized"},
		{"NotFound", NotFound(PhaseCall, "export", "sum_u8_bytes"), PhaseCall, KindNotFound, `export "sum_u8_bytes" not found`},
		{"InvalidInput", InvalidInput(PhaseCall, "odd length"), PhaseCall, KindInvalidInput, "odd length"},
		{"Instantiation", Instantiation(nil), PhaseRuntime, KindInstantiation, "instantiate module"},
		{"ReadFailed", ReadFailed("a.wasm", nil), PhaseRead, KindIO, "read a.wasm"},
		{"Wrap", Wrap(PhaseConfig, KindInvalidInput, errors.New("x"), "load"), PhaseConfig, KindInvalidInput, "load"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("Phase = %v, want %v", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if tt.err.Detail != tt.detail {
				t.Errorf("Detail = %q, want %q", tt.err.Detail, tt.detail)
			}
		})
	}
}

func TestUnknownOpcode_Offset(t *testing.T) {
	err := UnknownOpcode(0xFC, 99, 0x1234)
	if err.Offset == nil || *err.Offset != 0x1234 {
		t.Fatalf("Offset = %v", err.Offset)
	}
	if !strings.Contains(err.Error(), "@0x1234") {
		t.Errorf("message %q lacks offset", err.Error())
	}
}
