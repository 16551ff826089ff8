package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestEngineError_Error(t *testing.T) {
	err := New(ErrCodeNotFound, "no match")
	if got := err.Error(); got != "NOT_FOUND: no match" {
		t.Errorf("unexpected error string: %q", got)
	}
}

func TestEngineError_ErrorWithCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Storage("create", "/tmp/out.dat", cause)
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("error string should include cause: %q", err.Error())
	}
}

func TestEngineError_Unwrap(t *testing.T) {
	cause := stderrors.New("root")
	err := Internal(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestHasCode(t *testing.T) {
	err := NotFound("algorithm", "CalibReader")
	if !HasCode(err, ErrCodeNotFound) {
		t.Error("expected NOT_FOUND code")
	}
	if HasCode(err, ErrCodeNotImplemented) {
		t.Error("did not expect NOT_IMPLEMENTED code")
	}
}

func TestHasCode_Wrapped(t *testing.T) {
	err := fmt.Errorf("connect phase: %w", NotImplemented("tag accessor", "NoiseFilter"))
	if !HasCode(err, ErrCodeNotImplemented) {
		t.Error("expected code to survive wrapping")
	}
}

func TestHasCode_PlainError(t *testing.T) {
	if HasCode(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("plain errors carry no code")
	}
}

func TestWithDetail(t *testing.T) {
	err := AlreadyOpen("default").WithDetail("path", "/out/histos.dat")
	if err.Details["path"] != "/out/histos.dat" {
		t.Errorf("unexpected details: %v", err.Details)
	}
	if err.Details["name"] != "default" {
		t.Errorf("constructor details lost: %v", err.Details)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *EngineError
		code ErrorCode
	}{
		{"not found", NotFound("tool", "EnergyScale"), ErrCodeNotFound},
		{"not implemented", NotImplemented("tag accessor", "EnergyScale"), ErrCodeNotImplemented},
		{"already open", AlreadyOpen("aux"), ErrCodeAlreadyOpen},
		{"not open", NotOpen("aux"), ErrCodeNotOpen},
		{"invalid definition", InvalidDefinition("missing name"), ErrCodeInvalidDefinition},
		{"unknown component", UnknownComponent("muon-veto"), ErrCodeUnknownComponent},
		{"internal", Internal(stderrors.New("boom")), ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.Message == "" {
				t.Error("expected non-empty message")
			}
		})
	}
}
