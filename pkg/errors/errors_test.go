package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	plain := New(ErrCodeInfeasible, "hard constraints are mutually contradictory")
	if got := plain.Error(); !strings.HasPrefix(got, "INFEASIBLE: ") {
		t.Errorf("Error() = %q", got)
	}

	cause := stderrors.New("boom")
	wrapped := Wrap(ErrCodeInvalidFormat, cause, "decode chart document")
	if got := wrapped.Error(); !strings.Contains(got, "boom") {
		t.Errorf("wrapped Error() = %q", got)
	}
	if !stderrors.Is(wrapped, cause) {
		t.Error("Unwrap chain broken")
	}
}

func TestIsAndGetCode(t *testing.T) {
	err := New(ErrCodeUnknownAttribute, "no attribute %q", "radius")

	if !Is(err, ErrCodeUnknownAttribute) {
		t.Error("Is failed on direct error")
	}
	if Is(err, ErrCodeInfeasible) {
		t.Error("Is matched the wrong code")
	}
	if got := GetCode(err); got != ErrCodeUnknownAttribute {
		t.Errorf("GetCode = %v", got)
	}

	// Codes survive wrapping, both ours and fmt's.
	wrapped := fmt.Errorf("context: %w", err)
	if !Is(wrapped, ErrCodeUnknownAttribute) {
		t.Error("Is failed through fmt wrapping")
	}

	rewrapped := Wrap(GetCode(err), err, "glyph %d", 2)
	if GetCode(rewrapped) != ErrCodeUnknownAttribute {
		t.Error("code lost through Wrap")
	}

	if GetCode(stderrors.New("plain")) != "" {
		t.Error("GetCode on a plain error should be empty")
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidInput, "document is required")
	if got := UserMessage(err); got != "document is required" {
		t.Errorf("UserMessage = %q", got)
	}
	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage = %q", got)
	}
}

func TestValidateClassName(t *testing.T) {
	valid := []string{"glyph/rect", "mark/anchor", "mark/symbol2"}
	for _, name := range valid {
		if err := ValidateClassName(name); err != nil {
			t.Errorf("ValidateClassName(%q) = %v", name, err)
		}
	}

	invalid := []string{"", "rect", "Glyph/Rect", "glyph/", "/rect", "glyph/rect/extra", "glyph rect"}
	for _, name := range invalid {
		if err := ValidateClassName(name); !Is(err, ErrCodeInvalidClass) {
			t.Errorf("ValidateClassName(%q) = %v, want INVALID_CLASS", name, err)
		}
	}
}

func TestValidateAttributeName(t *testing.T) {
	valid := []string{"x", "x1", "width", "icx", "spanLo"}
	for _, name := range valid {
		if err := ValidateAttributeName(name); err != nil {
			t.Errorf("ValidateAttributeName(%q) = %v", name, err)
		}
	}

	invalid := []string{"", "1x", "x-1", "x.y", strings.Repeat("a", 65)}
	for _, name := range invalid {
		if err := ValidateAttributeName(name); !Is(err, ErrCodeInvalidAttribute) {
			t.Errorf("ValidateAttributeName(%q) = %v, want INVALID_ATTRIBUTE", name, err)
		}
	}
}

func TestValidatePath(t *testing.T) {
	valid := []string{"chart.json", "examples/bar.json", "/abs/path/chart.json"}
	for _, p := range valid {
		if err := ValidatePath(p); err != nil {
			t.Errorf("ValidatePath(%q) = %v", p, err)
		}
	}

	invalid := []string{"", "../escape.json", "a\x00b", strings.Repeat("a", 501)}
	for _, p := range invalid {
		if err := ValidatePath(p); !Is(err, ErrCodeInvalidPath) {
			t.Errorf("ValidatePath(%q) = %v, want INVALID_PATH", p, err)
		}
	}
}
