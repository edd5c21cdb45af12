package attrs

import (
	"testing"

	"github.com/MaxCodeXTC/charticulator/pkg/errors"
	"github.com/MaxCodeXTC/charticulator/pkg/solver"
)

func TestNewSchema(t *testing.T) {
	tests := []struct {
		name    string
		specs   []Spec
		wantErr errors.Code
		wantLen int
	}{
		{
			name:    "Empty",
			specs:   nil,
			wantLen: 0,
		},
		{
			name: "Valid",
			specs: []Spec{
				{Name: "x", Role: Intrinsic},
				{Name: "width", Role: Intrinsic, Default: 60},
				{Name: "x1", Role: Positional},
			},
			wantLen: 3,
		},
		{
			name:    "EmptyName",
			specs:   []Spec{{Name: ""}},
			wantErr: errors.ErrCodeInvalidAttribute,
		},
		{
			name:    "InvalidName",
			specs:   []Spec{{Name: "x-1"}},
			wantErr: errors.ErrCodeInvalidAttribute,
		},
		{
			name:    "Duplicate",
			specs:   []Spec{{Name: "x"}, {Name: "x"}},
			wantErr: errors.ErrCodeInvalidAttribute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.specs...)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("New succeeded, want error")
				}
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("code = %v, want %v", errors.GetCode(err), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if s.Len() != tt.wantLen {
				t.Errorf("Len = %d, want %d", s.Len(), tt.wantLen)
			}
		})
	}
}

func TestIntrinsicStrengthDefault(t *testing.T) {
	s, err := New(
		Spec{Name: "x", Role: Intrinsic},
		Spec{Name: "y", Role: Intrinsic, Strength: solver.Weak},
		Spec{Name: "x1", Role: Positional},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	sp, _ := s.Spec("x")
	if sp.Strength != solver.Strong {
		t.Errorf("x strength = %v, want Strong default", sp.Strength)
	}
	sp, _ = s.Spec("y")
	if sp.Strength != solver.Weak {
		t.Errorf("y strength = %v, want declared Weak", sp.Strength)
	}
	sp, _ = s.Spec("x1")
	if sp.Strength != 0 {
		t.Errorf("positional strength = %v, want zero", sp.Strength)
	}
}

func TestSchemaLookup(t *testing.T) {
	s := MustNew(
		Spec{Name: "x", Role: Intrinsic},
		Spec{Name: "label", Kind: Text, Text: "hello"},
	)

	if i, ok := s.Index("label"); !ok || i != 1 {
		t.Errorf("Index(label) = %d, %v", i, ok)
	}
	if _, ok := s.Index("missing"); ok {
		t.Error("Index(missing) found")
	}
	if _, ok := s.Spec("missing"); ok {
		t.Error("Spec(missing) found")
	}
}

func TestMapDefaults(t *testing.T) {
	s := MustNew(
		Spec{Name: "width", Role: Intrinsic, Default: 60},
		Spec{Name: "name", Kind: Text, Text: "circle"},
	)
	m := NewMap(s)

	if got := m.MustGet("width"); got != 60 {
		t.Errorf("width = %v, want default 60", got)
	}
	if got, _ := m.GetText("name"); got != "circle" {
		t.Errorf("name = %q, want default circle", got)
	}
}

func TestMapValidation(t *testing.T) {
	s := MustNew(
		Spec{Name: "x", Role: Intrinsic},
		Spec{Name: "label", Kind: Text},
	)
	m := NewMap(s)

	tests := []struct {
		name string
		op   func() error
		want errors.Code
	}{
		{"GetUnknown", func() error { _, err := m.Get("nope"); return err }, errors.ErrCodeUnknownAttribute},
		{"SetUnknown", func() error { return m.Set("nope", 1) }, errors.ErrCodeUnknownAttribute},
		{"GetTextUnknown", func() error { _, err := m.GetText("nope"); return err }, errors.ErrCodeUnknownAttribute},
		{"SetTextUnknown", func() error { return m.SetText("nope", "v") }, errors.ErrCodeUnknownAttribute},
		{"GetKindMismatch", func() error { _, err := m.Get("label"); return err }, errors.ErrCodeInvalidAttribute},
		{"SetKindMismatch", func() error { return m.Set("label", 1) }, errors.ErrCodeInvalidAttribute},
		{"GetTextKindMismatch", func() error { _, err := m.GetText("x"); return err }, errors.ErrCodeInvalidAttribute},
		{"SetTextKindMismatch", func() error { return m.SetText("x", "v") }, errors.ErrCodeInvalidAttribute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op()
			if err == nil {
				t.Fatal("operation succeeded, want error")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), tt.want)
			}
		})
	}
}

func TestMapRoundTrip(t *testing.T) {
	s := MustNew(
		Spec{Name: "x", Role: Intrinsic},
		Spec{Name: "y", Role: Intrinsic},
	)
	m := NewMap(s)

	if err := m.Set("x", 3.5); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := m.MustGet("x"); got != 3.5 {
		t.Errorf("x = %v, want 3.5", got)
	}

	// Index access mirrors named access.
	i, _ := s.Index("x")
	if got := m.GetIndex(i); got != 3.5 {
		t.Errorf("GetIndex = %v, want 3.5", got)
	}
	m.SetIndex(i, -1)
	if got := m.MustGet("x"); got != -1 {
		t.Errorf("x = %v, want -1", got)
	}
}

func TestRoleKindStrings(t *testing.T) {
	if Positional.String() != "positional" || Intrinsic.String() != "intrinsic" || Computed.String() != "computed" {
		t.Error("unexpected role names")
	}
	if Number.String() != "number" || Text.String() != "text" {
		t.Error("unexpected kind names")
	}
	if Role(9).String() != "role(9)" || Kind(9).String() != "kind(9)" {
		t.Error("unexpected fallback names")
	}
}
