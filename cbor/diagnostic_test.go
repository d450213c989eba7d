package cbor

import "testing"

func TestParseDiagnosticScalars(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"uint", "42"},
		{"negint", "-5"},
		{"float", "1.5"},
		{"exponent", "1e3"},
		{"text", `"hello"`},
		{"bool true", "true"},
		{"bool false", "false"},
		{"null", "null"},
		{"hex bytes", "h'deadbeef'"},
		{"empty array", "[]"},
		{"array", "[1, 2, 3]"},
		{"nested array", "[1, [2, 42], 3]"},
		{"empty map", "{}"},
		{"map", `{"a": 1, "b": 2}`},
		{"tag", "6(42)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDiagnostic(tt.text); err != nil {
				t.Errorf("ParseDiagnostic(%q) error = %v", tt.text, err)
			}
		})
	}
}

func TestParseDiagnosticValues(t *testing.T) {
	v, err := ParseDiagnostic("42")
	if err != nil {
		t.Fatalf("ParseDiagnostic() error = %v", err)
	}
	if got, ok := v.AsUint(); !ok || got != 42 {
		t.Errorf("AsUint() = (%d, %v), want (42, true)", got, ok)
	}

	v, err = ParseDiagnostic(`"hi"`)
	if err != nil {
		t.Fatalf("ParseDiagnostic() error = %v", err)
	}
	if got, ok := v.AsText(); !ok || got != "hi" {
		t.Errorf("AsText() = (%q, %v), want (\"hi\", true)", got, ok)
	}

	v, err = ParseDiagnostic("h'0102'")
	if err != nil {
		t.Fatalf("ParseDiagnostic() error = %v", err)
	}
	if got, ok := v.AsBytes(); !ok || len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("AsBytes() = (%v, %v), want ([1 2], true)", got, ok)
	}

	v, err = ParseDiagnostic("6(42)")
	if err != nil {
		t.Fatalf("ParseDiagnostic() error = %v", err)
	}
	tag, content, ok := v.AsTagged()
	if !ok || tag != 6 {
		t.Fatalf("AsTagged() = (%d, _, %v), want (6, _, true)", tag, ok)
	}
	if n, ok := content.AsUint(); !ok || n != 42 {
		t.Errorf("tag content AsUint() = (%d, %v), want (42, true)", n, ok)
	}
}

func TestParseDiagnosticExtraDataErrors(t *testing.T) {
	if _, err := ParseDiagnostic("42 extra"); err == nil {
		t.Error("ParseDiagnostic() with trailing extra data did not error")
	}
}

func TestParseDiagnosticPartialConsumedLength(t *testing.T) {
	v, n, err := ParseDiagnosticPartial("42 extra")
	if err != nil {
		t.Fatalf("ParseDiagnosticPartial() error = %v", err)
	}
	if n != 2 {
		t.Errorf("consumed = %d, want 2", n)
	}
	if got, ok := v.AsUint(); !ok || got != 42 {
		t.Errorf("AsUint() = (%d, %v), want (42, true)", got, ok)
	}
}

func TestParseDiagnosticMalformedInput(t *testing.T) {
	tests := []string{
		`"unterminated`,
		"h'xyz'",
		"h'abc'",
		"[1, 2",
		`{"a": 1`,
		"",
	}
	for _, text := range tests {
		if _, err := ParseDiagnostic(text); err == nil {
			t.Errorf("ParseDiagnostic(%q) did not error", text)
		}
	}
}
