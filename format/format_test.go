package format_test

import (
	"strings"
	"testing"

	"github.com/BlockchainCommons/dcbor-pattern-go/cbor"
	"github.com/BlockchainCommons/dcbor-pattern-go/format"
	"github.com/BlockchainCommons/dcbor-pattern-go/pattern"
)

func TestFormatPathsBasic(t *testing.T) {
	paths := []pattern.Path{{cbor.Uint(1)}, {cbor.Uint(2)}}
	out := format.FormatPaths(paths, format.Options{})
	if !strings.Contains(out, "1") || !strings.Contains(out, "2") {
		t.Errorf("FormatPaths() = %q, want it to mention both elements", out)
	}
}

func TestFormatPathsWithCapturesSortsNames(t *testing.T) {
	captures := pattern.Captures{
		"zeta":  {{cbor.Uint(1)}},
		"alpha": {{cbor.Uint(2)}},
	}
	out := format.FormatPathsWithCaptures(nil, captures, format.Options{})
	alphaIdx := strings.Index(out, "@alpha")
	zetaIdx := strings.Index(out, "@zeta")
	if alphaIdx == -1 || zetaIdx == -1 {
		t.Fatalf("FormatPathsWithCaptures() = %q, want both capture names present", out)
	}
	if alphaIdx > zetaIdx {
		t.Errorf("captures not sorted ASCII-ascending: @alpha at %d, @zeta at %d", alphaIdx, zetaIdx)
	}
}

func TestFormatPathsMultiElementIndentation(t *testing.T) {
	path := pattern.Path{cbor.Array([]cbor.CBOR{cbor.Uint(1)}), cbor.Uint(1)}
	out := format.FormatPaths([]pattern.Path{path}, format.Options{})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if strings.HasPrefix(lines[0], " ") {
		t.Errorf("first path element should not be indented, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "    ") {
		t.Errorf("second path element should be indented 4 spaces, got %q", lines[1])
	}
}

func TestFormatPathsLastOnly(t *testing.T) {
	path := pattern.Path{cbor.Array([]cbor.CBOR{cbor.Uint(1)}), cbor.Uint(1)}
	out := format.FormatPaths([]pattern.Path{path}, format.Options{LastOnly: true})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("LastOnly len(lines) = %d, want 1", len(lines))
	}
}

func TestFormatPathsMaxElementLenTruncates(t *testing.T) {
	path := pattern.Path{cbor.Text("a very long piece of text indeed")}
	out := format.FormatPaths([]pattern.Path{path}, format.Options{MaxElementLen: 5})
	if !strings.Contains(out, "…") {
		t.Errorf("FormatPaths() with MaxElementLen did not truncate: %q", out)
	}
}

func TestFormatPathsNoTruncationWhenZero(t *testing.T) {
	text := cbor.Text("a very long piece of text indeed")
	path := pattern.Path{text}
	out := format.FormatPaths([]pattern.Path{path}, format.Options{})
	if strings.Contains(out, "…") {
		t.Errorf("FormatPaths() truncated with MaxElementLen unset: %q", out)
	}
	if !strings.Contains(out, text.String()) {
		t.Errorf("FormatPaths() output = %q, want it to contain the full text", out)
	}
}
