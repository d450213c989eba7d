package dcborpattern_test

import (
	"testing"

	"github.com/BlockchainCommons/dcbor-pattern-go/cbor"
	dcborpattern "github.com/BlockchainCommons/dcbor-pattern-go"
)

func TestParsePartialConsumesPrefix(t *testing.T) {
	pat, n, err := dcborpattern.ParsePartial("number extra")
	if err != nil {
		t.Fatalf("ParsePartial() error = %v", err)
	}
	if n != len("number") {
		t.Errorf("consumed = %d, want %d", n, len("number"))
	}
	if !dcborpattern.Matches(pat, cbor.Uint(1)) {
		t.Error("parsed prefix pattern did not match a number")
	}
}

func TestMustParsePanicsOnInvalidInput(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse() did not panic on invalid input")
		}
	}()
	dcborpattern.MustParse("not valid pattern syntax ]]]")
}

func TestPathsDiscardsCaptures(t *testing.T) {
	pat := dcborpattern.MustParse(`search(@found(42))`)
	v, err := cbor.ParseDiagnostic(`[1, [2, 42], 3]`)
	if err != nil {
		t.Fatalf("ParseDiagnostic() error = %v", err)
	}
	paths := dcborpattern.Paths(pat, v)
	if len(paths) != 1 {
		t.Fatalf("len(Paths()) = %d, want 1", len(paths))
	}
}

func TestMatchesWithConfigAndDefaultConfig(t *testing.T) {
	cfg := dcborpattern.DefaultConfig()
	pat := dcborpattern.MustParse(`number`)
	matched, err := dcborpattern.MatchesWithConfig(pat, cbor.Uint(1), cfg)
	if err != nil {
		t.Fatalf("MatchesWithConfig() error = %v", err)
	}
	if !matched {
		t.Error("MatchesWithConfig() did not match a number")
	}
}

func TestPathsWithConfig(t *testing.T) {
	cfg := dcborpattern.DefaultConfig()
	pat := dcborpattern.MustParse(`number`)
	paths, err := dcborpattern.PathsWithConfig(pat, cbor.Uint(1), cfg)
	if err != nil {
		t.Fatalf("PathsWithConfig() error = %v", err)
	}
	if len(paths) == 0 {
		t.Error("PathsWithConfig() returned no paths for a matching value")
	}
}

func TestPathsWithCapturesWithConfig(t *testing.T) {
	cfg := dcborpattern.DefaultConfig()
	pat := dcborpattern.MustParse(`@x(number)`)
	paths, captures, err := dcborpattern.PathsWithCapturesWithConfig(pat, cbor.Uint(1), cfg)
	if err != nil {
		t.Fatalf("PathsWithCapturesWithConfig() error = %v", err)
	}
	if len(paths) == 0 {
		t.Error("PathsWithCapturesWithConfig() returned no paths")
	}
	if len(captures["x"]) == 0 {
		t.Error("PathsWithCapturesWithConfig() returned no captures under \"x\"")
	}
}
