package pattern

import (
	"testing"

	"github.com/BlockchainCommons/dcbor-pattern-go/cbor"
)

func TestAnyAndNonePatterns(t *testing.T) {
	if !Matches(Any(), cbor.Uint(1)) {
		t.Error("Any() rejected a value")
	}
	if Matches(None(), cbor.Uint(1)) {
		t.Error("None() matched a value")
	}
}

func TestSearchPatternFindsNestedMatches(t *testing.T) {
	v, err := cbor.ParseDiagnostic(`[1, [2, 42], {"k": 42}]`)
	if err != nil {
		t.Fatalf("ParseDiagnostic() error = %v", err)
	}
	pat := Search(NumberExact(42))
	paths, _ := pat.PathsWithCaptures(v)
	if len(paths) != 2 {
		t.Fatalf("len(paths) = %d, want 2 (one per occurrence of 42)", len(paths))
	}
}

func TestSearchPatternPropagatesCaptures(t *testing.T) {
	v, err := cbor.ParseDiagnostic(`[1, [2, 42], 3]`)
	if err != nil {
		t.Fatalf("ParseDiagnostic() error = %v", err)
	}
	pat := Search(Capture("found", NumberExact(42)))
	_, captures := pat.PathsWithCaptures(v)
	if len(captures["found"]) != 1 {
		t.Fatalf("len(captures[\"found\"]) = %d, want 1", len(captures["found"]))
	}
}

func TestSequencePatternOutsideArrayYieldsNothing(t *testing.T) {
	pat := Sequence(NumberExact(1), NumberExact(2))
	paths, _ := pat.PathsWithCaptures(cbor.Uint(1))
	if len(paths) != 0 {
		t.Error("a bare Sequence matched outside of an array context")
	}
}

func TestSequencePatternAccessors(t *testing.T) {
	pat := Sequence(NumberExact(1), NumberExact(2))
	if pat.Len() != 2 {
		t.Errorf("Len() = %d, want 2", pat.Len())
	}
	if pat.IsEmpty() {
		t.Error("IsEmpty() = true for a non-empty sequence")
	}
	if Sequence().IsEmpty() != true {
		t.Error("IsEmpty() = false for an empty sequence")
	}
}
