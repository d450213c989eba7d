package pattern

import (
	"testing"

	"github.com/BlockchainCommons/dcbor-pattern-go/cbor"
)

func TestAndPatternMatching(t *testing.T) {
	pat := And(AnyNumber(), NumberExact(42))
	if !Matches(pat, cbor.Uint(42)) {
		t.Error("And(number, 42) rejected 42")
	}
	if Matches(pat, cbor.Uint(43)) {
		t.Error("And(number, 42) matched 43")
	}
}

func TestOrPatternMatching(t *testing.T) {
	pat := Or(NumberExact(1), NumberExact(2))
	if !Matches(pat, cbor.Uint(1)) {
		t.Error("Or(1, 2) rejected 1")
	}
	if !Matches(pat, cbor.Uint(2)) {
		t.Error("Or(1, 2) rejected 2")
	}
	if Matches(pat, cbor.Uint(3)) {
		t.Error("Or(1, 2) matched 3")
	}
}

func TestOrPatternDedupesResults(t *testing.T) {
	pat := Or(AnyNumber(), NumberExact(42))
	paths, _ := pat.PathsWithCaptures(cbor.Uint(42))
	if len(paths) != 1 {
		t.Errorf("len(paths) = %d, want 1 (deduplicated)", len(paths))
	}
}

func TestOrPatternExactTextAlternation(t *testing.T) {
	pat := Or(TextExact("GET"), TextExact("POST"), TextExact("PUT"))
	if !Matches(pat, cbor.Text("GET")) {
		t.Error("literal alternation rejected GET")
	}
	if !Matches(pat, cbor.Text("PUT")) {
		t.Error("literal alternation rejected PUT")
	}
	if Matches(pat, cbor.Text("DELETE")) {
		t.Error("literal alternation matched DELETE")
	}
	// none of GET/POST/PUT share a prefix, so the common-prefix reject path
	// is skipped and the automaton is consulted; an empty string, which no
	// branch equals, should still correctly fail.
	if Matches(pat, cbor.Text("")) {
		t.Error("literal alternation matched an empty string")
	}
}

func TestOrPatternExactTextAlternationSharedPrefix(t *testing.T) {
	pat := Or(TextExact("cat"), TextExact("car"), TextExact("cap"))
	if !Matches(pat, cbor.Text("car")) {
		t.Error("literal alternation with shared prefix rejected car")
	}
	if Matches(pat, cbor.Text("dog")) {
		t.Error("literal alternation with shared prefix matched dog (no shared prefix)")
	}
	if Matches(pat, cbor.Text("ca")) {
		t.Error("literal alternation matched a strict prefix of its branches")
	}
}

func TestNotPatternMatching(t *testing.T) {
	pat := Not(NumberExact(42))
	if !Matches(pat, cbor.Uint(43)) {
		t.Error("Not(42) rejected 43")
	}
	if Matches(pat, cbor.Uint(42)) {
		t.Error("Not(42) matched 42")
	}
}
