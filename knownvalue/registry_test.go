package knownvalue

import (
	"regexp"
	"testing"
)

func TestRegisterAndLookup(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Register(1, "isA")
	if name, ok := Name(1); !ok || name != "isA" {
		t.Fatalf("Name(1) = %q, %v, want isA, true", name, ok)
	}
	v, ok := ByName("isA")
	if !ok || v.Code != 1 {
		t.Fatalf("ByName(isA) = %+v, %v, want {1}, true", v, ok)
	}
}

func TestUnregisteredLookupIsAbsent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Name(999); ok {
		t.Fatalf("Name(999) reported present in an empty registry")
	}
	if _, ok := ByName("nope"); ok {
		t.Fatalf("ByName(nope) reported present in an empty registry")
	}
}

func TestRegisterOverwritesPriorName(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Register(1, "isA")
	Register(1, "isB")
	if _, ok := ByName("isA"); ok {
		t.Fatalf("stale name isA still resolves after re-registering code 1")
	}
	v, ok := ByName("isB")
	if !ok || v.Code != 1 {
		t.Fatalf("ByName(isB) = %+v, %v, want {1}, true", v, ok)
	}
}

func TestMatchRegex(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Register(2, "isFoo")
	re := regexp.MustCompile(`^is.*`)
	if !MatchRegex(New(2), re) {
		t.Fatalf("expected isFoo to match ^is.*")
	}
	if MatchRegex(New(3), re) {
		t.Fatalf("unregistered code 3 should never match a name regex")
	}
}

func TestStringFallsBackToCode(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if got := New(42).String(); got != "42" {
		t.Fatalf("String() = %q, want 42", got)
	}
	Register(42, "theAnswer")
	if got := New(42).String(); got != "theAnswer" {
		t.Fatalf("String() = %q, want theAnswer", got)
	}
}
