package pattern

import (
	"testing"

	"github.com/BlockchainCommons/dcbor-pattern-go/cbor"
	"github.com/BlockchainCommons/dcbor-pattern-go/knownvalue"
)

func TestKnownValuePatternMatching(t *testing.T) {
	knownvalue.Reset()
	knownvalue.Register(1, "isA")
	t.Cleanup(knownvalue.Reset)

	v := cbor.Tagged(knownvalue.Tag, cbor.Uint(1))

	if paths, _ := AnyKnownValue().PathsWithCaptures(v); len(paths) == 0 {
		t.Error("AnyKnownValue() rejected a known-value")
	}
	if paths, _ := AnyKnownValue().PathsWithCaptures(cbor.Uint(1)); len(paths) != 0 {
		t.Error("AnyKnownValue() matched an untagged value")
	}
	if paths, _ := KnownValueExact(1).PathsWithCaptures(v); len(paths) == 0 {
		t.Error("KnownValueExact(1) rejected its own code")
	}
	if paths, _ := KnownValueExact(2).PathsWithCaptures(v); len(paths) != 0 {
		t.Error("KnownValueExact(2) matched code 1")
	}
	if paths, _ := KnownValueNamed("isA").PathsWithCaptures(v); len(paths) == 0 {
		t.Error("KnownValueNamed(\"isA\") rejected the registered name for code 1")
	}
	if paths, _ := KnownValueNamed("notRegistered").PathsWithCaptures(v); len(paths) != 0 {
		t.Error("KnownValueNamed() matched an unregistered name")
	}
}

func TestKnownValuePatternRegex(t *testing.T) {
	knownvalue.Reset()
	knownvalue.Register(1, "isA")
	t.Cleanup(knownvalue.Reset)

	re, err := CompileTextRegex("^is.*$")
	if err != nil {
		t.Fatalf("CompileTextRegex() error = %v", err)
	}
	v := cbor.Tagged(knownvalue.Tag, cbor.Uint(1))
	if paths, _ := KnownValueRegexPattern(re).PathsWithCaptures(v); len(paths) == 0 {
		t.Error("KnownValueRegexPattern(/^is.*$/) rejected a matching registered name")
	}

	unregistered := cbor.Tagged(knownvalue.Tag, cbor.Uint(99))
	if paths, _ := KnownValueRegexPattern(re).PathsWithCaptures(unregistered); len(paths) != 0 {
		t.Error("KnownValueRegexPattern() matched a code with no registered name")
	}
}

func TestKnownValuePatternString(t *testing.T) {
	if got := AnyKnownValue().String(); got != "KNOWN" {
		t.Errorf("AnyKnownValue().String() = %q, want \"KNOWN\"", got)
	}
	if got := KnownValueExact(5).String(); got != "KNOWN(5)" {
		t.Errorf("KnownValueExact(5).String() = %q, want \"KNOWN(5)\"", got)
	}
}
