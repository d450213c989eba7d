package pattern

import (
	"testing"
	"time"

	"github.com/BlockchainCommons/dcbor-pattern-go/cbor"
)

func TestBoolPatternMatching(t *testing.T) {
	if paths, _ := AnyBool().PathsWithCaptures(cbor.Bool(true)); len(paths) == 0 {
		t.Error("AnyBool() rejected true")
	}
	if paths, _ := AnyBool().PathsWithCaptures(cbor.Uint(1)); len(paths) != 0 {
		t.Error("AnyBool() matched a non-bool")
	}
	if paths, _ := Bool(true).PathsWithCaptures(cbor.Bool(false)); len(paths) != 0 {
		t.Error("Bool(true) matched false")
	}
	if paths, _ := Bool(false).PathsWithCaptures(cbor.Bool(false)); len(paths) == 0 {
		t.Error("Bool(false) rejected false")
	}
}

func TestNullPatternMatching(t *testing.T) {
	if paths, _ := Null().PathsWithCaptures(cbor.Null()); len(paths) == 0 {
		t.Error("Null() rejected null")
	}
	if paths, _ := Null().PathsWithCaptures(cbor.Uint(0)); len(paths) != 0 {
		t.Error("Null() matched a non-null value")
	}
}

func TestDatePatternMatching(t *testing.T) {
	ref := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	v := cbor.NewDate(ref)

	if paths, _ := AnyDate().PathsWithCaptures(v); len(paths) == 0 {
		t.Error("AnyDate() rejected a date value")
	}
	if paths, _ := AnyDate().PathsWithCaptures(cbor.Uint(1)); len(paths) != 0 {
		t.Error("AnyDate() matched a non-date")
	}
	if paths, _ := DateExact(ref).PathsWithCaptures(v); len(paths) == 0 {
		t.Error("DateExact() rejected its own timestamp")
	}
	other := ref.Add(time.Hour)
	if paths, _ := DateExact(other).PathsWithCaptures(v); len(paths) != 0 {
		t.Error("DateExact() matched a different timestamp")
	}
	if paths, _ := DateEarliest(ref).PathsWithCaptures(v); len(paths) == 0 {
		t.Error("DateEarliest(ref) rejected ref itself")
	}
	if paths, _ := DateLatest(ref.Add(-time.Hour)).PathsWithCaptures(v); len(paths) != 0 {
		t.Error("DateLatest(earlier) matched a later date")
	}
}

func TestDigestPatternMatching(t *testing.T) {
	data := make([]byte, cbor.DigestSize)
	for i := range data {
		data[i] = byte(i)
	}
	v := cbor.NewDigest(data)

	if paths, _ := AnyDigest().PathsWithCaptures(v); len(paths) == 0 {
		t.Error("AnyDigest() rejected a digest value")
	}
	if paths, _ := AnyDigest().PathsWithCaptures(cbor.Uint(1)); len(paths) != 0 {
		t.Error("AnyDigest() matched a non-digest")
	}
	if got := AnyDigest().String(); got != "digest" {
		t.Errorf("AnyDigest().String() = %q, want \"digest\"", got)
	}
	if paths, _ := DigestExact(data).PathsWithCaptures(v); len(paths) == 0 {
		t.Error("DigestExact() rejected its own data")
	}
	if paths, _ := DigestPrefix(data[:2]).PathsWithCaptures(v); len(paths) == 0 {
		t.Error("DigestPrefix() rejected a matching prefix")
	}
	if paths, _ := DigestPrefix([]byte{0xBE, 0xEF}).PathsWithCaptures(v); len(paths) != 0 {
		t.Error("DigestPrefix() matched a non-prefix")
	}
}
