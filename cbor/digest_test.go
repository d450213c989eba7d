package cbor

import "testing"

func makeDigestBytes() []byte {
	data := make([]byte, DigestSize)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

func TestNewDigestRoundTrips(t *testing.T) {
	data := makeDigestBytes()
	v := NewDigest(data)
	if !IsDigest(v) {
		t.Fatal("NewDigest() result is not recognized by IsDigest()")
	}
	got, ok := AsDigest(v)
	if !ok {
		t.Fatal("AsDigest() rejected a NewDigest() value")
	}
	if len(got) != DigestSize {
		t.Fatalf("len(AsDigest()) = %d, want %d", len(got), DigestSize)
	}
	for i := range data {
		if got[i] != data[i] {
			t.Fatalf("AsDigest()[%d] = %d, want %d", i, got[i], data[i])
		}
	}
}

func TestAsDigestRejectsWrongSize(t *testing.T) {
	short := Tagged(DigestTag, Bytes([]byte{0xDE, 0xAD}))
	if _, ok := AsDigest(short); ok {
		t.Error("AsDigest() accepted a byte string shorter than DigestSize")
	}
}

func TestAsDigestRejectsWrongTag(t *testing.T) {
	v := Tagged(99, Bytes(makeDigestBytes()))
	if _, ok := AsDigest(v); ok {
		t.Error("AsDigest() accepted a value tagged with the wrong tag")
	}
	if IsDigest(v) {
		t.Error("IsDigest() accepted a value tagged with the wrong tag")
	}
}

func TestIsDigestAcceptsWrongContentShape(t *testing.T) {
	v := Tagged(DigestTag, Uint(1))
	if !IsDigest(v) {
		t.Error("IsDigest() rejected a tag-40001 value with non-bytes content")
	}
	if _, ok := AsDigest(v); ok {
		t.Error("AsDigest() accepted non-bytes content")
	}
}
