package cbor

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    CBOR
	}{
		{"uint", Uint(42)},
		{"negint", Int(-7)},
		{"bytes", Bytes([]byte{1, 2, 3})},
		{"text", Text("hello")},
		{"array", Array([]CBOR{Uint(1), Text("x")})},
		{"map", Map([]MapEntry{{Key: Text("a"), Value: Uint(1)}, {Key: Text("b"), Value: Uint(2)}})},
		{"tagged", Tagged(6, Uint(42))},
		{"bool true", Bool(true)},
		{"bool false", Bool(false)},
		{"null", Null()},
		{"float", Float(1.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := tt.v.Encode()
			decoded, err := Decode(encoded)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !Equal(decoded, tt.v) {
				t.Errorf("round trip mismatch: got %+v, want %+v", decoded, tt.v)
			}
		})
	}
}

func TestEncodeMapKeysSortedCanonically(t *testing.T) {
	m := Map([]MapEntry{
		{Key: Uint(10), Value: Uint(1)},
		{Key: Uint(1), Value: Uint(2)},
	})
	encoded := m.Encode()
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	entries, ok := decoded.AsMap()
	if !ok || len(entries) != 2 {
		t.Fatalf("AsMap() = (%v, %v)", entries, ok)
	}
	first, _ := entries[0].Key.AsUint()
	if first != 1 {
		t.Errorf("first map key after canonical encode/decode = %d, want 1 (shortest encoding sorts first)", first)
	}
}

func TestEncodeShortestIntForm(t *testing.T) {
	small := Uint(1).Encode()
	if len(small) != 1 {
		t.Errorf("len(Encode(Uint(1))) = %d, want 1", len(small))
	}
	large := Uint(1000).Encode()
	if len(large) < 2 {
		t.Errorf("len(Encode(Uint(1000))) = %d, want >= 2", len(large))
	}
}

func TestEncodeNaNNormalized(t *testing.T) {
	v := Float(nan())
	encoded := v.Encode()
	want := []byte{0xf9, 0x7e, 0x00}
	if len(encoded) != len(want) {
		t.Fatalf("len(Encode(NaN)) = %d, want %d", len(encoded), len(want))
	}
	for i := range want {
		if encoded[i] != want[i] {
			t.Errorf("Encode(NaN)[%d] = %#x, want %#x", i, encoded[i], want[i])
		}
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}
