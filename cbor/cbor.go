// Package cbor is an immutable algebraic view over deterministic CBOR
// (dCBOR) values.
//
// It is the "CBOR view" external collaborator described by the pattern
// engine's specification: an [CBOR] is one of Unsigned, Negative,
// ByteString, TextString, Array, Map, Tagged, or Simple (bool/null/float).
// Values are compared and matched structurally; nothing in this package
// mutates a [CBOR] once constructed.
package cbor

import (
	"fmt"
	"math"
	"sort"
)

// Case identifies which algebraic variant a [CBOR] value holds.
type Case int

// The eight CBOR cases this view distinguishes.
const (
	CaseUnsigned Case = iota
	CaseNegative
	CaseByteString
	CaseTextString
	CaseArray
	CaseMap
	CaseTagged
	CaseSimple
)

func (c Case) String() string {
	switch c {
	case CaseUnsigned:
		return "unsigned"
	case CaseNegative:
		return "negative"
	case CaseByteString:
		return "bytestring"
	case CaseTextString:
		return "textstring"
	case CaseArray:
		return "array"
	case CaseMap:
		return "map"
	case CaseTagged:
		return "tagged"
	case CaseSimple:
		return "simple"
	default:
		return "unknown"
	}
}

// SimpleKind distinguishes the CBOR "simple" sub-cases this view supports.
type SimpleKind int

const (
	SimpleFalse SimpleKind = iota
	SimpleTrue
	SimpleNull
	SimpleFloat
)

// MapEntry is one key/value pair of a [CBOR] map, in insertion order.
type MapEntry struct {
	Key   CBOR
	Value CBOR
}

// CBOR is an immutable, value-typed algebraic CBOR item.
//
// The zero value is not a valid CBOR value; use one of the constructors
// ([Uint], [NegInt], [Bytes], [Text], [Array], [Map], [Tagged], [Bool],
// [Null], [Float]).
type CBOR struct {
	kase Case

	u uint64 // CaseUnsigned: the value itself

	n uint64 // CaseNegative: represents -1-n (mirrors CBOR's own encoding)

	bstr []byte // CaseByteString

	text string // CaseTextString

	arr []CBOR // CaseArray

	m []MapEntry // CaseMap, insertion order preserved

	tagNum     uint64 // CaseTagged
	tagContent *CBOR  // CaseTagged

	simple   SimpleKind // CaseSimple
	floatVal float64    // CaseSimple / SimpleFloat
}

// Uint constructs an unsigned-integer CBOR value.
func Uint(v uint64) CBOR { return CBOR{kase: CaseUnsigned, u: v} }

// NegInt constructs a negative-integer CBOR value equal to -1-n (n >= 0),
// matching CBOR major type 1's own encoding of negative integers.
func NegInt(n uint64) CBOR { return CBOR{kase: CaseNegative, n: n} }

// Int constructs an integer CBOR value (either Unsigned or Negative
// depending on sign), the convenience most callers reach for.
func Int(v int64) CBOR {
	if v >= 0 {
		return Uint(uint64(v))
	}
	return NegInt(uint64(-1 - v))
}

// Bytes constructs a byte-string CBOR value. The slice is copied.
func Bytes(b []byte) CBOR {
	cp := make([]byte, len(b))
	copy(cp, b)
	return CBOR{kase: CaseByteString, bstr: cp}
}

// Text constructs a text-string CBOR value.
func Text(s string) CBOR { return CBOR{kase: CaseTextString, text: s} }

// Array constructs an array CBOR value. The slice is copied.
func Array(items []CBOR) CBOR {
	cp := make([]CBOR, len(items))
	copy(cp, items)
	return CBOR{kase: CaseArray, arr: cp}
}

// Map constructs a map CBOR value, preserving the given key order.
func Map(entries []MapEntry) CBOR {
	cp := make([]MapEntry, len(entries))
	copy(cp, entries)
	return CBOR{kase: CaseMap, m: cp}
}

// Tagged constructs a tagged CBOR value wrapping a single content item.
func Tagged(tag uint64, content CBOR) CBOR {
	c := content
	return CBOR{kase: CaseTagged, tagNum: tag, tagContent: &c}
}

// Bool constructs a boolean simple CBOR value.
func Bool(b bool) CBOR {
	if b {
		return CBOR{kase: CaseSimple, simple: SimpleTrue}
	}
	return CBOR{kase: CaseSimple, simple: SimpleFalse}
}

// Null constructs the CBOR null simple value.
func Null() CBOR { return CBOR{kase: CaseSimple, simple: SimpleNull} }

// Float constructs a floating point simple CBOR value.
func Float(f float64) CBOR { return CBOR{kase: CaseSimple, simple: SimpleFloat, floatVal: f} }

// Case reports which algebraic variant v holds.
func (v CBOR) Case() Case { return v.kase }

// AsUint returns v's value and true if v is an Unsigned.
func (v CBOR) AsUint() (uint64, bool) {
	if v.kase != CaseUnsigned {
		return 0, false
	}
	return v.u, true
}

// AsNegInt returns v's raw negative encoding (-1-n) and true if v is Negative.
func (v CBOR) AsNegInt() (uint64, bool) {
	if v.kase != CaseNegative {
		return 0, false
	}
	return v.n, true
}

// AsFloat64 returns v's value as a float64 for any numeric case (Unsigned,
// Negative, or a Simple float), and true if v is numeric.
func (v CBOR) AsFloat64() (float64, bool) {
	switch v.kase {
	case CaseUnsigned:
		return float64(v.u), true
	case CaseNegative:
		return -1 - float64(v.n), true
	case CaseSimple:
		if v.simple == SimpleFloat {
			return v.floatVal, true
		}
	}
	return 0, false
}

// IsNumber reports whether v is any numeric case.
func (v CBOR) IsNumber() bool {
	_, ok := v.AsFloat64()
	return ok
}

// AsBytes returns v's byte-string content and true if v is a ByteString.
func (v CBOR) AsBytes() ([]byte, bool) {
	if v.kase != CaseByteString {
		return nil, false
	}
	return v.bstr, true
}

// AsText returns v's text-string content and true if v is a TextString.
func (v CBOR) AsText() (string, bool) {
	if v.kase != CaseTextString {
		return "", false
	}
	return v.text, true
}

// AsArray returns v's elements and true if v is an Array.
func (v CBOR) AsArray() ([]CBOR, bool) {
	if v.kase != CaseArray {
		return nil, false
	}
	return v.arr, true
}

// AsMap returns v's entries and true if v is a Map.
func (v CBOR) AsMap() ([]MapEntry, bool) {
	if v.kase != CaseMap {
		return nil, false
	}
	return v.m, true
}

// AsTagged returns v's tag number and content and true if v is Tagged.
func (v CBOR) AsTagged() (uint64, CBOR, bool) {
	if v.kase != CaseTagged {
		return 0, CBOR{}, false
	}
	return v.tagNum, *v.tagContent, true
}

// AsBool returns v's boolean value and true if v is a boolean Simple.
func (v CBOR) AsBool() (bool, bool) {
	if v.kase != CaseSimple {
		return false, false
	}
	switch v.simple {
	case SimpleTrue:
		return true, true
	case SimpleFalse:
		return false, true
	}
	return false, false
}

// IsNull reports whether v is the null simple value.
func (v CBOR) IsNull() bool { return v.kase == CaseSimple && v.simple == SimpleNull }

// Equal reports whether a and b are structurally identical CBOR values.
//
// Map key order is significant: dCBOR requires canonical key ordering, and
// two maps with the same pairs in different orders are not equal views
// (a matcher that wants order-independent comparison must sort first).
func Equal(a, b CBOR) bool {
	if a.kase != b.kase {
		return false
	}
	switch a.kase {
	case CaseUnsigned:
		return a.u == b.u
	case CaseNegative:
		return a.n == b.n
	case CaseByteString:
		return string(a.bstr) == string(b.bstr)
	case CaseTextString:
		return a.text == b.text
	case CaseArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case CaseMap:
		if len(a.m) != len(b.m) {
			return false
		}
		for i := range a.m {
			if !Equal(a.m[i].Key, b.m[i].Key) || !Equal(a.m[i].Value, b.m[i].Value) {
				return false
			}
		}
		return true
	case CaseTagged:
		return a.tagNum == b.tagNum && Equal(*a.tagContent, *b.tagContent)
	case CaseSimple:
		if a.simple != b.simple {
			return false
		}
		if a.simple == SimpleFloat {
			if math.IsNaN(a.floatVal) && math.IsNaN(b.floatVal) {
				return true
			}
			return a.floatVal == b.floatVal
		}
		return true
	}
	return false
}

// Fingerprint returns a byte string that is equal for structurally equal
// CBOR values and (with overwhelming probability) different otherwise. It
// is used internally for deduplicating paths and captures; it is not a
// dCBOR wire encoding (see [CBOR.Encode] for that).
func Fingerprint(v CBOR) string {
	var b []byte
	b = appendFingerprint(b, v)
	return string(b)
}

func appendFingerprint(b []byte, v CBOR) []byte {
	b = append(b, byte(v.kase))
	switch v.kase {
	case CaseUnsigned:
		b = appendUvarint(b, v.u)
	case CaseNegative:
		b = appendUvarint(b, v.n)
	case CaseByteString:
		b = appendUvarint(b, uint64(len(v.bstr)))
		b = append(b, v.bstr...)
	case CaseTextString:
		b = appendUvarint(b, uint64(len(v.text)))
		b = append(b, v.text...)
	case CaseArray:
		b = appendUvarint(b, uint64(len(v.arr)))
		for _, e := range v.arr {
			b = appendFingerprint(b, e)
		}
	case CaseMap:
		b = appendUvarint(b, uint64(len(v.m)))
		for _, e := range v.m {
			b = appendFingerprint(b, e.Key)
			b = appendFingerprint(b, e.Value)
		}
	case CaseTagged:
		b = appendUvarint(b, v.tagNum)
		b = appendFingerprint(b, *v.tagContent)
	case CaseSimple:
		b = append(b, byte(v.simple))
		if v.simple == SimpleFloat {
			bits := math.Float64bits(v.floatVal)
			for i := 0; i < 8; i++ {
				b = append(b, byte(bits>>(8*i)))
			}
		}
	}
	return b
}

func appendUvarint(b []byte, v uint64) []byte {
	for v >= 0x80 {
		b = append(b, byte(v)|0x80)
		v >>= 7
	}
	return append(b, byte(v))
}

// String renders v in a compact diagnostic-like form, used for debugging
// and error messages. It is not the dCBOR diagnostic notation parsed by
// [ParseDiagnostic]; use [format] package helpers for user-facing path
// rendering.
func (v CBOR) String() string {
	switch v.kase {
	case CaseUnsigned:
		return fmt.Sprintf("%d", v.u)
	case CaseNegative:
		return fmt.Sprintf("%d", -1-int64(v.n))
	case CaseByteString:
		return fmt.Sprintf("h'%x'", v.bstr)
	case CaseTextString:
		return fmt.Sprintf("%q", v.text)
	case CaseArray:
		out := "["
		for i, e := range v.arr {
			if i > 0 {
				out += ", "
			}
			out += e.String()
		}
		return out + "]"
	case CaseMap:
		// dCBOR canonical key order: shortest-encoding-first, then
		// bytewise; approximated here by fingerprint-bytewise order for
		// deterministic diagnostic output.
		entries := make([]MapEntry, len(v.m))
		copy(entries, v.m)
		sort.Slice(entries, func(i, j int) bool {
			return Fingerprint(entries[i].Key) < Fingerprint(entries[j].Key)
		})
		out := "{"
		for i, e := range entries {
			if i > 0 {
				out += ", "
			}
			out += e.Key.String() + ": " + e.Value.String()
		}
		return out + "}"
	case CaseTagged:
		return fmt.Sprintf("%d(%s)", v.tagNum, v.tagContent.String())
	case CaseSimple:
		switch v.simple {
		case SimpleTrue:
			return "true"
		case SimpleFalse:
			return "false"
		case SimpleNull:
			return "null"
		case SimpleFloat:
			return fmt.Sprintf("%g", v.floatVal)
		}
	}
	return "<invalid>"
}
