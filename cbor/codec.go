package cbor

import (
	"fmt"
	"math"
	"sort"

	fxcbor "github.com/fxamacker/cbor/v2"
)

// Decode parses a wire-format CBOR byte string into this package's
// algebraic view.
//
// Decoding of the generic shape is delegated to
// github.com/fxamacker/cbor/v2, which robustly handles every CBOR major
// type including non-canonical encodings a real-world producer might emit;
// this function then folds its generic `interface{}` result into [CBOR].
// Encoding back to dCBOR's specific canonical wire form is hand-written in
// [CBOR.Encode] instead of reusing the library's own canonical mode, so
// that NaN payloads are normalised to a single canonical encoding.
func Decode(data []byte) (CBOR, error) {
	dm, err := fxcbor.DecOptions{
		DefaultMapType: reflectMapType,
	}.DecMode()
	if err != nil {
		return CBOR{}, err
	}
	var raw fxcbor.RawMessage
	if err := dm.Unmarshal(data, &raw); err != nil {
		return CBOR{}, err
	}
	return decodeRaw(dm, raw)
}

// decodeRaw walks a single fxcbor.RawMessage into our CBOR view by
// re-decoding it against progressively more specific Go types, since
// fxcbor.RawMessage carries just the undecoded bytes for one item.
func decodeRaw(dm fxcbor.DecMode, raw fxcbor.RawMessage) (CBOR, error) {
	var tag fxcbor.Tag
	if err := dm.Unmarshal(raw, &tag); err == nil && tag.Number != 0 {
		content, err := decodeRaw(dm, mustRemarshal(tag.Content))
		if err != nil {
			return CBOR{}, err
		}
		return Tagged(tag.Number, content), nil
	}

	var generic interface{}
	if err := dm.Unmarshal(raw, &generic); err != nil {
		return CBOR{}, err
	}
	return fromGo(generic)
}

func mustRemarshal(v interface{}) fxcbor.RawMessage {
	data, err := fxcbor.Marshal(v)
	if err != nil {
		// v came from a successful Unmarshal moments ago; re-marshalling
		// it cannot fail.
		panic(fmt.Sprintf("cbor: unreachable remarshal failure: %v", err))
	}
	return data
}

func fromGo(v interface{}) (CBOR, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(x), nil
	case uint64:
		return Uint(x), nil
	case int64:
		return Int(x), nil
	case float64:
		return Float(x), nil
	case []byte:
		return Bytes(x), nil
	case string:
		return Text(x), nil
	case []interface{}:
		items := make([]CBOR, len(x))
		for i, e := range x {
			item, err := fromGo(e)
			if err != nil {
				return CBOR{}, err
			}
			items[i] = item
		}
		return Array(items), nil
	case map[interface{}]interface{}:
		entries := make([]MapEntry, 0, len(x))
		for k, val := range x {
			kc, err := fromGo(k)
			if err != nil {
				return CBOR{}, err
			}
			vc, err := fromGo(val)
			if err != nil {
				return CBOR{}, err
			}
			entries = append(entries, MapEntry{Key: kc, Value: vc})
		}
		sort.Slice(entries, func(i, j int) bool {
			return Fingerprint(entries[i].Key) < Fingerprint(entries[j].Key)
		})
		return Map(entries), nil
	default:
		return CBOR{}, fmt.Errorf("cbor: unsupported decoded Go type %T", v)
	}
}

// reflectMapType steers fxcbor's generic decode toward map[interface{}]interface{}
// so arbitrary (non-string) CBOR map keys decode without loss.
var reflectMapType = func() interface{} {
	return map[interface{}]interface{}{}
}()

// Encode renders v as a canonical deterministic-CBOR (dCBOR) byte string:
// definite-length items only, shortest-form integers, map keys sorted
// bytewise by their own encoding, and (for floats) 32-bit IEEE-754 when
// that round-trips the value exactly, else 64-bit.
func (v CBOR) Encode() []byte {
	var b []byte
	return appendEncode(b, v)
}

func appendEncode(b []byte, v CBOR) []byte {
	switch v.kase {
	case CaseUnsigned:
		return appendHead(b, 0, v.u)
	case CaseNegative:
		return appendHead(b, 1, v.n)
	case CaseByteString:
		b = appendHead(b, 2, uint64(len(v.bstr)))
		return append(b, v.bstr...)
	case CaseTextString:
		b = appendHead(b, 3, uint64(len(v.text)))
		return append(b, v.text...)
	case CaseArray:
		b = appendHead(b, 4, uint64(len(v.arr)))
		for _, e := range v.arr {
			b = appendEncode(b, e)
		}
		return b
	case CaseMap:
		entries := make([]MapEntry, len(v.m))
		copy(entries, v.m)
		sort.Slice(entries, func(i, j int) bool {
			return string(appendEncode(nil, entries[i].Key)) < string(appendEncode(nil, entries[j].Key))
		})
		b = appendHead(b, 5, uint64(len(entries)))
		for _, e := range entries {
			b = appendEncode(b, e.Key)
			b = appendEncode(b, e.Value)
		}
		return b
	case CaseTagged:
		b = appendHead(b, 6, v.tagNum)
		return appendEncode(b, *v.tagContent)
	case CaseSimple:
		switch v.simple {
		case SimpleFalse:
			return append(b, 0xf4)
		case SimpleTrue:
			return append(b, 0xf5)
		case SimpleNull:
			return append(b, 0xf6)
		case SimpleFloat:
			return appendFloat(b, v.floatVal)
		}
	}
	return b
}

// appendHead encodes a CBOR major/minor head with the shortest valid form.
func appendHead(b []byte, major byte, n uint64) []byte {
	m := major << 5
	switch {
	case n < 24:
		return append(b, m|byte(n))
	case n <= 0xff:
		return append(b, m|24, byte(n))
	case n <= 0xffff:
		return append(b, m|25, byte(n>>8), byte(n))
	case n <= 0xffffffff:
		return append(b, m|26, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
	default:
		return append(b, m|27,
			byte(n>>56), byte(n>>48), byte(n>>40), byte(n>>32),
			byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
	}
}

// appendFloat writes f as a major-7 float: 32-bit when that represents it
// exactly, otherwise 64-bit. Half precision is not used for non-NaN values,
// and integral floats are not reduced to integers. NaN is always normalised
// to the canonical quiet NaN half-float payload 0x7e00.
func appendFloat(b []byte, f float64) []byte {
	if math.IsNaN(f) {
		return append(b, 0xf9, 0x7e, 0x00)
	}
	if f32 := float32(f); float64(f32) == f {
		bits := math.Float32bits(f32)
		return append(b, 0xfa, byte(bits>>24), byte(bits>>16), byte(bits>>8), byte(bits))
	}
	bits := math.Float64bits(f)
	return append(b, 0xfb,
		byte(bits>>56), byte(bits>>48), byte(bits>>40), byte(bits>>32),
		byte(bits>>24), byte(bits>>16), byte(bits>>8), byte(bits))
}
