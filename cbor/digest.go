package cbor

// DigestTag is the CBOR tag marking a tagged cryptographic digest, per
// Blockchain Commons Envelope conventions.
const DigestTag = 40001

// DigestSize is the byte length of a digest recognised by DigestPattern:
// SHA-256, 32 bytes.
const DigestSize = 32

// AsDigest extracts the raw digest bytes from a tag-40001 CBOR value. ok is
// false if v isn't tagged with DigestTag, its content isn't a byte string,
// or the byte string isn't exactly DigestSize long.
func AsDigest(v CBOR) (data []byte, ok bool) {
	tag, content, isTagged := v.AsTagged()
	if !isTagged || tag != DigestTag {
		return nil, false
	}
	bs, isBytes := content.AsBytes()
	if !isBytes || len(bs) != DigestSize {
		return nil, false
	}
	return bs, true
}

// NewDigest builds a tag-40001 CBOR value wrapping the given digest bytes.
func NewDigest(data []byte) CBOR {
	return Tagged(DigestTag, Bytes(data))
}

// IsDigest reports whether v is tagged with DigestTag, regardless of
// whether its content is a validly-sized byte string.
func IsDigest(v CBOR) bool {
	tag, _, ok := v.AsTagged()
	return ok && tag == DigestTag
}
