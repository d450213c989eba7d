package pattern

import (
	"fmt"

	"github.com/BlockchainCommons/dcbor-pattern-go/cbor"
)

type digestKind int

const (
	digestAny digestKind = iota
	digestExact
	digestPrefix
	digestRegex
)

// DigestPattern matches tag-40001 (tagged digest) dCBOR values.
type DigestPattern struct {
	kind   digestKind
	exact  []byte
	prefix []byte
	regex  *BinaryRegex
}

// AnyDigest matches any tagged-digest value, regardless of content.
func AnyDigest() *DigestPattern { return &DigestPattern{kind: digestAny} }

func DigestExact(b []byte) *DigestPattern {
	return &DigestPattern{kind: digestExact, exact: append([]byte(nil), b...)}
}

func DigestPrefix(b []byte) *DigestPattern {
	return &DigestPattern{kind: digestPrefix, prefix: append([]byte(nil), b...)}
}

func DigestRegexPattern(re *BinaryRegex) *DigestPattern {
	return &DigestPattern{kind: digestRegex, regex: re}
}

func (p *DigestPattern) PathsWithCaptures(v cbor.CBOR) ([]Path, Captures) {
	data, ok := cbor.AsDigest(v)
	if !ok {
		return nil, nil
	}
	var hit bool
	switch p.kind {
	case digestAny:
		hit = true
	case digestExact:
		hit = bytesEqual(data, p.exact)
	case digestPrefix:
		hit = len(data) >= len(p.prefix) && bytesEqual(data[:len(p.prefix)], p.prefix)
	case digestRegex:
		hit = p.regex.Match(data)
	}
	if !hit {
		return nil, nil
	}
	return []Path{{v}}, nil
}

func (p *DigestPattern) Compile(b *Builder) {
	idx := b.AddLiteral(p)
	b.Emit(Instr{Op: OpMatchPredicate, LiteralIdx: idx})
}

func (p *DigestPattern) CollectCaptureNames(*[]string) {}
func (p *DigestPattern) IsComplex() bool               { return false }

func (p *DigestPattern) String() string {
	switch p.kind {
	case digestAny:
		return "digest"
	case digestExact:
		return fmt.Sprintf("DIGEST(%x)", p.exact)
	case digestPrefix:
		return fmt.Sprintf("DIGEST(%x)", p.prefix)
	case digestRegex:
		return fmt.Sprintf("DIGEST(/%s/)", p.regex.String())
	default:
		return "?unknown-digest-pattern?"
	}
}
