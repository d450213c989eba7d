package pattern

import (
	"fmt"

	"github.com/BlockchainCommons/dcbor-pattern-go/cbor"
)

type textKind int

const (
	textAny textKind = iota
	textExact
	textRegex
)

// TextPattern matches dCBOR text-string values.
type TextPattern struct {
	kind  textKind
	exact string
	regex *TextRegex
}

func AnyText() *TextPattern { return &TextPattern{kind: textAny} }

func TextExact(s string) *TextPattern { return &TextPattern{kind: textExact, exact: s} }

func TextRegexPattern(re *TextRegex) *TextPattern {
	return &TextPattern{kind: textRegex, regex: re}
}

func (p *TextPattern) PathsWithCaptures(v cbor.CBOR) ([]Path, Captures) {
	s, ok := v.AsText()
	if !ok {
		return nil, nil
	}
	var hit bool
	switch p.kind {
	case textAny:
		hit = true
	case textExact:
		hit = s == p.exact
	case textRegex:
		hit = p.regex.MatchString(s)
	}
	if !hit {
		return nil, nil
	}
	return []Path{{v}}, nil
}

func (p *TextPattern) Compile(b *Builder) {
	idx := b.AddLiteral(p)
	b.Emit(Instr{Op: OpMatchPredicate, LiteralIdx: idx})
}

func (p *TextPattern) CollectCaptureNames(*[]string) {}
func (p *TextPattern) IsComplex() bool               { return false }

func (p *TextPattern) String() string {
	switch p.kind {
	case textAny:
		return "TEXT"
	case textExact:
		return fmt.Sprintf("%q", p.exact)
	case textRegex:
		return "/" + p.regex.String() + "/"
	default:
		return "?unknown-text-pattern?"
	}
}

// ExactText returns the exact string this pattern matches, for use by the
// literal extractor's Or-of-exact-text fast path.
func (p *TextPattern) ExactText() (string, bool) {
	if p.kind == textExact {
		return p.exact, true
	}
	return "", false
}

type byteStringKind int

const (
	byteStringAny byteStringKind = iota
	byteStringExact
	byteStringRegex
)

// ByteStringPattern matches dCBOR byte-string values.
type ByteStringPattern struct {
	kind  byteStringKind
	exact []byte
	regex *BinaryRegex
}

func AnyByteString() *ByteStringPattern { return &ByteStringPattern{kind: byteStringAny} }

func ByteStringExact(b []byte) *ByteStringPattern {
	return &ByteStringPattern{kind: byteStringExact, exact: append([]byte(nil), b...)}
}

func ByteStringRegexPattern(re *BinaryRegex) *ByteStringPattern {
	return &ByteStringPattern{kind: byteStringRegex, regex: re}
}

func (p *ByteStringPattern) PathsWithCaptures(v cbor.CBOR) ([]Path, Captures) {
	bs, ok := v.AsBytes()
	if !ok {
		return nil, nil
	}
	var hit bool
	switch p.kind {
	case byteStringAny:
		hit = true
	case byteStringExact:
		hit = bytesEqual(bs, p.exact)
	case byteStringRegex:
		hit = p.regex.Match(bs)
	}
	if !hit {
		return nil, nil
	}
	return []Path{{v}}, nil
}

func (p *ByteStringPattern) Compile(b *Builder) {
	idx := b.AddLiteral(p)
	b.Emit(Instr{Op: OpMatchPredicate, LiteralIdx: idx})
}

func (p *ByteStringPattern) CollectCaptureNames(*[]string) {}
func (p *ByteStringPattern) IsComplex() bool               { return false }

func (p *ByteStringPattern) String() string {
	switch p.kind {
	case byteStringAny:
		return "BSTR"
	case byteStringExact:
		return fmt.Sprintf("h'%x'", p.exact)
	case byteStringRegex:
		return "/" + p.regex.String() + "/"
	default:
		return "?unknown-bytestring-pattern?"
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
