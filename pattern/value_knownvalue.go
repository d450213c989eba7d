package pattern

import (
	"fmt"

	"github.com/BlockchainCommons/dcbor-pattern-go/cbor"
	"github.com/BlockchainCommons/dcbor-pattern-go/knownvalue"
)

type knownValueKind int

const (
	knownValueAny knownValueKind = iota
	knownValueExact
	knownValueNamed
	knownValueRegex
)

// KnownValuePattern matches a tag-40000 wrapping of an unsigned integer,
// optionally resolved through the external known-value registry
// ([knownvalue]). Tolerates an uninitialized registry: Named and Regex
// variants simply fail to match since no code has a registered name.
type KnownValuePattern struct {
	kind  knownValueKind
	exact uint64
	name  string
	regex *TextRegex
}

func AnyKnownValue() *KnownValuePattern { return &KnownValuePattern{kind: knownValueAny} }

func KnownValueExact(code uint64) *KnownValuePattern {
	return &KnownValuePattern{kind: knownValueExact, exact: code}
}

func KnownValueNamed(name string) *KnownValuePattern {
	return &KnownValuePattern{kind: knownValueNamed, name: name}
}

func KnownValueRegexPattern(re *TextRegex) *KnownValuePattern {
	return &KnownValuePattern{kind: knownValueRegex, regex: re}
}

func (p *KnownValuePattern) PathsWithCaptures(v cbor.CBOR) ([]Path, Captures) {
	tag, content, ok := v.AsTagged()
	if !ok || tag != knownvalue.Tag {
		return nil, nil
	}
	code, ok := content.AsUint()
	if !ok {
		return nil, nil
	}
	kv := knownvalue.New(code)
	var hit bool
	switch p.kind {
	case knownValueAny:
		hit = true
	case knownValueExact:
		hit = code == p.exact
	case knownValueNamed:
		want, found := knownvalue.ByName(p.name)
		hit = found && want.Code == code
	case knownValueRegex:
		hit = knownvalue.MatchRegex(kv, p.regex)
	}
	if !hit {
		return nil, nil
	}
	return []Path{{v}}, nil
}

func (p *KnownValuePattern) Compile(b *Builder) {
	idx := b.AddLiteral(p)
	b.Emit(Instr{Op: OpMatchPredicate, LiteralIdx: idx})
}

func (p *KnownValuePattern) CollectCaptureNames(*[]string) {}
func (p *KnownValuePattern) IsComplex() bool               { return false }

func (p *KnownValuePattern) String() string {
	switch p.kind {
	case knownValueAny:
		return "KNOWN"
	case knownValueExact:
		return fmt.Sprintf("KNOWN(%d)", p.exact)
	case knownValueNamed:
		return fmt.Sprintf("KNOWN('%s')", p.name)
	case knownValueRegex:
		return fmt.Sprintf("KNOWN(/%s/)", p.regex.String())
	default:
		return "?unknown-knownvalue-pattern?"
	}
}
