package pattern

import "github.com/BlockchainCommons/dcbor-pattern-go/cbor"

// AnyPattern matches every CBOR value.
type AnyPattern struct{}

func Any() *AnyPattern { return &AnyPattern{} }

func (p *AnyPattern) PathsWithCaptures(v cbor.CBOR) ([]Path, Captures) {
	return []Path{{v}}, nil
}

func (p *AnyPattern) Compile(b *Builder) {
	idx := b.AddLiteral(p)
	b.Emit(Instr{Op: OpMatchPredicate, LiteralIdx: idx})
}

func (p *AnyPattern) CollectCaptureNames(*[]string) {}
func (p *AnyPattern) IsComplex() bool               { return false }
func (p *AnyPattern) String() string                { return "*" }

// NonePattern never matches any CBOR value.
type NonePattern struct{}

func None() *NonePattern { return &NonePattern{} }

func (p *NonePattern) PathsWithCaptures(cbor.CBOR) ([]Path, Captures) { return nil, nil }

func (p *NonePattern) Compile(b *Builder) { b.Emit(Instr{Op: OpJump, A: killTarget}) }

func (p *NonePattern) CollectCaptureNames(*[]string) {}
func (p *NonePattern) IsComplex() bool               { return false }
func (p *NonePattern) String() string                { return "NONE" }
