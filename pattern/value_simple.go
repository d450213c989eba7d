package pattern

import "github.com/BlockchainCommons/dcbor-pattern-go/cbor"

// BoolPattern matches boolean values.
type BoolPattern struct {
	any   bool
	value bool
}

// AnyBool matches any boolean value.
func AnyBool() *BoolPattern { return &BoolPattern{any: true} }

// Bool matches a specific boolean value.
func Bool(v bool) *BoolPattern { return &BoolPattern{value: v} }

func (p *BoolPattern) PathsWithCaptures(v cbor.CBOR) ([]Path, Captures) {
	b, ok := v.AsBool()
	if !ok || (!p.any && b != p.value) {
		return nil, nil
	}
	return []Path{{v}}, nil
}

func (p *BoolPattern) Compile(b *Builder) {
	idx := b.AddLiteral(p)
	b.Emit(Instr{Op: OpMatchPredicate, LiteralIdx: idx})
}

func (p *BoolPattern) CollectCaptureNames(*[]string) {}
func (p *BoolPattern) IsComplex() bool               { return false }

func (p *BoolPattern) String() string {
	if p.any {
		return "BOOL"
	}
	if p.value {
		return "true"
	}
	return "false"
}

// NullPattern matches only the simple value null.
type NullPattern struct{}

// Null matches the CBOR simple value null.
func Null() *NullPattern { return &NullPattern{} }

func (p *NullPattern) PathsWithCaptures(v cbor.CBOR) ([]Path, Captures) {
	if !v.IsNull() {
		return nil, nil
	}
	return []Path{{v}}, nil
}

func (p *NullPattern) Compile(b *Builder) {
	idx := b.AddLiteral(p)
	b.Emit(Instr{Op: OpMatchPredicate, LiteralIdx: idx})
}

func (p *NullPattern) CollectCaptureNames(*[]string) {}
func (p *NullPattern) IsComplex() bool               { return false }
func (p *NullPattern) String() string                { return "NULL" }
