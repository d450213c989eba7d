package pattern

import "github.com/BlockchainCommons/dcbor-pattern-go/cbor"

// RepeatPattern matches its inner pattern repeated according to a
// Quantifier. Both the direct evaluator below and the VM's Repeat
// instruction that Compile emits use repeatPaths (vm.go), so they share the
// full min/max/reluctance semantics.
type RepeatPattern struct {
	inner      Pattern
	quantifier Quantifier
}

func Repeat(inner Pattern, q Quantifier) *RepeatPattern {
	return &RepeatPattern{inner: inner, quantifier: q}
}

func (p *RepeatPattern) Pattern() Pattern       { return p.inner }
func (p *RepeatPattern) Quantifier() Quantifier { return p.quantifier }

func (p *RepeatPattern) PathsWithCaptures(v cbor.CBOR) ([]Path, Captures) {
	results := repeatPaths(p.inner, v, Path{v}, p.quantifier)
	if len(results) == 0 {
		return nil, nil
	}
	paths := make([]Path, len(results))
	for i, r := range results {
		paths[i] = r.path
	}
	return dedupPaths(paths), nil
}

func (p *RepeatPattern) Compile(b *Builder) {
	idx := b.AddLiteral(p.inner)
	b.Emit(Instr{Op: OpRepeat, LiteralIdx: idx, Quantifier: p.quantifier})
}

func (p *RepeatPattern) CollectCaptureNames(names *[]string) {
	p.inner.CollectCaptureNames(names)
}

func (p *RepeatPattern) IsComplex() bool { return true }

func (p *RepeatPattern) String() string {
	return "(" + p.inner.String() + ")" + p.quantifier.String()
}

// CapturePattern wraps a pattern, naming every path it yields at this site.
type CapturePattern struct {
	name  string
	inner Pattern
}

func Capture(name string, inner Pattern) *CapturePattern {
	return &CapturePattern{name: name, inner: inner}
}

func (p *CapturePattern) Name() string    { return p.name }
func (p *CapturePattern) Pattern() Pattern { return p.inner }

func (p *CapturePattern) PathsWithCaptures(v cbor.CBOR) ([]Path, Captures) {
	paths, captures := p.inner.PathsWithCaptures(v)
	if len(paths) == 0 {
		return paths, captures
	}
	out := make(Captures, len(captures)+1)
	for k, vv := range captures {
		out[k] = vv
	}
	out[p.name] = append(out[p.name], paths...)
	return paths, out
}

func (p *CapturePattern) Compile(b *Builder) {
	slot := b.CaptureSlot(p.name)
	b.Emit(Instr{Op: OpCaptureStart, CaptureSlot: slot})
	p.inner.Compile(b)
	b.Emit(Instr{Op: OpCaptureEnd, CaptureSlot: slot})
}

func (p *CapturePattern) CollectCaptureNames(names *[]string) {
	*names = append(*names, p.name)
	p.inner.CollectCaptureNames(names)
}

func (p *CapturePattern) IsComplex() bool { return p.inner.IsComplex() }

func (p *CapturePattern) String() string {
	return "@" + p.name + "(" + p.inner.String() + ")"
}
