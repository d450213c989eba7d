package pattern

import "github.com/BlockchainCommons/dcbor-pattern-go/cbor"

// SearchPattern recursively descends the whole dCBOR tree (via
// ArrayElement/MapKey/MapValue/TaggedContent), testing the inner pattern at
// every reachable node and returning the path to each one that matches.
type SearchPattern struct {
	inner Pattern
}

func Search(inner Pattern) *SearchPattern { return &SearchPattern{inner: inner} }

func (p *SearchPattern) Pattern() Pattern { return p.inner }

func (p *SearchPattern) PathsWithCaptures(v cbor.CBOR) ([]Path, Captures) {
	var paths []Path
	captures := make(Captures)
	p.searchRecursive(v, Path{v}, &paths, captures)
	return dedupPaths(paths), dedupCaptures(captures)
}

func (p *SearchPattern) searchRecursive(v cbor.CBOR, path Path, out *[]Path, captures Captures) {
	innerPaths, innerCaptures := p.inner.PathsWithCaptures(v)
	if len(innerPaths) > 0 {
		*out = append(*out, append(Path(nil), path...))
		mergeCaptures(captures, innerCaptures)
	}

	for _, axis := range []cbor.Axis{cbor.ArrayElement, cbor.MapKey, cbor.MapValue, cbor.TaggedContent} {
		for _, child := range axis.Children(v) {
			p.searchRecursive(child, append(append(Path(nil), path...), child), out, captures)
		}
	}
}

func (p *SearchPattern) Compile(b *Builder) {
	idx := b.AddLiteral(p)

	var innerNames []string
	p.inner.CollectCaptureNames(&innerNames)
	var mapping []captureMapping
	for _, name := range innerNames {
		mapping = append(mapping, captureMapping{name: name, slot: b.CaptureSlot(name)})
	}

	b.Emit(Instr{Op: OpSearch, LiteralIdx: idx, CaptureMap: mapping})
}

func (p *SearchPattern) CollectCaptureNames(names *[]string) {
	p.inner.CollectCaptureNames(names)
}

func (p *SearchPattern) IsComplex() bool { return false }

func (p *SearchPattern) String() string { return "SEARCH(" + p.inner.String() + ")" }

// SequencePattern matches an ordered list of sub-patterns. Outside an array
// context it yields no paths — per the §9 open question decision, this is
// a deliberate empty result rather than a parse-time hard error, matching
// the source: sequence-control instructions only make sense when an array
// pattern drives element-by-element matching (see arraysequence.go).
type SequencePattern struct {
	patterns []Pattern
}

func Sequence(patterns ...Pattern) *SequencePattern {
	return &SequencePattern{patterns: patterns}
}

func (p *SequencePattern) Patterns() []Pattern { return p.patterns }
func (p *SequencePattern) Len() int             { return len(p.patterns) }
func (p *SequencePattern) IsEmpty() bool        { return len(p.patterns) == 0 }

func (p *SequencePattern) PathsWithCaptures(cbor.CBOR) ([]Path, Captures) {
	return nil, nil
}

func (p *SequencePattern) Compile(b *Builder) {
	if len(p.patterns) == 0 {
		return
	}
	if len(p.patterns) == 1 {
		p.patterns[0].Compile(b)
		return
	}
	for i, sub := range p.patterns {
		if i > 0 {
			b.Emit(Instr{Op: OpExtendSequence})
		}
		sub.Compile(b)
		if i > 0 {
			b.Emit(Instr{Op: OpCombineSequence})
		}
	}
}

func (p *SequencePattern) CollectCaptureNames(names *[]string) {
	for _, sub := range p.patterns {
		sub.CollectCaptureNames(names)
	}
}

func (p *SequencePattern) IsComplex() bool {
	if len(p.patterns) > 1 {
		return true
	}
	for _, sub := range p.patterns {
		if sub.IsComplex() {
			return true
		}
	}
	return false
}

func (p *SequencePattern) String() string {
	if len(p.patterns) == 0 {
		return "()"
	}
	s := ""
	for i, sub := range p.patterns {
		if i > 0 {
			s += " > "
		}
		s += sub.String()
	}
	return s
}
