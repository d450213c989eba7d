package pattern

import (
	"strings"
	"sync"

	"github.com/coregx/ahocorasick"

	"github.com/BlockchainCommons/dcbor-pattern-go/cbor"
	"github.com/BlockchainCommons/dcbor-pattern-go/literal"
)

// AndPattern matches if every contained pattern matches, per the §9 open
// question decision: a path-intersection-existence semantics (a single
// [[v]] result when all branches match, not an element-wise coincidence
// check), preserving the source behaviour.
type AndPattern struct {
	patterns []Pattern
}

func And(patterns ...Pattern) *AndPattern { return &AndPattern{patterns: patterns} }

func (p *AndPattern) Patterns() []Pattern { return p.patterns }

func (p *AndPattern) PathsWithCaptures(v cbor.CBOR) ([]Path, Captures) {
	all := make(Captures)
	for _, sub := range p.patterns {
		paths, captures := sub.PathsWithCaptures(v)
		if len(paths) == 0 {
			return nil, nil
		}
		mergeCaptures(all, captures)
	}
	return []Path{{v}}, dedupCaptures(all)
}

func (p *AndPattern) Compile(b *Builder) {
	for _, sub := range p.patterns {
		sub.Compile(b)
	}
}

func (p *AndPattern) CollectCaptureNames(names *[]string) {
	for _, sub := range p.patterns {
		sub.CollectCaptureNames(names)
	}
}

func (p *AndPattern) IsComplex() bool {
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

func (p *AndPattern) String() string {
	parts := make([]string, len(p.patterns))
	for i, sub := range p.patterns {
		parts[i] = sub.String()
	}
	return strings.Join(parts, "&")
}

// OrPattern matches if any contained pattern matches, preserving the
// source's post-hoc dedup semantics: results from every branch are
// concatenated and deduplicated afterward, in first-emitted order.
type OrPattern struct {
	patterns []Pattern

	literalsOnce sync.Once
	aho          *ahocorasick.Automaton // non-nil iff every branch is a captureless Text.Exact literal
	commonPrefix []byte                 // shared prefix of every branch's literal, for a cheap pre-automaton reject
}

func Or(patterns ...Pattern) *OrPattern { return &OrPattern{patterns: patterns} }

func (p *OrPattern) Patterns() []Pattern { return p.patterns }

// exactTextAlternation builds (once) an Aho-Corasick automaton over every
// branch's literal text, when len(patterns) >= 3 and each branch is a bare
// Text.Exact pattern. This lets a three-or-more literal alternation like
// `"GET" | "POST" | "PUT"` resolve in PathsWithCaptures with a single
// automaton probe instead of evaluating each branch in turn; Compile does
// not use the automaton and always emits the chained Split form. It also
// extracts the branches' longest
// common prefix via the literal package's Seq algebra, so a candidate text
// that can't possibly match any branch is rejected before the automaton
// ever runs.
func (p *OrPattern) exactTextAlternation() *ahocorasick.Automaton {
	p.literalsOnce.Do(func() {
		if len(p.patterns) < 3 {
			return
		}
		lits := make([]literal.Literal, 0, len(p.patterns))
		builder := ahocorasick.NewBuilder()
		for _, sub := range p.patterns {
			tp, ok := sub.(*TextPattern)
			if !ok {
				return
			}
			text, ok := tp.ExactText()
			if !ok {
				return
			}
			builder.AddPattern([]byte(text))
			lits = append(lits, literal.NewLiteral([]byte(text), true))
		}
		auto, err := builder.Build()
		if err != nil {
			return
		}
		p.aho = auto
		p.commonPrefix = literal.NewSeq(lits...).LongestCommonPrefix()
	})
	return p.aho
}

func (p *OrPattern) PathsWithCaptures(v cbor.CBOR) ([]Path, Captures) {
	if auto := p.exactTextAlternation(); auto != nil {
		if s, ok := v.AsText(); ok {
			if len(p.commonPrefix) > 0 && !strings.HasPrefix(s, string(p.commonPrefix)) {
				return nil, nil
			}
			if m := auto.Find([]byte(s), 0); m != nil && m.Start == 0 && m.End == len(s) {
				return []Path{{v}}, nil
			}
		}
		return nil, nil
	}

	var allPaths []Path
	all := make(Captures)
	for _, sub := range p.patterns {
		paths, captures := sub.PathsWithCaptures(v)
		allPaths = append(allPaths, paths...)
		mergeCaptures(all, captures)
	}
	return dedupPaths(allPaths), dedupCaptures(all)
}

func (p *OrPattern) Compile(b *Builder) {
	if len(p.patterns) == 0 {
		return
	}
	var splits []int
	for i := 0; i < len(p.patterns)-1; i++ {
		splits = append(splits, b.Len())
		b.Emit(Instr{Op: OpSplit})
	}
	var jumps []int
	for i, sub := range p.patterns {
		start := b.Len()
		sub.Compile(b)
		jump := b.Len()
		b.Emit(Instr{Op: OpJump})
		if i < len(p.patterns)-1 {
			next := b.Len()
			b.Patch(splits[i], Instr{Op: OpSplit, A: start, B: next})
		}
		jumps = append(jumps, jump)
	}
	pastAll := b.Len()
	for _, j := range jumps {
		b.Patch(j, Instr{Op: OpJump, A: pastAll})
	}
}

func (p *OrPattern) CollectCaptureNames(names *[]string) {
	for _, sub := range p.patterns {
		sub.CollectCaptureNames(names)
	}
}

func (p *OrPattern) IsComplex() bool {
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

func (p *OrPattern) String() string {
	parts := make([]string, len(p.patterns))
	for i, sub := range p.patterns {
		parts[i] = sub.String()
	}
	return strings.Join(parts, " | ")
}

// NotPattern matches when its inner pattern does not match.
type NotPattern struct {
	inner Pattern
}

func Not(inner Pattern) *NotPattern { return &NotPattern{inner: inner} }

func (p *NotPattern) Pattern() Pattern { return p.inner }

func (p *NotPattern) PathsWithCaptures(v cbor.CBOR) ([]Path, Captures) {
	if Matches(p.inner, v) {
		return nil, nil
	}
	return []Path{{v}}, nil
}

func (p *NotPattern) Compile(b *Builder) {
	idx := b.AddLiteral(p.inner)
	b.Emit(Instr{Op: OpNotMatch, LiteralIdx: idx})
}

// CollectCaptureNames intentionally does nothing: capturing from a pattern
// that must NOT match has no well-defined semantics.
func (p *NotPattern) CollectCaptureNames(*[]string) {}

func (p *NotPattern) IsComplex() bool { return true }

func (p *NotPattern) String() string {
	if p.inner.IsComplex() {
		return "!(" + p.inner.String() + ")"
	}
	return "!" + p.inner.String()
}
