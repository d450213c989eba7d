package pattern

import (
	"fmt"
	"strings"

	"github.com/BlockchainCommons/dcbor-pattern-go/cbor"
)

type taggedKind int

const (
	taggedAny taggedKind = iota
	taggedWithTag
	taggedWithTagSet
	taggedWithContent
	taggedWithTagAndContent
	taggedWithTagSetAndContent
)

// TaggedPattern matches CBOR tagged-value structures.
type TaggedPattern struct {
	kind    taggedKind
	tag     uint64
	tagSet  []uint64
	content Pattern
}

func AnyTagged() *TaggedPattern { return &TaggedPattern{kind: taggedAny} }

func TaggedWithTag(tag uint64) *TaggedPattern {
	return &TaggedPattern{kind: taggedWithTag, tag: tag}
}

func TaggedWithTagSet(tags []uint64) *TaggedPattern {
	return &TaggedPattern{kind: taggedWithTagSet, tagSet: tags}
}

func TaggedWithContent(content Pattern) *TaggedPattern {
	return &TaggedPattern{kind: taggedWithContent, content: content}
}

func TaggedWithTagAndContent(tag uint64, content Pattern) *TaggedPattern {
	return &TaggedPattern{kind: taggedWithTagAndContent, tag: tag, content: content}
}

// TaggedWithTagSetAndContent matches a tagged value whose tag is one of
// tags and whose content matches content, used by the `tag(/regex/, ...)`
// selector which can resolve to several registered tag names at once.
func TaggedWithTagSetAndContent(tags []uint64, content Pattern) *TaggedPattern {
	return &TaggedPattern{kind: taggedWithTagSetAndContent, tagSet: tags, content: content}
}

func (p *TaggedPattern) PathsWithCaptures(v cbor.CBOR) ([]Path, Captures) {
	tag, content, ok := v.AsTagged()
	if !ok {
		return nil, nil
	}

	switch p.kind {
	case taggedAny:
		return []Path{{v}}, nil

	case taggedWithTag:
		if tag == p.tag {
			return []Path{{v}}, nil
		}
		return nil, nil

	case taggedWithTagSet:
		for _, t := range p.tagSet {
			if t == tag {
				return []Path{{v}}, nil
			}
		}
		return nil, nil

	case taggedWithContent:
		contentPaths, contentCaptures := p.content.PathsWithCaptures(content)
		if len(contentPaths) == 0 {
			return nil, nil
		}
		return []Path{{v}}, extendContentCaptures(v, content, contentCaptures)

	case taggedWithTagAndContent:
		if tag != p.tag {
			return nil, nil
		}
		contentPaths, contentCaptures := p.content.PathsWithCaptures(content)
		if len(contentPaths) == 0 {
			return nil, nil
		}
		return []Path{{v}}, extendContentCaptures(v, content, contentCaptures)

	case taggedWithTagSetAndContent:
		matched := false
		for _, t := range p.tagSet {
			if t == tag {
				matched = true
				break
			}
		}
		if !matched {
			return nil, nil
		}
		contentPaths, contentCaptures := p.content.PathsWithCaptures(content)
		if len(contentPaths) == 0 {
			return nil, nil
		}
		return []Path{{v}}, extendContentCaptures(v, content, contentCaptures)
	}
	return nil, nil
}

// extendContentCaptures prefixes a tagged content pattern's capture paths
// (which start at the content) with the tagged value itself.
func extendContentCaptures(v, content cbor.CBOR, nested Captures) Captures {
	if len(nested) == 0 {
		return nil
	}
	out := make(Captures, len(nested))
	for name, paths := range nested {
		for _, cp := range paths {
			extended := Path{v, content}
			if len(cp) > 1 {
				extended = append(extended, cp[1:]...)
			}
			out[name] = append(out[name], extended)
		}
	}
	return out
}

func (p *TaggedPattern) Compile(b *Builder) {
	var names []string
	p.CollectCaptureNames(&names)

	if len(names) == 0 || (p.kind != taggedWithContent && p.kind != taggedWithTagAndContent && p.kind != taggedWithTagSetAndContent) {
		idx := b.AddLiteral(p)
		b.Emit(Instr{Op: OpMatchStructure, LiteralIdx: idx})
		return
	}

	switch p.kind {
	case taggedWithTagAndContent:
		idx := b.AddLiteral(TaggedWithTag(p.tag))
		b.Emit(Instr{Op: OpMatchStructure, LiteralIdx: idx})
	case taggedWithTagSetAndContent:
		idx := b.AddLiteral(TaggedWithTagSet(p.tagSet))
		b.Emit(Instr{Op: OpMatchStructure, LiteralIdx: idx})
	default:
		idx := b.AddLiteral(AnyTagged())
		b.Emit(Instr{Op: OpMatchStructure, LiteralIdx: idx})
	}
	b.Emit(Instr{Op: OpPushAxis, Axis: cbor.TaggedContent})
	p.content.Compile(b)
	b.Emit(Instr{Op: OpPop})
}

func (p *TaggedPattern) CollectCaptureNames(names *[]string) {
	if p.content != nil {
		p.content.CollectCaptureNames(names)
	}
}

func (p *TaggedPattern) IsComplex() bool { return false }

func (p *TaggedPattern) String() string {
	switch p.kind {
	case taggedAny:
		return "TAGGED"
	case taggedWithTag:
		return fmt.Sprintf("TAGGED_TAG(%d)", p.tag)
	case taggedWithTagSet:
		parts := make([]string, len(p.tagSet))
		for i, t := range p.tagSet {
			parts[i] = fmt.Sprintf("%d", t)
		}
		return fmt.Sprintf("TAGGED_TAGS([%s])", strings.Join(parts, ", "))
	case taggedWithContent:
		return fmt.Sprintf("TAGGED_CONTENT(%s)", p.content.String())
	case taggedWithTagAndContent:
		return fmt.Sprintf("TAGGED_TC(%d, %s)", p.tag, p.content.String())
	case taggedWithTagSetAndContent:
		parts := make([]string, len(p.tagSet))
		for i, t := range p.tagSet {
			parts[i] = fmt.Sprintf("%d", t)
		}
		return fmt.Sprintf("TAGGED_TSC([%s], %s)", strings.Join(parts, ", "), p.content.String())
	}
	return "?unknown-tagged-pattern?"
}
