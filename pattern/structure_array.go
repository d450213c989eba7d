package pattern

import (
	"strings"

	"github.com/BlockchainCommons/dcbor-pattern-go/cbor"
)

type arrayKind int

const (
	arrayAny arrayKind = iota
	arrayElements
	arrayLength
)

// ArrayPattern matches CBOR array structures: unconstrained, by the pattern
// its elements must satisfy as an ordered sequence, or by length.
type ArrayPattern struct {
	kind     arrayKind
	elements Pattern
	length   Interval
}

func AnyArray() *ArrayPattern { return &ArrayPattern{kind: arrayAny} }

func ArrayElements(p Pattern) *ArrayPattern {
	return &ArrayPattern{kind: arrayElements, elements: p}
}

func ArrayLength(iv Interval) *ArrayPattern {
	return &ArrayPattern{kind: arrayLength, length: iv}
}

func (p *ArrayPattern) PathsWithCaptures(v cbor.CBOR) ([]Path, Captures) {
	arr, ok := v.AsArray()
	if !ok {
		return nil, nil
	}

	switch p.kind {
	case arrayAny:
		return []Path{{v}}, nil

	case arrayLength:
		if p.length.Contains(len(arr)) {
			return []Path{{v}}, nil
		}
		return nil, nil

	case arrayElements:
		var names []string
		p.elements.CollectCaptureNames(&names)
		if len(names) == 0 {
			if p.matchesElements(arr) {
				return []Path{{v}}, nil
			}
			return nil, nil
		}
		return p.pathsWithCapturesComplex(v, arr, names)
	}
	return nil, nil
}

// matchesElements decides whether the element pattern — a plain pattern,
// a Sequence, or a bare Repeat — is satisfied by the array's elements taken
// as an ordered whole.
func (p *ArrayPattern) matchesElements(arr []cbor.CBOR) bool {
	switch el := p.elements.(type) {
	case *SequencePattern:
		return newSequenceAssigner(el.patterns, arr).canMatch()
	case *RepeatPattern:
		min, max := el.quantifier.Min, el.quantifier.MaxOrUnbounded()
		if len(arr) < min || len(arr) > max {
			return false
		}
		for _, e := range arr {
			if !Matches(el.inner, e) {
				return false
			}
		}
		return true
	default:
		if len(arr) != 1 {
			return false
		}
		return Matches(p.elements, arr[0])
	}
}

// pathsWithCapturesComplex handles the case where the element pattern
// contains at least one capture, recovering which array elements were
// assigned to which named captures.
func (p *ArrayPattern) pathsWithCapturesComplex(v cbor.CBOR, arr []cbor.CBOR, _ []string) ([]Path, Captures) {
	switch el := p.elements.(type) {
	case *SequencePattern:
		return p.handleSequenceCaptures(v, el, arr)
	default:
		if !p.matchesElements(arr) {
			return nil, nil
		}
		captures := make(Captures)
		for i, e := range arr {
			_, elCaptures := p.elements.PathsWithCaptures(e)
			mergeArrayContext(v, e, i, elCaptures, captures)
		}
		return []Path{{v}}, dedupCaptures(captures)
	}
}

func (p *ArrayPattern) handleSequenceCaptures(v cbor.CBOR, seq *SequencePattern, arr []cbor.CBOR) ([]Path, Captures) {
	assignments, ok := newSequenceAssigner(seq.patterns, arr).findAssignments()
	if !ok {
		return nil, nil
	}

	captures := make(Captures)
	for patternIdx, sub := range seq.patterns {
		var elemIdxs []int
		for _, a := range assignments {
			if a[0] == patternIdx {
				elemIdxs = append(elemIdxs, a[1])
			}
		}

		if capPat, ok := sub.(*CapturePattern); ok {
			if _, isRepeat := capPat.inner.(*RepeatPattern); isRepeat {
				subElems := make([]cbor.CBOR, len(elemIdxs))
				for i, idx := range elemIdxs {
					subElems[i] = arr[idx]
				}
				subArray := cbor.Array(subElems)
				captures[capPat.name] = append(captures[capPat.name], Path{v, subArray})
				continue
			}
		}

		if rp, isRepeat := sub.(*RepeatPattern); isRepeat {
			var rpNames []string
			rp.CollectCaptureNames(&rpNames)
			if len(rpNames) > 0 {
				subElems := make([]cbor.CBOR, len(elemIdxs))
				for i, idx := range elemIdxs {
					subElems[i] = arr[idx]
				}
				subArray := cbor.Array(subElems)
				_, subCaptures := rp.PathsWithCaptures(subArray)
				for name, paths := range subCaptures {
					for _, cp := range paths {
						extended := Path{v, subArray}
						if len(cp) > 1 {
							extended = append(extended, cp[1:]...)
						}
						captures[name] = append(captures[name], extended)
					}
				}
				continue
			}
		}

		for _, idx := range elemIdxs {
			_, elCaptures := sub.PathsWithCaptures(arr[idx])
			mergeArrayContext(v, arr[idx], idx, elCaptures, captures)
		}
	}

	return []Path{{v}}, dedupCaptures(captures)
}

// mergeArrayContext rewrites a sub-pattern's captured paths (which start at
// the matched element) to instead start at the array value itself, i.e.
// [array, element, ...rest].
func mergeArrayContext(arrayCBOR, element cbor.CBOR, _ int, nested Captures, out Captures) {
	for name, paths := range nested {
		for _, cp := range paths {
			extended := Path{arrayCBOR, element}
			if len(cp) > 1 {
				extended = append(extended, cp[1:]...)
			}
			out[name] = append(out[name], extended)
		}
	}
}

func (p *ArrayPattern) Compile(b *Builder) {
	// Always compiled as a single opaque OpMatchStructure literal (as
	// MapPattern.Compile does), whether or not elements carries captures:
	// PushAxis spawns one independent thread per array element, each
	// resuming at the same pc, so a multi-position elements sequence would
	// be evaluated against a single element rather than the array as a
	// whole. Deferring to p.PathsWithCaptures lets the array-sequence
	// engine (arraysequence.go) assign the whole sequence across elements
	// correctly, captures included.
	idx := b.AddLiteral(p)
	b.Emit(Instr{Op: OpMatchStructure, LiteralIdx: idx})
}

func (p *ArrayPattern) CollectCaptureNames(names *[]string) {
	if p.kind == arrayElements {
		p.elements.CollectCaptureNames(names)
	}
}

func (p *ArrayPattern) IsComplex() bool { return false }

func (p *ArrayPattern) String() string {
	switch p.kind {
	case arrayAny:
		return "array"
	case arrayLength:
		return "[" + p.length.String() + "]"
	case arrayElements:
		return "[" + formatArrayElementPattern(p.elements) + "]"
	}
	return "?unknown-array-pattern?"
}

// formatArrayElementPattern renders a Sequence with commas instead of the
// ">" separator used outside array element context.
func formatArrayElementPattern(p Pattern) string {
	if seq, ok := p.(*SequencePattern); ok {
		parts := make([]string, len(seq.patterns))
		for i, sub := range seq.patterns {
			parts[i] = formatArrayElementPattern(sub)
		}
		return strings.Join(parts, ", ")
	}
	return p.String()
}
