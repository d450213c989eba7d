// Package pattern implements the dCBOR pattern algebra: value, structure,
// and meta patterns; a bytecode compiler; a Thompson-style backtracking VM;
// and a top-level matcher façade. AST, compiler, and VM are consolidated
// into one package (rather than split per the original crate's module
// layout) to avoid an import cycle — the VM's literal table holds opaque
// Patterns, and several Pattern.Compile implementations need to reach back
// into vm.Instr, which would otherwise require a sub-package importing its
// own parent.
package pattern

import "github.com/BlockchainCommons/dcbor-pattern-go/cbor"

// Path is a non-empty ordered sequence of CBOR values from the root of a
// match to the matched node.
type Path []cbor.CBOR

// Captures maps a capture name to the ordered, deduplicated paths it
// matched.
type Captures map[string][]Path

// Pattern is implemented by every node of the pattern AST: value
// predicates, structural patterns, and meta combinators alike.
type Pattern interface {
	// PathsWithCaptures evaluates the pattern directly against v (the
	// "fast path" tree-walking evaluator used outside of Repeat/Search/
	// Sequence contexts, and by the VM's MatchStructure/Search
	// instructions to recurse into structural sub-patterns).
	PathsWithCaptures(v cbor.CBOR) ([]Path, Captures)

	// Compile lowers the pattern into instructions appended to b.
	Compile(b *Builder)

	// CollectCaptureNames appends this pattern's (and its descendants')
	// capture names, in first-seen order.
	CollectCaptureNames(names *[]string)

	// IsComplex reports whether this pattern's Display rendering needs
	// surrounding parentheses when nested inside another pattern's
	// rendering.
	IsComplex() bool

	String() string
}

// Paths evaluates p against v and discards captures.
func Paths(p Pattern, v cbor.CBOR) []Path {
	paths, _ := p.PathsWithCaptures(v)
	return paths
}

// Matches reports whether p matches anywhere at v itself (not a search).
func Matches(p Pattern, v cbor.CBOR) bool {
	return len(Paths(p, v)) > 0
}

func dedupPaths(paths []Path) []Path {
	seen := make(map[string]struct{}, len(paths))
	out := make([]Path, 0, len(paths))
	for _, p := range paths {
		key := fingerprintPath(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

func fingerprintPath(p Path) string {
	b := make([]byte, 0, 32*len(p))
	for _, v := range p {
		b = append(b, []byte(cbor.Fingerprint(v))...)
		b = append(b, 0)
	}
	return string(b)
}

func mergeCaptures(dst Captures, src Captures) {
	for name, paths := range src {
		dst[name] = append(dst[name], paths...)
	}
}

func dedupCaptures(c Captures) Captures {
	out := make(Captures, len(c))
	for name, paths := range c {
		out[name] = dedupPaths(paths)
	}
	return out
}
