// Package format renders match paths and captures produced by the pattern
// VM into deterministic, human-readable text, the way a debugger or test
// fixture would dump a match trace.
package format

import (
	"sort"
	"strings"

	"github.com/BlockchainCommons/dcbor-pattern-go/pattern"
)

// Options controls path rendering.
type Options struct {
	// MaxElementLen truncates each rendered path element's diagnostic text
	// to this many runes, appending an ellipsis. Zero means no truncation.
	MaxElementLen int

	// LastOnly renders only the final element of each path (the matched
	// node itself) instead of the full root-to-node chain.
	LastOnly bool
}

// FormatPaths renders paths with no capture information, one path per
// line, each path element on its own line indented 4 spaces per level.
func FormatPaths(paths []pattern.Path, opts Options) string {
	return FormatPathsWithCaptures(paths, nil, opts)
}

// FormatPathsWithCaptures renders paths the same way as FormatPaths, but
// first renders every capture, sorted ASCII-ascending by name, each as an
// "@name" line followed by its paths; all matching paths follow after them.
func FormatPathsWithCaptures(paths []pattern.Path, captures pattern.Captures, opts Options) string {
	var b strings.Builder

	names := make([]string, 0, len(captures))
	for name := range captures {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		b.WriteString("@")
		b.WriteString(name)
		b.WriteString("\n")
		for _, p := range captures[name] {
			writePath(&b, p, opts)
		}
	}

	for _, p := range paths {
		writePath(&b, p, opts)
	}

	return b.String()
}

func writePath(b *strings.Builder, p pattern.Path, opts Options) {
	elems := p
	if opts.LastOnly && len(elems) > 0 {
		elems = elems[len(elems)-1:]
	}
	for depth, v := range elems {
		b.WriteString(strings.Repeat("    ", depth))
		b.WriteString(truncate(v.String(), opts.MaxElementLen))
		b.WriteString("\n")
	}
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "…"
}
