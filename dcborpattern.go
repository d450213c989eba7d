// Package dcborpattern is a pattern-matching engine for dCBOR (deterministic
// CBOR). It compiles a textual pattern language into a bytecode program and
// runs it against a CBOR value, returning the matching paths — root-to-node
// sequences — together with any named captures collected along the way. It
// is the CBOR analogue of a regular-expression engine, extended with
// structural constructs for arrays, maps, tagged values, and a
// recursive-descent "search" operator.
//
// Basic usage:
//
//	pat, err := dcborpattern.Parse(`{"type": text, "value": number}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if dcborpattern.Matches(pat, value) {
//	    fmt.Println("matched!")
//	}
//
// Captures and path rendering:
//
//	pat := dcborpattern.MustParse(`search(@found(number))`)
//	paths, captures := dcborpattern.PathsWithCaptures(pat, value)
//	fmt.Print(format.FormatPathsWithCaptures(paths, captures, format.Options{}))
package dcborpattern

import (
	"github.com/BlockchainCommons/dcbor-pattern-go/cbor"
	"github.com/BlockchainCommons/dcbor-pattern-go/parse"
	"github.com/BlockchainCommons/dcbor-pattern-go/pattern"
)

// Pattern is a compiled dCBOR pattern, ready to be matched against values.
type Pattern = pattern.Pattern

// Path is a non-empty root-to-node sequence of CBOR values.
type Path = pattern.Path

// Captures maps a capture name to the ordered, deduplicated paths it
// matched.
type Captures = pattern.Captures

// Config bounds the VM's backtracking work for a single match: the total
// number of threads it spawns and the maximum Repeat expansion it will try.
type Config = pattern.Config

// DefaultConfig returns the engine's default resource bounds.
//
// Example:
//
//	cfg := dcborpattern.DefaultConfig()
//	cfg.MaxThreads = 10_000
//	matched, err := dcborpattern.MatchesWithConfig(pat, value, cfg)
func DefaultConfig() Config {
	return pattern.DefaultConfig()
}

// Parse parses text into a Pattern, failing if anything but whitespace
// follows the recognised pattern.
//
// Example:
//
//	pat, err := dcborpattern.Parse(`array & [{2,5}]`)
func Parse(text string) (Pattern, error) {
	return parse.Parse(text)
}

// ParsePartial parses a Pattern from the start of text and reports how
// many bytes it consumed, succeeding even if trailing text remains.
func ParsePartial(text string) (Pattern, int, error) {
	return parse.ParsePartial(text)
}

// MustParse parses text and panics if it fails, for patterns known to be
// valid at compile time (tests, fixtures, package-level vars).
//
// Example:
//
//	var anyDigest = dcborpattern.MustParse(`digest`)
func MustParse(text string) Pattern {
	return parse.MustParse(text)
}

// Matches reports whether p matches v itself (i.e. produces at least one
// path); it does not search v's descendants unless p is a search pattern.
func Matches(p Pattern, v cbor.CBOR) bool {
	return pattern.Matches(p, v)
}

// Paths evaluates p against v and returns every matching path, discarding
// captures.
func Paths(p Pattern, v cbor.CBOR) []Path {
	return pattern.Paths(p, v)
}

// PathsWithCaptures evaluates p against v via the bytecode VM, returning
// both the matching paths and any named captures collected along the way.
func PathsWithCaptures(p Pattern, v cbor.CBOR) ([]Path, Captures) {
	b := pattern.NewBuilder()
	p.Compile(b)
	b.Emit(pattern.Instr{Op: pattern.OpAccept})
	return pattern.Run(b.Program(), v)
}

// MatchesWithConfig is Matches with explicit resource bounds; see Config.
func MatchesWithConfig(p Pattern, v cbor.CBOR, cfg Config) (bool, error) {
	return pattern.MatchesWithConfig(p, v, cfg)
}

// PathsWithConfig is Paths with explicit resource bounds; see Config.
func PathsWithConfig(p Pattern, v cbor.CBOR, cfg Config) ([]Path, error) {
	return pattern.PathsWithConfig(p, v, cfg)
}

// PathsWithCapturesWithConfig is PathsWithCaptures with explicit resource
// bounds; see Config.
func PathsWithCapturesWithConfig(p Pattern, v cbor.CBOR, cfg Config) ([]Path, Captures, error) {
	return pattern.PathsWithCapturesWithConfig(p, v, cfg)
}
