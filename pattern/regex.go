package pattern

import pcre "github.com/elmeyer/go-pcre"

// TextRegex and BinaryRegex both wrap the same underlying PCRE handle type:
// go-pcre's Matcher/MatcherString pair matches identically over []byte and
// string, so one library serves both the text-regex and binary-regex
// external-collaborator roles spec.md calls for.
type TextRegex struct {
	re     *pcre.Regexp
	source string
}

// CompileTextRegex compiles a PCRE pattern for use against text strings.
func CompileTextRegex(pattern string) (*TextRegex, error) {
	re, err := pcre.Compile(pattern, 0)
	if err != nil {
		return nil, err
	}
	return &TextRegex{re: re, source: pattern}, nil
}

func (r *TextRegex) MatchString(s string) bool {
	return r.re.MatcherString(s, 0).Matches()
}

func (r *TextRegex) String() string { return r.source }

// BinaryRegex matches against raw byte strings.
type BinaryRegex struct {
	re     *pcre.Regexp
	source string
}

// CompileBinaryRegex compiles a PCRE pattern for use against byte strings.
func CompileBinaryRegex(pattern string) (*BinaryRegex, error) {
	re, err := pcre.Compile(pattern, 0)
	if err != nil {
		return nil, err
	}
	return &BinaryRegex{re: re, source: pattern}, nil
}

func (r *BinaryRegex) Match(b []byte) bool {
	return r.re.Matcher(b, 0).Matches()
}

func (r *BinaryRegex) String() string { return r.source }
