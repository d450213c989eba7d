package parse

import (
	"strconv"
	"strings"

	"github.com/BlockchainCommons/dcbor-pattern-go/pattern"
)

// Parse parses a full pattern expression, failing with ExtraData if
// anything but whitespace follows the recognised pattern.
func Parse(input string) (pattern.Pattern, error) {
	pat, consumed, err := ParsePartial(input)
	if err != nil {
		return nil, err
	}
	if consumed < len(input) && strings.TrimSpace(input[consumed:]) != "" {
		return nil, &Error{Kind: KindExtraData, Span: Span{consumed, len(input)}}
	}
	return pat, nil
}

// MustParse is a test/fixture convenience that panics on a parse error.
func MustParse(input string) pattern.Pattern {
	pat, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return pat
}

// ParsePartial parses a pattern from the start of input and returns how
// many bytes it consumed, succeeding even if trailing characters remain.
func ParsePartial(input string) (pattern.Pattern, int, error) {
	if strings.TrimSpace(input) == "" {
		return nil, 0, &Error{Kind: KindEmptyInput}
	}
	p := &parser{lex: NewLexer(input)}
	pat, perr := p.parseOr()
	if perr != nil {
		return nil, 0, perr
	}
	return pat, p.lex.Pos(), nil
}

type parser struct {
	lex *Lexer
}

func (p *parser) peek() (Token, *Error) { return p.lex.Clone().Next() }
func (p *parser) next() (Token, *Error) { return p.lex.Next() }

// expect consumes the next token and requires it to be of kind want,
// otherwise produces the caller-supplied error kind for a missing token
// and KindUnexpectedToken for a mismatched one.
func (p *parser) expect(want TokenKind, onMissing Kind) (Token, *Error) {
	t, err := p.next()
	if err != nil {
		return t, err
	}
	if t.Kind == TokEOF {
		return t, errAt(onMissing, t.Span)
	}
	if t.Kind != want {
		return t, &Error{Kind: KindUnexpectedToken, Span: t.Span, Token: t.Text}
	}
	return t, nil
}

// --- precedence chain: or -> and -> not -> sequence -> primary ---

func (p *parser) parseOr() (pattern.Pattern, *Error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	patterns := []pattern.Pattern{first}
	for {
		t, _ := p.peek()
		if t.Kind != TokOr {
			break
		}
		p.next()
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, next)
	}
	if len(patterns) == 1 {
		return patterns[0], nil
	}
	return pattern.Or(patterns...), nil
}

func (p *parser) parseAnd() (pattern.Pattern, *Error) {
	first, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	patterns := []pattern.Pattern{first}
	for {
		t, _ := p.peek()
		if t.Kind != TokAnd {
			break
		}
		p.next()
		next, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, next)
	}
	if len(patterns) == 1 {
		return patterns[0], nil
	}
	return pattern.And(patterns...), nil
}

func (p *parser) parseNot() (pattern.Pattern, *Error) {
	t, _ := p.peek()
	if t.Kind == TokNot {
		p.next()
		inner, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return pattern.Not(inner), nil
	}
	return p.parseSequence()
}

func (p *parser) parseSequence() (pattern.Pattern, *Error) {
	first, err := p.parsePrimaryQuantified()
	if err != nil {
		return nil, err
	}
	patterns := []pattern.Pattern{first}
	for {
		t, _ := p.peek()
		if t.Kind != TokSeq {
			break
		}
		p.next()
		next, err := p.parsePrimaryQuantified()
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, next)
	}
	if len(patterns) == 1 {
		return patterns[0], nil
	}
	return pattern.Sequence(patterns...), nil
}

// parseArraySequence parses the comma-delimited element list inside
// bracket array bodies, sharing or/and/not precedence with the top-level
// grammar but separating elements with ',' instead of '>'.
func (p *parser) parseArraySequence() (pattern.Pattern, *Error) {
	first, err := p.parseArrayOr()
	if err != nil {
		return nil, err
	}
	patterns := []pattern.Pattern{first}
	for {
		t, _ := p.peek()
		if t.Kind != TokComma {
			break
		}
		p.next()
		next, err := p.parseArrayOr()
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, next)
	}
	if len(patterns) == 1 {
		return patterns[0], nil
	}
	return pattern.Sequence(patterns...), nil
}

func (p *parser) parseArrayOr() (pattern.Pattern, *Error) {
	first, err := p.parseArrayAnd()
	if err != nil {
		return nil, err
	}
	patterns := []pattern.Pattern{first}
	for {
		t, _ := p.peek()
		if t.Kind != TokOr {
			break
		}
		p.next()
		next, err := p.parseArrayAnd()
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, next)
	}
	if len(patterns) == 1 {
		return patterns[0], nil
	}
	return pattern.Or(patterns...), nil
}

func (p *parser) parseArrayAnd() (pattern.Pattern, *Error) {
	first, err := p.parseArrayNot()
	if err != nil {
		return nil, err
	}
	patterns := []pattern.Pattern{first}
	for {
		t, _ := p.peek()
		if t.Kind != TokAnd {
			break
		}
		p.next()
		next, err := p.parseArrayNot()
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, next)
	}
	if len(patterns) == 1 {
		return patterns[0], nil
	}
	return pattern.And(patterns...), nil
}

func (p *parser) parseArrayNot() (pattern.Pattern, *Error) {
	t, _ := p.peek()
	if t.Kind == TokNot {
		p.next()
		inner, err := p.parseArrayNot()
		if err != nil {
			return nil, err
		}
		return pattern.Not(inner), nil
	}
	return p.parsePrimaryQuantified()
}

// parseArrayBody parses the inside of a bracket array expression; the
// opening '[' has already been consumed by parsePrimary.
func (p *parser) parseArrayBody() (pattern.Pattern, *Error) {
	t, _ := p.peek()
	switch t.Kind {
	case TokStar:
		p.next()
		if _, err := p.expect(TokRBracket, KindExpectedCloseBracket); err != nil {
			return nil, err
		}
		return pattern.AnyArray(), nil

	case TokRBracket:
		p.next()
		return pattern.ArrayLength(pattern.NewIntervalExactly(0)), nil

	case TokLBrace:
		p.next()
		iv, err := p.parseBracedRange()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRBracket, KindExpectedCloseBracket); err != nil {
			return nil, err
		}
		return pattern.ArrayLength(iv), nil

	default:
		elems, err := p.parseArraySequence()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRBracket, KindExpectedCloseBracket); err != nil {
			return nil, err
		}
		return pattern.ArrayElements(elems), nil
	}
}

// parseMapBody parses the inside of a brace map expression; the opening
// '{' has already been consumed by parsePrimary.
func (p *parser) parseMapBody() (pattern.Pattern, *Error) {
	t, _ := p.peek()
	switch t.Kind {
	case TokStar:
		p.next()
		if _, err := p.expect(TokRBrace, KindExpectedCloseBrace); err != nil {
			return nil, err
		}
		return pattern.AnyMap(), nil

	case TokRBrace:
		p.next()
		return pattern.MapWithLength(pattern.NewIntervalExactly(0)), nil

	case TokLBrace:
		// Doubled braces disambiguate a length constraint from a
		// single-pair key/value map whose key happens to be a map itself.
		p.next()
		iv, err := p.parseBracedRange()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRBrace, KindExpectedCloseBrace); err != nil {
			return nil, err
		}
		return pattern.MapWithLength(iv), nil

	default:
		var constraints []pattern.KeyValueConstraint
		for {
			key, err := p.parseArrayOr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokColon, KindExpectedColon); err != nil {
				return nil, err
			}
			val, err := p.parseArrayOr()
			if err != nil {
				return nil, err
			}
			constraints = append(constraints, pattern.KeyValueConstraint{Key: key, Value: val})

			nt, _ := p.peek()
			if nt.Kind == TokComma {
				p.next()
				continue
			}
			break
		}
		if _, err := p.expect(TokRBrace, KindExpectedCloseBrace); err != nil {
			return nil, err
		}
		return pattern.MapWithKeyValueConstraints(constraints), nil
	}
}

// parseBracedRange parses a "min[,[max]]}" body, with the opening '{'
// already consumed by the caller. Used both for [{n,m}] / {{n,m}} length
// constraints, sharing the same shape as quantifier-suffix ranges.
func (p *parser) parseBracedRange() (pattern.Interval, *Error) {
	minTok, err := p.expect(TokNumber, KindUnexpectedEndOfInput)
	if err != nil {
		return pattern.Interval{}, err
	}
	min := int(minTok.Value)

	t, err := p.next()
	if err != nil {
		return pattern.Interval{}, err
	}
	switch t.Kind {
	case TokRBrace:
		return pattern.NewIntervalExactly(min), nil
	case TokComma:
		t2, err := p.next()
		if err != nil {
			return pattern.Interval{}, err
		}
		switch t2.Kind {
		case TokRBrace:
			return pattern.NewIntervalAtLeast(min), nil
		case TokNumber:
			max := int(t2.Value)
			if max < min {
				return pattern.Interval{}, errAt(KindInvalidRange, t2.Span)
			}
			if _, err := p.expect(TokRBrace, KindUnexpectedEndOfInput); err != nil {
				return pattern.Interval{}, err
			}
			return pattern.NewInterval(min, max), nil
		default:
			return pattern.Interval{}, &Error{Kind: KindInvalidRange, Span: t2.Span}
		}
	default:
		return pattern.Interval{}, &Error{Kind: KindInvalidRange, Span: t.Span}
	}
}

// parsePrimaryQuantified parses one primary pattern and then any
// quantifier suffix following it.
func (p *parser) parsePrimaryQuantified() (pattern.Pattern, *Error) {
	pat, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parseQuantifierSuffix(pat, false)
}

// parseQuantifierSuffix consumes an optional quantifier token after pat.
// forceRepeat mirrors the grammar's rule that a parenthesised group
// always becomes a Repeat, even with an implicit {1} quantifier.
func (p *parser) parseQuantifierSuffix(pat pattern.Pattern, forceRepeat bool) (pattern.Pattern, *Error) {
	t, _ := p.peek()
	var q pattern.Quantifier
	switch t.Kind {
	case TokStar:
		q = pattern.Quantifier{Min: 0, Reluctance: pattern.Greedy}
	case TokStarLazy:
		q = pattern.Quantifier{Min: 0, Reluctance: pattern.Lazy}
	case TokStarPoss:
		q = pattern.Quantifier{Min: 0, Reluctance: pattern.Possessive}
	case TokPlus:
		q = pattern.Quantifier{Min: 1, Reluctance: pattern.Greedy}
	case TokPlusLazy:
		q = pattern.Quantifier{Min: 1, Reluctance: pattern.Lazy}
	case TokPlusPoss:
		q = pattern.Quantifier{Min: 1, Reluctance: pattern.Possessive}
	case TokQuestion:
		q = boundedQuantifier(0, 1, pattern.Greedy)
	case TokQuestionLazy:
		q = boundedQuantifier(0, 1, pattern.Lazy)
	case TokQuestionPoss:
		q = boundedQuantifier(0, 1, pattern.Possessive)
	case TokLBrace:
		p.next()
		iv, rerr := p.parseBracedRange()
		if rerr != nil {
			return nil, rerr
		}
		max, bounded := iv.Max()
		q = pattern.Quantifier{Min: iv.Min()}
		if bounded {
			q.Max = &max
		}
		if rt, _ := p.peek(); rt.Kind == TokQuestion {
			p.next()
			q.Reluctance = pattern.Lazy
		} else if rt.Kind == TokPlus {
			p.next()
			q.Reluctance = pattern.Possessive
		}
		return pattern.Repeat(pat, q), nil
	default:
		if forceRepeat {
			return pattern.Repeat(pat, pattern.Exactly(1)), nil
		}
		return pat, nil
	}
	p.next()
	return pattern.Repeat(pat, q), nil
}

func boundedQuantifier(min, max int, r pattern.Reluctance) pattern.Quantifier {
	m := max
	return pattern.Quantifier{Min: min, Max: &m, Reluctance: r}
}

// --- primary forms ---

func (p *parser) parsePrimary() (pattern.Pattern, *Error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}

	switch t.Kind {
	case TokEOF:
		return nil, errAt(KindUnexpectedEndOfInput, t.Span)

	case TokStar:
		return pattern.Any(), nil

	case TokLParen:
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen, KindUnexpectedEndOfInput); err != nil {
			return nil, err
		}
		return p.parseQuantifierSuffix(inner, true)

	case TokGroupName:
		return p.parseCapture(t.Text)

	case TokLBracket:
		return p.parseArrayBody()

	case TokLBrace:
		return p.parseMapBody()

	case TokString:
		return pattern.TextExact(t.Text), nil

	case TokRegex:
		re, rerr := pattern.CompileTextRegex(t.Text)
		if rerr != nil {
			return nil, errAt(KindInvalidRegex, t.Span)
		}
		return pattern.TextRegexPattern(re), nil

	case TokHexString:
		b, herr := decodeHex(t.Text)
		if herr != nil {
			return nil, errAt(KindInvalidHexString, t.Span)
		}
		return pattern.ByteStringExact(b), nil

	case TokSingleQuoted:
		return parseSingleQuotedKnownValue(t.Text, t.Span)

	case TokNumber:
		return p.parseNumberLiteral(t)

	case TokGE:
		return p.parseNumberCompare(pattern.NumberGreaterThanOrEqual, t.Span)
	case TokLE:
		return p.parseNumberCompare(pattern.NumberLessThanOrEqual, t.Span)
	case TokGT, TokSeq:
		return p.parseNumberCompare(pattern.NumberGreaterThan, t.Span)
	case TokLT:
		return p.parseNumberCompare(pattern.NumberLessThan, t.Span)

	case TokIdent:
		return p.parseKeyword(t)

	default:
		return nil, &Error{Kind: KindUnexpectedToken, Span: t.Span, Token: t.Text}
	}
}

func (p *parser) parseCapture(name string) (pattern.Pattern, *Error) {
	if _, err := p.expect(TokLParen, KindExpectedOpenParen); err != nil {
		return nil, err
	}
	inner, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokRParen, KindExpectedCloseParen); err != nil {
		return nil, err
	}
	return pattern.Capture(name, inner), nil
}

func (p *parser) parseNumberLiteral(t Token) (pattern.Pattern, *Error) {
	look, _ := p.peek()
	if look.Kind == TokEllipsis {
		p.next()
		end, err := p.expect(TokNumber, KindUnexpectedEndOfInput)
		if err != nil {
			return nil, err
		}
		return pattern.NumberRange(t.Value, end.Value), nil
	}
	return pattern.NumberExact(t.Value), nil
}

func (p *parser) parseNumberCompare(build func(float64) *pattern.NumberPattern, span Span) (pattern.Pattern, *Error) {
	n, err := p.expect(TokNumber, KindUnexpectedEndOfInput)
	if err != nil {
		return nil, err
	}
	return build(n.Value), nil
}

func (p *parser) parseKeyword(t Token) (pattern.Pattern, *Error) {
	switch t.Text {
	case "true":
		return pattern.Bool(true), nil
	case "false":
		return pattern.Bool(false), nil
	case "bool":
		return pattern.AnyBool(), nil
	case "null":
		return pattern.Null(), nil
	case "any":
		return pattern.Any(), nil
	case "none":
		return pattern.None(), nil
	case "NaN":
		return pattern.NumberNaN(), nil
	case "Infinity":
		return pattern.NumberPosInf(), nil
	case "-Infinity":
		return pattern.NumberNegInf(), nil
	case "number":
		return pattern.AnyNumber(), nil
	case "text":
		return pattern.AnyText(), nil
	case "bstr":
		return pattern.AnyByteString(), nil
	case "date":
		return pattern.AnyDate(), nil
	case "digest":
		return pattern.AnyDigest(), nil
	case "known":
		return pattern.AnyKnownValue(), nil
	case "array":
		return pattern.AnyArray(), nil
	case "map":
		return pattern.AnyMap(), nil
	case "search":
		if _, err := p.expect(TokLParen, KindExpectedOpenParen); err != nil {
			return nil, err
		}
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen, KindExpectedCloseParen); err != nil {
			return nil, err
		}
		return pattern.Search(inner), nil
	case "tag":
		return p.parseTagged()
	default:
		return nil, &Error{Kind: KindUnexpectedToken, Span: t.Span, Token: t.Text}
	}
}

func (p *parser) parseTagged() (pattern.Pattern, *Error) {
	t, _ := p.peek()
	if t.Kind != TokLParen {
		return pattern.AnyTagged(), nil
	}
	p.next()

	selTok, err := p.next()
	if err != nil {
		return nil, err
	}

	var (
		tagVal   uint64
		tagSet   []uint64
		haveTag  bool
		haveAny  bool
	)
	switch selTok.Kind {
	case TokNumber:
		tagVal = uint64(selTok.Value)
		haveTag = true
	case TokIdent:
		v, ok := pattern.TagByName(selTok.Text)
		if !ok {
			return nil, &Error{Kind: KindUnrecognizedToken, Span: selTok.Span, Token: selTok.Text}
		}
		tagVal = v
		haveTag = true
	case TokRegex:
		re, rerr := pattern.CompileTextRegex(selTok.Text)
		if rerr != nil {
			return nil, errAt(KindInvalidRegex, selTok.Span)
		}
		tagSet = pattern.TagsMatchingName(re)
		haveAny = true
	default:
		return nil, &Error{Kind: KindUnexpectedToken, Span: selTok.Span, Token: selTok.Text}
	}

	if _, err := p.expect(TokComma, KindUnexpectedEndOfInput); err != nil {
		return nil, err
	}
	content, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokRParen, KindExpectedCloseParen); err != nil {
		return nil, err
	}

	switch {
	case haveTag:
		return pattern.TaggedWithTagAndContent(tagVal, content), nil
	case haveAny:
		// A regex selector with no registered matches always fails, matching
		// an empty WithTagSet; otherwise content must also match.
		return pattern.TaggedWithTagSetAndContent(tagSet, content), nil
	}
	return pattern.AnyTagged(), nil
}

func decodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, strconvErr()
	}
	out := make([]byte, len(s)/2)
	for i := 0; i < len(out); i++ {
		hi, ok1 := hexVal(s[2*i])
		lo, ok2 := hexVal(s[2*i+1])
		if !ok1 || !ok2 {
			return nil, strconvErr()
		}
		out[i] = byte(hi<<4 | lo)
	}
	return out, nil
}

func hexVal(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	default:
		return 0, false
	}
}

func strconvErr() error { return strconv.ErrSyntax }

func parseSingleQuotedKnownValue(value string, span Span) (pattern.Pattern, *Error) {
	if strings.HasPrefix(value, "/") && strings.HasSuffix(value, "/") && len(value) > 2 {
		re, err := pattern.CompileTextRegex(value[1 : len(value)-1])
		if err != nil {
			return nil, errAt(KindInvalidRegex, span)
		}
		return pattern.KnownValueRegexPattern(re), nil
	}
	if n, err := strconv.ParseUint(value, 10, 64); err == nil {
		return pattern.KnownValueExact(n), nil
	}
	return pattern.KnownValueNamed(value), nil
}
