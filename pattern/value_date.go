package pattern

import (
	"fmt"
	"time"

	"github.com/BlockchainCommons/dcbor-pattern-go/cbor"
)

type dateKind int

const (
	dateAny dateKind = iota
	dateExact
	dateRange
	dateEarliest
	dateLatest
	dateISO8601
	dateRegex
)

// DatePattern matches tag-1 (epoch date/time) dCBOR values.
type DatePattern struct {
	kind      dateKind
	exact     time.Time
	lo, hi    time.Time
	iso       string
	regex     *TextRegex
}

func AnyDate() *DatePattern                 { return &DatePattern{kind: dateAny} }
func DateExact(t time.Time) *DatePattern    { return &DatePattern{kind: dateExact, exact: t} }
func DateRange(lo, hi time.Time) *DatePattern {
	return &DatePattern{kind: dateRange, lo: lo, hi: hi}
}
func DateEarliest(t time.Time) *DatePattern { return &DatePattern{kind: dateEarliest, exact: t} }
func DateLatest(t time.Time) *DatePattern   { return &DatePattern{kind: dateLatest, exact: t} }
func DateISO8601(s string) *DatePattern     { return &DatePattern{kind: dateISO8601, iso: s} }
func DateRegexPattern(re *TextRegex) *DatePattern {
	return &DatePattern{kind: dateRegex, regex: re}
}

func (p *DatePattern) PathsWithCaptures(v cbor.CBOR) ([]Path, Captures) {
	if !cbor.IsDate(v) {
		return nil, nil
	}
	t, ok := cbor.AsDate(v)
	if !ok {
		return nil, nil
	}
	var hit bool
	switch p.kind {
	case dateAny:
		hit = true
	case dateExact:
		hit = t.Equal(p.exact)
	case dateRange:
		hit = !t.Before(p.lo) && !t.After(p.hi)
	case dateEarliest:
		hit = !t.Before(p.exact)
	case dateLatest:
		hit = !t.After(p.exact)
	case dateISO8601:
		hit = cbor.DateToISO8601(t) == p.iso
	case dateRegex:
		hit = p.regex.MatchString(cbor.DateToISO8601(t))
	}
	if !hit {
		return nil, nil
	}
	return []Path{{v}}, nil
}

func (p *DatePattern) Compile(b *Builder) {
	idx := b.AddLiteral(p)
	b.Emit(Instr{Op: OpMatchPredicate, LiteralIdx: idx})
}

func (p *DatePattern) CollectCaptureNames(*[]string) {}
func (p *DatePattern) IsComplex() bool               { return false }

func (p *DatePattern) String() string {
	switch p.kind {
	case dateAny:
		return "DATE"
	case dateExact:
		return fmt.Sprintf("DATE(%s)", cbor.DateToISO8601(p.exact))
	case dateRange:
		return fmt.Sprintf("DATE(%s...%s)", cbor.DateToISO8601(p.lo), cbor.DateToISO8601(p.hi))
	case dateEarliest:
		return fmt.Sprintf("DATE(%s...)", cbor.DateToISO8601(p.exact))
	case dateLatest:
		return fmt.Sprintf("DATE(...%s)", cbor.DateToISO8601(p.exact))
	case dateISO8601:
		return fmt.Sprintf("DATE(%s)", p.iso)
	case dateRegex:
		return fmt.Sprintf("DATE(/%s/)", p.regex.String())
	default:
		return "?unknown-date-pattern?"
	}
}
