package pattern

import (
	"fmt"
	"math"
	"strconv"

	"github.com/BlockchainCommons/dcbor-pattern-go/cbor"
)

type numberKind int

const (
	numberAny numberKind = iota
	numberExact
	numberRange
	numberGT
	numberGE
	numberLT
	numberLE
	numberNaN
	numberPosInf
	numberNegInf
)

// NumberPattern matches numeric dCBOR values (unsigned, negative, or
// float) by value, range, comparison, or special IEEE-754 class.
type NumberPattern struct {
	kind     numberKind
	exact    float64
	lo, hi   float64
	bound    float64
}

func AnyNumber() *NumberPattern { return &NumberPattern{kind: numberAny} }

func NumberExact(v float64) *NumberPattern {
	return &NumberPattern{kind: numberExact, exact: v}
}

func NumberRange(lo, hi float64) *NumberPattern {
	return &NumberPattern{kind: numberRange, lo: lo, hi: hi}
}

func NumberGreaterThan(v float64) *NumberPattern {
	return &NumberPattern{kind: numberGT, bound: v}
}

func NumberGreaterThanOrEqual(v float64) *NumberPattern {
	return &NumberPattern{kind: numberGE, bound: v}
}

func NumberLessThan(v float64) *NumberPattern {
	return &NumberPattern{kind: numberLT, bound: v}
}

func NumberLessThanOrEqual(v float64) *NumberPattern {
	return &NumberPattern{kind: numberLE, bound: v}
}

func NumberNaN() *NumberPattern     { return &NumberPattern{kind: numberNaN} }
func NumberPosInf() *NumberPattern  { return &NumberPattern{kind: numberPosInf} }
func NumberNegInf() *NumberPattern  { return &NumberPattern{kind: numberNegInf} }

func (p *NumberPattern) PathsWithCaptures(v cbor.CBOR) ([]Path, Captures) {
	f, ok := v.AsFloat64()
	if !ok {
		return nil, nil
	}
	var hit bool
	switch p.kind {
	case numberAny:
		hit = true
	case numberExact:
		hit = f == p.exact || (math.IsNaN(f) && math.IsNaN(p.exact))
	case numberRange:
		hit = f >= p.lo && f <= p.hi
	case numberGT:
		hit = f > p.bound
	case numberGE:
		hit = f >= p.bound
	case numberLT:
		hit = f < p.bound
	case numberLE:
		hit = f <= p.bound
	case numberNaN:
		hit = math.IsNaN(f)
	case numberPosInf:
		hit = math.IsInf(f, 1)
	case numberNegInf:
		hit = math.IsInf(f, -1)
	}
	if !hit {
		return nil, nil
	}
	return []Path{{v}}, nil
}

func (p *NumberPattern) Compile(b *Builder) {
	idx := b.AddLiteral(p)
	b.Emit(Instr{Op: OpMatchPredicate, LiteralIdx: idx})
}

func (p *NumberPattern) CollectCaptureNames(*[]string) {}
func (p *NumberPattern) IsComplex() bool               { return false }

func (p *NumberPattern) String() string {
	switch p.kind {
	case numberAny:
		return "NUMBER"
	case numberExact:
		return formatFloat(p.exact)
	case numberRange:
		return fmt.Sprintf("%s...%s", formatFloat(p.lo), formatFloat(p.hi))
	case numberGT:
		return ">" + formatFloat(p.bound)
	case numberGE:
		return ">=" + formatFloat(p.bound)
	case numberLT:
		return "<" + formatFloat(p.bound)
	case numberLE:
		return "<=" + formatFloat(p.bound)
	case numberNaN:
		return "NaN"
	case numberPosInf:
		return "Infinity"
	case numberNegInf:
		return "-Infinity"
	default:
		return "?unknown-number-pattern?"
	}
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
