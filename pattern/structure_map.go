package pattern

import "github.com/BlockchainCommons/dcbor-pattern-go/cbor"

type mapKind int

const (
	mapAny mapKind = iota
	mapKeyValueConstraints
	mapLength
)

// KeyValueConstraint pairs a key pattern with a value pattern; a MapPattern
// built WithKeyValueConstraints requires a key/value pair satisfying every
// constraint to exist somewhere in the map.
type KeyValueConstraint struct {
	Key   Pattern
	Value Pattern
}

// MapPattern matches CBOR map structures.
type MapPattern struct {
	kind        mapKind
	constraints []KeyValueConstraint
	length      Interval
}

func AnyMap() *MapPattern { return &MapPattern{kind: mapAny} }

func MapWithKeyValueConstraints(constraints []KeyValueConstraint) *MapPattern {
	return &MapPattern{kind: mapKeyValueConstraints, constraints: constraints}
}

func MapWithLength(iv Interval) *MapPattern {
	return &MapPattern{kind: mapLength, length: iv}
}

func (p *MapPattern) PathsWithCaptures(v cbor.CBOR) ([]Path, Captures) {
	entries, ok := v.AsMap()
	if !ok {
		return nil, nil
	}

	switch p.kind {
	case mapAny:
		return []Path{{v}}, nil

	case mapLength:
		if p.length.Contains(len(entries)) {
			return []Path{{v}}, nil
		}
		return nil, nil

	case mapKeyValueConstraints:
		captures := make(Captures)
		for _, c := range p.constraints {
			satisfied := false
			for _, e := range entries {
				keyPaths, keyCaptures := c.Key.PathsWithCaptures(e.Key)
				valPaths, valCaptures := c.Value.PathsWithCaptures(e.Value)
				if len(keyPaths) == 0 || len(valPaths) == 0 {
					continue
				}
				satisfied = true
				for name := range keyCaptures {
					captures[name] = append(captures[name], Path{v, e.Key})
				}
				for name := range valCaptures {
					captures[name] = append(captures[name], Path{v, e.Value})
				}
				break
			}
			if !satisfied {
				return nil, nil
			}
		}
		return []Path{{v}}, dedupCaptures(captures)
	}
	return nil, nil
}

func (p *MapPattern) Compile(b *Builder) {
	idx := b.AddLiteral(p)
	b.Emit(Instr{Op: OpMatchStructure, LiteralIdx: idx})
}

func (p *MapPattern) CollectCaptureNames(names *[]string) {
	if p.kind == mapKeyValueConstraints {
		for _, c := range p.constraints {
			c.Key.CollectCaptureNames(names)
			c.Value.CollectCaptureNames(names)
		}
	}
}

func (p *MapPattern) IsComplex() bool { return false }

func (p *MapPattern) String() string {
	switch p.kind {
	case mapAny:
		return "{*}"
	case mapLength:
		return "{" + p.length.String() + "}"
	case mapKeyValueConstraints:
		s := "{"
		for i, c := range p.constraints {
			if i > 0 {
				s += ", "
			}
			s += c.Key.String() + ": " + c.Value.String()
		}
		return s + "}"
	}
	return "?unknown-map-pattern?"
}
