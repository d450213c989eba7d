package pattern

import "github.com/BlockchainCommons/dcbor-pattern-go/cbor"

// Op enumerates the VM's instruction opcodes. Unlike a linear byte-regex
// engine, most of these operate on structural axes of a CBOR tree rather
// than bytes.
type Op int

const (
	OpMatchPredicate Op = iota
	OpMatchStructure
	OpSplit
	OpJump
	OpPushAxis
	OpPop
	OpSave
	OpAccept
	OpSearch
	OpExtendSequence
	OpCombineSequence
	OpNotMatch
	OpRepeat
	OpCaptureStart
	OpCaptureEnd
)

// captureMapping records, for a Search instruction, which inner-pattern
// capture name feeds which outer capture slot.
type captureMapping struct {
	name string
	slot int
}

// Instr is a single bytecode instruction. Only the fields relevant to its
// Op are populated.
type Instr struct {
	Op          Op
	A, B        int         // Split targets, or Jump target in A
	LiteralIdx  int          // MatchPredicate / MatchStructure / NotMatch / Repeat / Search literal index
	Axis        cbor.Axis    // PushAxis
	Quantifier  Quantifier   // Repeat
	CaptureSlot int          // CaptureStart / CaptureEnd
	CaptureMap  []captureMapping // Search
}

// killTarget is an unreachable jump address used to permanently halt a
// thread (NonePattern's compiled form).
const killTarget = -1

// Program is a compiled pattern: a flat instruction vector plus the
// literal-pattern and capture-name tables instructions index into.
type Program struct {
	Code         []Instr
	Literals     []Pattern
	CaptureNames []string
}

// Builder accumulates a Program during compilation. It mirrors the
// teacher's builder-style bytecode emission (coregx-coregex/nfa/builder.go)
// adapted to this engine's tree-shaped instruction set.
type Builder struct {
	Code         []Instr
	Literals     []Pattern
	CaptureNames []string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// Program finalizes the builder's accumulated state into a Program.
func (b *Builder) Program() *Program {
	return &Program{Code: b.Code, Literals: b.Literals, CaptureNames: b.CaptureNames}
}

// Emit appends an instruction and returns its index.
func (b *Builder) Emit(i Instr) int {
	b.Code = append(b.Code, i)
	return len(b.Code) - 1
}

// Len returns the current instruction count (the address the next Emit
// will occupy).
func (b *Builder) Len() int { return len(b.Code) }

// Patch overwrites the instruction at idx.
func (b *Builder) Patch(idx int, i Instr) { b.Code[idx] = i }

// AddLiteral appends p to the literal table and returns its index.
func (b *Builder) AddLiteral(p Pattern) int {
	idx := len(b.Literals)
	b.Literals = append(b.Literals, p)
	return idx
}

// CaptureSlot returns the slot index for name, registering it in
// first-seen order if new.
func (b *Builder) CaptureSlot(name string) int {
	for i, n := range b.CaptureNames {
		if n == name {
			return i
		}
	}
	idx := len(b.CaptureNames)
	b.CaptureNames = append(b.CaptureNames, name)
	return idx
}

// thread is one backtracking execution state. The VM keeps an explicit LIFO
// stack of threads rather than a breadth-first Pike-VM queue, since
// tree-structural backtracking (unlike linear byte scanning) has no shared
// "current position" threads can be deduplicated against.
type thread struct {
	pc           int
	cbor         cbor.CBOR
	path         Path
	savedPaths   []Path
	captures     [][]Path
	captureStack [][]int
}

func (t thread) clone() thread {
	c := t
	c.path = append(Path(nil), t.path...)
	c.savedPaths = append([]Path(nil), t.savedPaths...)
	c.captures = make([][]Path, len(t.captures))
	for i, paths := range t.captures {
		c.captures[i] = append([]Path(nil), paths...)
	}
	c.captureStack = make([][]int, len(t.captureStack))
	for i, s := range t.captureStack {
		c.captureStack[i] = append([]int(nil), s...)
	}
	return c
}

func ensureCaptureLen(slice *[][]Path, n int) {
	for len(*slice) <= n {
		*slice = append(*slice, nil)
	}
}

func ensureCaptureStackLen(slice *[][]int, n int) {
	for len(*slice) <= n {
		*slice = append(*slice, nil)
	}
}

// runThread executes a single thread (and everything it forks into) to
// completion via an explicit stack, appending every produced (path,
// captures) pair to out. If limit is positive and the total number of
// threads spawned (the start thread included) would grow past it, execution
// stops early and exceeded is true.
func runThread(prog *Program, start thread, out *[]struct {
	path     Path
	captures [][]Path
}, limit int) (exceeded bool) {
	stack := []thread{start}
	spawned := 1

	push := func(t thread) bool {
		if limit > 0 && spawned >= limit {
			exceeded = true
			return false
		}
		spawned++
		stack = append(stack, t)
		return true
	}

	for len(stack) > 0 {
		th := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

	instrLoop:
		for {
			if th.pc == killTarget || th.pc >= len(prog.Code) {
				break
			}
			instr := prog.Code[th.pc]
			switch instr.Op {
			case OpMatchPredicate:
				if len(Paths(prog.Literals[instr.LiteralIdx], th.cbor)) == 0 {
					break instrLoop
				}
				th.pc++

			case OpMatchStructure:
				structPaths, structCaptures := prog.Literals[instr.LiteralIdx].PathsWithCaptures(th.cbor)
				if len(structPaths) == 0 {
					break instrLoop
				}
				for i, name := range prog.CaptureNames {
					if capPaths, ok := structCaptures[name]; ok {
						ensureCaptureLen(&th.captures, i)
						th.captures[i] = append(th.captures[i], capPaths...)
					}
				}
				if len(structPaths) == 1 && len(structPaths[0]) == 1 {
					th.pc++
					continue
				}
				for _, sp := range structPaths {
					if len(sp) == 0 {
						continue
					}
					nt := th.clone()
					nt.cbor = sp[len(sp)-1]
					nt.path = append(nt.path, sp[1:]...)
					nt.pc++
					if !push(nt) {
						return exceeded
					}
				}
				break instrLoop

			case OpSplit:
				t2 := th.clone()
				t2.pc = instr.B
				if !push(t2) {
					return exceeded
				}
				th.pc = instr.A

			case OpJump:
				th.pc = instr.A

			case OpPushAxis:
				children := instr.Axis.Children(th.cbor)
				for _, child := range children {
					nt := th.clone()
					nt.cbor = child
					nt.path = append(nt.path, child)
					nt.pc++
					if !push(nt) {
						return exceeded
					}
				}
				break instrLoop

			case OpPop:
				if len(th.path) == 0 {
					break instrLoop
				}
				th.path = th.path[:len(th.path)-1]
				if len(th.path) > 0 {
					th.cbor = th.path[len(th.path)-1]
				}
				th.pc++

			case OpSave:
				*out = append(*out, struct {
					path     Path
					captures [][]Path
				}{append(Path(nil), th.path...), th.captures})
				th.pc++

			case OpAccept:
				*out = append(*out, struct {
					path     Path
					captures [][]Path
				}{append(Path(nil), th.path...), th.captures})
				break instrLoop

			case OpSearch:
				searchPaths, searchCaptures := prog.Literals[instr.LiteralIdx].PathsWithCaptures(th.cbor)
				for _, sp := range searchPaths {
					nt := th.clone()
					nt.path = append(Path(nil), sp...)
					for _, m := range instr.CaptureMap {
						if m.slot < len(nt.captures) {
							if capPaths, ok := searchCaptures[m.name]; ok {
								nt.captures[m.slot] = append(nt.captures[m.slot], capPaths...)
							}
						} else {
							ensureCaptureLen(&nt.captures, m.slot)
							if capPaths, ok := searchCaptures[m.name]; ok {
								nt.captures[m.slot] = append(nt.captures[m.slot], capPaths...)
							}
						}
					}
					nt.pc++
					if !push(nt) {
						return exceeded
					}
				}
				break instrLoop

			case OpExtendSequence:
				th.savedPaths = append(th.savedPaths, append(Path(nil), th.path...))
				if len(th.path) > 0 {
					last := th.path[len(th.path)-1]
					th.path = Path{last}
					th.cbor = last
				}
				th.pc++

			case OpCombineSequence:
				if n := len(th.savedPaths); n > 0 {
					saved := th.savedPaths[n-1]
					th.savedPaths = th.savedPaths[:n-1]
					combined := append(Path(nil), saved...)
					if len(th.path) > 1 {
						combined = append(combined, th.path[1:]...)
					}
					th.path = combined
				}
				th.pc++

			case OpNotMatch:
				if len(Paths(prog.Literals[instr.LiteralIdx], th.cbor)) != 0 {
					break instrLoop
				}
				th.pc++

			case OpRepeat:
				results := repeatPaths(prog.Literals[instr.LiteralIdx], th.cbor, th.path, instr.Quantifier)
				for _, r := range results {
					nt := th.clone()
					nt.cbor = r.cbor
					nt.path = r.path
					nt.pc++
					if !push(nt) {
						return exceeded
					}
				}
				break instrLoop

			case OpCaptureStart:
				ensureCaptureLen(&th.captures, instr.CaptureSlot)
				ensureCaptureStackLen(&th.captureStack, instr.CaptureSlot)
				th.captureStack[instr.CaptureSlot] = append(th.captureStack[instr.CaptureSlot], len(th.path))
				th.pc++

			case OpCaptureEnd:
				if n := len(th.captureStack[instr.CaptureSlot]); n > 0 {
					th.captureStack[instr.CaptureSlot] = th.captureStack[instr.CaptureSlot][:n-1]
					ensureCaptureLen(&th.captures, instr.CaptureSlot)
					th.captures[instr.CaptureSlot] = append(th.captures[instr.CaptureSlot], append(Path(nil), th.path...))
				}
				th.pc++
			}
		}
	}
	return exceeded
}

// unboundedRepeatCeiling caps an unbounded {n,} quantifier's effective max
// when no array/structural bound already constrains it. Overridden for the
// duration of a single WithConfig call by withRepeatBound; not safe for
// concurrent WithConfig evaluations with different bounds.
var unboundedRepeatCeiling = 10_000

// withRepeatBound temporarily installs bound as unboundedRepeatCeiling,
// returning a restore function.
func withRepeatBound(bound int) (restore func()) {
	prev := unboundedRepeatCeiling
	unboundedRepeatCeiling = bound
	return func() { unboundedRepeatCeiling = prev }
}

// repeatResult is one candidate (ending value, accumulated path) produced
// while exploring a Repeat pattern's repetition frontier.
type repeatResult struct {
	cbor cbor.CBOR
	path Path
}

// repeatPaths implements the iterate-to-fixed-point frontier algorithm: at
// each round, apply pat once more to every surviving (value, path) pair
// from the previous round, stopping when a round produces nothing new or
// the quantifier's upper bound is reached. A self-repeat guard (comparing
// the inner pattern's terminal value against its starting value via
// structural CBOR equality) prevents an inner pattern that matches its own
// input unchanged from looping forever.
func repeatPaths(pat Pattern, start cbor.CBOR, path Path, q Quantifier) []repeatResult {
	states := [][]repeatResult{{{cbor: start, path: append(Path(nil), path...)}}}
	bound := q.MaxOrUnbounded()
	if q.Max == nil && bound > unboundedRepeatCeiling {
		bound = unboundedRepeatCeiling
	}

	for round := 0; round < bound; round++ {
		var next []repeatResult
		for _, st := range states[len(states)-1] {
			for _, sub := range Paths(pat, st.cbor) {
				if len(sub) == 0 {
					continue
				}
				last := sub[len(sub)-1]
				if cbor.Equal(last, st.cbor) {
					continue // self-repeat guard: avoid an infinite loop
				}
				combined := append(Path(nil), st.path...)
				if len(sub) > 0 && cbor.Equal(sub[0], st.cbor) {
					combined = append(combined, sub[1:]...)
				} else {
					combined = append(combined, sub...)
				}
				next = append(next, repeatResult{cbor: last, path: combined})
			}
		}
		if len(next) == 0 {
			break
		}
		states = append(states, next)
	}

	hasZeroRep := q.Min == 0
	zeroRep := []repeatResult{{cbor: start, path: append(Path(nil), path...)}}

	maxPossible := len(states) - 1
	maxAllowed := bound
	if maxPossible < maxAllowed {
		maxAllowed = maxPossible
	}
	if maxAllowed < q.Min && q.Min > 0 {
		return nil
	}

	minCount := q.Min
	if minCount == 0 {
		minCount = 1
	}
	var maxCount int
	if maxAllowed < minCount {
		if hasZeroRep {
			return zeroRep
		}
		return nil
	}
	maxCount = maxAllowed

	var counts []int
	switch q.Reluctance {
	case Lazy:
		for c := minCount; c <= maxCount; c++ {
			counts = append(counts, c)
		}
	case Possessive:
		if maxCount >= minCount {
			counts = []int{maxCount}
		}
	default: // Greedy
		for c := maxCount; c >= minCount; c-- {
			counts = append(counts, c)
		}
	}

	var out []repeatResult
	switch q.Reluctance {
	case Possessive:
		for _, c := range counts {
			if c < len(states) {
				out = append(out, states[c]...)
			}
		}
	case Lazy:
		if hasZeroRep {
			out = append(out, zeroRep...)
		}
		for _, c := range counts {
			if c < len(states) {
				out = append(out, states[c]...)
			}
		}
	default: // Greedy
		for _, c := range counts {
			if c < len(states) {
				out = append(out, states[c]...)
			}
		}
		if hasZeroRep {
			out = append(out, zeroRep...)
		}
	}
	return out
}

// Run executes prog against root, returning every distinct matching path
// and the deduplicated per-capture path lists.
func Run(prog *Program, root cbor.CBOR) ([]Path, Captures) {
	paths, captures, _ := RunWithBudget(prog, root, 0)
	return paths, captures
}

// RunWithBudget behaves like Run but aborts execution once a single start
// thread and its forks would need more than maxThreads threads in total
// (0 means unlimited), reporting exceeded.
func RunWithBudget(prog *Program, root cbor.CBOR, maxThreads int) (paths []Path, captures Captures, exceeded bool) {
	start := thread{pc: 0, cbor: root, path: Path{root}}
	var results []struct {
		path     Path
		captures [][]Path
	}
	exceeded = runThread(prog, start, &results, maxThreads)

	var rawPaths []Path
	for _, r := range results {
		rawPaths = append(rawPaths, r.path)
	}
	paths = dedupPaths(rawPaths)

	captures = make(Captures)
	for i, name := range prog.CaptureNames {
		var all []Path
		for _, r := range results {
			if i < len(r.captures) {
				all = append(all, r.captures[i]...)
			}
		}
		if len(all) > 0 {
			captures[name] = dedupPaths(all)
		}
	}

	return paths, captures, exceeded
}
