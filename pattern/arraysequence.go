package pattern

import (
	"github.com/BlockchainCommons/dcbor-pattern-go/cbor"
	"github.com/BlockchainCommons/dcbor-pattern-go/internal/sparse"
)

// backtrackState abstracts the difference between "does this sequence match
// at all" (boolean) and "which array elements were assigned to which
// sub-patterns" (full assignment tracking), so genericBacktracker's search
// logic only needs to be written once.
type backtrackState interface {
	tryAdvance(patternIdx, elementIdx int) bool
	backtrack()
	isSuccess(patternIdx, elementIdx, patternsLen, elementsLen int) bool
}

// booleanBacktrackState only tracks success/failure of the search.
type booleanBacktrackState struct{}

func (booleanBacktrackState) tryAdvance(int, int) bool { return true }
func (booleanBacktrackState) backtrack()                {}
func (booleanBacktrackState) isSuccess(patternIdx, elementIdx, patternsLen, elementsLen int) bool {
	return patternIdx >= patternsLen && elementIdx >= elementsLen
}

// assignmentBacktrackState collects the (patternIdx, elementIdx) pairs chosen
// along the accepting path.
type assignmentBacktrackState struct {
	assignments [][2]int
}

func (s *assignmentBacktrackState) tryAdvance(patternIdx, elementIdx int) bool {
	s.assignments = append(s.assignments, [2]int{patternIdx, elementIdx})
	return true
}

func (s *assignmentBacktrackState) backtrack() {
	s.assignments = s.assignments[:len(s.assignments)-1]
}

func (s *assignmentBacktrackState) isSuccess(patternIdx, elementIdx, patternsLen, elementsLen int) bool {
	return patternIdx >= patternsLen && elementIdx >= elementsLen
}

// isRepeatPattern reports whether p is a direct RepeatPattern.
func isRepeatPattern(p Pattern) bool {
	_, ok := p.(*RepeatPattern)
	return ok
}

// extractRepeatPattern returns the RepeatPattern directly held by p, or
// wrapped one level inside a CapturePattern (e.g. @rest((*)*)).
func extractRepeatPattern(p Pattern) (*RepeatPattern, bool) {
	switch v := p.(type) {
	case *RepeatPattern:
		return v, true
	case *CapturePattern:
		if rp, ok := v.inner.(*RepeatPattern); ok {
			return rp, true
		}
	}
	return nil, false
}

func hasRepeatPatternsInSlice(patterns []Pattern) bool {
	for _, p := range patterns {
		if _, ok := extractRepeatPattern(p); ok {
			return true
		}
	}
	return false
}

// calculateRepeatBounds computes how many elements a repeat pattern may
// consume starting at elementIdx, given the quantifier and remaining array
// length.
func calculateRepeatBounds(q Quantifier, elementIdx, arrLen int) (min, max int) {
	min = q.Min
	remaining := arrLen - elementIdx
	if remaining < 0 {
		remaining = 0
	}
	max = q.MaxOrUnbounded()
	if max > remaining || q.Max == nil {
		max = remaining
	}
	return min, max
}

func canRepeatMatch(inner Pattern, arr []cbor.CBOR, elementIdx, repCount int) bool {
	if repCount == 0 {
		return true
	}
	for i := 0; i < repCount; i++ {
		if !Matches(inner, arr[elementIdx+i]) {
			return false
		}
	}
	return true
}

// genericBacktracker runs the shared backtracking search used by both
// can-match (boolean) and find-assignments (full) queries over a sequence of
// sub-patterns against a slice of array elements.
type genericBacktracker struct {
	patterns []Pattern
	arr      []cbor.CBOR
	memoFail *sparse.SparseSet // memoizes (patternIdx,elementIdx) states already known to fail
}

func newGenericBacktracker(patterns []Pattern, arr []cbor.CBOR) *genericBacktracker {
	cap := uint32((len(patterns)+1)*(len(arr)+1) + 1)
	return &genericBacktracker{patterns: patterns, arr: arr, memoFail: sparse.NewSparseSet(cap)}
}

func (g *genericBacktracker) memoKey(patternIdx, elementIdx int) uint32 {
	return uint32(patternIdx*(len(g.arr)+1) + elementIdx)
}

func (g *genericBacktracker) backtrack(state backtrackState, patternIdx, elementIdx int) bool {
	if state.isSuccess(patternIdx, elementIdx, len(g.patterns), len(g.arr)) {
		return true
	}
	if patternIdx >= len(g.patterns) {
		return false
	}
	if g.memoFail.Contains(g.memoKey(patternIdx, elementIdx)) {
		return false
	}

	current := g.patterns[patternIdx]

	if rp, ok := extractRepeatPattern(current); ok {
		if g.tryRepeatBacktrack(rp, state, patternIdx, elementIdx) {
			return true
		}
		g.memoFail.Insert(g.memoKey(patternIdx, elementIdx))
		return false
	}

	if elementIdx < len(g.arr) {
		element := g.arr[elementIdx]
		if Matches(current, element) && state.tryAdvance(patternIdx, elementIdx) {
			if g.backtrack(state, patternIdx+1, elementIdx+1) {
				return true
			}
			state.backtrack()
		}
	}
	g.memoFail.Insert(g.memoKey(patternIdx, elementIdx))
	return false
}

// tryRepeatBacktrack tries every feasible repetition count for a Repeat (or
// Capture-of-Repeat) sub-pattern, greedy-first (largest count down to the
// quantifier's minimum), committing state only for counts that are fully
// verified to match before recursing.
func (g *genericBacktracker) tryRepeatBacktrack(rp *RepeatPattern, state backtrackState, patternIdx, elementIdx int) bool {
	min, max := calculateRepeatBounds(rp.quantifier, elementIdx, len(g.arr))

	for repCount := max; repCount >= min; repCount-- {
		if elementIdx+repCount > len(g.arr) {
			continue
		}
		if !canRepeatMatch(rp.inner, g.arr, elementIdx, repCount) {
			continue
		}

		advanced := 0
		ok := true
		for i := 0; i < repCount; i++ {
			if !state.tryAdvance(patternIdx, elementIdx+i) {
				ok = false
				break
			}
			advanced++
		}
		if !ok {
			for i := 0; i < advanced; i++ {
				state.backtrack()
			}
			continue
		}

		if g.backtrack(state, patternIdx+1, elementIdx+repCount) {
			return true
		}
		for i := 0; i < repCount; i++ {
			state.backtrack()
		}
	}
	return false
}

// sequenceAssigner maps an ordered list of sub-patterns onto array elements,
// either to answer "can this sequence match" or to recover the concrete
// (patternIdx, elementIdx) assignment used for capture extraction.
type sequenceAssigner struct {
	patterns []Pattern
	arr      []cbor.CBOR
}

func newSequenceAssigner(patterns []Pattern, arr []cbor.CBOR) sequenceAssigner {
	return sequenceAssigner{patterns: patterns, arr: arr}
}

func (a sequenceAssigner) canMatch() bool {
	if len(a.patterns) == 0 {
		return len(a.arr) == 0
	}

	if len(a.patterns) == len(a.arr) && !hasRepeatPatternsInSlice(a.patterns) {
		for i, p := range a.patterns {
			if !Matches(p, a.arr[i]) {
				return false
			}
		}
		return true
	}

	bt := newGenericBacktracker(a.patterns, a.arr)
	var state booleanBacktrackState
	return bt.backtrack(state, 0, 0)
}

func (a sequenceAssigner) findAssignments() ([][2]int, bool) {
	if len(a.patterns) == 0 {
		if len(a.arr) == 0 {
			return nil, true
		}
		return nil, false
	}

	if len(a.patterns) == len(a.arr) && !hasRepeatPatternsInSlice(a.patterns) {
		assignments := make([][2]int, 0, len(a.patterns))
		for i, p := range a.patterns {
			if !Matches(p, a.arr[i]) {
				return nil, false
			}
			assignments = append(assignments, [2]int{i, i})
		}
		return assignments, true
	}

	bt := newGenericBacktracker(a.patterns, a.arr)
	state := &assignmentBacktrackState{}
	if bt.backtrack(state, 0, 0) {
		return state.assignments, true
	}
	return nil, false
}
