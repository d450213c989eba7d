package pattern

import (
	"errors"
	"fmt"

	"github.com/BlockchainCommons/dcbor-pattern-go/cbor"
)

// Config holds tunable execution limits for the VM and array-sequence
// engine. The zero value is not valid; use DefaultConfig.
type Config struct {
	// MaxThreads bounds the total number of threads the VM spawns during a
	// single run, guarding against pathological Search/Repeat nesting.
	MaxThreads int
	// MaxRepeatBound caps an unbounded {n,} quantifier's effective max
	// when no array/structural bound constrains it.
	MaxRepeatBound int
}

// DefaultConfig returns the engine's default execution limits.
func DefaultConfig() Config {
	return Config{MaxThreads: 100_000, MaxRepeatBound: 10_000}
}

// Validate reports an error if the configuration's limits are nonsensical.
func (c Config) Validate() error {
	if c.MaxThreads <= 0 {
		return errors.New("pattern: MaxThreads must be positive")
	}
	if c.MaxRepeatBound <= 0 {
		return errors.New("pattern: MaxRepeatBound must be positive")
	}
	return nil
}

// ErrBudgetExceeded is returned by the WithConfig evaluation entry points
// when a match would have exceeded the configured thread or repeat budget.
// It is never returned by the core PathsWithCaptures contract.
type ErrBudgetExceeded struct {
	Limit string // "MaxThreads" or "MaxRepeatBound"
	Bound int
}

func (e *ErrBudgetExceeded) Error() string {
	return fmt.Sprintf("pattern: exceeded %s budget of %d", e.Limit, e.Bound)
}

// MatchesWithConfig behaves like Matches but enforces cfg's execution
// limits, returning ErrBudgetExceeded if the VM would spawn more than
// cfg.MaxThreads threads in total.
func MatchesWithConfig(p Pattern, v cbor.CBOR, cfg Config) (bool, error) {
	paths, _, err := PathsWithCapturesWithConfig(p, v, cfg)
	return len(paths) > 0, err
}

// PathsWithConfig behaves like Paths but enforces cfg's execution limits.
func PathsWithConfig(p Pattern, v cbor.CBOR, cfg Config) ([]Path, error) {
	paths, _, err := PathsWithCapturesWithConfig(p, v, cfg)
	return paths, err
}

// PathsWithCapturesWithConfig behaves like calling p.PathsWithCaptures
// directly, except the underlying VM enforces cfg's MaxThreads budget and
// repeat quantifiers are clamped to cfg.MaxRepeatBound when unbounded.
func PathsWithCapturesWithConfig(p Pattern, v cbor.CBOR, cfg Config) ([]Path, Captures, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	restore := withRepeatBound(cfg.MaxRepeatBound)
	defer restore()

	b := NewBuilder()
	p.Compile(b)
	b.Emit(Instr{Op: OpAccept})
	prog := b.Program()

	paths, captures, exceeded := RunWithBudget(prog, v, cfg.MaxThreads)
	if exceeded {
		return nil, nil, &ErrBudgetExceeded{Limit: "MaxThreads", Bound: cfg.MaxThreads}
	}
	return paths, captures, nil
}
