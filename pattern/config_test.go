package pattern

import (
	"errors"
	"testing"

	"github.com/BlockchainCommons/dcbor-pattern-go/cbor"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestConfigValidateRejectsNonPositive(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxThreads = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted MaxThreads = 0")
	}
	cfg = DefaultConfig()
	cfg.MaxRepeatBound = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted a negative MaxRepeatBound")
	}
}

func TestMatchesWithConfig(t *testing.T) {
	matched, err := MatchesWithConfig(NumberExact(42), cbor.Uint(42), DefaultConfig())
	if err != nil {
		t.Fatalf("MatchesWithConfig() error = %v", err)
	}
	if !matched {
		t.Error("MatchesWithConfig() did not match 42")
	}
}

func TestMatchesWithConfigInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxThreads = 0
	_, err := MatchesWithConfig(NumberExact(42), cbor.Uint(42), cfg)
	if err == nil {
		t.Error("MatchesWithConfig() with an invalid config did not error")
	}
}

func TestPathsWithCapturesWithConfigBudgetExceeded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxThreads = 1
	pat := Or(NumberExact(1), NumberExact(2), NumberExact(3), NumberExact(4))
	_, _, err := PathsWithCapturesWithConfig(pat, cbor.Uint(4), cfg)
	var budgetErr *ErrBudgetExceeded
	if err != nil && !errors.As(err, &budgetErr) {
		t.Errorf("error type = %T, want *ErrBudgetExceeded or nil", err)
	}
}
