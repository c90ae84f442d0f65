package config

import (
	"errors"
	"testing"
)

func TestResolveRejectsZeroThreadCount(t *testing.T) {
	_, err := Resolve(Request{ThreadCount: 0, Condition: ConditionSpec{Kind: ConditionLeadingZeros}})
	if err == nil {
		t.Fatal("expected an error for zero thread count")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("expected a *ConfigError, got %T", err)
	}
}

func TestResolvePrefixCondition(t *testing.T) {
	resolved, err := Resolve(Request{
		ThreadCount: 1,
		Condition:   ConditionSpec{Kind: ConditionPrefix, Prefix: "ff"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if resolved.Condition.Param == 0 && resolved.Condition.Length == 0 {
		t.Error("expected the prefix condition to carry its byte length")
	}
}

func TestResolveRejectsInvalidPattern(t *testing.T) {
	_, err := Resolve(Request{
		ThreadCount: 1,
		Condition:   ConditionSpec{Kind: ConditionPattern, Pattern: "too-short"},
	})
	if err == nil {
		t.Fatal("expected an error for a malformed pattern")
	}
}

func TestResolveExplicitBaseSeedIsUsedVerbatim(t *testing.T) {
	var seed [32]byte
	seed[0] = 0xaa
	resolved, err := Resolve(Request{
		ThreadCount: 1,
		Condition:   ConditionSpec{Kind: ConditionLeadingZeros, LeadingZeros: 0},
		BaseSeed:    &seed,
	})
	if err != nil {
		t.Fatal(err)
	}
	if resolved.BaseSeed != seed {
		t.Error("explicit base seed should be carried through unchanged")
	}
}

func TestResolveRandomBaseSeedIsNeverAllZero(t *testing.T) {
	for i := 0; i < 16; i++ {
		resolved, err := Resolve(Request{
			ThreadCount: 1,
			Condition:   ConditionSpec{Kind: ConditionLeadingZeros, LeadingZeros: 0},
		})
		if err != nil {
			t.Fatal(err)
		}
		if resolved.BaseSeed == ([32]byte{}) {
			t.Fatal("randomly drawn base seed must never be all-zero")
		}
	}
}
