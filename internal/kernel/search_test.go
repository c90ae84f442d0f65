package kernel

import (
	"testing"

	"github.com/Asylian21/vanity-eth/internal/predicate"
	"github.com/Asylian21/vanity-eth/internal/protocol"
)

func TestRunClaimsFirstMatchingCandidate(t *testing.T) {
	cond, err := predicate.ParseLeadingZeros(0) // satisfied by any address
	if err != nil {
		t.Fatal(err)
	}
	cfg := &protocol.Config{
		SourceMode:    protocol.SourcePrivateKey,
		Condition:     cond.Encode(),
		CheckInterval: 4096,
	}
	cfg.BaseSeed[31] = 5

	shared := NewShared(1)
	Run(cfg, 0, shared, nil)

	if !shared.Flag.Load() {
		t.Fatal("expected the early-exit flag to be set once a match is claimed")
	}
	result, ok := shared.Result()
	if !ok {
		t.Fatal("expected a claimed result")
	}
	if result.Found != 1 {
		t.Errorf("Found = %d, want 1", result.Found)
	}
	if result.ResultSeed != ThreadSeed(cfg.BaseSeed, 0) {
		t.Error("ResultSeed should be the first perturbed candidate (iteration 0)")
	}
	if shared.TotalChecked() == 0 {
		t.Error("expected at least one checked iteration to be recorded")
	}
}

type alwaysStopped struct{}

func (alwaysStopped) Stopped() bool { return true }

func TestRunStopsImmediatelyWhenAlreadyStopped(t *testing.T) {
	cond, mask, value, err := predicate.ParsePrefix("ffffffffffff") // effectively unreachable in one check
	if err != nil {
		t.Fatal(err)
	}
	cfg := &protocol.Config{
		SourceMode:    protocol.SourcePrivateKey,
		Condition:     cond.Encode(),
		PatternMask:   mask,
		PatternValue:  value,
		CheckInterval: 1,
	}
	cfg.BaseSeed[31] = 9

	shared := NewShared(1)
	Run(cfg, 0, shared, alwaysStopped{})

	if shared.Flag.Load() {
		t.Error("flag should not be set when the loop stops without a match")
	}
	if _, ok := shared.Result(); ok {
		t.Error("expected no claimed result when stopped before any match")
	}
}

func TestRunDeriveAddressMnemonicEntropyMode(t *testing.T) {
	cond, err := predicate.ParseLeadingZeros(0)
	if err != nil {
		t.Fatal(err)
	}
	cfg := &protocol.Config{
		SourceMode:    protocol.SourceMnemonicEntropy,
		Condition:     cond.Encode(),
		CheckInterval: 4096,
	}
	cfg.BaseSeed[0] = 0x42

	shared := NewShared(1)
	Run(cfg, 0, shared, nil)

	result, ok := shared.Result()
	if !ok {
		t.Fatal("expected a claimed result in mnemonic-entropy mode")
	}
	if result.ResultSeed != ThreadSeed(cfg.BaseSeed, 0) {
		t.Error("ResultSeed must carry the 32-byte entropy, not the derived 64-byte seed")
	}
}

func TestSharedTotalCheckedSumsAcrossThreads(t *testing.T) {
	shared := NewShared(3)
	shared.Counters[0].Store(10)
	shared.Counters[1].Store(20)
	shared.Counters[2].Store(5)
	if got := shared.TotalChecked(); got != 35 {
		t.Errorf("TotalChecked() = %d, want 35", got)
	}
}

func TestSharedTryClaimOnlyFirstWins(t *testing.T) {
	shared := NewShared(2)
	var seedA, seedB [32]byte
	seedA[0], seedB[0] = 1, 2
	if !shared.tryClaim(seedA, [20]byte{}, 0, 1) {
		t.Fatal("first claim should succeed")
	}
	if shared.tryClaim(seedB, [20]byte{}, 1, 1) {
		t.Fatal("second claim should be rejected")
	}
	result, _ := shared.Result()
	if result.ResultSeed != seedA {
		t.Error("the winning result should be the first claim's")
	}
}
