package vanityeth

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestSearchPrivateKeyModeFindsImmediateMatch(t *testing.T) {
	var seed [32]byte
	seed[31] = 11

	resp, err := Search(context.Background(), Request{
		Condition:     ConditionSpec{Kind: ConditionLeadingZeros, LeadingZeros: 0},
		ThreadCount:   2,
		WorkGroupSize: 2,
		PollInterval:  5 * time.Millisecond,
		Timeout:       2 * time.Second,
		SourceMode:    SourcePrivateKey,
		BaseSeed:      &seed,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Found {
		t.Fatal("expected a match")
	}
	got := FormatAddress(*resp.Address)
	if len(got) != 42 || got[:2] != "0x" {
		t.Errorf("FormatAddress = %q, want 42 chars starting with 0x", got)
	}
}

func TestSearchMnemonicEntropyModeReconstructsValidMnemonic(t *testing.T) {
	var seed [32]byte
	seed[31] = 22

	resp, err := Search(context.Background(), Request{
		Condition:     ConditionSpec{Kind: ConditionLeadingZeros, LeadingZeros: 0},
		ThreadCount:   1,
		WorkGroupSize: 1,
		PollInterval:  5 * time.Millisecond,
		Timeout:       2 * time.Second,
		SourceMode:    SourceMnemonicEntropy,
		BaseSeed:      &seed,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Found {
		t.Fatal("expected a match")
	}
	mnemonic := ReconstructMnemonic(*resp.Seed)
	if len(mnemonic) == 0 {
		t.Fatal("expected a non-empty mnemonic")
	}
}

func TestSearchRejectsInvalidRequest(t *testing.T) {
	_, err := Search(context.Background(), Request{
		Condition:   ConditionSpec{Kind: ConditionPrefix, Prefix: "not-hex"},
		ThreadCount: 1,
	})
	if err == nil {
		t.Fatal("expected an error for an invalid prefix condition")
	}
}

func TestFormatPrivateKey(t *testing.T) {
	var priv [32]byte
	priv[31] = 1
	got := FormatPrivateKey(priv)
	want := "0x" + strings.Repeat("00", 31) + "01"
	if got != want {
		t.Errorf("FormatPrivateKey = %q, want %q", got, want)
	}
}
