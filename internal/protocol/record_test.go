package protocol

import (
	"bytes"
	"testing"
)

func TestConfigRoundTrip(t *testing.T) {
	c := &Config{
		NumThreads:    1024,
		SourceMode:    SourcePrivateKey,
		TargetChain:   ChainEthereum,
		Condition:     Condition{Kind: PredicatePrefix, Length: 2, Param: 0xabcd}.Encode(),
		CheckInterval: DefaultCheckInterval,
	}
	for i := range c.BaseSeed {
		c.BaseSeed[i] = byte(i)
	}
	for i := range c.PatternMask {
		c.PatternMask[i] = 0xff
	}

	buf := c.Marshal()
	if len(buf) != ConfigSize {
		t.Fatalf("Marshal produced %d bytes, want %d", len(buf), ConfigSize)
	}

	got, err := UnmarshalConfig(buf)
	if err != nil {
		t.Fatalf("UnmarshalConfig: %v", err)
	}
	if !bytes.Equal(got.BaseSeed[:], c.BaseSeed[:]) {
		t.Errorf("BaseSeed mismatch: got %x want %x", got.BaseSeed, c.BaseSeed)
	}
	if got.NumThreads != c.NumThreads || got.SourceMode != c.SourceMode ||
		got.TargetChain != c.TargetChain || got.Condition != c.Condition ||
		got.CheckInterval != c.CheckInterval {
		t.Errorf("scalar field mismatch: got %+v want %+v", got, c)
	}
	if !bytes.Equal(got.PatternMask[:], c.PatternMask[:]) {
		t.Errorf("PatternMask mismatch")
	}
}

func TestConfigFieldOffsets(t *testing.T) {
	c := &Config{NumThreads: 7}
	buf := c.Marshal()

	if got := buf[OffsetNumThreads]; got != 7 {
		t.Errorf("num_threads at offset %d = %d, want 7", OffsetNumThreads, got)
	}
	// Padding regions must stay zero.
	for _, off := range []int{OffsetPad1, OffsetPad1 + 1, OffsetPad1 + 2, OffsetPad1 + 3} {
		if buf[off] != 0 {
			t.Errorf("padding byte at offset %d = %d, want 0", off, buf[off])
		}
	}
}

func TestUnmarshalConfigWrongSize(t *testing.T) {
	if _, err := UnmarshalConfig(make([]byte, ConfigSize-1)); err == nil {
		t.Fatal("expected error for short buffer")
	}
}

func TestResultRoundTrip(t *testing.T) {
	r := &Result{
		Found:          1,
		FoundByThread:  42,
		TotalCheckedLo: 0xffffffff,
		TotalCheckedHi: 1,
	}
	for i := range r.ResultSeed {
		r.ResultSeed[i] = byte(i + 1)
	}
	for i := range r.EthAddress {
		r.EthAddress[i] = byte(0x10 + i)
	}

	buf := r.Marshal()
	if len(buf) != ResultSize {
		t.Fatalf("Marshal produced %d bytes, want %d", len(buf), ResultSize)
	}
	got, err := UnmarshalResult(buf)
	if err != nil {
		t.Fatalf("UnmarshalResult: %v", err)
	}
	if got.TotalChecked() != 0x1_0000_0000+0xffffffff {
		t.Errorf("TotalChecked() = %d, want %d", got.TotalChecked(), uint64(0x1_0000_0000+0xffffffff))
	}
	if !bytes.Equal(got.EthAddress[:], r.EthAddress[:]) {
		t.Errorf("EthAddress mismatch")
	}
}

func TestAssertLayout(t *testing.T) {
	if err := AssertLayout(ConfigSize, ResultSize); err != nil {
		t.Fatalf("AssertLayout with matching sizes returned error: %v", err)
	}
	if err := AssertLayout(ConfigSize+1, ResultSize); err == nil {
		t.Fatal("expected error for mismatched config size")
	}
	if err := AssertLayout(ConfigSize, ResultSize+1); err == nil {
		t.Fatal("expected error for mismatched result size")
	}
}

func TestConditionEncodeDecode(t *testing.T) {
	// Param only ever carries the LeadingZeros/LeadingZerosExact zero-count
	// (0..20): Prefix/Suffix leave it zero, since their match bytes live in
	// the surrounding Config record's PatternMask/PatternValue fields
	// instead (a 6-byte value needs 48 bits, which does not fit in Param's
	// 40 free bits after Kind and Length).
	cases := []Condition{
		{Kind: PredicatePrefix, Length: 6, Param: 0},
		{Kind: PredicateSuffix, Length: 0, Param: 0},
		{Kind: PredicatePattern, Length: 0, Param: 0},
		{Kind: PredicateLeadingZeros, Length: 0, Param: 20},
		{Kind: PredicateLeadingZerosExact, Length: 0, Param: 5},
	}
	for _, c := range cases {
		word := c.Encode()
		got := DecodeCondition(word)
		if got != c {
			t.Errorf("round-trip mismatch: encoded %+v, decoded %+v", c, got)
		}
	}
}

func TestConditionLengthZeroEncodesSix(t *testing.T) {
	c := Condition{Kind: PredicatePrefix, Length: 0, Param: 1}
	if c.NormalizedLength() != 6 {
		t.Errorf("NormalizedLength() = %d, want 6", c.NormalizedLength())
	}
	c.Length = 6
	if c.NormalizedLength() != 6 {
		t.Errorf("NormalizedLength() = %d, want 6", c.NormalizedLength())
	}
}
