// Package protocol defines the host<->device shared-memory contract: the
// config record uploaded once per launch, the result record and early-exit
// flag written by the winning work item, and the per-worker progress
// counters. The byte layout here is load-bearing -- it must match what the
// device program (see internal/kernelsrc) was built against bit for bit.
package protocol

import (
	"encoding/binary"
	"fmt"
)

// SourceMode selects how the 32-byte candidate material is interpreted.
type SourceMode uint32

const (
	// SourceMnemonicEntropy treats the candidate as BIP39 entropy.
	SourceMnemonicEntropy SourceMode = 0
	// SourcePrivateKey treats the candidate as a raw secp256k1 private key.
	SourcePrivateKey SourceMode = 1
)

func (m SourceMode) String() string {
	switch m {
	case SourceMnemonicEntropy:
		return "MnemonicEntropy"
	case SourcePrivateKey:
		return "PrivateKey"
	default:
		return fmt.Sprintf("SourceMode(%d)", uint32(m))
	}
}

// TargetChain is reserved for forward extension beyond Ethereum. The core
// only implements ChainEthereum; the field exists so the config record
// layout doesn't need to change if a future accelerator pipeline adds one.
type TargetChain uint32

// ChainEthereum is the only chain the accelerator pipeline implements.
const ChainEthereum TargetChain = 0

// DefaultCheckInterval is the recommended number of iterations between
// global early-exit flag reads (spec section 9, open question (c)).
const DefaultCheckInterval uint32 = 2048

// ConfigSize is the bit-exact size of Config in bytes. AssertLayout
// compares it at startup with the size the device program was built with.
const ConfigSize = 104

// Config is the host->device config record (spec section 3). It is
// read-only on the device once uploaded, and must be laid out exactly as
// below: any reordering of fields changes the wire layout.
type Config struct {
	BaseSeed     [32]byte
	NumThreads   uint32
	SourceMode   SourceMode
	TargetChain  TargetChain
	_            uint32 // padding, offset 44:4, always zero
	Condition    uint64
	CheckInterval uint32
	_            uint32 // padding, offset 60:4, always zero
	PatternMask  [20]byte
	PatternValue [20]byte
}

// Field byte offsets, named to match spec section 3 exactly.
const (
	OffsetBaseSeed      = 0
	OffsetNumThreads    = 32
	OffsetSourceMode    = 36
	OffsetTargetChain   = 40
	OffsetPad1          = 44
	OffsetCondition     = 48
	OffsetCheckInterval = 56
	OffsetPad2          = 60
	OffsetPatternMask   = 64
	OffsetPatternValue  = 84
)

// Marshal serializes the config record to its bit-exact 104-byte wire form,
// little-endian, 8-byte aligned.
func (c *Config) Marshal() []byte {
	buf := make([]byte, ConfigSize)
	copy(buf[OffsetBaseSeed:], c.BaseSeed[:])
	binary.LittleEndian.PutUint32(buf[OffsetNumThreads:], c.NumThreads)
	binary.LittleEndian.PutUint32(buf[OffsetSourceMode:], uint32(c.SourceMode))
	binary.LittleEndian.PutUint32(buf[OffsetTargetChain:], uint32(c.TargetChain))
	binary.LittleEndian.PutUint64(buf[OffsetCondition:], c.Condition)
	binary.LittleEndian.PutUint32(buf[OffsetCheckInterval:], c.CheckInterval)
	copy(buf[OffsetPatternMask:], c.PatternMask[:])
	copy(buf[OffsetPatternValue:], c.PatternValue[:])
	return buf
}

// UnmarshalConfig parses a bit-exact 104-byte config record. It returns an error
// (rather than panicking) if buf is the wrong size -- callers on the
// decoding side of the protocol are expected to check this before using the
// record.
func UnmarshalConfig(buf []byte) (*Config, error) {
	if len(buf) != ConfigSize {
		return nil, fmt.Errorf("protocol: config record must be %d bytes, got %d", ConfigSize, len(buf))
	}
	c := &Config{}
	copy(c.BaseSeed[:], buf[OffsetBaseSeed:OffsetBaseSeed+32])
	c.NumThreads = binary.LittleEndian.Uint32(buf[OffsetNumThreads:])
	c.SourceMode = SourceMode(binary.LittleEndian.Uint32(buf[OffsetSourceMode:]))
	c.TargetChain = TargetChain(binary.LittleEndian.Uint32(buf[OffsetTargetChain:]))
	c.Condition = binary.LittleEndian.Uint64(buf[OffsetCondition:])
	c.CheckInterval = binary.LittleEndian.Uint32(buf[OffsetCheckInterval:])
	copy(c.PatternMask[:], buf[OffsetPatternMask:OffsetPatternMask+20])
	copy(c.PatternValue[:], buf[OffsetPatternValue:OffsetPatternValue+20])
	return c, nil
}

// ResultSize is the bit-exact size of the result record in bytes:
// found(4) + result_seed(32) + eth_address(20) + found_by_thread(4) +
// total_checked_low(4) + total_checked_high(4) = 68.
const ResultSize = 68

// Result is the device->host result record (spec section 3). Found is 0 or
// 1; implementers using real atomics on the device side write ResultSeed,
// EthAddress and FoundByThread before making Found visible with a release
// store, so that a host observing Found==1 always sees the rest of the
// record already written.
type Result struct {
	Found          uint32
	ResultSeed     [32]byte
	EthAddress     [20]byte
	FoundByThread  uint32
	TotalCheckedLo uint32
	TotalCheckedHi uint32
}

// TotalChecked recombines the split 64-bit checked counter.
func (r *Result) TotalChecked() uint64 {
	return uint64(r.TotalCheckedHi)<<32 | uint64(r.TotalCheckedLo)
}

// Marshal serializes the result record to its 68-byte wire form.
func (r *Result) Marshal() []byte {
	buf := make([]byte, ResultSize)
	binary.LittleEndian.PutUint32(buf[0:], r.Found)
	copy(buf[4:36], r.ResultSeed[:])
	copy(buf[36:56], r.EthAddress[:])
	binary.LittleEndian.PutUint32(buf[56:], r.FoundByThread)
	binary.LittleEndian.PutUint32(buf[60:], r.TotalCheckedLo)
	binary.LittleEndian.PutUint32(buf[64:], r.TotalCheckedHi)
	return buf
}

// UnmarshalResult parses a bit-exact 68-byte result record.
func UnmarshalResult(buf []byte) (*Result, error) {
	if len(buf) != ResultSize {
		return nil, fmt.Errorf("protocol: result record must be %d bytes, got %d", ResultSize, len(buf))
	}
	r := &Result{}
	r.Found = binary.LittleEndian.Uint32(buf[0:])
	copy(r.ResultSeed[:], buf[4:36])
	copy(r.EthAddress[:], buf[36:56])
	r.FoundByThread = binary.LittleEndian.Uint32(buf[56:])
	r.TotalCheckedLo = binary.LittleEndian.Uint32(buf[60:])
	r.TotalCheckedHi = binary.LittleEndian.Uint32(buf[64:])
	return r, nil
}

// AssertLayout verifies the host's computed config/result record sizes
// match what the device program was built expecting. Spec section 9: "the
// config record's layout is load-bearing ... implementers must assert, at
// program startup, that the host's computed size and field offsets match
// what the device program expects (emit a diagnostic listing both if they
// diverge)." deviceConfigSize/deviceResultSize come from whatever built the
// kernel source (see internal/kernelsrc), which embeds the same constants.
func AssertLayout(deviceConfigSize, deviceResultSize int) error {
	if deviceConfigSize != ConfigSize {
		return fmt.Errorf("protocol: config record size mismatch: host=%d device=%d", ConfigSize, deviceConfigSize)
	}
	if deviceResultSize != ResultSize {
		return fmt.Errorf("protocol: result record size mismatch: host=%d device=%d", ResultSize, deviceResultSize)
	}
	return nil
}
