package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Asylian21/vanity-eth/internal/protocol"
)

// FileConfig mirrors Request's fields for the optional --config YAML file
// (spec EXPANSION, Configuration). Every field is a pointer so the merge
// step can tell "absent" apart from "explicitly zero".
type FileConfig struct {
	Prefix        *string `yaml:"prefix"`
	Suffix        *string `yaml:"suffix"`
	LeadingZeros  *int    `yaml:"leading_zeros"`
	Pattern       *string `yaml:"pattern"`
	ThreadCount   *int    `yaml:"thread_count"`
	WorkGroupSize *int    `yaml:"work_group_size"`
	PollInterval  *string `yaml:"poll_interval"`
	Timeout       *string `yaml:"timeout"`
	CheckInterval *uint32 `yaml:"check_interval"`
	SourceMode    *string `yaml:"source_mode"`
	MultiDevice   *bool   `yaml:"multi_device"`
	BaseSeedHex   *string `yaml:"base_seed"`
}

// LoadFileConfig reads and parses a YAML config file.
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigError("reading config file %q: %w", path, err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, NewConfigError("parsing config file %q: %w", path, err)
	}
	return &fc, nil
}

// ApplyDefaults fills in any field of req left at its zero value from fc.
// Flags (req, as already populated by the CLI) win over the file whenever
// they hold a nonzero value; this only ever promotes a file value into a
// field still at its zero value. A zero value counts as unset even when a
// flag set it explicitly, so --source-mode mnemonic_entropy or
// --multi-device=false does not override the file's source_mode or
// multi_device.
func (fc *FileConfig) ApplyDefaults(req Request) (Request, error) {
	if fc == nil {
		return req, nil
	}
	if req.Condition.Kind == ConditionPrefix && req.Condition.Prefix == "" {
		if fc.Suffix != nil {
			req.Condition = ConditionSpec{Kind: ConditionSuffix, Suffix: *fc.Suffix}
		} else if fc.Pattern != nil {
			req.Condition = ConditionSpec{Kind: ConditionPattern, Pattern: *fc.Pattern}
		} else if fc.LeadingZeros != nil {
			req.Condition = ConditionSpec{Kind: ConditionLeadingZeros, LeadingZeros: *fc.LeadingZeros}
		} else if fc.Prefix != nil {
			req.Condition.Prefix = *fc.Prefix
		}
	}
	if req.ThreadCount == 0 && fc.ThreadCount != nil {
		req.ThreadCount = *fc.ThreadCount
	}
	if req.WorkGroupSize == 0 && fc.WorkGroupSize != nil {
		req.WorkGroupSize = *fc.WorkGroupSize
	}
	if req.PollInterval == 0 && fc.PollInterval != nil {
		d, err := time.ParseDuration(*fc.PollInterval)
		if err != nil {
			return req, NewConfigError("config file poll_interval: %w", err)
		}
		req.PollInterval = d
	}
	if req.Timeout == 0 && fc.Timeout != nil {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return req, NewConfigError("config file timeout: %w", err)
		}
		req.Timeout = d
	}
	if req.CheckInterval == 0 && fc.CheckInterval != nil {
		req.CheckInterval = *fc.CheckInterval
	}
	if req.SourceMode == protocol.SourceMnemonicEntropy && fc.SourceMode != nil {
		switch *fc.SourceMode {
		case "private_key":
			req.SourceMode = protocol.SourcePrivateKey
		case "mnemonic_entropy", "":
			req.SourceMode = protocol.SourceMnemonicEntropy
		default:
			return req, NewConfigError("config file source_mode: unknown value %q", *fc.SourceMode)
		}
	}
	if !req.MultiDevice && fc.MultiDevice != nil {
		req.MultiDevice = *fc.MultiDevice
	}
	if req.BaseSeed == nil && fc.BaseSeedHex != nil {
		seed, err := parseSeedHex(*fc.BaseSeedHex)
		if err != nil {
			return req, NewConfigError("config file base_seed: %w", err)
		}
		req.BaseSeed = &seed
	}
	return req, nil
}

func parseSeedHex(s string) ([32]byte, error) {
	var seed [32]byte
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s) != 64 {
		return seed, fmt.Errorf("base seed must be exactly 64 hex characters, got %d", len(s))
	}
	for i := 0; i < 32; i++ {
		hi, loOK := hexVal(s[2*i])
		lo, hiOK := hexVal(s[2*i+1])
		if !loOK || !hiOK {
			return seed, fmt.Errorf("base seed %q is not valid hex", s)
		}
		seed[i] = hi<<4 | lo
	}
	return seed, nil
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
