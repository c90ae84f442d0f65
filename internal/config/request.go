package config

import (
	"crypto/rand"
	"time"

	"github.com/Asylian21/vanity-eth/internal/predicate"
	"github.com/Asylian21/vanity-eth/internal/protocol"
)

// ConditionKind selects which of the four user-facing condition shapes a
// Request carries.
type ConditionKind int

const (
	ConditionPrefix ConditionKind = iota
	ConditionSuffix
	ConditionLeadingZeros
	ConditionPattern
)

// ConditionSpec is the user-facing form of a search condition (spec
// section 6); exactly one field is consulted, selected by Kind.
type ConditionSpec struct {
	Kind         ConditionKind
	Prefix       string
	Suffix       string
	LeadingZeros int
	Pattern      string
}

// Request is the library API's input (spec section 6).
type Request struct {
	Condition     ConditionSpec
	ThreadCount   int
	WorkGroupSize int
	PollInterval  time.Duration
	// Timeout is the optional deadline after which the orchestrator stops
	// polling and reports timed_out. Zero means no timeout.
	Timeout time.Duration
	// CheckInterval overrides protocol.DefaultCheckInterval when nonzero
	// (spec section 9, open question (c)).
	CheckInterval uint32
	SourceMode    protocol.SourceMode
	MultiDevice   bool
	// BaseSeed, if non-nil, fixes the search's starting material instead
	// of drawing fresh random bytes.
	BaseSeed *[32]byte
}

// Resolved is a Request after validation: a decoded condition word plus
// its pattern mask/value and a concrete base seed.
type Resolved struct {
	Condition protocol.Condition
	Mask      [20]byte
	Value     [20]byte
	BaseSeed  [32]byte
}

// Resolve validates req and produces its Resolved form, or a *ConfigError
// describing the first problem found.
func Resolve(req Request) (Resolved, error) {
	if req.ThreadCount <= 0 {
		return Resolved{}, NewConfigError("thread count must be positive, got %d", req.ThreadCount)
	}

	var (
		cond        protocol.Condition
		mask, value [20]byte
		err         error
	)
	switch req.Condition.Kind {
	case ConditionPrefix:
		cond, mask, value, err = predicate.ParsePrefix(req.Condition.Prefix)
	case ConditionSuffix:
		cond, mask, value, err = predicate.ParseSuffix(req.Condition.Suffix)
	case ConditionLeadingZeros:
		cond, err = predicate.ParseLeadingZeros(req.Condition.LeadingZeros)
	case ConditionPattern:
		cond, mask, value, err = predicate.ParsePattern(req.Condition.Pattern)
	default:
		return Resolved{}, NewConfigError("unknown condition kind %d", req.Condition.Kind)
	}
	if err != nil {
		return Resolved{}, NewConfigError("%s", err)
	}

	seed, err := resolveBaseSeed(req.BaseSeed)
	if err != nil {
		return Resolved{}, err
	}

	return Resolved{Condition: cond, Mask: mask, Value: value, BaseSeed: seed}, nil
}

// resolveBaseSeed returns explicit when given, otherwise 32 bytes from the
// host RNG with the "not all-zero" rule from spec section 9: an all-zero
// sample has its last byte clobbered to 1.
func resolveBaseSeed(explicit *[32]byte) ([32]byte, error) {
	if explicit != nil {
		return *explicit, nil
	}
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return seed, NewConfigError("reading random base seed: %w", err)
	}
	if seed == ([32]byte{}) {
		seed[31] = 1
	}
	return seed, nil
}
