// Package predicate implements the four (five, counting the reserved kind)
// predicate branches over a 20-byte Ethereum address (spec section 4.5).
// Evaluate is a pure function: each branch only consults the parameters it
// needs, independent of the outer search loop's early-exit decisions.
package predicate

import "github.com/Asylian21/vanity-eth/internal/protocol"

// Evaluate reports whether addr satisfies cond. Prefix, Suffix and Pattern
// all reduce to the same masked-byte comparison: mask/value carry their
// match bytes directly (Prefix/Suffix place them at the front/back of the
// 20-byte window, see predicate.ParsePrefix/ParseSuffix) since the
// condition word's Param field is too narrow to hold a 6-byte value.
func Evaluate(addr [20]byte, cond protocol.Condition, mask, value [20]byte) bool {
	switch cond.Kind {
	case protocol.PredicatePrefix, protocol.PredicateSuffix, protocol.PredicatePattern:
		return matchPattern(addr, mask, value)
	case protocol.PredicateLeadingZeros:
		return leadingZeroCount(addr) >= int(cond.Param)
	case protocol.PredicateLeadingZerosExact:
		return leadingZeroCount(addr) == int(cond.Param)
	default:
		return false
	}
}

func matchPattern(addr, mask, value [20]byte) bool {
	for i := 0; i < 20; i++ {
		if addr[i]&mask[i] != value[i]&mask[i] {
			return false
		}
	}
	return true
}

func leadingZeroCount(addr [20]byte) int {
	n := 0
	for _, b := range addr {
		if b != 0 {
			break
		}
		n++
	}
	return n
}
