package protocol

// PredicateKind identifies which of the four (five, counting the reserved
// one) predicate branches a condition word selects.
type PredicateKind uint16

const (
	// PredicatePrefix matches address bytes [0:L] against the match bytes
	// held in PatternMask/PatternValue.
	PredicatePrefix PredicateKind = 0x01
	// PredicateSuffix matches address bytes [20-L:20] against the match
	// bytes held in PatternMask/PatternValue.
	PredicateSuffix PredicateKind = 0x02
	// PredicatePattern matches every address byte against PatternMask/PatternValue.
	PredicatePattern PredicateKind = 0x03
	// PredicateLeadingZeros requires at least Param leading zero bytes.
	PredicateLeadingZeros PredicateKind = 0x04
	// PredicateLeadingZerosExact is reserved (spec section 9, open question
	// (b)): declared but not wired through the CLI/condition parser. The
	// evaluator honors it so a caller constructing a Condition directly can
	// use it.
	PredicateLeadingZerosExact PredicateKind = 0x05
)

// Condition is the decoded form of the 64-bit condition word (spec section
// 3): high 16 bits kind, next 8 bits byte-length (prefix/suffix only), low
// 40 bits parameter.
//
// The low 40 bits are only wide enough for a 5-byte value, one byte short of
// the 6-byte maximum prefix/suffix length spec section 6 accepts, so Param
// does not carry the Prefix/Suffix match bytes -- those live in the
// surrounding Config record's PatternMask/PatternValue fields instead (see
// predicate.ParsePrefix/ParseSuffix), the same 20-byte region the Pattern
// predicate already uses. Param only ever carries the zero-count for the
// LeadingZeros/LeadingZerosExact kinds, which comfortably fits in 40 bits.
type Condition struct {
	Kind   PredicateKind
	Length uint8  // byte-length for Prefix/Suffix; 0 encodes 6
	Param  uint64 // low 40 bits: zero-count for LeadingZeros/LeadingZerosExact; unused otherwise
}

const (
	conditionKindShift   = 48
	conditionLengthShift = 40
	conditionLengthMask  = 0xFF
	conditionParamMask   = (uint64(1) << 40) - 1
)

// NormalizedLength returns Length with the "0 encodes 6" rule applied.
func (c Condition) NormalizedLength() uint8 {
	if c.Length == 0 {
		return 6
	}
	return c.Length
}

// Encode packs a Condition into the 64-bit condition word wire format.
func (c Condition) Encode() uint64 {
	word := uint64(c.Kind) << conditionKindShift
	word |= uint64(c.Length&conditionLengthMask) << conditionLengthShift
	word |= c.Param & conditionParamMask
	return word
}

// DecodeCondition unpacks a 64-bit condition word into its Condition form.
func DecodeCondition(word uint64) Condition {
	return Condition{
		Kind:   PredicateKind(word >> conditionKindShift),
		Length: uint8((word >> conditionLengthShift) & conditionLengthMask),
		Param:  word & conditionParamMask,
	}
}
