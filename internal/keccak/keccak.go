// Package keccak provides Keccak-256 with the original 0x01 padding byte,
// the variant Ethereum uses -- not FIPS 202 SHA3-256, which pads with 0x06.
// golang.org/x/crypto/sha3 exposes this distinction directly via
// NewLegacyKeccak256, so the primitive is not reimplemented here.
package keccak

import "golang.org/x/crypto/sha3"

// Sum256 returns the 32-byte Keccak-256 digest of data.
func Sum256(data []byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	var out [32]byte
	h.Sum(out[:0])
	return out
}
