// Package address implements the Ethereum address pipeline (spec section
// 4.4): uncompressed public key -> Keccak-256 -> last 20 bytes.
package address

import (
	"github.com/Asylian21/vanity-eth/internal/curve"
	"github.com/Asylian21/vanity-eth/internal/keccak"
)

// FromPrivateKey derives the 20-byte Ethereum address for a 32-byte
// big-endian private key scalar.
func FromPrivateKey(priv [32]byte) ([20]byte, error) {
	pub, err := curve.PublicKeyUncompressed(priv)
	if err != nil {
		return [20]byte{}, err
	}
	return FromUncompressedPubKey(pub), nil
}

// FromUncompressedPubKey derives the 20-byte address from a 65-byte
// uncompressed public key (0x04 || X || Y). The leading format byte is
// dropped before hashing: Keccak-256 is computed over the raw 64-byte
// X||Y coordinate pair.
func FromUncompressedPubKey(pub [65]byte) [20]byte {
	digest := keccak.Sum256(pub[1:])
	var addr [20]byte
	copy(addr[:], digest[12:])
	return addr
}
