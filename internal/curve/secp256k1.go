// Package curve wraps the secp256k1 scalar/point arithmetic the core needs:
// scalar multiplication by the generator (private key -> uncompressed public
// key) and constant-width modular addition against the group order n, used
// by BIP32 child-key derivation. The curve math itself is not reimplemented
// here -- it rides on the same library the teacher repo already depends on
// for Bitcoin key generation, generalized to Ethereum's uncompressed pubkey
// format.
package curve

import (
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ErrInvalidPrivateKey is returned when a 32-byte scalar is zero or not
// strictly less than the group order n. Spec section 3 calls this a
// "probability-zero event" for randomly derived keys; callers (BIP32 child
// derivation, raw private-key mode) must still check for it rather than
// silently producing a degenerate key.
var ErrInvalidPrivateKey = errors.New("curve: private key is zero or >= group order n")

// PublicKeyUncompressed derives the 65-byte uncompressed public key
// (0x04 || X || Y) for a 32-byte big-endian private key scalar, per SEC 2
// scalar multiplication by the generator.
func PublicKeyUncompressed(priv [32]byte) ([65]byte, error) {
	if !IsValidScalar(priv) {
		return [65]byte{}, ErrInvalidPrivateKey
	}
	privKey := btcec.PrivKeyFromBytes(priv[:])
	var out [65]byte
	copy(out[:], privKey.PubKey().SerializeUncompressed())
	return out, nil
}

// PublicKeyCompressed derives the 33-byte compressed public key
// (0x02/0x03 || X), used as the non-hardened BIP32 HMAC input.
func PublicKeyCompressed(priv [32]byte) ([33]byte, error) {
	if !IsValidScalar(priv) {
		return [33]byte{}, ErrInvalidPrivateKey
	}
	privKey := btcec.PrivKeyFromBytes(priv[:])
	var out [33]byte
	copy(out[:], privKey.PubKey().SerializeCompressed())
	return out, nil
}

// IsValidScalar reports whether b, read as a big-endian 256-bit integer, is
// nonzero and strictly less than the secp256k1 group order n.
func IsValidScalar(b [32]byte) bool {
	var s secp256k1.ModNScalar
	overflow := s.SetByteSlice(b[:])
	return !overflow && !s.IsZero()
}

// AddModN computes (a + b) mod n using the curve library's constant-width
// 4x64-bit limb representation and conditional subtraction, per spec
// section 4.1. Both operands are reduced mod n first (BIP32's IL is
// produced by HMAC-SHA512 and is not guaranteed to already be < n).
func AddModN(a, b [32]byte) [32]byte {
	var sa, sb secp256k1.ModNScalar
	sa.SetByteSlice(a[:])
	sb.SetByteSlice(b[:])
	sa.Add(&sb)
	return *sa.Bytes()
}

// Order256 is the secp256k1 group order n, exposed for tests that need to
// construct boundary scalars (n-1, n, n+1).
func Order256() [32]byte {
	// secp256k1's N as a 32-byte big-endian constant.
	return [32]byte{
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe,
		0xba, 0xae, 0xdc, 0xe6, 0xaf, 0x48, 0xa0, 0x3b,
		0xbf, 0xd2, 0x5e, 0x8c, 0xd0, 0x36, 0x41, 0x41,
	}
}
