// Package bip32 implements hierarchical deterministic key derivation from a
// BIP39 seed (spec section 4.3): master-key generation, hardened and
// non-hardened child derivation, and the fixed Ethereum derivation path
// m/44'/60'/0'/0/0.
package bip32

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"

	"github.com/Asylian21/vanity-eth/internal/curve"
)

// HardenedOffset is 2^31; indices at or above this are hardened.
const HardenedOffset uint32 = 0x80000000

// EthereumPath is m/44'/60'/0'/0/0: the first three levels hardened
// (purpose=44', coin_type=60' for Ethereum per SLIP-44, account=0'), the
// last two non-hardened (change=0, address_index=0).
var EthereumPath = [5]uint32{
	HardenedOffset + 44,
	HardenedOffset + 60,
	HardenedOffset + 0,
	0,
	0,
}

// ErrInvalidDerivation is returned when an intermediate HMAC output (IL) or
// the resulting child private key falls outside the valid secp256k1 scalar
// range. Spec section 3 calls this "a probability-zero event"; BIP32
// formally requires retrying with the next index when it happens, which
// the core does not need to implement since nothing in this search ever
// retries a single child index.
var ErrInvalidDerivation = errors.New("bip32: derived key material out of range")

// ExtendedKey is a 32-byte private key paired with its 32-byte chain code.
type ExtendedKey struct {
	PrivateKey [32]byte
	ChainCode  [32]byte
}

// masterHMACKey is the fixed BIP32 master-key HMAC key, "Bitcoin seed" --
// the same constant Bitcoin, Ethereum and every other BIP32-derived chain
// uses; it is not chain-specific despite the name.
var masterHMACKey = []byte("Bitcoin seed")

// NewMasterKey derives the master extended key from a 64-byte BIP39 seed:
// HMAC-SHA512(key="Bitcoin seed", data=seed) -> IL (private) || IR (chain).
func NewMasterKey(seed [64]byte) ExtendedKey {
	mac := hmac.New(sha512.New, masterHMACKey)
	mac.Write(seed[:])
	sum := mac.Sum(nil)

	var key ExtendedKey
	copy(key.PrivateKey[:], sum[:32])
	copy(key.ChainCode[:], sum[32:])
	return key
}

// DeriveChild computes the child key at index i (spec section 4.3). i >=
// HardenedOffset selects hardened derivation.
func (k ExtendedKey) DeriveChild(i uint32) (ExtendedKey, error) {
	var data [37]byte
	if i >= HardenedOffset {
		data[0] = 0x00
		copy(data[1:33], k.PrivateKey[:])
	} else {
		pub, err := curve.PublicKeyCompressed(k.PrivateKey)
		if err != nil {
			return ExtendedKey{}, err
		}
		copy(data[0:33], pub[:])
	}
	binary.BigEndian.PutUint32(data[33:37], i)

	mac := hmac.New(sha512.New, k.ChainCode[:])
	mac.Write(data[:])
	sum := mac.Sum(nil)

	var il, ir [32]byte
	copy(il[:], sum[:32])
	copy(ir[:], sum[32:])

	if !curve.IsValidScalar(il) {
		return ExtendedKey{}, ErrInvalidDerivation
	}

	childPrivate := curve.AddModN(k.PrivateKey, il)
	var zero [32]byte
	if childPrivate == zero {
		return ExtendedKey{}, ErrInvalidDerivation
	}

	return ExtendedKey{PrivateKey: childPrivate, ChainCode: ir}, nil
}

// DerivePath walks path from the master key, one DeriveChild call per
// index.
func (k ExtendedKey) DerivePath(path []uint32) (ExtendedKey, error) {
	current := k
	var err error
	for _, idx := range path {
		current, err = current.DeriveChild(idx)
		if err != nil {
			return ExtendedKey{}, err
		}
	}
	return current, nil
}

// DeriveEthereumKey derives the private key at m/44'/60'/0'/0/0 from a
// 64-byte BIP39 seed.
func DeriveEthereumKey(seed [64]byte) ([32]byte, error) {
	master := NewMasterKey(seed)
	child, err := master.DerivePath(EthereumPath[:])
	if err != nil {
		return [32]byte{}, err
	}
	return child.PrivateKey, nil
}
