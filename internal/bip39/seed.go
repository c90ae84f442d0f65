package bip39

import (
	"crypto/sha512"

	"golang.org/x/crypto/pbkdf2"
)

// SeedIterations is the PBKDF2 iteration count BIP39 mandates.
const SeedIterations = 2048

// SeedLength is the PBKDF2 output length BIP39 mandates for the derived
// seed.
const SeedLength = 64

// SeedFromMnemonic derives the 64-byte BIP32 seed from a mnemonic and
// optional passphrase (spec section 4.2): PBKDF2-HMAC-SHA512 with
// password = the mnemonic's canonical space-separated form, salt =
// "mnemonic" + passphrase, 2048 iterations, 64-byte output. The core never
// supplies a passphrase; it is accepted here only because BIP39 defines it
// as part of the salt.
func SeedFromMnemonic(mnemonic, passphrase string) [SeedLength]byte {
	salt := "mnemonic" + passphrase
	derived := pbkdf2.Key([]byte(mnemonic), []byte(salt), SeedIterations, SeedLength, sha512.New)
	var out [SeedLength]byte
	copy(out[:], derived)
	return out
}
