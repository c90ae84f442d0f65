// Package bip39 implements the entropy<->mnemonic mapping and mnemonic->seed
// derivation (spec section 4.2). The 2048-entry English wordlist itself is
// the external collaborator named in spec section 1 ("a compile-time
// constant of 2048 entries") -- we source it from tyler-smith/go-bip39's
// wordlists package rather than delegating the codec logic to that library.
package bip39

import "github.com/tyler-smith/go-bip39/wordlists"

// WordCount is the number of words in the canonical English BIP39
// wordlist; every 11-bit group in a 264-bit checksummed entropy string
// indexes into exactly this range.
const WordCount = 2048

// Wordlist is the compile-time English word table, indexed 0..2047.
var Wordlist = wordlists.English

// MaxWordLen is the length of the longest word in Wordlist, computed once
// at init time. Spec section 4.2 sizes the device-side materialization
// buffer as 24*MaxWordLen + 23 single-space separators, bounded at 256
// bytes for the reference English list.
var MaxWordLen int

func init() {
	if len(Wordlist) != WordCount {
		panic("bip39: wordlist does not have 2048 entries")
	}
	for _, w := range Wordlist {
		if len(w) > MaxWordLen {
			MaxWordLen = len(w)
		}
	}
}
