package bip39

import (
	"errors"
	"strings"

	sha256simd "github.com/minio/sha256-simd"
)

// EntropySize is the fixed 256-bit entropy length this core supports (spec
// section 4.2: "24 words from 256-bit entropy"). The original BIP39 allows
// 128-256 bit entropy in 32-bit steps; the accelerator pipeline only ever
// needs the 24-word/256-bit case.
const EntropySize = 32

// checksumBits is ENT/32 for 256-bit entropy: one byte of checksum.
const checksumBits = EntropySize / 4 // 8

// WordsPerMnemonic is MS = (ENT+CS)/11 for 256-bit entropy: 24 words.
const WordsPerMnemonic = 24

// ErrInvalidMnemonic is returned when a mnemonic's word count, wordlist
// membership, or checksum don't match what EntropyToMnemonic produces.
var ErrInvalidMnemonic = errors.New("bip39: invalid mnemonic")

var wordIndex = buildWordIndex()

func buildWordIndex() map[string]uint16 {
	m := make(map[string]uint16, len(Wordlist))
	for i, w := range Wordlist {
		m[w] = uint16(i)
	}
	return m
}

// EntropyToMnemonic maps 256-bit entropy to its 24-word BIP39 mnemonic
// (spec section 4.2): append an 8-bit checksum equal to the first byte of
// SHA256(entropy), treat the resulting 264 bits big-endian MSB-first, split
// into 24 groups of 11 bits, and index the wordlist with each group. This
// mapping is surjective onto valid 24-word mnemonics of 256-bit entropy:
// every 32-byte input produces a mnemonic with a valid checksum.
func EntropyToMnemonic(entropy [EntropySize]byte) string {
	checksum := sha256simd.Sum256(entropy[:])

	// 33 bytes: 32 bytes entropy + 1 checksum byte, read as a 264-bit
	// big-endian bitstream.
	var bits [EntropySize + 1]byte
	copy(bits[:EntropySize], entropy[:])
	bits[EntropySize] = checksum[0]

	words := make([]string, WordsPerMnemonic)
	for i := 0; i < WordsPerMnemonic; i++ {
		idx := read11Bits(bits[:], i*11)
		words[i] = Wordlist[idx]
	}
	return strings.Join(words, " ")
}

// read11Bits reads an 11-bit big-endian unsigned value starting at bitOffset
// within buf (bit 0 is the MSB of buf[0]).
func read11Bits(buf []byte, bitOffset int) uint16 {
	var v uint16
	for i := 0; i < 11; i++ {
		bit := bitOffset + i
		byteIdx := bit / 8
		bitIdx := 7 - uint(bit%8)
		b := (buf[byteIdx] >> bitIdx) & 1
		v = v<<1 | uint16(b)
	}
	return v
}

// write11Bits is the inverse of read11Bits: it ORs an 11-bit value into buf
// starting at bitOffset.
func write11Bits(buf []byte, bitOffset int, v uint16) {
	for i := 0; i < 11; i++ {
		bit := bitOffset + i
		byteIdx := bit / 8
		bitIdx := 7 - uint(bit%8)
		b := byte((v >> uint(10-i)) & 1)
		buf[byteIdx] |= b << bitIdx
	}
}

// MnemonicToEntropy is the inverse of EntropyToMnemonic: it validates word
// count, wordlist membership and checksum, and returns the 32-byte entropy.
// Together with EntropyToMnemonic this forms the round trip required by
// spec section 8: MnemonicToEntropy(EntropyToMnemonic(E)) == (E, true).
func MnemonicToEntropy(mnemonic string) (entropy [EntropySize]byte, checksumValid bool, err error) {
	words := strings.Fields(mnemonic)
	if len(words) != WordsPerMnemonic {
		return entropy, false, ErrInvalidMnemonic
	}

	var bits [EntropySize + 1]byte
	for i, w := range words {
		idx, ok := wordIndex[w]
		if !ok {
			return entropy, false, ErrInvalidMnemonic
		}
		write11Bits(bits[:], i*11, idx)
	}

	copy(entropy[:], bits[:EntropySize])
	checksum := sha256simd.Sum256(entropy[:])
	checksumValid = bits[EntropySize] == checksum[0]
	if !checksumValid {
		return entropy, false, ErrInvalidMnemonic
	}
	return entropy, true, nil
}

// IsValidMnemonic reports whether mnemonic has the right word count, every
// word in the wordlist, and a valid checksum.
func IsValidMnemonic(mnemonic string) bool {
	_, valid, err := MnemonicToEntropy(mnemonic)
	return err == nil && valid
}
