package bip39

import "testing"

func TestSeedFromMnemonicLength(t *testing.T) {
	var entropy [EntropySize]byte
	mnemonic := EntropyToMnemonic(entropy)
	seed := SeedFromMnemonic(mnemonic, "")
	if len(seed) != SeedLength {
		t.Fatalf("seed length = %d, want %d", len(seed), SeedLength)
	}
}

func TestSeedFromMnemonicDeterministic(t *testing.T) {
	var entropy [EntropySize]byte
	entropy[0] = 0x42
	mnemonic := EntropyToMnemonic(entropy)

	a := SeedFromMnemonic(mnemonic, "")
	b := SeedFromMnemonic(mnemonic, "")
	if a != b {
		t.Error("SeedFromMnemonic is not deterministic for identical inputs")
	}
}

func TestSeedFromMnemonicPassphraseChangesSeed(t *testing.T) {
	var entropy [EntropySize]byte
	entropy[0] = 0x42
	mnemonic := EntropyToMnemonic(entropy)

	noPass := SeedFromMnemonic(mnemonic, "")
	withPass := SeedFromMnemonic(mnemonic, "correct horse battery staple")
	if noPass == withPass {
		t.Error("expected a different seed when a passphrase is supplied")
	}
}

func TestSeedFromMnemonicDifferentMnemonicsDifferentSeeds(t *testing.T) {
	var e1, e2 [EntropySize]byte
	e2[0] = 1
	s1 := SeedFromMnemonic(EntropyToMnemonic(e1), "")
	s2 := SeedFromMnemonic(EntropyToMnemonic(e2), "")
	if s1 == s2 {
		t.Error("different mnemonics should derive different seeds")
	}
}
