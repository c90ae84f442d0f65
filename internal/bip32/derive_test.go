package bip32

import (
	"encoding/hex"
	"testing"

	"github.com/Asylian21/vanity-eth/internal/curve"
)

func TestNewMasterKeyDeterministicAndValid(t *testing.T) {
	seedHex := "000102030405060708090a0b0c0d0e0f" +
		"000102030405060708090a0b0c0d0e0f" +
		"0001020304050607"
	seedBytes, err := hex.DecodeString(seedHex)
	if err != nil {
		t.Fatal(err)
	}
	var seed [64]byte
	copy(seed[:], seedBytes)

	a := NewMasterKey(seed)
	b := NewMasterKey(seed)
	if a != b {
		t.Error("NewMasterKey is not deterministic for identical seeds")
	}
	if !curve.IsValidScalar(a.PrivateKey) {
		t.Error("master private key is not a valid secp256k1 scalar")
	}

	var otherSeed [64]byte
	otherSeed[0] = 1
	other := NewMasterKey(otherSeed)
	if other.PrivateKey == a.PrivateKey {
		t.Error("different seeds should yield different master keys")
	}
}

func TestDeriveChildHardenedVsNonHardenedDiffer(t *testing.T) {
	var seed [64]byte
	seed[0] = 7
	master := NewMasterKey(seed)

	hardened, err := master.DeriveChild(HardenedOffset)
	if err != nil {
		t.Fatalf("hardened DeriveChild: %v", err)
	}
	nonHardened, err := master.DeriveChild(0)
	if err != nil {
		t.Fatalf("non-hardened DeriveChild: %v", err)
	}
	if hardened.PrivateKey == nonHardened.PrivateKey {
		t.Error("hardened and non-hardened child at the same numeric index should differ")
	}
}

func TestDeriveChildProducesValidScalar(t *testing.T) {
	var seed [64]byte
	seed[0] = 1
	master := NewMasterKey(seed)

	child, err := master.DerivePath(EthereumPath[:])
	if err != nil {
		t.Fatalf("DerivePath: %v", err)
	}
	if !curve.IsValidScalar(child.PrivateKey) {
		t.Error("derived Ethereum child private key is not a valid secp256k1 scalar")
	}
}

func TestDeriveChildDeterministic(t *testing.T) {
	var seed [64]byte
	seed[3] = 9
	master := NewMasterKey(seed)

	a, err := master.DerivePath(EthereumPath[:])
	if err != nil {
		t.Fatal(err)
	}
	b, err := master.DerivePath(EthereumPath[:])
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("deriving the same path twice should yield identical keys")
	}
}

func TestEthereumPathShape(t *testing.T) {
	for i, idx := range EthereumPath[:3] {
		if idx < HardenedOffset {
			t.Errorf("EthereumPath[%d] = %#x, expected hardened (>= %#x)", i, idx, HardenedOffset)
		}
	}
	for i, idx := range EthereumPath[3:] {
		if idx >= HardenedOffset {
			t.Errorf("EthereumPath[%d] = %#x, expected non-hardened", i+3, idx)
		}
	}
}
