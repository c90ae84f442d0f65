package keccak

import (
	"encoding/hex"
	"testing"
)

func TestSum256KnownAnswer(t *testing.T) {
	// Ethereum's canonical Keccak-256("") test vector (note: this differs
	// from FIPS 202 SHA3-256(""), which pads with 0x06 instead of 0x01).
	got := Sum256(nil)
	want := "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"[:64]
	if hex.EncodeToString(got[:]) != want {
		t.Errorf("Sum256(nil) = %x, want %s", got, want)
	}
}

func TestSum256Abc(t *testing.T) {
	got := Sum256([]byte("abc"))
	want := "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45"[:64]
	if hex.EncodeToString(got[:]) != want {
		t.Errorf("Sum256(\"abc\") = %x, want %s", got, want)
	}
}
