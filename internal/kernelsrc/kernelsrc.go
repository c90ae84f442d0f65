// Package kernelsrc assembles the OpenCL-C kernel source a real
// accelerator backend would hand to device.Context.BuildProgram (spec
// section 9, "implementers must assert ... what the device program
// expects"). The fragments it embeds are representative, not a complete,
// compilable OpenCL-C translation unit: this module never runs a device
// compiler over them, matching spec section 1's "choice of a specific
// accelerator abstraction is out of scope." internal/kernel carries the
// equivalent logic that actually executes, as plain Go, for
// internal/device/refdevice and the host-side result verification in
// section 8's testable properties.
package kernelsrc

import (
	_ "embed"
	"strings"

	"github.com/Asylian21/vanity-eth/internal/protocol"
)

//go:embed fragments/secp256k1.cl
var secp256k1Src string

//go:embed fragments/keccak.cl
var keccakSrc string

//go:embed fragments/bip32.cl
var bip32Src string

//go:embed fragments/bip39.cl
var bip39Src string

//go:embed fragments/predicate.cl
var predicateSrc string

//go:embed fragments/search_common.cl
var searchCommonSrc string

//go:embed fragments/kernel_mnemonic_entropy.cl
var kernelMnemonicEntropySrc string

//go:embed fragments/kernel_private_key.cl
var kernelPrivateKeySrc string

// ConfigSize and ResultSize are the record sizes the embedded kernel
// fragments were written against (see fragments/search_common.cl's
// search_config_t/search_result_t). A real build would read these back out
// of the compiled program; here they are compile-time constants the host
// side checks itself against via protocol.AssertLayout.
const (
	ConfigSize = 104
	ResultSize = 68
)

// Assemble concatenates the crypto-primitive, BIP, predicate and
// search-common fragments with the kernel body matching mode, in build
// order: lower-level primitives first, the mode-specific work-item
// function last.
func Assemble(mode protocol.SourceMode) string {
	parts := []string{secp256k1Src, keccakSrc, bip32Src, bip39Src, predicateSrc, searchCommonSrc}
	switch mode {
	case protocol.SourcePrivateKey:
		parts = append(parts, kernelPrivateKeySrc)
	default:
		parts = append(parts, kernelMnemonicEntropySrc)
	}
	return strings.Join(parts, "\n\n")
}
