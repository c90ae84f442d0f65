// Package kernel implements the search kernel's per-work-item loop (spec
// section 4.6): thread-unique seed perturbation, pipeline evaluation,
// predicate matching, atomic claim of the result slot, cooperative early
// exit, and progress counter updates. It is written as plain Go so it can
// run directly as the reference/test backend in internal/device/refdevice;
// a real accelerator backend would instead compile the equivalent logic
// from internal/kernelsrc and run it as device code.
package kernel

import "encoding/binary"

// Add256 computes (a + b) mod 2^256 over two 32-byte big-endian numbers,
// using byte-wise carry propagation from the least significant byte (index
// 31) toward the most significant (index 0). Overflow past 2^256 is
// dropped, matching the spec's "256-bit big-endian addition" used for both
// thread-seed fan-out and per-iteration perturbation.
func Add256(a, b [32]byte) [32]byte {
	var out [32]byte
	var carry uint16
	for i := 31; i >= 0; i-- {
		sum := uint16(a[i]) + uint16(b[i]) + carry
		out[i] = byte(sum)
		carry = sum >> 8
	}
	return out
}

// AddUint64 adds v into the low 8 bytes of base (256-bit big-endian
// addition mod 2^256), propagating carry into the higher bytes. v is
// placed in vBytes[24:32] in big-endian order, so the result is the
// numeric sum base + v, as used for thread-seed derivation
// (base_seed + t), worker fan-out (base_seed + (i+1)) and perturbation
// (thread_seed + iter).
func AddUint64(base [32]byte, v uint64) [32]byte {
	var vBytes [32]byte
	binary.BigEndian.PutUint64(vBytes[24:], v)
	return Add256(base, vBytes)
}

// ThreadSeed derives a work item's starting material: base_seed + t, t
// being the thread's zero-based index within its worker.
func ThreadSeed(baseSeed [32]byte, threadID uint32) [32]byte {
	return AddUint64(baseSeed, uint64(threadID))
}

// Perturb is the deterministic (seed, iter) -> 32 bytes function a work
// item calls once per iteration. Within a worker it visits a distinct
// value for every iteration (monotonic addition, no reduction), with
// negligible collision probability over the run -- the reference
// construction named in spec section 4.6.
func Perturb(threadSeed [32]byte, iter uint64) [32]byte {
	return AddUint64(threadSeed, iter)
}
