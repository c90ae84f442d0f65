package kernel

import (
	"sync"
	"sync/atomic"

	"github.com/Asylian21/vanity-eth/internal/address"
	"github.com/Asylian21/vanity-eth/internal/bip32"
	"github.com/Asylian21/vanity-eth/internal/bip39"
	"github.com/Asylian21/vanity-eth/internal/predicate"
	"github.com/Asylian21/vanity-eth/internal/protocol"
)

// Shared is the in-process stand-in for the device-side result slot, early
// exit flag and per-worker progress counters (spec section 3). A real
// accelerator keeps these in device memory and polls/exchanges them across
// the host boundary; Shared gives internal/device/refdevice the same shape
// without a device to back it.
type Shared struct {
	// Flag is the cooperative early-exit signal: once true, every work
	// item still running must stop at its next check_interval boundary.
	Flag atomic.Bool

	mu        sync.Mutex
	result    protocol.Result
	resultSet bool

	// Counters holds one progress counter per thread, indexed by thread
	// ID, updated as each work item makes progress.
	Counters []atomic.Uint64

	won chan struct{}
}

// NewShared allocates a Shared sized for numThreads work items.
func NewShared(numThreads uint32) *Shared {
	return &Shared{Counters: make([]atomic.Uint64, numThreads), won: make(chan struct{})}
}

// Won returns a channel that closes the instant a work item's claim
// succeeds, letting a caller observe the flag transition without polling
// it in a spin loop. A real device has no such channel -- the host polls
// device memory instead -- this exists only so the in-process reference
// backend can mirror the flag into its byte-buffer representation promptly
// instead of only at kernel quiescence.
func (s *Shared) Won() <-chan struct{} {
	return s.won
}

// tryClaim attempts to atomically install the first result. Only the first
// caller wins; it is responsible for flipping Flag so every other work item
// observes early exit. Mirrors the device-side "compare-and-swap found from
// 0 to 1, then write the rest of the record" sequence described in spec
// section 3, implemented here with a mutex since there is no single shared
// device memory word to CAS against in-process.
func (s *Shared) tryClaim(seed [32]byte, addr [20]byte, thread uint32, checked uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resultSet {
		return false
	}
	s.resultSet = true
	s.result = protocol.Result{
		Found:          1,
		ResultSeed:     seed,
		EthAddress:     addr,
		FoundByThread:  thread,
		TotalCheckedLo: uint32(checked),
		TotalCheckedHi: uint32(checked >> 32),
	}
	s.Flag.Store(true)
	close(s.won)
	return true
}

// Result returns the claimed result record, if any.
func (s *Shared) Result() (protocol.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.resultSet
}

// TotalChecked sums every thread's progress counter.
func (s *Shared) TotalChecked() uint64 {
	var total uint64
	for i := range s.Counters {
		total += s.Counters[i].Load()
	}
	return total
}

// Stopper lets a caller halt a Run loop for reasons external to the search
// itself (e.g. the host timing out its poll and tearing the device context
// down). This has no counterpart in the wire protocol -- a real accelerator
// keeps running until it sees Flag or exhausts its iteration space -- it is
// purely a lifecycle knob for the in-process reference backend, which
// cannot otherwise guarantee its goroutines ever return.
type Stopper interface {
	Stopped() bool
}

// Run executes one work item's share of the search kernel (spec section
// 4.6): derive this thread's seed, then loop perturbing it, evaluating the
// configured pipeline and predicate, checking for early exit every
// CheckInterval iterations, and updating Counters[threadID] as it goes. It
// returns once the flag is observed, stop reports true, or this thread
// finds a match (whether or not its claim on the result slot wins).
func Run(cfg *protocol.Config, threadID uint32, shared *Shared, stop Stopper) {
	threadSeed := ThreadSeed(cfg.BaseSeed, threadID)
	cond := protocol.DecodeCondition(cfg.Condition)
	interval := uint64(cfg.CheckInterval)
	if interval == 0 {
		interval = uint64(protocol.DefaultCheckInterval)
	}

	var iter uint64
	for {
		if iter%interval == 0 {
			if shared.Flag.Load() || (stop != nil && stop.Stopped()) {
				shared.Counters[threadID].Store(iter)
				return
			}
		}

		candidate := Perturb(threadSeed, iter)
		addr, ok := deriveAddress(cfg.SourceMode, candidate)
		if ok && predicate.Evaluate(addr, cond, cfg.PatternMask, cfg.PatternValue) {
			shared.tryClaim(candidate, addr, threadID, iter+1)
			shared.Counters[threadID].Store(iter + 1)
			return
		}

		iter++
		shared.Counters[threadID].Store(iter)
	}
}

// deriveAddress runs the pipeline named by mode over a 32-byte candidate,
// reporting ok=false for the probability-zero case where an intermediate
// derivation step lands outside the valid scalar range -- such a candidate
// has no address and is simply not a match, the same as any other iteration
// that fails the predicate.
func deriveAddress(mode protocol.SourceMode, candidate [32]byte) (addr [20]byte, ok bool) {
	switch mode {
	case protocol.SourcePrivateKey:
		a, err := address.FromPrivateKey(candidate)
		if err != nil {
			return [20]byte{}, false
		}
		return a, true
	case protocol.SourceMnemonicEntropy:
		mnemonic := bip39.EntropyToMnemonic(candidate)
		seed := bip39.SeedFromMnemonic(mnemonic, "")
		priv, err := bip32.DeriveEthereumKey(seed)
		if err != nil {
			return [20]byte{}, false
		}
		a, err := address.FromPrivateKey(priv)
		if err != nil {
			return [20]byte{}, false
		}
		return a, true
	default:
		return [20]byte{}, false
	}
}
