package orchestrator

import (
	"time"

	"github.com/Asylian21/vanity-eth/internal/protocol"
)

// Response is the outcome of one Run call (spec section 4.8).
type Response struct {
	Found    bool
	TimedOut bool

	SourceMode protocol.SourceMode
	// Seed is the 32-byte candidate material in the sense of SourceMode --
	// BIP39 entropy or a raw private key -- present only when Found.
	Seed *[32]byte
	// Address is the matching 20-byte Ethereum address, present only when
	// Found.
	Address *[20]byte
	// WinningThread is the thread ID that claimed the result, present only
	// when Found.
	WinningThread *uint32
	// WinningDevice is a display string for the device that produced the
	// match, present only when Found.
	WinningDevice string

	Elapsed      time.Duration
	TotalChecked uint64
}

// CheckedPerSecond is the run's average throughput.
func (r Response) CheckedPerSecond() float64 {
	seconds := r.Elapsed.Seconds()
	if seconds <= 0 {
		return 0
	}
	return float64(r.TotalChecked) / seconds
}

// Snapshot is a point-in-time progress report, delivered to an optional
// ProgressFunc once per poll interval (supplemented feature: live display,
// parallel to the teacher's statsReporter).
type Snapshot struct {
	Elapsed      time.Duration
	TotalChecked uint64
}

// CheckedPerSecond is the snapshot's average throughput so far.
func (s Snapshot) CheckedPerSecond() float64 {
	seconds := s.Elapsed.Seconds()
	if seconds <= 0 {
		return 0
	}
	return float64(s.TotalChecked) / seconds
}

// ProgressFunc receives one Snapshot per poll interval. It must return
// quickly; Run calls it synchronously from the poll loop.
type ProgressFunc func(Snapshot)
