package device

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/Asylian21/vanity-eth/internal/protocol"
)

// flagCounterRegionSize returns the size of the combined flag+counters
// buffer for numThreads work items: a 4-byte flag word followed by one
// 8-byte counter per thread.
func flagCounterRegionSize(numThreads uint32) int {
	return 4 + int(numThreads)*8
}

// Worker is the host-side object owning one device's compiled program, its
// three buffers, and the bookkeeping for a non-blocking flag poll (spec
// section 4.7). Exactly one Worker exists per participating device;
// internal/orchestrator owns the collection of them.
type Worker struct {
	DeviceID string

	program    Program
	numThreads uint32

	configBuf   Buffer
	resultBuf   Buffer
	counterBuf  Buffer // byte 0:4 = flag, 4: = per-thread uint64 counters

	launch Launch

	pendingFlagEvent Event
	pendingFlagBuf   []byte
}

// NewWorker allocates the three buffers a compiled program needs against
// numThreads work items.
func NewWorker(ctx context.Context, deviceID string, program Program, numThreads uint32) (*Worker, error) {
	configBuf, err := program.NewBuffer(ctx, protocol.ConfigSize, BufferReadOnly)
	if err != nil {
		return nil, fmt.Errorf("device: allocate config buffer: %w", err)
	}
	resultBuf, err := program.NewBuffer(ctx, protocol.ResultSize, BufferWriteOnly)
	if err != nil {
		return nil, fmt.Errorf("device: allocate result buffer: %w", err)
	}
	counterBuf, err := program.NewBuffer(ctx, flagCounterRegionSize(numThreads), BufferReadWrite)
	if err != nil {
		return nil, fmt.Errorf("device: allocate flag/counter buffer: %w", err)
	}
	return &Worker{
		DeviceID:   deviceID,
		program:    program,
		numThreads: numThreads,
		configBuf:  configBuf,
		resultBuf:  resultBuf,
		counterBuf: counterBuf,
	}, nil
}

// Prepare uploads cfg and zeros the result record and the flag/counter
// region.
func (w *Worker) Prepare(ctx context.Context, cfg *protocol.Config) error {
	if err := w.configBuf.Write(ctx, cfg.Marshal()); err != nil {
		return fmt.Errorf("device: upload config: %w", err)
	}
	zeroResult := make([]byte, protocol.ResultSize)
	if err := w.resultBuf.Write(ctx, zeroResult); err != nil {
		return fmt.Errorf("device: zero result buffer: %w", err)
	}
	zeroCounters := make([]byte, flagCounterRegionSize(w.numThreads))
	if err := w.counterBuf.Write(ctx, zeroCounters); err != nil {
		return fmt.Errorf("device: zero flag/counter buffer: %w", err)
	}
	return nil
}

// Launch enqueues kernel execution and returns immediately; the returned
// error only reflects enqueue failure, never completion.
func (w *Worker) Launch(ctx context.Context, globalSize, localSize int) error {
	l, err := w.program.Launch(ctx, globalSize, localSize, LaunchArgs{
		Config:   w.configBuf,
		Result:   w.resultBuf,
		Counters: w.counterBuf,
	})
	if err != nil {
		return fmt.Errorf("device: launch: %w", err)
	}
	w.launch = l
	return nil
}

// PollFound is non-blocking. A nil return with a nil error means the most
// recent flag read is still in flight (the Option::None case); otherwise
// the pointed-to bool is the flag's last-observed value. Observing no read
// in flight starts a fresh one before returning nil, matching spec section
// 4.7's "on a fresh None, starts a new non-blocking read."
//
// Buffer has no offset/size sub-read, only a whole-buffer Read/ReadAsync
// (spec section 7), so the poll reads the entire flag+counter region rather
// than just the leading 4-byte flag word; only the first 4 bytes are
// decoded here.
func (w *Worker) PollFound(ctx context.Context) (*bool, error) {
	if w.pendingFlagEvent == nil {
		buf := make([]byte, flagCounterRegionSize(w.numThreads))
		ev, err := w.counterBuf.ReadAsync(ctx, buf)
		if err != nil {
			return nil, fmt.Errorf("device: start flag read: %w", err)
		}
		w.pendingFlagEvent = ev
		w.pendingFlagBuf = buf
		return nil, nil
	}

	done, err := w.pendingFlagEvent.Poll()
	if err != nil {
		return nil, fmt.Errorf("device: poll flag read: %w", err)
	}
	if !done {
		return nil, nil
	}

	found := binary.LittleEndian.Uint32(w.pendingFlagBuf[0:4]) != 0
	w.pendingFlagEvent = nil
	w.pendingFlagBuf = nil
	return &found, nil
}

// ReadResult blocks briefly to read the 68-byte result record.
func (w *Worker) ReadResult(ctx context.Context) (*protocol.Result, error) {
	buf := make([]byte, protocol.ResultSize)
	if err := w.resultBuf.Read(ctx, buf); err != nil {
		return nil, fmt.Errorf("device: read result: %w", err)
	}
	return protocol.UnmarshalResult(buf)
}

// ReadTotalChecked sums the per-thread counter array host-side.
func (w *Worker) ReadTotalChecked(ctx context.Context) (uint64, error) {
	buf := make([]byte, flagCounterRegionSize(w.numThreads))
	if err := w.counterBuf.Read(ctx, buf); err != nil {
		return 0, fmt.Errorf("device: read counters: %w", err)
	}
	var total uint64
	for i := uint32(0); i < w.numThreads; i++ {
		off := 4 + int(i)*8
		total += binary.LittleEndian.Uint64(buf[off : off+8])
	}
	return total, nil
}

// Wait blocks until the kernel stream is idle. The orchestrator must call
// this before releasing a worker's buffers, since a work item may still be
// writing to them until its kernel launch completes.
func (w *Worker) Wait(ctx context.Context) error {
	if w.launch == nil {
		return nil
	}
	return w.launch.Wait(ctx)
}

// Close releases the program this worker was built on. It does not close
// the owning device context; the orchestrator does that once for every
// worker sharing a device.
func (w *Worker) Close() error {
	return w.program.Close()
}
