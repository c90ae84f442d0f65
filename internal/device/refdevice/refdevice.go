// Package refdevice is an in-process, goroutine-backed implementation of
// device.API. It runs the search kernel (spec section 4.6) directly as Go
// code via internal/kernel instead of compiling and executing an
// OpenCL/CUDA program, so the orchestration and protocol logic can be
// exercised end to end without real accelerator hardware. It is reference
// and test scaffolding: it is never offered as a user-selectable backend.
// It is, however, the backend vanityeth.Search drives when no other
// device.API is supplied via WithDeviceAPI, so the CLI runs on it.
package refdevice

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/Asylian21/vanity-eth/internal/device"
	"github.com/Asylian21/vanity-eth/internal/kernel"
	"github.com/Asylian21/vanity-eth/internal/protocol"
)

// DeviceID identifies the single software device this backend exposes.
const DeviceID = "refdevice-0"

// API is the only device.API this repo ships.
type API struct{}

// New returns a ready-to-use reference API.
func New() *API { return &API{} }

func (a *API) Devices(ctx context.Context) ([]device.Info, error) {
	return []device.Info{{ID: DeviceID, Name: "in-process reference device"}}, nil
}

func (a *API) Open(ctx context.Context, info device.Info) (device.Context, error) {
	if info.ID != DeviceID {
		return nil, fmt.Errorf("refdevice: unknown device %q", info.ID)
	}
	return &deviceContext{}, nil
}

type deviceContext struct{}

// BuildProgram accepts and discards source: the reference backend executes
// the kernel logic natively via internal/kernel rather than compiling the
// OpenCL-C text a real backend would hand to its driver.
func (c *deviceContext) BuildProgram(ctx context.Context, source string) (device.Program, error) {
	return &program{closed: make(chan struct{})}, nil
}

func (c *deviceContext) Close() error { return nil }

// program's closed channel is this backend's only way to stop launched
// work-item goroutines that never observe the early-exit flag (an
// unsatisfiable condition run past its host timeout, for example): a real
// accelerator leaves those kernels running until they finish or see the
// flag, but an in-process test backend cannot afford to leak goroutines
// once its caller has moved on, so Close asks them to stop instead.
type program struct {
	closedOnce sync.Once
	closed     chan struct{}
}

func (p *program) closedStopper() stopperFunc {
	return func() bool {
		select {
		case <-p.closed:
			return true
		default:
			return false
		}
	}
}

type stopperFunc func() bool

func (f stopperFunc) Stopped() bool { return f() }

func (p *program) NewBuffer(ctx context.Context, size int, flags device.BufferFlags) (device.Buffer, error) {
	return &buffer{data: make([]byte, size)}, nil
}

// Launch decodes the uploaded config record and runs one goroutine per
// work item via kernel.Run, mirroring their shared state back into the
// byte-buffer representation so a Worker built against this backend sees
// the same wire layout a real accelerator would have produced.
func (p *program) Launch(ctx context.Context, globalSize, localSize int, args device.LaunchArgs) (device.Launch, error) {
	configBuf, ok := args.Config.(*buffer)
	if !ok {
		return nil, fmt.Errorf("refdevice: config buffer not produced by this backend")
	}
	resultBuf, ok := args.Result.(*buffer)
	if !ok {
		return nil, fmt.Errorf("refdevice: result buffer not produced by this backend")
	}
	counterBuf, ok := args.Counters.(*buffer)
	if !ok {
		return nil, fmt.Errorf("refdevice: counter buffer not produced by this backend")
	}

	cfgBytes := make([]byte, protocol.ConfigSize)
	if err := configBuf.Read(ctx, cfgBytes); err != nil {
		return nil, fmt.Errorf("refdevice: launch: %w", err)
	}
	cfg, err := protocol.UnmarshalConfig(cfgBytes)
	if err != nil {
		return nil, fmt.Errorf("refdevice: launch: %w", err)
	}

	numThreads := uint32(globalSize)
	shared := kernel.NewShared(numThreads)
	l := &launch{done: make(chan struct{})}

	stop := p.closedStopper()
	var wg sync.WaitGroup
	wg.Add(int(numThreads))
	for t := uint32(0); t < numThreads; t++ {
		go func(threadID uint32) {
			defer wg.Done()
			kernel.Run(cfg, threadID, shared, stop)
		}(t)
	}

	// Mirror the flag and result the instant a claim succeeds, so a host
	// polling this buffer observes it promptly rather than only once every
	// work item has quiesced.
	go func() {
		select {
		case <-shared.Won():
			mirrorFlagAndResult(shared, resultBuf, counterBuf)
		case <-l.done:
		}
	}()

	go func() {
		wg.Wait()
		mirrorFlagAndResult(shared, resultBuf, counterBuf)
		mirrorCounters(shared, counterBuf, numThreads)
		close(l.done)
	}()

	return l, nil
}

func (p *program) Close() error {
	p.closedOnce.Do(func() { close(p.closed) })
	return nil
}

func mirrorFlagAndResult(shared *kernel.Shared, resultBuf, counterBuf *buffer) {
	if result, ok := shared.Result(); ok {
		resultBuf.mu.Lock()
		copy(resultBuf.data, result.Marshal())
		resultBuf.mu.Unlock()
	}
	if shared.Flag.Load() {
		counterBuf.mu.Lock()
		binary.LittleEndian.PutUint32(counterBuf.data[0:4], 1)
		counterBuf.mu.Unlock()
	}
}

func mirrorCounters(shared *kernel.Shared, counterBuf *buffer, numThreads uint32) {
	counterBuf.mu.Lock()
	defer counterBuf.mu.Unlock()
	for t := uint32(0); t < numThreads; t++ {
		off := 4 + int(t)*8
		binary.LittleEndian.PutUint64(counterBuf.data[off:off+8], shared.Counters[t].Load())
	}
}

type launch struct{ done chan struct{} }

func (l *launch) Wait(ctx context.Context) error {
	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// buffer is a mutex-guarded in-memory stand-in for device memory.
type buffer struct {
	mu   sync.Mutex
	data []byte
}

func (b *buffer) Write(ctx context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(data) != len(b.data) {
		return fmt.Errorf("refdevice: write size mismatch: buffer=%d data=%d", len(b.data), len(data))
	}
	copy(b.data, data)
	return nil
}

func (b *buffer) Read(ctx context.Context, out []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(out) != len(b.data) {
		return fmt.Errorf("refdevice: read size mismatch: buffer=%d out=%d", len(b.data), len(out))
	}
	copy(out, b.data)
	return nil
}

func (b *buffer) ReadAsync(ctx context.Context, out []byte) (device.Event, error) {
	if err := b.Read(ctx, out); err != nil {
		return nil, err
	}
	return readyEvent{}, nil
}

// readyEvent models a read the software backend completes synchronously;
// Poll always reports done. A real accelerator backend would track genuine
// in-flight completion here instead.
type readyEvent struct{}

func (readyEvent) Poll() (bool, error)            { return true, nil }
func (readyEvent) Wait(ctx context.Context) error { return nil }
