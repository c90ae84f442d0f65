// Package device defines the accelerator abstraction the orchestrator
// drives (spec section 7): device enumeration, program compilation, buffer
// upload/read, and asynchronous kernel launch. The core never names a
// specific accelerator vendor or API; internal/device/refdevice is the only
// concrete implementation shipped here, and it is reference/test
// scaffolding rather than a production backend (see its package doc).
package device

import "context"

// Info describes one enumerable device.
type Info struct {
	// ID is stable across a process's lifetime and is what the
	// orchestrator echoes back as a response's winning device identifier.
	ID string
	// Name is a human-readable label for logs and diagnostics.
	Name string
}

// API enumerates and opens devices.
type API interface {
	Devices(ctx context.Context) ([]Info, error)
	Open(ctx context.Context, info Info) (Context, error)
}

// Context is an opened device session capable of building a program.
type Context interface {
	BuildProgram(ctx context.Context, source string) (Program, error)
	Close() error
}

// BufferFlags describes the access pattern a buffer will be used under,
// letting an implementation choose the cheapest backing memory.
type BufferFlags uint8

const (
	// BufferReadOnly is written once by the host, then only read by the
	// device (the config record).
	BufferReadOnly BufferFlags = 1 << iota
	// BufferWriteOnly is written by the device, then only read by the
	// host (the result record).
	BufferWriteOnly
	// BufferReadWrite is written and read by both sides (the flag and
	// counter region).
	BufferReadWrite
)

// LaunchArgs binds a program's buffers to kernel arguments in the fixed
// order the search kernel expects: config, result, flag+counters.
type LaunchArgs struct {
	Config   Buffer
	Result   Buffer
	Counters Buffer
}

// Program is a compiled kernel, ready to allocate buffers and launch.
type Program interface {
	NewBuffer(ctx context.Context, size int, flags BufferFlags) (Buffer, error)
	Launch(ctx context.Context, globalSize, localSize int, args LaunchArgs) (Launch, error)
	Close() error
}

// Buffer is a device-resident memory region the host can write to and read
// from.
type Buffer interface {
	Write(ctx context.Context, data []byte) error
	Read(ctx context.Context, out []byte) error
	ReadAsync(ctx context.Context, out []byte) (Event, error)
}

// Event represents an in-flight asynchronous read.
type Event interface {
	Poll() (done bool, err error)
	Wait(ctx context.Context) error
}

// Launch represents an in-flight kernel execution.
type Launch interface {
	Wait(ctx context.Context) error
}
