// Package config defines the search request shape (spec section 6), the
// typed error taxonomy callers of Search match against (spec section 7),
// and the optional YAML file layer the CLI reads flag defaults from.
package config

import "fmt"

// ConfigError reports an invalid request: a malformed predicate string, a
// zero thread count, or a thread/device split that leaves no active
// worker.
type ConfigError struct{ err error }

func (e *ConfigError) Error() string { return fmt.Sprintf("configuration error: %s", e.err) }
func (e *ConfigError) Unwrap() error { return e.err }

// NewConfigError wraps a cause as a ConfigError.
func NewConfigError(format string, args ...any) error {
	return &ConfigError{err: fmt.Errorf(format, args...)}
}

// DeviceInitError reports a failure to enumerate, open, or build a program
// against a device.
type DeviceInitError struct{ err error }

func (e *DeviceInitError) Error() string { return fmt.Sprintf("device initialization error: %s", e.err) }
func (e *DeviceInitError) Unwrap() error { return e.err }

// NewDeviceInitError wraps a cause as a DeviceInitError.
func NewDeviceInitError(format string, args ...any) error {
	return &DeviceInitError{err: fmt.Errorf(format, args...)}
}

// DeviceRuntimeError reports a failure after a device is up and running:
// enqueue failure, buffer read failure, event query failure.
type DeviceRuntimeError struct{ err error }

func (e *DeviceRuntimeError) Error() string { return fmt.Sprintf("device runtime error: %s", e.err) }
func (e *DeviceRuntimeError) Unwrap() error { return e.err }

// NewDeviceRuntimeError wraps a cause as a DeviceRuntimeError.
func NewDeviceRuntimeError(format string, args ...any) error {
	return &DeviceRuntimeError{err: fmt.Errorf(format, args...)}
}

// InvariantError reports a fatal mismatch that should never occur given a
// correctly built program -- currently only the config-record layout
// self-check (protocol.AssertLayout).
type InvariantError struct{ err error }

func (e *InvariantError) Error() string { return fmt.Sprintf("invariant violation: %s", e.err) }
func (e *InvariantError) Unwrap() error { return e.err }

// NewInvariantError wraps a cause as an InvariantError.
func NewInvariantError(format string, args ...any) error {
	return &InvariantError{err: fmt.Errorf(format, args...)}
}
