// Package vanityeth is the library entry point for the Ethereum vanity
// address search engine: Search derives candidate addresses across one or
// more devices until the requested condition is matched or a timeout
// elapses (spec section 6).
package vanityeth

import (
	"context"
	"time"

	"github.com/Asylian21/vanity-eth/internal/bip39"
	"github.com/Asylian21/vanity-eth/internal/config"
	"github.com/Asylian21/vanity-eth/internal/device"
	"github.com/Asylian21/vanity-eth/internal/device/refdevice"
	"github.com/Asylian21/vanity-eth/internal/kernelsrc"
	"github.com/Asylian21/vanity-eth/internal/obs"
	"github.com/Asylian21/vanity-eth/internal/orchestrator"
	"github.com/Asylian21/vanity-eth/internal/protocol"
)

// Request is the library API's input (spec section 6).
type Request = config.Request

// ConditionSpec and its kind constants select the user-facing search
// condition a Request carries.
type ConditionSpec = config.ConditionSpec

const (
	ConditionPrefix       = config.ConditionPrefix
	ConditionSuffix       = config.ConditionSuffix
	ConditionLeadingZeros = config.ConditionLeadingZeros
	ConditionPattern      = config.ConditionPattern
)

// SourceMode selects whether candidate material is interpreted as BIP39
// entropy or a raw private key.
type SourceMode = protocol.SourceMode

const (
	SourceMnemonicEntropy = protocol.SourceMnemonicEntropy
	SourcePrivateKey      = protocol.SourcePrivateKey
)

// Response is the outcome of a Search call (spec section 4.8).
type Response = orchestrator.Response

// Snapshot and ProgressFunc let a caller observe live throughput during a
// run without waiting for the final Response.
type Snapshot = orchestrator.Snapshot
type ProgressFunc = orchestrator.ProgressFunc

// options holds the functional-option state Search builds Params from.
type options struct {
	api      device.API
	progress ProgressFunc
	logger   *obs.Logger
}

// Option customizes a Search call beyond what the language-neutral Request
// carries.
type Option func(*options)

// WithDeviceAPI overrides the device backend Search drives. The default is
// the in-process reference backend (internal/device/refdevice); this hook
// exists for a future accelerator-backed device.API implementation, or for
// tests that want a backend double.
func WithDeviceAPI(api device.API) Option {
	return func(o *options) { o.api = api }
}

// WithProgress registers a callback invoked once per poll interval with
// aggregate throughput.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) { o.progress = fn }
}

// WithLogger overrides the structured logger Search and the orchestrator
// log through. The default logs at info level to stderr.
func WithLogger(logger *obs.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Search runs one blocking vanity address search (spec section 6). It
// returns a *config.ConfigError, *config.DeviceInitError,
// *config.DeviceRuntimeError or *config.InvariantError on failure; a
// timeout without a match is not an error (see Response.TimedOut).
func Search(ctx context.Context, req Request, opts ...Option) (Response, error) {
	o := options{api: refdevice.New()}
	for _, apply := range opts {
		apply(&o)
	}

	if err := protocol.AssertLayout(kernelsrc.ConfigSize, kernelsrc.ResultSize); err != nil {
		return Response{}, config.NewInvariantError("%w", err)
	}

	resolved, err := config.Resolve(req)
	if err != nil {
		return Response{}, err
	}

	pollInterval := req.PollInterval
	if pollInterval <= 0 {
		pollInterval = 100 * time.Millisecond
	}

	return orchestrator.Run(ctx, orchestrator.Params{
		API:           o.api,
		ThreadCount:   req.ThreadCount,
		WorkGroupSize: req.WorkGroupSize,
		PollInterval:  pollInterval,
		Timeout:       req.Timeout,
		MultiDevice:   req.MultiDevice,
		SourceMode:    req.SourceMode,
		BaseSeed:      resolved.BaseSeed,
		Condition:     resolved.Condition,
		PatternMask:   resolved.Mask,
		PatternValue:  resolved.Value,
		CheckInterval: req.CheckInterval,
		Progress:      o.progress,
		Logger:        o.logger,
	})
}

// FormatAddress renders a 20-byte address as "0x" + 40 lowercase hex
// characters (spec section 6).
func FormatAddress(addr [20]byte) string {
	return formatHexPrefixed(addr[:])
}

// FormatPrivateKey renders a 32-byte private key as "0x" + 64 lowercase hex
// characters (spec section 6, PrivateKey mode output).
func FormatPrivateKey(priv [32]byte) string {
	return formatHexPrefixed(priv[:])
}

// ReconstructMnemonic derives the 24-word English BIP39 phrase from a
// Response's Seed in MnemonicEntropy mode, guaranteeing a valid checksum
// (spec section 6).
func ReconstructMnemonic(seed [32]byte) string {
	return bip39.EntropyToMnemonic(seed)
}

func formatHexPrefixed(b []byte) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, 2+len(b)*2)
	out[0], out[1] = '0', 'x'
	for i, c := range b {
		out[2+i*2] = hexDigits[c>>4]
		out[2+i*2+1] = hexDigits[c&0xf]
	}
	return string(out)
}
