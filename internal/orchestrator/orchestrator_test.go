package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/Asylian21/vanity-eth/internal/device"
	"github.com/Asylian21/vanity-eth/internal/device/refdevice"
	"github.com/Asylian21/vanity-eth/internal/predicate"
	"github.com/Asylian21/vanity-eth/internal/protocol"
)

func TestRunFindsImmediateMatch(t *testing.T) {
	cond, err := predicate.ParseLeadingZeros(0) // satisfied by any address
	if err != nil {
		t.Fatal(err)
	}

	params := Params{
		API:           refdevice.New(),
		ThreadCount:   4,
		WorkGroupSize: 4,
		PollInterval:  5 * time.Millisecond,
		Timeout:       2 * time.Second,
		SourceMode:    protocol.SourcePrivateKey,
		Condition:     cond,
		CheckInterval: 1024,
	}
	params.BaseSeed[31] = 7

	resp, err := Run(context.Background(), params)
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Found {
		t.Fatal("expected a match")
	}
	if resp.TimedOut {
		t.Error("a found result should not also report timed_out")
	}
	if resp.Seed == nil || resp.Address == nil || resp.WinningThread == nil {
		t.Fatal("expected seed, address and winning thread to be populated")
	}
	if resp.WinningDevice == "" {
		t.Error("expected a winning device identifier")
	}
	if resp.TotalChecked == 0 {
		t.Error("expected a nonzero total checked count")
	}

	ok := predicate.Evaluate(*resp.Address, cond, [20]byte{}, [20]byte{})
	if !ok {
		t.Error("the returned address should satisfy the requested condition")
	}
}

func TestRunTimesOutOnUnreachableCondition(t *testing.T) {
	cond, mask, value, err := predicate.ParsePrefix("abcdef012345") // 2^48 search space
	if err != nil {
		t.Fatal(err)
	}

	params := Params{
		API:           refdevice.New(),
		ThreadCount:   8,
		WorkGroupSize: 8,
		PollInterval:  5 * time.Millisecond,
		Timeout:       150 * time.Millisecond,
		SourceMode:    protocol.SourcePrivateKey,
		Condition:     cond,
		PatternMask:   mask,
		PatternValue:  value,
		CheckInterval: 64,
	}
	params.BaseSeed[31] = 3

	resp, err := Run(context.Background(), params)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Found {
		t.Fatal("did not expect a match against an effectively unreachable condition in this window")
	}
	if !resp.TimedOut {
		t.Error("expected timed_out to be true")
	}
	if resp.TotalChecked == 0 {
		t.Error("expected some iterations to have been counted before timing out")
	}
}

func TestRunRejectsEmptyDeviceList(t *testing.T) {
	cond, err := predicate.ParseLeadingZeros(0)
	if err != nil {
		t.Fatal(err)
	}
	params := Params{
		API:         emptyAPI{},
		ThreadCount: 1,
		SourceMode:  protocol.SourcePrivateKey,
		Condition:   cond,
	}
	if _, err := Run(context.Background(), params); err == nil {
		t.Fatal("expected an error when no devices are present")
	}
}

type emptyAPI struct{}

func (emptyAPI) Devices(ctx context.Context) ([]device.Info, error) { return nil, nil }

func (emptyAPI) Open(ctx context.Context, info device.Info) (device.Context, error) {
	return nil, nil
}
