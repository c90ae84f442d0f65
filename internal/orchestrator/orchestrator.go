// Package orchestrator drives one or more devices through a single search
// run (spec section 4.8): it partitions the caller's requested thread count
// across participating devices, fans out a distinct base seed to each,
// launches every worker, polls for a winner, and aggregates the final
// response. It owns the worker collection exclusively; each worker owns its
// device context, program and buffers (spec section 9's ownership graph).
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/Asylian21/vanity-eth/internal/config"
	"github.com/Asylian21/vanity-eth/internal/device"
	"github.com/Asylian21/vanity-eth/internal/kernel"
	"github.com/Asylian21/vanity-eth/internal/kernelsrc"
	"github.com/Asylian21/vanity-eth/internal/obs"
	"github.com/Asylian21/vanity-eth/internal/protocol"
)

// Params bundles everything one Run call needs: a resolved request plus the
// device layer to drive it on.
type Params struct {
	API device.API

	ThreadCount   int
	WorkGroupSize int
	PollInterval  time.Duration
	Timeout       time.Duration // zero means no deadline
	MultiDevice   bool

	SourceMode    protocol.SourceMode
	BaseSeed      [32]byte
	Condition     protocol.Condition
	PatternMask   [20]byte
	PatternValue  [20]byte
	CheckInterval uint32

	Progress ProgressFunc
	Logger   *obs.Logger
}

type activeWorker struct {
	deviceID string
	devCtx   device.Context
	worker   *device.Worker
}

// Run executes one blocking search (spec section 6: "search(request) ->
// response").
func Run(ctx context.Context, params Params) (Response, error) {
	logger := params.Logger
	if logger == nil {
		logger = obs.New(obs.Config{Level: obs.LevelInfo})
	}

	infos, err := params.API.Devices(ctx)
	if err != nil {
		return Response{}, config.NewDeviceInitError("enumerating devices: %w", err)
	}
	if len(infos) == 0 {
		return Response{}, config.NewDeviceInitError("no devices present")
	}
	if !params.MultiDevice {
		infos = infos[:1]
	}
	logger.Info(fmt.Sprintf("discovered %d candidate device(s)", len(infos)))

	counts := partitionThreads(params.ThreadCount, len(infos))
	if len(counts) == 0 {
		return Response{}, config.NewConfigError("thread/device partition produced no active workers")
	}

	workers, err := startWorkers(ctx, params, infos, counts, logger)
	if err != nil {
		return Response{}, err
	}
	defer closeWorkers(workers)

	start := time.Now()
	var deadline time.Time
	if params.Timeout > 0 {
		deadline = start.Add(params.Timeout)
	}

	pollInterval := params.PollInterval
	if pollInterval <= 0 {
		pollInterval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	winner := -1
pollLoop:
	for {
		for i, w := range workers {
			found, err := w.worker.PollFound(ctx)
			if err != nil {
				return Response{}, config.NewDeviceRuntimeError("polling device %s: %w", w.deviceID, err)
			}
			if found != nil && *found {
				winner = i
				break pollLoop
			}
		}

		if !deadline.IsZero() && time.Now().After(deadline) {
			break pollLoop
		}

		if params.Progress != nil {
			params.Progress(Snapshot{Elapsed: time.Since(start), TotalChecked: sumTotalChecked(ctx, workers, logger)})
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			break pollLoop
		}
	}

	var result *protocol.Result
	if winner >= 0 {
		result, err = workers[winner].worker.ReadResult(ctx)
		if err != nil {
			return Response{}, config.NewDeviceRuntimeError("reading result from device %s: %w", workers[winner].deviceID, err)
		}
	} else {
		// No winner observed via polling; give every worker one
		// non-polling read in case a result landed during the last
		// interval (spec section 4.8).
		for i, w := range workers {
			r, err := w.worker.ReadResult(ctx)
			if err != nil {
				continue
			}
			if r.Found == 1 {
				winner = i
				result = r
				break
			}
		}
	}

	timedOut := winner < 0

	if winner >= 0 {
		// Give losing workers a moment to observe the flag and exit
		// cleanly before the deferred Close tears their buffers down.
		time.Sleep(pollInterval)
	} else {
		for _, w := range workers {
			// No work item has set the flag, so nothing else will stop the
			// kernel; closing the worker's program asks it to stop so that
			// Wait can return.
			w.worker.Close()
			if err := w.worker.Wait(ctx); err != nil {
				logger.Err(err, "worker did not exit cleanly after timeout")
			}
		}
	}

	totalChecked := sumTotalChecked(ctx, workers, logger)
	if totalChecked == 0 && result != nil {
		totalChecked = result.TotalChecked()
	}

	resp := Response{
		Found:        winner >= 0,
		TimedOut:     timedOut,
		SourceMode:   params.SourceMode,
		Elapsed:      time.Since(start),
		TotalChecked: totalChecked,
	}
	if winner >= 0 && result != nil {
		seed := result.ResultSeed
		addr := result.EthAddress
		thread := result.FoundByThread
		resp.Seed = &seed
		resp.Address = &addr
		resp.WinningThread = &thread
		resp.WinningDevice = workers[winner].deviceID
		logger.Info(fmt.Sprintf("match found on device %s, thread %d", workers[winner].deviceID, thread))
	} else if timedOut {
		logger.Warn("search timed out without a match")
	}

	return resp, nil
}

func startWorkers(ctx context.Context, params Params, infos []device.Info, counts []int, logger *obs.Logger) ([]activeWorker, error) {
	source := kernelsrc.Assemble(params.SourceMode)
	workers := make([]activeWorker, 0, len(counts))

	for i, threads := range counts {
		info := infos[i]
		devCtx, err := params.API.Open(ctx, info)
		if err != nil {
			closeWorkers(workers)
			return nil, config.NewDeviceInitError("opening device %s: %w", info.ID, err)
		}
		program, err := devCtx.BuildProgram(ctx, source)
		if err != nil {
			devCtx.Close()
			closeWorkers(workers)
			return nil, config.NewDeviceInitError("building program on device %s: %w", info.ID, err)
		}
		worker, err := device.NewWorker(ctx, info.ID, program, uint32(threads))
		if err != nil {
			program.Close()
			devCtx.Close()
			closeWorkers(workers)
			return nil, config.NewDeviceInitError("allocating buffers on device %s: %w", info.ID, err)
		}

		cfg := &protocol.Config{
			BaseSeed:      kernel.AddUint64(params.BaseSeed, uint64(i+1)),
			NumThreads:    uint32(threads),
			SourceMode:    params.SourceMode,
			TargetChain:   protocol.ChainEthereum,
			Condition:     params.Condition.Encode(),
			CheckInterval: effectiveCheckInterval(params.CheckInterval),
			PatternMask:   params.PatternMask,
			PatternValue:  params.PatternValue,
		}
		if err := worker.Prepare(ctx, cfg); err != nil {
			worker.Close()
			devCtx.Close()
			closeWorkers(workers)
			return nil, config.NewDeviceRuntimeError("preparing device %s: %w", info.ID, err)
		}

		localSize := params.WorkGroupSize
		if localSize <= 0 {
			localSize = threads
		}
		if err := worker.Launch(ctx, threads, localSize); err != nil {
			worker.Close()
			devCtx.Close()
			closeWorkers(workers)
			return nil, config.NewDeviceRuntimeError("launching device %s: %w", info.ID, err)
		}

		logger.Info(fmt.Sprintf("launched %d threads on device %s", threads, info.ID))
		workers = append(workers, activeWorker{deviceID: info.ID, devCtx: devCtx, worker: worker})
	}

	return workers, nil
}

func closeWorkers(workers []activeWorker) {
	for _, w := range workers {
		w.worker.Close()
		w.devCtx.Close()
	}
}

func sumTotalChecked(ctx context.Context, workers []activeWorker, logger *obs.Logger) uint64 {
	var total uint64
	for _, w := range workers {
		n, err := w.worker.ReadTotalChecked(ctx)
		if err != nil {
			logger.Err(err, "reading per-worker counters during aggregation")
			continue
		}
		total += n
	}
	return total
}

func effectiveCheckInterval(requested uint32) uint32 {
	if requested == 0 {
		return protocol.DefaultCheckInterval
	}
	return requested
}
