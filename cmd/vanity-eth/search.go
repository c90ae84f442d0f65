package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	vanityeth "github.com/Asylian21/vanity-eth"

	"github.com/Asylian21/vanity-eth/internal/config"
	"github.com/Asylian21/vanity-eth/internal/obs"
)

var searchFlags struct {
	prefix        string
	suffix        string
	leadingZeros  int
	pattern       string
	threadCount   int
	workGroupSize int
	pollInterval  time.Duration
	timeout       time.Duration
	checkInterval uint32
	sourceMode    string
	multiDevice   bool
	baseSeedHex   string
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one vanity address search and print the winning address",
	RunE:  runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.StringVar(&searchFlags.prefix, "prefix", "", "required hex prefix the address must start with")
	f.StringVar(&searchFlags.suffix, "suffix", "", "required hex suffix the address must end with")
	f.IntVar(&searchFlags.leadingZeros, "leading-zeros", -1, "number of required leading zero bytes (0..20)")
	f.StringVar(&searchFlags.pattern, "pattern", "", "40-nibble hex pattern with 'x' wildcards, e.g. dead followed by 36 x's")
	f.IntVar(&searchFlags.threadCount, "threads", 1<<16, "total number of search threads across all devices")
	f.IntVar(&searchFlags.workGroupSize, "work-group-size", 256, "device work-group size")
	f.DurationVar(&searchFlags.pollInterval, "poll-interval", 100*time.Millisecond, "host poll interval")
	f.DurationVar(&searchFlags.timeout, "timeout", 0, "search deadline; zero means no timeout")
	f.Uint32Var(&searchFlags.checkInterval, "check-interval", 0, "kernel iterations between early-exit checks (0 uses the protocol default)")
	f.StringVar(&searchFlags.sourceMode, "source-mode", "mnemonic_entropy", "candidate material mode: mnemonic_entropy or private_key")
	f.BoolVar(&searchFlags.multiDevice, "multi-device", false, "fan the search out across every device the backend reports")
	f.StringVar(&searchFlags.baseSeedHex, "base-seed", "", "fix the search's starting 32-byte seed as 64 hex characters, instead of drawing one from the host RNG")
}

func runSearch(cmd *cobra.Command, args []string) error {
	logger := obs.New(obs.Config{Level: levelFromVerbose(verbose)})

	req, err := buildRequest()
	if err != nil {
		return err
	}

	if cfgFile != "" {
		fc, err := config.LoadFileConfig(cfgFile)
		if err != nil {
			return err
		}
		req, err = fc.ApplyDefaults(req)
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	resp, err := vanityeth.Search(ctx, req,
		vanityeth.WithLogger(logger),
		vanityeth.WithProgress(func(s vanityeth.Snapshot) {
			logger.With("checked", s.TotalChecked).
				With("checked_per_sec", s.CheckedPerSecond()).
				Debug("search progress")
		}),
	)
	if err != nil {
		return err
	}

	return printResult(cmd, req, resp, time.Since(start))
}

func buildRequest() (vanityeth.Request, error) {
	cond, err := buildCondition()
	if err != nil {
		return vanityeth.Request{}, err
	}

	sourceMode, err := parseSourceMode(searchFlags.sourceMode)
	if err != nil {
		return vanityeth.Request{}, err
	}

	req := vanityeth.Request{
		Condition:     cond,
		ThreadCount:   searchFlags.threadCount,
		WorkGroupSize: searchFlags.workGroupSize,
		PollInterval:  searchFlags.pollInterval,
		Timeout:       searchFlags.timeout,
		CheckInterval: searchFlags.checkInterval,
		SourceMode:    sourceMode,
		MultiDevice:   searchFlags.multiDevice,
	}

	if searchFlags.baseSeedHex != "" {
		seed, err := parseBaseSeedFlag(searchFlags.baseSeedHex)
		if err != nil {
			return vanityeth.Request{}, err
		}
		req.BaseSeed = &seed
	}

	return req, nil
}

func buildCondition() (vanityeth.ConditionSpec, error) {
	set := 0
	var cond vanityeth.ConditionSpec
	if searchFlags.prefix != "" {
		set++
		cond = vanityeth.ConditionSpec{Kind: vanityeth.ConditionPrefix, Prefix: searchFlags.prefix}
	}
	if searchFlags.suffix != "" {
		set++
		cond = vanityeth.ConditionSpec{Kind: vanityeth.ConditionSuffix, Suffix: searchFlags.suffix}
	}
	if searchFlags.pattern != "" {
		set++
		cond = vanityeth.ConditionSpec{Kind: vanityeth.ConditionPattern, Pattern: searchFlags.pattern}
	}
	if searchFlags.leadingZeros >= 0 {
		set++
		cond = vanityeth.ConditionSpec{Kind: vanityeth.ConditionLeadingZeros, LeadingZeros: searchFlags.leadingZeros}
	}
	if set == 0 {
		// Fall through to the optional --config file, which ApplyDefaults
		// may still populate; an empty condition is caught by config.Resolve
		// once the file has had its chance to fill it in.
		return vanityeth.ConditionSpec{Kind: vanityeth.ConditionPrefix, Prefix: ""}, nil
	}
	if set > 1 {
		return vanityeth.ConditionSpec{}, fmt.Errorf("exactly one of --prefix, --suffix, --pattern, --leading-zeros may be set, got %d", set)
	}
	return cond, nil
}

func parseSourceMode(s string) (vanityeth.SourceMode, error) {
	switch s {
	case "mnemonic_entropy":
		return vanityeth.SourceMnemonicEntropy, nil
	case "private_key":
		return vanityeth.SourcePrivateKey, nil
	default:
		return 0, fmt.Errorf("unknown --source-mode %q, want mnemonic_entropy or private_key", s)
	}
}

func parseBaseSeedFlag(s string) ([32]byte, error) {
	var seed [32]byte
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s) != 64 {
		return seed, fmt.Errorf("--base-seed must be exactly 64 hex characters, got %d", len(s))
	}
	for i := 0; i < 32; i++ {
		hi, okHi := hexDigit(s[2*i])
		lo, okLo := hexDigit(s[2*i+1])
		if !okHi || !okLo {
			return seed, fmt.Errorf("--base-seed %q is not valid hex", s)
		}
		seed[i] = hi<<4 | lo
	}
	return seed, nil
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

func printResult(cmd *cobra.Command, req vanityeth.Request, resp vanityeth.Response, wall time.Duration) error {
	out := cmd.OutOrStdout()
	if !resp.Found {
		fmt.Fprintf(out, "no match found (timed_out=%v, checked=%d, elapsed=%s)\n", resp.TimedOut, resp.TotalChecked, wall)
		return nil
	}

	fmt.Fprintf(out, "address:   %s\n", vanityeth.FormatAddress(*resp.Address))
	switch resp.SourceMode {
	case vanityeth.SourceMnemonicEntropy:
		fmt.Fprintf(out, "mnemonic:  %s\n", vanityeth.ReconstructMnemonic(*resp.Seed))
	case vanityeth.SourcePrivateKey:
		fmt.Fprintf(out, "privkey:   %s\n", vanityeth.FormatPrivateKey(*resp.Seed))
	}
	fmt.Fprintf(out, "device:    %s\n", resp.WinningDevice)
	fmt.Fprintf(out, "checked:   %d (%.0f/s)\n", resp.TotalChecked, resp.CheckedPerSecond())
	fmt.Fprintf(out, "elapsed:   %s\n", wall)
	return nil
}

func levelFromVerbose(v bool) obs.Level {
	if v {
		return obs.LevelDebug
	}
	return obs.LevelInfo
}
