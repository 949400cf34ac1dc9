package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"xcrt/internal/driver"
	"xcrt/internal/selftest"
)

var selftestCmd = &cobra.Command{
	Use:   "selftest [program...]",
	Short: "Replay recorded cases of registered programs",
	Long: `Selftest runs every recorded case (or those of the named programs) in a
child xcrt process and compares output, exit status and fatal error kind.`,
	RunE: runSelftest,
}

func init() {
	selftestCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	selftestCmd.Flags().Int("jobs", 0, "cases run in parallel (0 = config or GOMAXPROCS)")
	selftestCmd.Flags().Duration("timeout", 0, "per-case time limit (0 = config)")
	selftestCmd.Flags().Bool("in-process", false, "run cases inside this process, one at a time")
}

var errSelftestFailed = errors.New("selftest failed")

func runSelftest(cmd *cobra.Command, args []string) error {
	progs, err := selectPrograms(args)
	if err != nil {
		return err
	}

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readSwitch("ui", uiValue)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs == 0 {
		jobs = settings.Selftest.Jobs
	}
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return fmt.Errorf("failed to get timeout flag: %w", err)
	}
	if timeout == 0 {
		timeout = settings.Selftest.Timeout.Duration
	}
	inProcess, err := cmd.Flags().GetBool("in-process")
	if err != nil {
		return fmt.Errorf("failed to get in-process flag: %w", err)
	}

	opts := selftest.Options{Jobs: jobs, Timeout: timeout}
	if !inProcess {
		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to locate xcrt binary: %w", err)
		}
		opts.Exe = exe
	}

	var results []selftest.CaseResult
	if switchEnabled(mode, os.Stdout) {
		results, err = runSelftestWithUI(cmd.Context(), "selftest", progs, opts)
	} else {
		results, err = selftest.Run(cmd.Context(), progs, opts)
	}
	if err != nil {
		return err
	}

	printResults(cmd.OutOrStdout(), results)
	if _, failed := selftest.Summary(results); failed > 0 {
		return errSelftestFailed
	}
	return nil
}

func selectPrograms(names []string) ([]*driver.Program, error) {
	if len(names) == 0 {
		return driver.Programs(), nil
	}
	progs := make([]*driver.Program, 0, len(names))
	for _, name := range names {
		p, ok := driver.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown program %q (see xcrt list)", name)
		}
		if !slices.Contains(progs, p) {
			progs = append(progs, p)
		}
	}
	return progs, nil
}

func printResults(out io.Writer, results []selftest.CaseResult) {
	pal := driverPalette(os.Stdout)
	for _, r := range results {
		if r.Passed() {
			fmt.Fprintf(out, "ok   %s (%.1f ms)\n", r.ID, toMillis(r.Elapsed))
			continue
		}
		fmt.Fprintf(out, "%s %s: %v\n", pal.Note("FAIL"), r.ID, r.Err)
	}
	passed, failed := selftest.Summary(results)
	fmt.Fprintf(out, "%d passed, %d failed\n", passed, failed)
}
