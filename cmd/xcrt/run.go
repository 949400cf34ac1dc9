package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"xcrt/internal/driver"
	"xcrt/internal/observ"
	"xcrt/internal/rt"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] <program> [-- args...]",
	Short: "Run a registered xc program",
	Long: `Run executes a registered program with the process's standard streams.
Arguments after -- are passed to the program. A fatal runtime error prints the
call trace to stderr and exits with status 1.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExecution,
}

func init() {
	runCmd.Flags().Bool("check-leaks", true, "fail a clean run that leaves objects alive")
	runCmd.Flags().String("crash-dir", "", "write a crash report to this directory on fatal errors")
}

func runExecution(cmd *cobra.Command, args []string) error {
	prog, ok := driver.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown program %q (see xcrt list)", args[0])
	}
	progArgs := args[1:]

	checkLeaks := settings.Run.CheckLeaks
	if cmd.Flags().Changed("check-leaks") {
		v, err := cmd.Flags().GetBool("check-leaks")
		if err != nil {
			return fmt.Errorf("failed to get check-leaks flag: %w", err)
		}
		checkLeaks = v
	}
	crashDir := settings.Run.CrashDir
	if cmd.Flags().Changed("crash-dir") {
		v, err := cmd.Flags().GetString("crash-dir")
		if err != nil {
			return fmt.Errorf("failed to get crash-dir flag: %w", err)
		}
		crashDir = v
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	timer := observ.NewTimer()
	res, err := driver.Run(cmd.Context(), prog, driver.Options{
		Args:       progArgs,
		Host:       rt.NewOSHost(prog.Name, progArgs),
		CheckLeaks: checkLeaks,
		CrashDir:   crashDir,
		Color:      colorFor(os.Stderr),
		Timer:      timer,
	})
	if showTimings {
		fmt.Fprint(os.Stderr, timer.Summary())
		fmt.Fprintf(os.Stderr, "heap: %d allocs, %d frees, %d live\n", res.Heap.Allocs, res.Heap.Frees, res.Heap.Live)
	}
	if err != nil {
		return err
	}
	exitCode = res.ExitCode
	return nil
}
