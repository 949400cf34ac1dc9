package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	_ "xcrt/internal/programs"
	"xcrt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "xcrt",
	Short: "Runtime host for generated xc programs",
	Long: `xcrt runs xc programs linked against the object runtime, reports fatal
errors with their call trace and replays recorded cases as a selftest`,
	SilenceUsage:       true,
	PersistentPreRunE:  prepare,
	PersistentPostRunE: finish,
}

// exitCode is the process status chosen by the command that ran.
var exitCode int

// main registers subcommands and persistent flags and executes the root
// command. The process exits with the status the command chose, or 1 when it
// returned an error.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(selftestCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("config", "", "path to xcrt.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (\"-\" for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|call|heap|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 0, "events kept in ring mode (0 = default)")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 = off)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile of xcrt itself to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile of xcrt itself to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go execution trace to this file")

	err := rootCmd.Execute()
	runCleanups()
	if err != nil {
		os.Exit(1)
	}
	os.Exit(exitCode)
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
