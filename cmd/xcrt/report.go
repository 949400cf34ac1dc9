package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"xcrt/internal/crash"
	"xcrt/internal/driver"
)

var (
	reportFormat     string
	reportShowStdout bool
)

var reportCmd = &cobra.Command{
	Use:   "report <file" + crash.Ext + ">",
	Short: "Show a crash report written by xcrt run --crash-dir",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(reportFormat)
		switch format {
		case "pretty", "json":
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", reportFormat)
		}
		rep, err := crash.Read(args[0])
		if err != nil {
			return err
		}
		if format == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		}
		renderReportPretty(cmd.OutOrStdout(), rep, reportShowStdout)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "pretty", "output format (pretty|json)")
	reportCmd.Flags().BoolVar(&reportShowStdout, "stdout", false, "include the program output captured before the failure")
}

func renderReportPretty(out io.Writer, rep *crash.Report, showStdout bool) {
	pal := driverPalette(os.Stdout)
	argv := append([]string{rep.Program}, rep.Args...)
	fmt.Fprintf(out, "program: %s\n", strings.Join(argv, " "))
	fmt.Fprintf(out, "time:    %s\n", rep.Time.Local().Format(time.RFC3339))
	fmt.Fprintf(out, "runtime: xcrt %s\n", rep.Version)
	fmt.Fprintf(out, "heap:    %d allocs, %d frees, %d live\n", rep.Heap.Allocs, rep.Heap.Frees, rep.Heap.Live)
	fmt.Fprintln(out)
	fmt.Fprint(out, driver.FormatReport(rep.Err(), pal))
	if rep.GoStack != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, pal.Note("go stack:"))
		fmt.Fprint(out, rep.GoStack)
	}
	if len(rep.Timings.Phases) > 0 {
		fmt.Fprintln(out)
		for _, p := range rep.Timings.Phases {
			fmt.Fprintf(out, "  %-12s %7.2f ms\n", p.Name, p.DurationMS)
		}
	}
	if showStdout && rep.Stdout != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, pal.Note("stdout:"))
		fmt.Fprint(out, rep.Stdout)
		if !strings.HasSuffix(rep.Stdout, "\n") {
			fmt.Fprintln(out)
		}
	}
}

func driverPalette(f *os.File) *driver.Palette {
	return driver.NewPalette(colorFor(f))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
