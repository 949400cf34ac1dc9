package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"xcrt/internal/driver"
	"xcrt/internal/selftest"
)

var listShowCases bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered programs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, p := range driver.Programs() {
			fmt.Fprintf(w, "%s\t%d cases\t%s\n", p.Name, len(p.Cases), p.Doc)
			if !listShowCases {
				continue
			}
			for _, c := range p.Cases {
				fmt.Fprintf(w, "  %s\t%s\t\n", selftest.CaseID(p, c), caseExpectation(c))
			}
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().BoolVar(&listShowCases, "cases", false, "list recorded cases under each program")
}

func caseExpectation(c driver.Case) string {
	if c.Fatal != 0 {
		return fmt.Sprintf("exit %d, %s", c.ExitCode, c.Fatal.Label())
	}
	return fmt.Sprintf("exit %d", c.ExitCode)
}
