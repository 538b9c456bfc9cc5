package main

import (
	"eld-log-service/internal/services"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newHOSCmd() *cobra.Command {
	var driving, window, cycle float64

	cmd := &cobra.Command{
		Use:   "hos",
		Short: "Check hours against the HOS limits",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			report := services.CheckCompliance(driving, window, cycle)

			if report.Compliant {
				fmt.Fprintln(out, "compliant")
			} else {
				fmt.Fprintf(out, "violations: %s\n", strings.Join(report.Violations, "; "))
			}
			fmt.Fprintf(out, "remaining: driving=%.2fh window=%.2fh cycle=%.2fh\n",
				report.RemainingDriving, report.RemainingWindow, report.RemainingCycle)

			if rest := services.RequiredRest(driving, window); rest != nil {
				fmt.Fprintf(out, "required: %s (%.1fh)\n", rest.Reason, rest.DurationHours)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&driving, "driving", 0, "hours driven since the last 10-hour rest")
	cmd.Flags().Float64Var(&window, "window", 0, "hours since the duty window opened")
	cmd.Flags().Float64Var(&cycle, "cycle", 0, "hours used in the 70-hour/8-day cycle")
	return cmd
}
