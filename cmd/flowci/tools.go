package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"flowci/internal/gate"
	"flowci/internal/minver"
	"flowci/internal/workflow"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <workflow.yaml>",
		Short: "Check a workflow file against the structural invariants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := workflow.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("workflow %q ok: %d jobs\n", def.Name, len(def.Jobs))
			return nil
		},
	}
}

func newCoverageCmd() *cobra.Command {
	var report string
	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Enforce the coverage thresholds against a report",
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := gate.LoadReport(report)
			if err != nil {
				return err
			}
			violations := gate.New().Check(rep)
			for _, v := range violations {
				// one diagnostic per violated threshold
				fmt.Fprintln(os.Stderr, "ERROR:", v)
			}
			if len(violations) > 0 {
				return fmt.Errorf("coverage gate failed: %d threshold violation(s)", len(violations))
			}
			fmt.Printf("coverage ok: total %.1f%%\n", rep.Total)
			return nil
		},
	}
	cmd.Flags().StringVar(&report, "report", "coverage.json", "path to the JSON coverage report")
	return cmd
}

func newPinMinimumsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pin-minimums <requirements.txt>...",
		Short: "Rewrite at-least dependency constraints to exact pins",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				if err := minver.RewriteFile(path); err != nil {
					return err
				}
				fmt.Printf("pinned %s\n", path)
			}
			return nil
		},
	}
}
