package main

import (
	"os"

	"github.com/spf13/cobra"

	"flowci/internal/workflow"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "flowci",
		Short:         "Trigger-and-job CI orchestrator",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(
		newServeCmd(),
		newRunCmd(),
		newValidateCmd(),
		newCoverageCmd(),
		newPinMinimumsCmd(),
	)
	return root
}

// loadWorkflow returns the workflow at path, or the built-in default
// when no path is configured.
func loadWorkflow(path string) (*workflow.Definition, error) {
	if path == "" {
		return workflow.Default(), nil
	}
	return workflow.Load(path)
}
