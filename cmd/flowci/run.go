package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"flowci/internal/config"
	"flowci/internal/event"
	"flowci/internal/exec"
	"flowci/internal/logging"
	"flowci/internal/notify"
	"flowci/internal/run"
	"flowci/internal/runner"
	"flowci/internal/storage"
	"flowci/internal/trigger"
)

func newRunCmd() *cobra.Command {
	var (
		kind   string
		branch string
		force  bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the workflow once for a synthetic event",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logging.NewLogger()

			payload, _ := json.Marshal(event.Event{
				Kind:       event.Kind(kind),
				Branch:     branch,
				Repository: cfg.Repository,
			})
			ev, err := event.Parse(payload)
			if err != nil {
				return err
			}

			rules := trigger.Rules{Branches: cfg.Branches, Cron: cfg.Cron}
			if !rules.Matches(ev) && !force {
				fmt.Println("event does not match the trigger rules, no run produced (use --force to override)")
				return nil
			}

			def, err := loadWorkflow(cfg.Workflow)
			if err != nil {
				return err
			}

			rnr := &runner.Runner{
				Executor: exec.New(),
				Logs:     storage.NewLogStore(cfg.LogDir),
				Notifier: &notify.Notifier{
					WebhookURL: cfg.SlackWebhookURL,
					Repository: cfg.Repository,
					Log:        log,
				},
				Log: log,
			}

			rn := run.New(ev)
			if err := rnr.Execute(cmd.Context(), def, rn); err != nil {
				return err
			}

			printSummary(rn)
			if rn.Outcome() == run.OutcomeFailure {
				return fmt.Errorf("run %s failed", rn.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(event.KindWorkflowDispatch), "event kind (schedule|push|pull_request|workflow_dispatch)")
	cmd.Flags().StringVar(&branch, "branch", "", "target branch for push and pull_request events")
	cmd.Flags().BoolVar(&force, "force", false, "run even when the trigger rules do not match")
	return cmd
}

func printSummary(rn *run.Run) {
	jobs := rn.Jobs()
	names := make([]string, 0, len(jobs))
	for name := range jobs {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("\nRun %s (%s)\n", rn.ID, rn.Outcome())
	for _, name := range names {
		fmt.Printf("  %-40s %s\n", name, jobs[name].Outcome)
	}
}
