package main

import (
	"net/http"

	"github.com/spf13/cobra"

	"flowci/internal/config"
	"flowci/internal/exec"
	"flowci/internal/logging"
	"flowci/internal/notify"
	"flowci/internal/runner"
	"flowci/internal/server"
	"flowci/internal/storage"
	"flowci/internal/trigger"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Receive repository events over HTTP and run the workflow",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logging.NewLogger()

			def, err := loadWorkflow(cfg.Workflow)
			if err != nil {
				return err
			}
			rules := trigger.Rules{Branches: cfg.Branches, Cron: cfg.Cron}

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
			if cfg.SlackWebhookURL == "" {
				log.Info("FLOWCI_SLACK_WEBHOOK_URL not set, scheduled failures will not notify")
			}

			srv := server.New(def, rules, rnr, log)
			log.Info("flowci listening on %s", cfg.Listen)
			return http.ListenAndServe(cfg.Listen, srv.Router())
		},
	}
}
