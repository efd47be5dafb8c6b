package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the orchestrator's configuration. The Slack webhook URL
// is a secret and is only ever read from the environment
// (FLOWCI_SLACK_WEBHOOK_URL), never from the config file.
type Config struct {
	Listen          string   `mapstructure:"listen"`
	Repository      string   `mapstructure:"repository"`
	Workflow        string   `mapstructure:"workflow"`
	LogDir          string   `mapstructure:"log_dir"`
	Branches        []string `mapstructure:"branches"`
	Cron            string   `mapstructure:"cron"`
	SlackWebhookURL string   `mapstructure:"-"`
}

// Load reads flowci.yaml (if present) and the environment. Every key
// can be overridden with a FLOWCI_ prefixed variable.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("flowci")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("flowci")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("listen", ":8080")
	v.SetDefault("repository", "")
	v.SetDefault("workflow", "")
	v.SetDefault("log_dir", "./logs")
	v.SetDefault("branches", []string{"main", "develop", "release-*"})
	v.SetDefault("cron", "0 0 * * 4")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		// running without a config file is fine
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	// the webhook secret never lives in the config file
	cfg.SlackWebhookURL = os.Getenv("FLOWCI_SLACK_WEBHOOK_URL")
	return &cfg, nil
}
