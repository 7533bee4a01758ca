package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/abelbrown/datascope/internal/api"
	"github.com/abelbrown/datascope/internal/config"
	"github.com/abelbrown/datascope/internal/logging"
	"github.com/abelbrown/datascope/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "datascope",
	Short: "Browse paginated REST collections in the terminal",
	Long: `Datascope is a terminal browser for paginated REST collections.
It pages through users and products from a DummyJSON-style API, with
free-text search and per-field filters applied to the loaded page.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("api-url", config.DefaultAPIURL, "base URL of the collection API")
	flags.Duration("timeout", config.DefaultTimeout, "HTTP request timeout")
	flags.Int("page-size", 5, "initial page size (5, 10, 20 or 50)")
	flags.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves configuration with flags taking precedence over env
// vars and the config file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dataDir, err := config.DataDir()
	if err != nil {
		return nil, err
	}

	v := config.New(dataDir)
	bindings := map[string]string{
		config.KeyAPIURL:   "api-url",
		config.KeyTimeout:  "timeout",
		config.KeyPageSize: "page-size",
		config.KeyLogLevel: "log-level",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	return config.Resolve(v, dataDir)
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := logging.Init(cfg.DataDir, cfg.LogLevel); err != nil {
		return err
	}
	defer logging.Close()

	logging.Logger.Info("connecting", "api_url", cfg.APIBaseURL, "page_size", cfg.PageSize)

	client := api.NewClient(cfg.APIBaseURL, cfg.Timeout)
	app := ui.NewApp(client, cfg.PageSize)

	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logging.Logger.Error("program failed", "err", err)
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
