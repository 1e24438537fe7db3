package cli

import (
	"fmt"

	"github.com/existflow/clientpulse/internal/config"
	"github.com/existflow/clientpulse/internal/logger"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	logFile    string
	logConsole bool

	// cfg is loaded once per invocation before any subcommand runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "clientpulse",
	Short: "ClientPulse - CRM backend for freelancers",
	Long: `ClientPulse serves the HTTP API for clients, projects, invoices and
meetings, and imports client profiles from LinkedIn, Upwork, Fiverr,
pasted emails and webhooks.

Settings come from an optional YAML file (--config or CLIENTPULSE_CONFIG)
overlaid by environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}

		// Override with CLI flags if provided
		if cmd.Flags().Changed("log-level") {
			loaded.Log.Level = logLevel
		}
		if cmd.Flags().Changed("log-file") {
			loaded.Log.File = logFile
		}
		if cmd.Flags().Changed("log-console") {
			loaded.Log.Console = logConsole
		}
		cfg = loaded

		logConfig := logger.Config{
			Level:    logger.ParseLevel(cfg.Log.Level),
			FilePath: cfg.Log.File,
			Console:  cfg.Log.Console,
			JSON:     cfg.IsProduction(),
		}
		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Debug("ClientPulse started", logger.F("command", cmd.Name()), logger.F("env", cfg.Env))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(tokenCmd)
}
