package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"kbc-quiz-service/internal/config"
)

var (
	port       string
	configPath string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:          "kbc-quiz",
		Short:        "Fifteen-rung prize ladder quiz server",
		SilenceUsage: true,
	}

	// An empty port defers to the config file.
	cmd.PersistentFlags().StringVar(&port, "port", os.Getenv("PORT"), "port to listen on")
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(NewStartCmd(&configPath, &port))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	cmd.AddCommand(NewSeedCmd(&configPath))
	return cmd
}

// setupLogger installs a JSON slog handler at the configured level.
func setupLogger(cfg config.Config) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: config.LogLevel(cfg.Log.Level)})
	slog.SetDefault(slog.New(handler))
}
