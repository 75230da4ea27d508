package cli

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/notary/internal/app"
	"github.com/MrSnakeDoc/notary/internal/config"
	"github.com/MrSnakeDoc/notary/internal/logger"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Notary HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	cfg := config.Load()
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = loggerClient.Sync() }()

	a, err := app.New(cmd.Context(), cfg, loggerClient)
	if err != nil {
		loggerClient.Error("failed to start", logger.Error(err))
		return err
	}
	return a.Run()
}
