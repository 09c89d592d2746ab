package cli

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/freenight/internal/app"
	"github.com/MrSnakeDoc/freenight/internal/config"
	"github.com/MrSnakeDoc/freenight/internal/logger"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, catalog refresher and garbage collector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			cfg.MustHaveRenderer()

			log := logger.New(cfg.LogLevel, cfg.PrettyLog)
			defer func() { _ = log.Sync() }()

			a, err := app.New(cfg, log)
			if err != nil {
				return err
			}
			return a.Run()
		},
	}
}
