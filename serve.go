package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-validation/framework/app"
)

func newServeCmd() *cobra.Command {
	var envFiles []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the validation HTTP API",
		Long: `Start the HTTP server. Configuration comes from the environment and the
given .env files (APP_PORT, VALIDATION_STRATEGY, VALIDATION_RULESET_DIR, ...).

Examples:
  # Serve with .env from the working directory
  govalidate serve

  # Serve with an explicit env file
  govalidate serve --env deploy/production.env`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := app.New(envFiles...)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return application.Run(ctx)
		},
	}

	cmd.Flags().StringSliceVar(&envFiles, "env", nil, "env files to load (default .env)")
	return cmd
}
