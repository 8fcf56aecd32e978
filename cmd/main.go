package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bestfriendai/SupaSecret-sub011/config"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command for the trends service
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "supasecret-trends",
		Short:   "Trending and search service for SupaSecret confessions",
		Long:    "Ingests the anonymous-confession feed and serves trending rankings, hashtag statistics, text search and preference persistence.",
		Version: version,
	}

	rootCmd.SetVersionTemplate("supasecret-trends version {{.Version}}\n")

	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// newServeCmd creates the serve subcommand
func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Create the logger
			logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

			var cfg config.Config

			// Get the configuration
			if err := config.Load(&cfg, configPath); err != nil {
				logger.Error("failed to load config", "err", err.Error())
				return err
			}

			app, err := New(&cfg, logger)
			if err != nil {
				logger.Error("failed to initialize application", "err", err.Error())
				return err
			}

			return app.Run()
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "./config/config.json", "path to the configuration file")

	return cmd
}
