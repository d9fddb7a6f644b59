package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/credvault/internal/cli"
	"github.com/dmitrijs2005/credvault/internal/config"
	"github.com/dmitrijs2005/credvault/internal/logging"
	"github.com/spf13/cobra"
)

var (
	buildVersion = "N/A"
	buildDate    = "N/A"
)

func main() {
	var configFile string

	rootCmd := &cobra.Command{
		Use:          "credvault",
		Short:        "Local credential vault with rotation reminders",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd, configFile)
			if err != nil {
				return err
			}

			log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

			app, err := cli.NewApp(cfg, log)
			if err != nil {
				return err
			}

			fmt.Printf("credvault %s (built %s)\n", buildVersion, buildDate)
			app.Run(context.Background())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to config file")
	rootCmd.Flags().String("snapshot_path", "", "path to the vault snapshot file")
	rootCmd.Flags().String("secret_key", "", "session signing secret")
	rootCmd.Flags().Duration("session_ttl", 0, "session validity duration")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
