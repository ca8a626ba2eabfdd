package main

import (
	"fmt"
	"os"

	"keepnotes/cmd/internal/config"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	backend  string
)

var rootCmd = &cobra.Command{
	Use:           "keepnotes",
	Short:         "A small synchronized notes server",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadEnv(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load environment: %w", err)
		}
		return nil
	},
}

// Execute runs the command tree; called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error, off (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "notes backend: file or table (overrides NOTES_BACKEND)")

	rootCmd.AddCommand(serveCmd, exportCmd)
}

// loadConfig reads the environment and applies the persistent flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	if backend != "" {
		cfg.Backend = backend
	}

	if logLevel != "" {
		if cfg.LogLevel, err = config.ParseLevel(logLevel); err != nil {
			return nil, err
		}
	}

	log.SetLevel(cfg.LogLevel)
	return cfg, cfg.Validate()
}
