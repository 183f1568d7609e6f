// Command biblioteca runs the library back-end: the HTTP API on top of the event store.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/biblioteca/library/shell/config"
)

var (
	configPath   string
	dotEnvPath   string
	logLevel     string
	logger       *slog.Logger
	loadedConfig config.Config
)

var rootCmd = &cobra.Command{
	Use:   "biblioteca",
	Short: "Library back-end: catalog, loans, fines and reservations",
	Long: `biblioteca serves the REST API of the library.

Configuration is read from, in increasing priority: built-in defaults,
the TOML file given with --config, the .env file and the process environment.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath, dotEnvPath)
		if err != nil {
			return err
		}

		if logLevel != "" {
			cfg.LogLevel = logLevel
		}

		l, err := newLogger(cfg.LogLevel)
		if err != nil {
			return err
		}

		logger = l
		loadedConfig = cfg

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&dotEnvPath, "env-file", ".env", "path to a .env file, ignored if missing")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd, migrateCmd, createAdminCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// newLogger logs JSON, or human readable text at debug level.
func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}

	if lvl <= slog.LevelDebug {
		return slog.New(slog.NewTextHandler(os.Stdout, opts)), nil
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, opts)), nil
}
