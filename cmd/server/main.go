package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bingohub/internal/app"
	"github.com/vovakirdan/bingohub/internal/config"
	"github.com/vovakirdan/bingohub/internal/log"
)

var version = "dev"

type serveFlags struct {
	configPath      string
	addr            string
	logLevel        string
	logFormat       string
	resultsDB       string
	shutdownTimeout time.Duration
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &serveFlags{}

	root := &cobra.Command{
		Use:           "bingohub",
		Short:         "Real-time bingo room coordinator",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), flags)
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP and WebSocket server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), flags)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to config file")
	pf.StringVar(&flags.addr, "addr", "", "HTTP listen address")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format (console, json)")
	pf.StringVar(&flags.resultsDB, "results-db", "", "sqlite path for the results journal")
	pf.DurationVar(&flags.shutdownTimeout, "shutdown-timeout", 0, "graceful shutdown timeout")

	root.AddCommand(serveCmd, &cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})

	return root
}

func serve(parent context.Context, flags *serveFlags) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootLogger := log.New("info", "console")
	cfg, path, err := config.Load(bootLogger, flags.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	cfg.UpdateFrom(config.Config{
		Addr:            flags.addr,
		ShutdownTimeout: flags.shutdownTimeout,
		Log:             config.LogConfig{Level: flags.logLevel, Format: flags.logFormat},
		Results:         config.ResultsConfig{DBPath: flags.resultsDB},
	})

	logger := log.New(cfg.Log.Level, cfg.Log.Format)
	logger.Info().Str("config", path).Str("version", version).Msg("configuration loaded")

	application, err := app.New(&cfg, logger)
	if err != nil {
		return err
	}

	logger.Info().Str("addr", cfg.Addr).Msg("starting bingohub server")
	if err := application.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("server exited with error")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
