package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/newthinker/pricelog/internal/app"
	"github.com/newthinker/pricelog/internal/config"
	"github.com/newthinker/pricelog/internal/logger"
	"github.com/newthinker/pricelog/internal/metrics"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch prices forever, pausing between cycles",
	RunE:  runFetcher,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// loadConfig reads --config, or defaults plus PRICELOG_* overrides without one
func loadConfig(log *zap.Logger) (*config.Config, error) {
	if cfgFile == "" {
		log.Debug("no config file specified, using defaults and environment")
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// setup builds the logger and the app from flags and config
func setup() (*config.Config, *zap.Logger, *metrics.Registry, *app.App, error) {
	boot := logger.Must(debug)

	cfg, err := loadConfig(boot)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("config validation failed: %w", err)
	}

	log := boot
	if !debug {
		log, err = logger.Build(logger.Options{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding})
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("creating logger: %w", err)
		}
	}

	var reg *metrics.Registry
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
	}

	a, err := app.Build(cfg, log, reg)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("building app: %w", err)
	}
	return cfg, log, reg, a, nil
}

func printBanner(w io.Writer, cfg *config.Config) {
	names := make([]string, 0, len(cfg.Sources))
	for _, s := range cfg.Sources {
		names = append(names, s.Name)
	}
	fmt.Fprintln(w, "Starting price fetcher")
	fmt.Fprintf(w, "Fetching %s prices every %s...\n", strings.Join(names, ", "), cfg.Interval)
	fmt.Fprintln(w, "Press Ctrl+C to stop the program")
	fmt.Fprintln(w)
}

func runFetcher(cmd *cobra.Command, args []string) error {
	cfg, log, reg, a, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	printBanner(cmd.OutOrStdout(), cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if reg != nil {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr, cfg.Metrics.Path, reg, log); err != nil {
				log.Error("metrics server error", zap.Error(err))
			}
		}()
	}

	if err := a.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
