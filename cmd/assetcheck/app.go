package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/c360studio/assetcheck/asset"
	"github.com/c360studio/assetcheck/config"
	"github.com/c360studio/assetcheck/metrics"
	"github.com/c360studio/assetcheck/report"
	"github.com/c360studio/assetcheck/watch"
)

// options holds the parsed command-line flags.
type options struct {
	root        string
	only        []string
	list        bool
	configPath  string
	logLevel    string
	logLevelSet bool
	metricsFile string
	watch       bool
}

func run(ctx context.Context, out, logOut io.Writer, opts options) error {
	table := asset.Requirements()

	// Listing never touches the filesystem, not even for config
	if opts.list {
		report.New(out, nil).List(table)
		return nil
	}

	reqs, err := asset.Select(table, opts.only)
	if err != nil {
		return &usageError{err: err}
	}

	level, err := config.ParseLevel(opts.logLevel)
	if err != nil {
		return &usageError{err: err}
	}
	logger := newLogger(logOut, level)

	loader := config.NewLoader(logger)
	cfg, err := loader.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !opts.logLevelSet {
		// Validated by Load
		level, _ = config.ParseLevel(cfg.LogLevel)
		logger = newLogger(logOut, level)
	}

	root, err := loader.ResolveRoot(opts.root, cfg)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}

	metricsFile := opts.metricsFile
	if metricsFile == "" {
		metricsFile = cfg.Metrics.File
	}
	if metricsFile != "" {
		if metricsFile, err = outsideRoot(root, metricsFile); err != nil {
			return &usageError{err: err}
		}
	}

	logger = logger.With("run_id", uuid.New().String())
	logger.Info("Checking assets",
		"root", root,
		"requirements", len(reqs),
		"watch", opts.watch)

	reporter := report.New(out, logger)

	var metricsErr error
	observe := func(summary report.Summary) {
		if metricsFile == "" {
			return
		}
		if err := metrics.WriteTextfile(metricsFile, summary); err != nil {
			metricsErr = err
			return
		}
		logger.Debug("Wrote metrics textfile", "path", metricsFile)
	}

	var summary report.Summary
	if opts.watch {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		summary, err = watch.Run(ctx, watch.Options{
			Root:         root,
			Requirements: reqs,
			Reporter:     reporter,
			Debounce:     cfg.Watch.Debounce,
			OnRun:        observe,
			Logger:       logger,
		})
	} else {
		summary, err = reporter.Run(root, reqs)
		if err == nil {
			observe(summary)
		}
	}
	if err != nil {
		return fmt.Errorf("check assets: %w", err)
	}
	if metricsErr != nil {
		return metricsErr
	}

	logger.Info("Check complete",
		"checked", len(summary.Results),
		"failures", summary.Failures)

	if !summary.OK() {
		return errAssetsMissing
	}
	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// outsideRoot resolves path and refuses locations under root, which the tool
// only ever reads.
func outsideRoot(root, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve metrics file: %w", err)
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if abs == root || strings.HasPrefix(abs, prefix) {
		return "", fmt.Errorf("metrics file %s must be outside the project root %s", abs, root)
	}
	return abs, nil
}
