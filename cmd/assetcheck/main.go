// Package main provides the assetcheck binary entry point.
// assetcheck verifies that the external 3D assets expected by the mall
// scene's loader are installed under public/assets/.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "assetcheck"
)

const (
	exitOK      = 0
	exitMissing = 1
	exitUsage   = 2
)

// errAssetsMissing signals a completed run with missing or incomplete
// requirements. The checklist has already been printed.
var errAssetsMissing = errors.New("assets missing")

// usageError marks errors caused by invalid command-line input.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command line and maps the outcome to an exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := rootCmd(stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)

	var uerr *usageError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errAssetsMissing):
		return exitMissing
	case errors.As(err, &uerr):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprint(stderr, cmd.UsageString())
		return exitUsage
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitMissing
	}
}

func rootCmd(logOut io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "assetcheck [flags] [NAME...]",
		Short: "Validate that the external assets needed by the game are available",
		Long: `assetcheck verifies that the GLTF models, textures and NPC asset packs
loaded by the mall scene are installed under public/assets/.

Each requirement is reported on its own line. The command exits 1 when
anything is missing or incomplete, so it can gate CI jobs and dev scripts.

Examples:
  # Check everything against the repository root
  assetcheck

  # Check a single asset by label or by path
  assetcheck --only "Mall kiosk model"
  assetcheck --only public/assets/mall_kiosk.gltf

  # Show what is expected without checking
  assetcheck --list`,
		Version:       fmt.Sprintf("%s (build: %s)", Version, BuildTime),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.only = append(opts.only, args...)
			opts.logLevelSet = cmd.Flags().Changed("log-level")
			return run(cmd.Context(), cmd.OutOrStdout(), logOut, opts)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	cmd.Flags().StringVar(&opts.root, "root", "", "Project root (defaults to the repository root)")
	cmd.Flags().StringArrayVar(&opts.only, "only", nil, "Restrict the check to specific assets (match by label or relative path)")
	cmd.Flags().BoolVar(&opts.list, "list", false, "List the known requirements and exit without performing checks")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Write a Prometheus textfile with the results")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Re-check on filesystem changes until every asset is present")

	return cmd
}
