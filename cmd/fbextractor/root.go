package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/pauljones0/fb-page-extractor/internal/config"
	"github.com/pauljones0/fb-page-extractor/internal/extractor"
	"github.com/pauljones0/fb-page-extractor/internal/graph"
	"github.com/pauljones0/fb-page-extractor/internal/output"
)

type rootFlags struct {
	overrides config.Overrides
	quiet     bool
	debug     bool
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:           "fbextractor",
		Short:         "Extracts posts and comments of a Facebook page into CSV tables.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initSlog(flags.debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return extract(cmd, stdout, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.overrides.DataDir, "data-dir", "", "data directory holding config.json and out/tables (default $KBC_DATADIR or /data)")
	f.StringVar(&flags.overrides.PageID, "page-id", "", "id of the page to extract")
	f.StringVar(&flags.overrides.APIVersion, "api-version", "", "Graph API version, e.g. v19.0")
	f.IntVar(&flags.overrides.CommentWorkers, "comment-workers", 0, "posts whose comments are fetched concurrently (default 1)")
	f.BoolVar(&flags.quiet, "quiet", false, "do not print the run summary")
	f.BoolVar(&flags.debug, "debug", false, "log every Graph API request")

	return cmd
}

func extract(cmd *cobra.Command, stdout io.Writer, flags rootFlags) error {
	cfg, err := config.LoadWithOverrides(flags.overrides)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := extractor.New(graph.New(cfg), cfg).Run(cmd.Context())
	if err != nil {
		return err
	}

	paths, err := output.New(cfg.DataDir).WriteAll(res.Posts, res.Comments)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	slog.Info("Extraction finished", "posts", len(res.Posts), "comments", len(res.Comments), "duration", time.Since(start))

	if !flags.quiet {
		printSummary(stdout, res, paths)
	}
	return nil
}

func initSlog(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)
}
