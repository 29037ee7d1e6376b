package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pauljones0/fb-page-extractor/internal/config"
	"github.com/pauljones0/fb-page-extractor/internal/graph"
)

// exitUserError covers configuration problems and Graph API failures: both
// need action from whoever set up the run.
const (
	exitOK         = 0
	exitUserError  = 1
	exitUnexpected = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(stdout)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)

	code := exitCode(err)
	switch code {
	case exitOK:
	case exitUserError:
		fmt.Fprintln(stdout, err)
		slog.Error("Extraction failed", "error", err)
	default:
		slog.Error("Unexpected error", "error", err)
	}
	return code
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var cfgErr *config.Error
	var apiErr *graph.APIError
	if errors.As(err, &cfgErr) || errors.As(err, &apiErr) {
		return exitUserError
	}
	return exitUnexpected
}
