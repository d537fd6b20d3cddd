// Package main provides the entry point for the mastodiary CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	errs "mastodiary/pkg/errors"
	"mastodiary/pkg/ui"
)

// Build info, set via -ldflags "-X main.version=..."
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], ui.NewStdPrinter())
	stop()
	os.Exit(code)
}

// run executes the CLI and maps the outcome to an exit code
func run(ctx context.Context, args []string, printer *ui.Printer) int {
	cmd := newRootCmd(printer)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		printer.PrintError(err)
		return errs.ExitCode(err)
	}
	return errs.ExitSuccess
}
