// Package main is the entry point for the crate CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/crate/cmd/crate/commands"
	"go.trai.ch/crate/internal/app"
	"go.trai.ch/crate/internal/core/domain"
	_ "go.trai.ch/crate/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	application, _, err := graft.ExecuteFor[*app.App](ctx)
	if err != nil {
		// Logger is not available if initialization failed; write directly.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return domain.ExitFailure
	}
	defer func() { _ = application.Close() }()

	cli := commands.New(application)

	if err := cli.Execute(ctx); err != nil {
		// zerr prints a pretty error report with stack trace and metadata when using %+v
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return domain.ExitCode(err)
	}
	return domain.ExitSuccess
}
