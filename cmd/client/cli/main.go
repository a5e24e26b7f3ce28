package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/loandesk/internal/buildinfo"
	"github.com/dmitrijs2005/loandesk/internal/client/cli"
	"github.com/dmitrijs2005/loandesk/internal/client/config"
	"github.com/dmitrijs2005/loandesk/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	// The REPL blocks on stdin, so an interrupt closes the app from here.
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			app.Close()
			os.Exit(130)
		case <-done:
		}
	}()

	app.Run(ctx)
	close(done)
}
