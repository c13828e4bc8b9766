package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/tasktracker/internal/buildinfo"
	"github.com/dmitrijs2005/tasktracker/internal/cli"
	"github.com/dmitrijs2005/tasktracker/internal/config"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/storage"
	"github.com/dmitrijs2005/tasktracker/internal/store"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()

	logger, err := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error(ctx, "tasktracker failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	repo, closeRepo, err := storage.OpenRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeRepo(); err != nil {
			logger.Warn(ctx, "failed to close backing store", "error", err)
		}
	}()

	st, err := store.Open(ctx, repo, store.WithLogger(logger), store.WithSeed(cfg.Seed))
	if err != nil {
		return err
	}

	// the REPL blocks on stdin, so a signal has to be able to cut it short
	done := make(chan struct{})
	go func() {
		defer close(done)
		cli.NewApp(st, os.Stdin, os.Stdout, logger).Run(ctx)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Info(ctx, "interrupted, flushing pending writes")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()
	return st.Close(shutdownCtx)
}
