// Command ingest runs one ingestion pass per requested platform and exits.
// With --purge-states it also deletes expired OAuth states that were never
// redeemed. It is meant to be started by an external scheduler.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"steward/socialhub/internal/bootstrap"
	"steward/socialhub/internal/config"
	"steward/socialhub/internal/repository"
	"steward/socialhub/internal/service"
)

const (
	exitOK = iota
	exitRunFailed
	exitAccountFailed
)

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			fmt.Println(err)
			os.Exit(exitOK)
		}
		log.Fatalf("%v", err)
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := bootstrap.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, cfg, opts, logger, os.Stdout)
	stop()
	_ = logger.Sync()
	os.Exit(code)
}

func run(ctx context.Context, cfg *config.Config, opts *Options, logger *zap.Logger, out io.Writer) int {
	if !cfg.DurableConfigured() {
		logger.Warn("ingesting into in-memory stores; results are discarded on exit")
	}
	stores, err := bootstrap.NewStores(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize stores", zap.Error(err))
		return exitRunFailed
	}
	defer stores.Close()

	svc := service.NewIngestionService(cfg.Ingestion, stores.Accounts, stores.Content,
		bootstrap.NewFetcherRegistry(cfg.Ingestion, nil), logger)

	code := exitOK
	if opts.PurgeStates && !purgeStates(ctx, stores.State, logger) {
		code = exitRunFailed
	}

	enc := json.NewEncoder(out)
	for _, platform := range opts.Platforms {
		summary, err := svc.Run(ctx, platform)
		if err != nil {
			logger.Error("ingestion run failed", zap.String("platform", platform), zap.Error(err))
			code = exitRunFailed
			continue
		}
		if err := enc.Encode(summary); err != nil {
			logger.Error("write summary", zap.Error(err))
		}
		if opts.Strict && summary.Failed > 0 && code == exitOK {
			code = exitAccountFailed
		}
	}
	return code
}

func purgeStates(ctx context.Context, store repository.StateStore, logger *zap.Logger) bool {
	purger, ok := store.(repository.StatePurger)
	if !ok {
		logger.Info("state backend expires records itself, nothing to purge")
		return true
	}
	n, err := purger.PurgeExpired(ctx, time.Now().UTC())
	if err != nil {
		logger.Error("purge expired oauth states", zap.Error(err))
		return false
	}
	logger.Info("purged expired oauth states", zap.Int64("deleted", n))
	return true
}
