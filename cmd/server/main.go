package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"steward/socialhub/internal/bootstrap"
	"steward/socialhub/internal/config"
	"steward/socialhub/internal/handler"
	"steward/socialhub/internal/service"
	jwtpkg "steward/socialhub/pkg/jwt"
)

type options struct {
	Config string `short:"c" long:"config" default:"config.yaml" description:"path to config.yaml"`
}

func main() {
	opts := &options{}
	if _, err := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash).Parse(); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			fmt.Println(err)
			os.Exit(0)
		}
		log.Fatalf("%v", err)
	}

	// 1. Load configuration
	cfg, err := config.Load(opts.Config)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize logger
	logger, err := bootstrap.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	// 3. Select backends
	stores, err := bootstrap.NewStores(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize stores", zap.Error(err))
	}
	defer stores.Close()

	// 4. Initialize services
	fetchers := bootstrap.NewFetcherRegistry(cfg.Ingestion, nil)
	stateService := service.NewOAuthStateService(stores.State, cfg.State.TTL)
	accountService := service.NewAccountService(stores.Accounts, stores.Brands, logger)
	brandService := service.NewBrandService(stores.Brands)
	ingestionService := service.NewIngestionService(cfg.Ingestion, stores.Accounts, stores.Content, fetchers, logger)
	logger.Info("ingestion fetchers registered", zap.Strings("platforms", fetchers.Platforms()))

	// 5. Setup router
	jwtManager := jwtpkg.NewManager(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.TokenTTL)
	router := handler.SetupRouter(cfg, logger, jwtManager,
		handler.NewOAuthStateHandler(stateService),
		handler.NewAccountHandler(accountService),
		handler.NewBrandHandler(brandService),
		handler.NewIngestionHandler(ingestionService),
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 6. Start server with graceful shutdown
	go func() {
		logger.Info("server starting", zap.String("addr", addr), zap.Bool("durable", stores.Durable))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited gracefully")
}
