package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nugabest/estatedb/internal/api"
	"github.com/nugabest/estatedb/internal/assistant"
	"github.com/nugabest/estatedb/internal/config"
	"github.com/nugabest/estatedb/internal/data"
	"github.com/nugabest/estatedb/internal/kv"
	"github.com/nugabest/estatedb/internal/observ"
	"github.com/nugabest/estatedb/internal/tablestore"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// ---------------------------------------------------------------
	// 1. Load config
	// ---------------------------------------------------------------
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// ---------------------------------------------------------------
	// 2. Create logger
	// ---------------------------------------------------------------
	logger, err := observ.NewLoggerWithSink(cfg.Env, cfg.LogLevel, observ.FileSink{
		Path:      cfg.LogFile,
		MaxSizeMB: cfg.LogMaxSizeMB,
		MaxFiles:  cfg.LogMaxFiles,
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---------------------------------------------------------------
	// 3. Open the storage medium and the table store on top of it
	//
	// ctx is the signal context, so a SIGTERM during a slow dial to
	// Redis or Postgres aborts startup instead of hanging it.
	// ---------------------------------------------------------------
	medium, err := kv.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	// Closed last, after the HTTP server has drained, so no in-flight
	// request writes to a closed pool.
	defer medium.Close()

	store := tablestore.New(medium, cfg.KeyPrefix, logger.Named("tablestore"))

	// ---------------------------------------------------------------
	// 4. Data service. Pending migrations run here, before any
	//    request can be served.
	//
	// A failed migration stops the process. Serving on a half-migrated
	// store would hand the UI records missing the fields later
	// migrations backfill; the ledger has no entry for the failed
	// version, so the next start retries it.
	// ---------------------------------------------------------------
	svc, err := data.Open(ctx, store, logger.Named("data"), data.Options{
		LedgerKey:     cfg.LedgerKey,
		AdminPassword: cfg.AdminPassword,
	})
	if err != nil {
		return err
	}

	// The assistant checks the platform settings on every turn so an admin
	// can switch it off without a restart.
	ai := assistant.NewClient(assistant.Config{
		Endpoint: cfg.AI.Endpoint,
		APIKey:   cfg.AI.APIKey,
		Model:    cfg.AI.Model,
		Timeout:  cfg.AI.Timeout,
	}, func(ctx context.Context) bool {
		s, err := svc.QuerySettings(ctx)
		return err == nil && s != nil && s.AIEngineEnabled
	}, logger.Named("assistant"))

	// ---------------------------------------------------------------
	// 5. HTTP server with graceful shutdown
	// ---------------------------------------------------------------
	router := api.NewRouter(api.Deps{
		Service:   svc,
		Assistant: ai,
		JWTSecret: cfg.JWTSecret,
		Logger:    logger.Named("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting listings service",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.Env),
			zap.String("storage", cfg.StorageDriver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
