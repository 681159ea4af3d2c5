// @title Blood Donor Network API
// @version 1.0
// @description Registro de donantes, solicitudes de emergencia y solicitudes life saver con reasignación automática.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blood-donor-network/internal/adapters/notify/redisbus"
	pg "blood-donor-network/internal/adapters/storage/postgres"
	"blood-donor-network/internal/platform/config"
	"blood-donor-network/internal/platform/logger"
	"blood-donor-network/internal/platform/metrics"
	"blood-donor-network/internal/router"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	configFile := flag.String("config", "", "archivo YAML de configuración (opcional)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		App:    cfg.App.Name,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if cfg.DB.DSN != "" {
		opened, err := pg.Open(cfg.DB.DSN)
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		defer opened.Close()
		if err := pg.Migrate(ctx, opened); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		db = opened
		log.Info("postgres enabled")
	}

	opts := router.Options{
		Log:              log,
		Metrics:          metrics.New(),
		DB:               db,
		MaxReassignments: cfg.Reassign.Max,
		Seed:             cfg.Seed.Enabled,
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redisbus.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer rdb.Close()
		if err := redisbus.Ping(ctx, rdb); err != nil {
			// sin redis seguimos: los eventos son best-effort
			log.Warn("redis ping failed, events may be dropped", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		opts.Events = redisbus.New(rdb)
		log.Info("redis events enabled", zap.String("addr", cfg.Redis.Addr))
	}

	h, err := router.NewRouter(opts)
	if err != nil {
		return err
	}

	addr := ":" + cfg.HTTP.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
