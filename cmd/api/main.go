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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"vet-clinic-booking/internal/adapters/auth/statickey"
	"vet-clinic-booking/internal/adapters/notify/rabbitmq"
	pg "vet-clinic-booking/internal/adapters/storage/postgres"
	"vet-clinic-booking/internal/config"
	"vet-clinic-booking/internal/platform/logger"
	"vet-clinic-booking/internal/router"
)

// @title Vet Clinic Booking API
// @version 1.0
// @description Registro de clientes, tipos de animales, slots libres y reservas de la veterinaria.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.App.LogLevel),
		Format: logger.ParseFormat(cfg.App.LogFormat),
		App:    cfg.App.Name,
	})
	if zl, ok := log.(*logger.ZapLogger); ok {
		defer func() { _ = zl.Sync() }()
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Error("invalid timezone", map[string]any{"err": err})
		os.Exit(1)
	}

	opts := router.Options{
		Logger:             log,
		Location:           loc,
		CategoryCacheSize:  cfg.Cache.CategorySize,
		CategoryCacheTTL:   cfg.Cache.CategoryTTL,
		RateLimitPerSecond: cfg.HTTP.RateLimitPerSecond,
		CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
	}

	// Postgres si hay DSN; si no, in-memory con categorías por defecto
	if cfg.DB.DSN != "" {
		db, err := pg.Open(cfg.DB.DSN)
		if err != nil {
			log.Error("open db", map[string]any{"err": err})
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()
		opts.DB = db
	} else {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
		opts.SeedDefaults = true
	}

	if cfg.RabbitMQ.URL != "" {
		pub, err := rabbitmq.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, loc, log)
		if err != nil {
			// las reservas no dependen de la cola
			log.Warn("rabbitmq unavailable, booking events disabled", map[string]any{"err": err})
		} else {
			defer func() { _ = pub.Close() }()
			opts.Notifier = pub
		}
	}

	if v := statickey.New(cfg.HTTP.AdminAPIKey); v != nil {
		opts.AuthVerifier = v
	} else {
		log.Warn("ADMIN_API_KEY not set, admin routes disabled", nil)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	opts.Registry = reg

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "timezone": loc.String()})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", map[string]any{"err": err})
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("shutting down", nil)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", map[string]any{"err": err})
	}
}
