package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vet-clinic-booking/internal/bot"
	"vet-clinic-booking/internal/bot/sessionstore"
	"vet-clinic-booking/internal/config"
	"vet-clinic-booking/internal/platform/httpclient"
	"vet-clinic-booking/internal/platform/logger"
	"vet-clinic-booking/internal/platform/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.App.LogLevel),
		Format: logger.ParseFormat(cfg.App.LogFormat),
		App:    cfg.App.Name + "-bot",
	})
	if zl, ok := log.(*logger.ZapLogger); ok {
		defer func() { _ = zl.Sync() }()
	}

	if cfg.Bot.Token == "" {
		log.Error("TELEGRAM_BOT_TOKEN is required", nil)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openSessionStore(ctx, cfg)
	if err != nil {
		log.Error("open session store", map[string]any{"err": err, "kind": cfg.Bot.SessionStore})
		os.Exit(1)
	}
	defer func() { _ = closeStore.Close() }()

	client, err := httpclient.New(cfg.Bot.BaseAPIURL, cfg.Bot.HTTPClientTimeout, httpclient.WithLogger(log))
	if err != nil {
		log.Error("api client", map[string]any{"err": err})
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	machine := bot.NewMachine(
		bot.NewHTTPAPI(client),
		store,
		bot.WithObserver(m),
		bot.WithLogger(log),
	)
	dispatcher := bot.NewDispatcher(machine, log)

	b, err := tgbot.New(cfg.Bot.Token, tgbot.WithDefaultHandler(dispatcher.HandleUpdate))
	if err != nil {
		log.Error("create telegram bot", map[string]any{"err": err})
		os.Exit(1)
	}

	if cfg.Bot.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.Bot.MetricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Warn("metrics server", map[string]any{"err": err})
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	log.Info("starting bot", map[string]any{
		"api":           client.BaseURL,
		"session_store": cfg.Bot.SessionStore,
	})
	// long polling hasta que llegue SIGINT/SIGTERM
	b.Start(ctx)
	log.Info("bot stopped", nil)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openSessionStore(ctx context.Context, cfg *config.Config) (bot.SessionStore, io.Closer, error) {
	switch cfg.Bot.SessionStore {
	case config.SessionStoreRedis:
		s, err := sessionstore.DialRedis(ctx, cfg.Bot.RedisAddr, cfg.Bot.RedisPassword, cfg.Bot.SessionTTL)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case config.SessionStoreSQLite:
		s, err := sessionstore.OpenSQLite(cfg.Bot.SQLitePath, cfg.Bot.SessionTTL)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return sessionstore.NewMemory(cfg.Bot.SessionTTL), nopCloser{}, nil
	}
}
