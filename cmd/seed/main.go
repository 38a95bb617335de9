package main

import (
	"context"
	"fmt"
	"os"
	"time"

	pg "vet-clinic-booking/internal/adapters/storage/postgres"
	"vet-clinic-booking/internal/config"
	"vet-clinic-booking/internal/domain/animaltypes"
	"vet-clinic-booking/internal/platform/logger"
)

// seed crea las categorías por defecto que falten (idempotente).
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.App.LogLevel),
		Format: logger.ParseFormat(cfg.App.LogFormat),
		App:    cfg.App.Name + "-seed",
	})

	if cfg.DB.DSN == "" {
		log.Error("DB_DSN is required", nil)
		os.Exit(1)
	}

	db, err := pg.Open(cfg.DB.DSN)
	if err != nil {
		log.Error("open db", map[string]any{"err": err})
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc := animaltypes.NewService(pg.NewAnimalTypesRepo(db))
	n, err := svc.EnsureDefaults(ctx, animaltypes.DefaultNames)
	if err != nil {
		log.Error("seed animal types", map[string]any{"err": err, "created": n})
		os.Exit(1)
	}
	log.Info("animal types seeded", map[string]any{"created": n})
}
