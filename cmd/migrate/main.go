package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	pg "vet-clinic-booking/internal/adapters/storage/postgres"
	"vet-clinic-booking/internal/config"
	"vet-clinic-booking/internal/platform/logger"
	"vet-clinic-booking/migrations"
)

// uso: migrate [up|down|force <version>]
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.App.LogLevel),
		Format: logger.ParseFormat(cfg.App.LogFormat),
		App:    cfg.App.Name + "-migrate",
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

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Error("db driver", map[string]any{"err": err})
		os.Exit(1)
	}

	srcDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		log.Error("source driver", map[string]any{"err": err})
		os.Exit(1)
	}

	m, err := migrate.NewWithInstance("iofs", srcDriver, "postgres", dbDriver)
	if err != nil {
		log.Error("create migrator", map[string]any{"err": err})
		os.Exit(1)
	}
	defer func() { _, _ = m.Close() }()

	cmd := "up"
	if len(os.Args) >= 2 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "force":
		if len(os.Args) < 3 {
			log.Error("usage: migrate force <version>", nil)
			os.Exit(2)
		}
		version, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Error("invalid version", map[string]any{"err": err})
			os.Exit(2)
		}
		if err := m.Force(version); err != nil {
			log.Error("force version", map[string]any{"err": err})
			os.Exit(1)
		}
		log.Info("forced version", map[string]any{"version": version})
		return
	case "down":
		err = m.Down()
	case "up":
		err = m.Up()
	default:
		log.Error("unknown command", map[string]any{"cmd": cmd})
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error("migrate "+cmd, map[string]any{"err": err})
		os.Exit(1)
	}
	log.Info("migrations complete", map[string]any{"cmd": cmd})
}
