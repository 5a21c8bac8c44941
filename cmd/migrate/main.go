package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/kdimtricp/acholiflixx/internal/catalog"
	"github.com/kdimtricp/acholiflixx/internal/config"
	"github.com/kdimtricp/acholiflixx/internal/database"
)

func main() {
	var (
		status = flag.Bool("status", false, "Show migration status only")
		seed   = flag.Bool("seed", false, "Load the sample catalog after migrating")
	)
	flag.Parse()

	logger := hclog.New(&hclog.LoggerOptions{Name: "migrate", Level: hclog.Info})

	cfg, err := config.Load(".env")
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.NewDB(cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	migrator := database.NewMigrator(db.Conn(), cfg.Database.Type, logger)

	if *status {
		if cfg.Database.Type != "postgres" {
			logger.Info("sqlite schema is created on connect; nothing to report")
			return
		}
		if err := printStatus(migrator, cfg.MigrationsPath); err != nil {
			logger.Error("failed to read migration status", "error", err)
			os.Exit(1)
		}
		return
	}

	logger.Info("running migrations", "path", cfg.MigrationsPath, "type", cfg.Database.Type)
	n, err := migrator.Apply(cfg.MigrationsPath)
	if err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("migrations completed", "applied", n)

	if *seed {
		items := catalog.SampleItems()
		if err := database.NewContentRepository(db).Seed(context.Background(), items); err != nil {
			logger.Error("failed to seed catalog", "error", err)
			os.Exit(1)
		}
		logger.Info("catalog seeded", "items", len(items))
	}
}

func printStatus(m *database.Migrator, path string) error {
	if err := m.Initialize(); err != nil {
		return err
	}
	applied, err := m.GetAppliedMigrations()
	if err != nil {
		return err
	}
	migrations, err := m.LoadMigrations(path)
	if err != nil {
		return err
	}

	fmt.Println("Migration Status:")
	fmt.Println("=================")
	for _, mig := range migrations {
		state := "pending"
		if applied[mig.Version] {
			state = "applied"
		}
		fmt.Printf("%s - %s [%s]\n", mig.Version, mig.Name, state)
	}
	return nil
}
