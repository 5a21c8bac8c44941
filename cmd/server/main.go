package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/kdimtricp/acholiflixx/internal/agent"
	"github.com/kdimtricp/acholiflixx/internal/api"
	"github.com/kdimtricp/acholiflixx/internal/catalog"
	"github.com/kdimtricp/acholiflixx/internal/checkout"
	"github.com/kdimtricp/acholiflixx/internal/config"
	"github.com/kdimtricp/acholiflixx/internal/database"
	"github.com/kdimtricp/acholiflixx/internal/events"
	"github.com/kdimtricp/acholiflixx/internal/ingest"
	"github.com/kdimtricp/acholiflixx/internal/playback"
	"github.com/kdimtricp/acholiflixx/internal/storage"
)

const (
	paymentDelay = 2500 * time.Millisecond
	agentDelay   = 2 * time.Second
	ingestDelay  = 2 * time.Second
	checkoutTTL  = 30 * time.Minute
)

func main() {
	cfg, err := config.Load(".env")
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "acholiflixx",
		Level: hclog.LevelFromString(cfg.LogLevel),
	})
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger hclog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	artwork, err := storage.NewLocalStorage(cfg.ArtworkDir)
	if err != nil {
		return err
	}
	staging, err := storage.NewLocalStorage(cfg.StagingDir)
	if err != nil {
		return err
	}

	var publisher events.Publisher = events.NewLogPublisher(logger.Named("events"))
	if cfg.MQTT.Broker != "" {
		mqttPublisher, err := events.NewMQTTPublisher(cfg.MQTT, logger.Named("events"))
		if err != nil {
			logger.Warn("MQTT unavailable, logging events instead", "broker", cfg.MQTT.Broker, "error", err)
		} else {
			publisher = mqttPublisher
		}
	}
	defer publisher.Close()

	var source catalog.Source = catalog.NewStaticSource()
	var db *database.DB
	if cfg.CatalogSource == "database" {
		db, err = database.NewDB(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.NewMigrator(db.Conn(), cfg.Database.Type, logger.Named("migrate")).Run(cfg.MigrationsPath); err != nil {
			return err
		}

		repo := database.NewContentRepository(db)
		if n, err := repo.Count(ctx); err != nil {
			return err
		} else if n == 0 {
			logger.Info("seeding empty catalog table")
			if err := repo.Seed(ctx, catalog.SampleItems()); err != nil {
				return err
			}
		}
		source = repo
	}

	players := playback.NewManager(playback.ManagerConfig{IdleTTL: cfg.PlayerIdleTTL}, publisher, logger.Named("playback"))
	checkouts := checkout.NewService(checkout.SimulatedGateway{Delay: cfg.Delay(paymentDelay)}, publisher, logger.Named("checkout"))

	app := &api.App{
		Catalog:       catalog.NewProvider(source, logger.Named("catalog")),
		Players:       players,
		Checkout:      checkouts,
		Agents:        agent.NewService(agent.SimulatedCRM{Delay: cfg.Delay(agentDelay)}, publisher, logger.Named("agent")),
		Uploads:       ingest.NewService(staging, ingest.SimulatedIngestor{Delay: cfg.Delay(ingestDelay)}, publisher, logger.Named("ingest")),
		Artwork:       artwork,
		DB:            db,
		TemplateDir:   cfg.TemplateDir,
		StaticDir:     cfg.StaticDir,
		MaxUploadSize: cfg.MaxUploadSize,
		Logger:        logger.Named("http"),
	}

	go players.Run(ctx)
	go checkouts.Run(ctx, checkoutTTL)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "catalog", cfg.CatalogSource, "max_upload", cfg.MaxUploadSize)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	players.Shutdown()
	return nil
}
