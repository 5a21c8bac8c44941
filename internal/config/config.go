// Package config reads server settings from the environment. A .env file in
// the working directory, when present, is loaded first and never overrides
// variables that are already set.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kdimtricp/acholiflixx/internal/database"
	"github.com/kdimtricp/acholiflixx/internal/events"
)

type Config struct {
	Port          string
	TemplateDir   string
	StaticDir     string
	ArtworkDir    string
	StagingDir    string
	MaxUploadSize int64

	// CatalogSource is "memory" or "database".
	CatalogSource  string
	Database       database.Config
	MigrationsPath string

	MQTT events.MQTTConfig

	// SubmitDelayScale multiplies the simulated processing delays.
	SubmitDelayScale float64
	PlayerIdleTTL    time.Duration
	LogLevel         string
}

// Delay scales a simulated processing delay.
func (c Config) Delay(d time.Duration) time.Duration {
	return time.Duration(float64(d) * c.SubmitDelayScale)
}

// Load reads .env (if any) from envFile and then the environment.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	var err error
	cfg := Config{
		Port:           getenv("PORT", "8080"),
		TemplateDir:    getenv("TEMPLATE_DIR", "web/templates"),
		StaticDir:      getenv("STATIC_DIR", "web/static"),
		ArtworkDir:     getenv("ARTWORK_DIR", "web/images"),
		StagingDir:     getenv("STAGING_DIR", "./staging"),
		CatalogSource:  getenv("CATALOG_SOURCE", "memory"),
		MigrationsPath: getenv("MIGRATIONS_PATH", "./migrations"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		MQTT: events.MQTTConfig{
			Broker:      os.Getenv("MQTT_BROKER"),
			ClientID:    getenv("MQTT_CLIENT_ID", "acholiflixx"),
			TopicPrefix: getenv("MQTT_TOPIC_PREFIX", "acholiflixx"),
		},
	}

	if cfg.MaxUploadSize, err = strconv.ParseInt(getenv("MAX_UPLOAD_SIZE", "104857600"), 10, 64); err != nil {
		return Config{}, fmt.Errorf("invalid MAX_UPLOAD_SIZE: %w", err)
	}
	if cfg.SubmitDelayScale, err = strconv.ParseFloat(getenv("SUBMIT_DELAY_SCALE", "1"), 64); err != nil || cfg.SubmitDelayScale < 0 {
		return Config{}, fmt.Errorf("invalid SUBMIT_DELAY_SCALE %q", os.Getenv("SUBMIT_DELAY_SCALE"))
	}
	if cfg.PlayerIdleTTL, err = time.ParseDuration(getenv("PLAYER_IDLE_TTL", "30m")); err != nil {
		return Config{}, fmt.Errorf("invalid PLAYER_IDLE_TTL: %w", err)
	}

	switch cfg.CatalogSource {
	case "memory", "database":
	default:
		return Config{}, fmt.Errorf("unsupported CATALOG_SOURCE: %s", cfg.CatalogSource)
	}

	cfg.Database.Type = getenv("DB_TYPE", "sqlite")
	if cfg.Database.Type == "postgres" {
		cfg.Database.Host = getenv("DB_HOST", "localhost")
		if cfg.Database.Port, err = strconv.Atoi(getenv("DB_PORT", "5432")); err != nil {
			return Config{}, fmt.Errorf("invalid DB_PORT: %w", err)
		}
		cfg.Database.User = getenv("DB_USER", "acholiflixx")
		cfg.Database.Password = getenv("DB_PASSWORD", "acholiflixx_dev")
		cfg.Database.Name = getenv("DB_NAME", "acholiflixx")
	} else {
		cfg.Database.SQLitePath = getenv("DB_PATH", "./acholiflixx.db")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
