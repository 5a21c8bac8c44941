package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testMigrationsPath = filepath.Join("..", "..", "migrations")

func setupSQLiteDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewDB(Config{Type: "sqlite", SQLitePath: ":memory:"})
	if err != nil {
		t.Fatalf("Failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestDB(t *testing.T) (*DB, func()) {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("acholiflixx_test"),
		postgres.WithUsername("acholiflixx_test"),
		postgres.WithPassword("acholiflixx_test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	config := Config{
		Type:     "postgres",
		Host:     host,
		Port:     port.Int(),
		User:     "acholiflixx_test",
		Password: "acholiflixx_test_password",
		Name:     "acholiflixx_test",
	}

	db, err := NewDB(config)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.RunMigrations(testMigrationsPath); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	cleanup := func() {
		db.GORM().Exec("TRUNCATE TABLE content_items")
		db.Close()

		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return db, cleanup
}
