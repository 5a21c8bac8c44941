package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
)

type Migration struct {
	Version string
	Name    string
	SQL     string
}

type Migrator struct {
	db     *sql.DB
	dbType string
	logger hclog.Logger
}

func NewMigrator(db *sql.DB, dbType string, logger hclog.Logger) *Migrator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Migrator{
		db:     db,
		dbType: dbType,
		logger: logger,
	}
}

// Initialize creates the migrations tracking table if it doesn't exist
func (m *Migrator) Initialize() error {
	if m.dbType != "postgres" {
		return nil
	}

	query := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := m.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	m.logger.Debug("migration tracking table ready")
	return nil
}

func (m *Migrator) GetAppliedMigrations() (map[string]bool, error) {
	applied := make(map[string]bool)

	rows, err := m.db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

// LoadMigrations reads NNN_name.sql files from dir, ordered by version.
func (m *Migrator) LoadMigrations(dir string) ([]Migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var migrations []Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		version, _, ok := strings.Cut(entry.Name(), "_")
		if !ok {
			m.logger.Warn("skipping invalid migration filename", "file", entry.Name())
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    entry.Name(),
			SQL:     string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

func (m *Migrator) ApplyMigration(migration Migration) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(migration.SQL); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", migration.Name, err)
	}

	if _, err := tx.Exec(
		"INSERT INTO schema_migrations (version) VALUES ($1)",
		migration.Version,
	); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", migration.Name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", migration.Name, err)
	}

	m.logger.Info("applied migration", "name", migration.Name)
	return nil
}

func (m *Migrator) Run(dir string) error {
	_, err := m.Apply(dir)
	return err
}

// Apply runs every pending migration in dir and reports how many ran.
func (m *Migrator) Apply(dir string) (int, error) {
	if m.dbType != "postgres" {
		m.logger.Debug("skipping migrations for non-postgres database", "type", m.dbType)
		return 0, nil
	}

	if err := m.Initialize(); err != nil {
		return 0, err
	}

	applied, err := m.GetAppliedMigrations()
	if err != nil {
		return 0, err
	}

	migrations, err := m.LoadMigrations(dir)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, migration := range migrations {
		if applied[migration.Version] {
			continue
		}
		if err := m.ApplyMigration(migration); err != nil {
			return count, fmt.Errorf("migration failed: %w", err)
		}
		count++
	}

	if count == 0 {
		m.logger.Info("no pending migrations")
	}
	return count, nil
}
