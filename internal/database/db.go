package database

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/kdimtricp/acholiflixx/internal/models"
	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	conn   *sql.DB
	gorm   *gorm.DB
	dbType string
}

type Config struct {
	Type       string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	SQLitePath string
}

func (c Config) DSN() string {
	if c.Type == "postgres" {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			c.Host, c.Port, c.User, c.Password, c.Name)
	}
	return c.SQLitePath
}

func NewDB(config Config) (*DB, error) {
	var conn *sql.DB
	var dialector gorm.Dialector
	var err error

	switch config.Type {
	case "sqlite":
		conn, err = sql.Open("sqlite3", config.DSN())
		if err == nil {
			dialector = &sqlite.Dialector{Conn: conn}
		}
	case "postgres":
		conn, err = sql.Open("pgx", config.DSN())
		if err == nil {
			dialector = postgres.New(postgres.Config{Conn: conn})
		}
	default:
		return nil, fmt.Errorf("unsupported database type: %s", config.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// A single connection keeps an in-memory sqlite database alive and shared.
	if config.Type == "sqlite" {
		conn.SetMaxOpenConns(1)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	db := &DB{conn: conn, gorm: gdb, dbType: config.Type}

	// Postgres schema comes from the migrations directory.
	if config.Type == "sqlite" {
		if err := db.createTables(); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
	}

	return db, nil
}

func (db *DB) createTables() error {
	return db.gorm.AutoMigrate(&models.ContentItem{})
}

// RunMigrations applies pending migrations from path. It is a no-op for sqlite.
func (db *DB) RunMigrations(path string) error {
	return NewMigrator(db.conn, db.dbType, nil).Run(path)
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Conn() *sql.DB {
	return db.conn
}

func (db *DB) GORM() *gorm.DB {
	return db.gorm
}

func (db *DB) Type() string {
	return db.dbType
}
