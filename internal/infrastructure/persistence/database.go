package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/surgishop/backend/internal/infrastructure/config"
	"github.com/surgishop/backend/internal/infrastructure/persistence/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const pingTimeout = 5 * time.Second

// Database owns the GORM handle and its connection pool
type Database struct {
	DB  *gorm.DB
	sql *sql.DB
}

// NewDatabase opens the configured driver, sizes the pool and pings once.
// A nil logger silences GORM.
func NewDatabase(cfg *config.DatabaseConfig, gormLogger logger.Interface) (*Database, error) {
	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres, "":
		dialector = postgres.Open(cfg.DSN())
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	d, err := wrap(db)
	if err != nil {
		return nil, err
	}
	d.configurePool(cfg)

	if err := d.Ping(); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return d, nil
}

func wrap(db *gorm.DB) (*Database, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("underlying sql.DB: %w", err)
	}
	return &Database{DB: db, sql: sqlDB}, nil
}

func (d *Database) configurePool(cfg *config.DatabaseConfig) {
	if cfg.Driver == DriverSQLite {
		// every connection to :memory: is its own database
		d.sql.SetMaxOpenConns(1)
	} else {
		d.sql.SetMaxOpenConns(cfg.MaxOpenConns)
		d.sql.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	d.sql.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	d.sql.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)
}

// AutoMigrate creates or updates every table this service owns
func (d *Database) AutoMigrate() error {
	if err := d.DB.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Ping checks the connection within a bounded time
func (d *Database) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return d.sql.PingContext(ctx)
}

// Stats reports connection pool usage
func (d *Database) Stats() sql.DBStats {
	return d.sql.Stats()
}

func (d *Database) Close() error {
	return d.sql.Close()
}
