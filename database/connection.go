package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Ananth-NQI/portfolio-backend/internal/config"
	"github.com/Ananth-NQI/portfolio-backend/internal/models"
)

// Connect opens the process-wide connection pool described by cfg.
// The caller owns the returned handle and must Close it on shutdown.
func Connect(cfg *config.Config, log logrus.FieldLogger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: newGormLogger(log)}

	switch {
	case cfg.UseMemoryStore:
		log.Warn("Using in-memory SQLite storage (not for production!)")
		return OpenSQLite(":memory:", gormCfg)
	case cfg.DBDriver == "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
		log.WithField("path", cfg.SQLitePath).Info("Connecting to SQLite")
		return OpenSQLite(cfg.SQLitePath, gormCfg)
	}

	db, err := gorm.Open(postgres.Open(postgresDSN(cfg, log)), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info("Database connected successfully")
	return db, nil
}

func postgresDSN(cfg *config.Config, log logrus.FieldLogger) string {
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL
	}
	if cfg.InstanceConnectionName != "" {
		// Cloud Run talks to Cloud SQL through a unix socket
		log.WithField("instance", cfg.InstanceConnectionName).Info("Connecting to Cloud SQL via socket")
		return fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.InstanceConnectionName, cfg.DBUser, cfg.DBPass, cfg.DBName)
	}
	log.Info("Connecting to local PostgreSQL")
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPass, cfg.DBName, cfg.DBPort)
}

// OpenSQLite opens a SQLite database at path (":memory:" for a throwaway one).
// A nil gormCfg uses a silent logger.
func OpenSQLite(path string, gormCfg *gorm.Config) (*gorm.DB, error) {
	if gormCfg == nil {
		gormCfg = &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	}
	// Cascades are done explicitly by the store, so real FK constraints are not needed here.
	gormCfg.DisableForeignKeyConstraintWhenMigrating = true

	db, err := gorm.Open(sqlite.Open(path), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	// SQLite supports a single writer; this also keeps ":memory:" on one connection.
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Close releases the pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func newGormLogger(log logrus.FieldLogger) gormlogger.Interface {
	return gormlogger.New(log, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}
