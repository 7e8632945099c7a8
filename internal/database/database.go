package database

import (
	"fmt"
	"strings"

	"gamereviews/backend/internal/logger"
	"gamereviews/backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Dialector picks the GORM driver for a DATABASE_URL. postgres:// URLs go to
// PostgreSQL; anything else is treated as a SQLite file path.
func Dialector(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return postgres.Open(dsn)
	}
	return sqlite.Open(sqliteDSN(dsn))
}

// sqliteDSN turns on foreign key enforcement, which SQLite leaves off by default.
func sqliteDSN(dsn string) string {
	dsn = strings.TrimPrefix(dsn, "sqlite://")
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

// Open opens a connection with the zap-backed GORM logger and migrates the schema.
func Open(dialector gorm.Dialector, log *zap.Logger, level gormlogger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.NewGormLogger(log, level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the users, games, reviews and tags tables when they are absent.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Game{}, &models.Review{}, &models.Tag{}); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

// Connect initializes the database connection and runs migrations.
func Connect(dsn string, log *zap.Logger, level gormlogger.LogLevel) error {
	db, err := Open(Dialector(dsn), log, level)
	if err != nil {
		return err
	}
	DB = db

	log.Info("Database connection established", zap.String("dialect", db.Dialector.Name()))
	return nil
}
