package database

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/launchbase/backend/config"
)

// New opens the application database connection.
func New(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)

	// Log connection target (without password)
	log.Printf("Connecting to database at %s:%s as user %s", cfg.DBHost, cfg.DBPort, cfg.DBUser)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	log.Printf("Successfully connected to database")
	return db, nil
}

// WithOwner runs fn in a transaction scoped to the given identity. On
// Postgres the app.user_id setting is what the row-level policies
// evaluate, so every caller-scoped read or write of user_profiles must
// go through here. On other dialects (unit tests run on SQLite) the
// setting does not exist and the scoping is a no-op.
func WithOwner(db *gorm.DB, userID uuid.UUID, fn func(tx *gorm.DB) error) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT set_config('app.user_id', ?, true)", userID.String()).Error; err != nil {
				return fmt.Errorf("failed to set owner scope: %w", err)
			}
		}
		return fn(tx)
	})
}

// SystemContext returns a handle for the privileged write path: queries
// issued on it run on the service's own connection, which the row-level
// policies do not constrain. Reserved for cross-row reads (username
// conflict checks) and the bootstrap tooling; never hand it to
// user-facing code paths.
func SystemContext(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{})
}
