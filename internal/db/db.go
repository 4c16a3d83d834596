package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/config"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
)

// Non-cancelled appointments of one doctor may not overlap. Half-open ranges,
// so back-to-back appointments are allowed.
const noOverlapConstraint = `
	ALTER TABLE appointments
	ADD CONSTRAINT appointments_no_overlap
	EXCLUDE USING gist (
		doctor_id WITH =,
		tstzrange(starts_at, ends_at) WITH &&
	) WHERE (status <> 'cancelled')
`

// NewDB opens the pool, migrates the schema and installs the overlap
// constraint. Errors are returned for main to report.
func NewDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Doctor{},
		&models.Patient{},
		&models.Availability{},
		&models.Appointment{},
		&models.Payment{},
		&models.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	ensureNoOverlap(db, logger)

	logger.Info("database ready", zap.Int("max_open_conns", 10))
	return db, nil
}

// ensureNoOverlap installs the exclusion constraint once. Without it the
// advisory lock taken by the booking transaction is the only guard.
func ensureNoOverlap(db *gorm.DB, logger *zap.Logger) {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		logger.Warn("btree_gist unavailable, overlap constraint skipped", zap.Error(err))
		return
	}

	var exists bool
	if err := db.Raw(
		`SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap')`,
	).Scan(&exists).Error; err != nil {
		logger.Warn("could not inspect constraints", zap.Error(err))
		return
	}
	if exists {
		return
	}

	if err := db.Exec(noOverlapConstraint).Error; err != nil {
		logger.Warn("could not add overlap constraint", zap.Error(err))
	}
}
