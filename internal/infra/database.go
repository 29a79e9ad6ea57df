package infra

import (
	"fmt"

	"github.com/vahid343/food-save-city/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// AutoMigrate cannot express (CHECK constraints, extensions).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	// gen_random_uuid() needs pgcrypto on Postgres < 13 images.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return nil, fmt.Errorf("enable pgcrypto: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Product{},
		&model.ActionEntry{},
		&model.Category{},
		&model.User{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot fully handle.
// Each statement is guarded so re-running on an already-patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Stock can be zeroed by a donation but must never go negative.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_products_quantity_nonneg') THEN
		    ALTER TABLE products ADD CONSTRAINT chk_products_quantity_nonneg CHECK (quantity >= 0);
		  END IF;
		END $$`,
		// The ledger only ever holds the two decision kinds.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_action_entries_type') THEN
		    ALTER TABLE action_entries ADD CONSTRAINT chk_action_entries_type
		        CHECK (action_type IN ('discount', 'donation'));
		  END IF;
		END $$`,
		// Risk-zone candidate query filters on stock and expiry together.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_products_expiry_instock') THEN
		    CREATE INDEX idx_products_expiry_instock
		        ON products (expiry_date)
		        WHERE quantity > 0;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
