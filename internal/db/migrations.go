package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`CREATE TABLE IF NOT EXISTS cdr_records (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		time_start TIMESTAMPTZ NOT NULL,
		caller_number TEXT NOT NULL DEFAULT '',
		callee_number TEXT NOT NULL DEFAULT '',
		extension TEXT NOT NULL DEFAULT '',
		call_type TEXT NOT NULL DEFAULT 'Inbound',
		call_status TEXT NOT NULL DEFAULT 'NO ANSWER',
		call_duration INTEGER NOT NULL DEFAULT 0,
		talk_duration INTEGER NOT NULL DEFAULT 0
	);`,
	`CREATE INDEX IF NOT EXISTS idx_cdr_records_time_start ON cdr_records (time_start);`,
	`CREATE INDEX IF NOT EXISTS idx_cdr_records_extension ON cdr_records (extension);`,
	`CREATE INDEX IF NOT EXISTS idx_cdr_records_type_status ON cdr_records (call_type, call_status);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
