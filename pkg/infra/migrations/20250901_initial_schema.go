package migrations

import (
	"github.com/sentinelhq/sentinel/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250901_initial_schema",
		Name: "Create redaction_logs and audit_events tables",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE EXTENSION IF NOT EXISTS pgcrypto;
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS redaction_logs (
					id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					request_id TEXT NOT NULL,
					user_id    TEXT,
					provider   TEXT NOT NULL DEFAULT 'openai',
					token_map  JSONB NOT NULL DEFAULT '{}'::jsonb,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					expires_at TIMESTAMPTZ
				);
			`).Error; err != nil {
				return err
			}
			if err := db.Exec(`
				CREATE UNIQUE INDEX IF NOT EXISTS idx_redaction_logs_request_id
					ON redaction_logs (request_id);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS audit_events (
					id           BIGSERIAL PRIMARY KEY,
					request_id   TEXT,
					user_id      TEXT,
					timestamp    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					risk_score   DOUBLE PRECISION NOT NULL DEFAULT 0,
					entity_types TEXT[] NOT NULL DEFAULT '{}',
					latency_ms   BIGINT NOT NULL DEFAULT 0,
					status       TEXT NOT NULL DEFAULT 'SUCCESS'
				);
			`).Error; err != nil {
				return err
			}
			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_audit_events_request_id ON audit_events (request_id);
			`).Error; err != nil {
				return err
			}
			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_audit_events_user_id ON audit_events (user_id);
			`).Error; err != nil {
				return err
			}
			return db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_audit_events_timestamp ON audit_events (timestamp);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			if err := db.Exec(`DROP TABLE IF EXISTS audit_events;`).Error; err != nil {
				return err
			}
			return db.Exec(`DROP TABLE IF EXISTS redaction_logs;`).Error
		},
	})
}
