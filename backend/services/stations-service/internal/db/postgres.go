package db

import (
	"context"
	"database/sql"

	libdb "voltfinder/backend/libs/db"
)

// NewPostgres connects to Postgres using shared library helper.
func NewPostgres(dsn string) (*sql.DB, error) {
	return libdb.NewPostgres(dsn)
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS ev_vehicles (
		id BIGSERIAL PRIMARY KEY,
		owner_id BIGINT NOT NULL,
		name TEXT NOT NULL,
		make TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		year INT NOT NULL DEFAULT 0,
		connector_types JSONB NOT NULL DEFAULT '[]',
		max_charging_rate_kw INT NOT NULL DEFAULT 0,
		battery_capacity_kwh INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ev_vehicles_owner ON ev_vehicles (owner_id)`,
	`CREATE TABLE IF NOT EXISTS saved_locations (
		id BIGSERIAL PRIMARY KEY,
		owner_id BIGINT NOT NULL,
		station_id TEXT NOT NULL,
		name TEXT NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		connector_types JSONB NOT NULL DEFAULT '[]',
		network TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_saved_locations_owner ON saved_locations (owner_id)`,
}

// Migrate applies the schema. Statements are idempotent so startup can run
// them unconditionally.
func Migrate(ctx context.Context, pool *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := pool.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
