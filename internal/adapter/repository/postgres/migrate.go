package postgres

import (
	"context"
	"fmt"
)

// Each table carries a BIGSERIAL seq column so full scans can reproduce
// insertion order; name lookups resolve to the lowest seq on ties.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS owners (
		seq        BIGSERIAL,
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL,
		cash       NUMERIC NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS locations (
		seq                BIGSERIAL,
		id                 UUID PRIMARY KEY,
		name               TEXT NOT NULL,
		price              NUMERIC NOT NULL,
		available_fraction NUMERIC NOT NULL,
		created_at         TIMESTAMPTZ NOT NULL,
		updated_at         TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		seq            BIGSERIAL,
		id             UUID PRIMARY KEY,
		location_id    UUID NOT NULL,
		owner_id       UUID NOT NULL,
		own_percentage NUMERIC NOT NULL,
		capital_amount NUMERIC NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS holdings (
		seq            BIGSERIAL,
		id             UUID PRIMARY KEY,
		location_id    UUID NOT NULL,
		owner_id       UUID NOT NULL,
		own_percentage NUMERIC NOT NULL,
		capital_amount NUMERIC NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL
	)`,
}

// Migrate creates the ledger tables if they do not exist yet
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
