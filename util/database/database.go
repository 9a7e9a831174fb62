package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

func New(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// schema is applied at startup; every statement is idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS booking_requests (
	id             UUID PRIMARY KEY,
	name           TEXT NOT NULL,
	rollno         TEXT NOT NULL,
	email          TEXT NOT NULL,
	purpose        TEXT NOT NULL,
	player_roll_no TEXT NOT NULL,
	no_of_players  INT,
	slot           INT NOT NULL,
	date           TEXT NOT NULL,
	status         TEXT NOT NULL DEFAULT 'pending',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_requests_slot_date
	ON booking_requests (slot, date, status, created_at);

CREATE TABLE IF NOT EXISTS slot_claims (
	id         UUID PRIMARY KEY,
	request_id UUID NOT NULL REFERENCES booking_requests(id) ON DELETE CASCADE,
	rollno     TEXT NOT NULL,
	slot       INT NOT NULL,
	date       TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

-- at most one accepted claim per (slot, date)
CREATE UNIQUE INDEX IF NOT EXISTS uq_claims_accepted
	ON slot_claims (slot, date) WHERE status = 'accepted';

CREATE TABLE IF NOT EXISTS bans (
	rollno     TEXT PRIMARY KEY,
	banned_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	expires_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS otps (
	email      TEXT NOT NULL,
	code       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_otps_email_code ON otps (email, code);
`

// EnsureSchema creates the tables and indexes the service needs.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
