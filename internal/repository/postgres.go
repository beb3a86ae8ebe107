package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the tables used by the repository. It is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id                 TEXT PRIMARY KEY,
	name               TEXT NOT NULL,
	email              TEXT NOT NULL UNIQUE,
	password_hash      TEXT NOT NULL,
	blood_group        TEXT NOT NULL,
	age                INTEGER NOT NULL,
	gender             TEXT NOT NULL DEFAULT '',
	phone_number       TEXT NOT NULL DEFAULT '',
	profession         TEXT NOT NULL DEFAULT '',
	present_address    TEXT NOT NULL DEFAULT '',
	permanent_address  TEXT NOT NULL DEFAULT '',
	avatar             TEXT NOT NULL DEFAULT '',
	latitude           DOUBLE PRECISION,
	longitude          DOUBLE PRECISION,
	is_public          BOOLEAN NOT NULL DEFAULT TRUE,
	status             TEXT NOT NULL DEFAULT 'inactive',
	last_active        TIMESTAMPTZ,
	last_donation_date TIMESTAMPTZ,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS users_blood_group_idx ON users (blood_group) WHERE is_public;

CREATE TABLE IF NOT EXISTS messages (
	id          TEXT PRIMARY KEY,
	sender_id   TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	receiver_id TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	content     TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS messages_receiver_idx ON messages (receiver_id, created_at DESC);
CREATE INDEX IF NOT EXISTS messages_pair_idx ON messages (sender_id, receiver_id, created_at);
`

const uniqueViolation = "23505"

// Repository implements persistence for users and messages on PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Migrate applies Schema.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("repository: failed to apply schema: %w", err)
	}
	return nil
}

// Ping checks the database connection.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
