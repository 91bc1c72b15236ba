package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const snapshotsSchema = `
	CREATE TABLE IF NOT EXISTS snapshots (
		slot       TEXT PRIMARY KEY,
		data       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

// NewPostgresStore creates a Store backed by a single snapshots table with
// one row per slot.
func NewPostgresStore(databaseURL string, logger *zap.Logger) (Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if _, err := db.Exec(snapshotsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure snapshots table: %w", err)
	}

	return newSnapshotStore(&postgresBackend{db: db}, logger), nil
}

type postgresBackend struct {
	db *sqlx.DB
}

func (b *postgresBackend) get(ctx context.Context, slot string) ([]byte, error) {
	var data []byte
	err := b.db.GetContext(ctx, &data, "SELECT data FROM snapshots WHERE slot = $1", slot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (b *postgresBackend) set(ctx context.Context, slot string, data []byte) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO snapshots (slot, data) VALUES ($1, $2)
		ON CONFLICT (slot) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
		slot, data)
	return err
}

func (b *postgresBackend) close() error {
	return b.db.Close()
}
