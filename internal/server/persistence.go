package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mystery-server/internal/mystery"
)

// PostgresStore persists room state as one JSONB blob per room code.
// The whole GameState travels as a unit; the database never sees
// individual fields except the key and the update timestamp.
type PostgresStore struct {
	pool *pgxpool.Pool
}

const roomsSchema = `
	CREATE TABLE IF NOT EXISTS rooms (
		room_key   TEXT PRIMARY KEY,
		state      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, roomsSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure rooms table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Get(ctx context.Context, roomCode string) (*mystery.GameState, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT state FROM rooms WHERE room_key = $1`,
		roomKey(roomCode),
	).Scan(&data)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("room %s: %w", roomCode, mystery.ErrRoomNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load room %s: %w", roomCode, err)
	}

	return decodeState(data)
}

func (s *PostgresStore) Set(ctx context.Context, roomCode string, state *mystery.GameState) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO rooms (room_key, state, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (room_key) DO UPDATE
		SET state = EXCLUDED.state, updated_at = now()
	`, roomKey(roomCode), data)

	if err != nil {
		return fmt.Errorf("failed to save room %s: %w", roomCode, err)
	}

	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, roomCode string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM rooms WHERE room_key = $1`,
		roomKey(roomCode),
	)
	if err != nil {
		return fmt.Errorf("failed to delete room %s: %w", roomCode, err)
	}

	return nil
}

func (s *PostgresStore) Health(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Cleanup deletes finished rooms that have not been touched for the given
// duration, so the table does not grow without bound.
func (s *PostgresStore) Cleanup(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)

	tag, err := s.pool.Exec(ctx, `
		DELETE FROM rooms
		WHERE state->>'phase' = $1 AND updated_at < $2
	`, string(mystery.PhaseGameOver), cutoff)

	if err != nil {
		return 0, fmt.Errorf("failed to cleanup old rooms: %w", err)
	}

	return int(tag.RowsAffected()), nil
}
