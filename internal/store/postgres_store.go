package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bistrot-counter/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Orders and the statistics singleton are stored as self-contained JSONB
// records keyed by order ID, mirroring the file backend's record layout.
const postgresSchema = `
	CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		record JSONB NOT NULL
	);

	CREATE TABLE IF NOT EXISTS statistics (
		id INT PRIMARY KEY CHECK (id = 1),
		record JSONB NOT NULL
	);
`

// PostgresStore implements Store on top of a pgx connection pool.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresStore creates a Postgres-backed store.
func NewPostgresStore(pool *pgxpool.Pool, logger zerolog.Logger) *PostgresStore {
	return &PostgresStore{
		pool:   pool,
		logger: logger.With().Str("component", "postgres-store").Logger(),
	}
}

// EnsureSchema creates the order and statistics tables if they are missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// Persist inserts the order record, then folds it into the statistics row.
func (s *PostgresStore) Persist(ctx context.Context, order *model.Order) (string, error) {
	payload, err := json.Marshal(order)
	if err != nil {
		return "", fmt.Errorf("failed to encode order %s: %w", order.ID, err)
	}

	query := `
		INSERT INTO orders (id, created_at, record)
		VALUES ($1, $2, $3)
	`

	if _, err := s.pool.Exec(ctx, query, order.ID, order.CreatedAt, payload); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to insert order record")
		return "", fmt.Errorf("failed to insert order record %s: %w", order.ID, err)
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Str("total", order.Total.StringFixed(2)).
		Msg("order record inserted")

	// The order row is already committed; a statistics failure is logged
	// and swallowed.
	if err := s.updateStatistics(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to update statistics")
	}

	return order.ID, nil
}

// Statistics returns the current aggregates, zero-valued when the singleton
// row does not exist yet.
func (s *PostgresStore) Statistics(ctx context.Context) (*model.Statistics, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, `SELECT record FROM statistics WHERE id = 1`).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.NewStatistics(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query statistics: %w", err)
	}

	stats := model.NewStatistics()
	if err := json.Unmarshal(payload, stats); err != nil {
		return nil, fmt.Errorf("failed to decode statistics record: %w", err)
	}

	return stats, nil
}

// updateStatistics performs the singleton read-modify-write inside a
// transaction, locking the row against a second writer.
func (s *PostgresStore) updateStatistics(ctx context.Context, order *model.Order) (err error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin statistics transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				s.logger.Error().Err(rbErr).Msg("failed to rollback statistics transaction")
			}
		}
	}()

	stats := model.NewStatistics()

	var payload []byte
	err = tx.QueryRow(ctx, `SELECT record FROM statistics WHERE id = 1 FOR UPDATE`).Scan(&payload)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		err = nil
	case err != nil:
		return fmt.Errorf("failed to read statistics row: %w", err)
	default:
		if err = json.Unmarshal(payload, stats); err != nil {
			return fmt.Errorf("failed to decode statistics record: %w", err)
		}
	}

	stats.Apply(order)

	out, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode statistics record: %w", err)
	}

	upsert := `
		INSERT INTO statistics (id, record)
		VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET record = EXCLUDED.record
	`

	if _, err = tx.Exec(ctx, upsert, out); err != nil {
		return fmt.Errorf("failed to write statistics row: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit statistics transaction: %w", err)
	}

	return nil
}
