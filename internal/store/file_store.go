package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"bistrot-counter/internal/model"

	"github.com/rs/zerolog"
)

const statsFileName = "stats.json"

// fileStore implements Store with one pretty-printed JSON file per order
// plus a singleton statistics file, all under one directory.
//
// The statistics read-modify-write does no cross-process locking; the
// intended deployment is a single interactive session at a time.
type fileStore struct {
	dir    string
	logger zerolog.Logger
}

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory if needed.
func NewFileStore(dir string, logger zerolog.Logger) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create order directory %s: %w", dir, err)
	}

	return &fileStore{
		dir:    dir,
		logger: logger.With().Str("component", "file-store").Logger(),
	}, nil
}

// Persist writes the order record, then folds it into the statistics file.
func (s *fileStore) Persist(ctx context.Context, order *model.Order) (string, error) {
	data, err := json.MarshalIndent(order, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to encode order %s: %w", order.ID, err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("order_%s.json", order.ID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID).Str("path", path).Msg("failed to write order record")
		return "", fmt.Errorf("failed to write order record %s: %w", path, err)
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Str("path", path).
		Str("total", order.Total.StringFixed(2)).
		Msg("order record written")

	// The order record is already durable; a statistics failure is logged
	// and swallowed.
	if err := s.updateStatistics(order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to update statistics")
	}

	return path, nil
}

// Statistics returns the current aggregates, zero-valued on first run.
func (s *fileStore) Statistics(ctx context.Context) (*model.Statistics, error) {
	return s.loadStatistics()
}

func (s *fileStore) statsPath() string {
	return filepath.Join(s.dir, statsFileName)
}

func (s *fileStore) loadStatistics() (*model.Statistics, error) {
	data, err := os.ReadFile(s.statsPath())
	if os.IsNotExist(err) {
		return model.NewStatistics(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read statistics file: %w", err)
	}

	stats := model.NewStatistics()
	if err := json.Unmarshal(data, stats); err != nil {
		return nil, fmt.Errorf("failed to decode statistics file: %w", err)
	}

	return stats, nil
}

func (s *fileStore) updateStatistics(order *model.Order) error {
	stats, err := s.loadStatistics()
	if err != nil {
		return err
	}

	stats.Apply(order)

	data, err := json.MarshalIndent(stats, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode statistics: %w", err)
	}

	if err := os.WriteFile(s.statsPath(), data, 0o644); err != nil {
		return fmt.Errorf("failed to write statistics file: %w", err)
	}

	return nil
}
