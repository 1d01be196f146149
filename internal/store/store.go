package store

import (
	"context"

	"bistrot-counter/internal/model"
)

// Store persists finalized orders and maintains the aggregate statistics
// record. A statistics update failure never rolls back or fails the order
// write: the order record is durable on its own.
type Store interface {
	// Persist writes the order as a self-contained record keyed by its ID
	// and folds it into the statistics. It returns a handle naming the
	// written record (file path or row key).
	Persist(ctx context.Context, order *model.Order) (string, error)

	// Statistics returns the current aggregates, zero-valued when no order
	// has been persisted yet.
	Statistics(ctx context.Context) (*model.Statistics, error)
}
