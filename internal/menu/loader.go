package menu

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"bistrot-counter/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Loader defines the interface for loading a menu catalogue.
type Loader interface {
	// Load reads a catalogue source and returns its items in definition order.
	Load(ctx context.Context, source string) ([]model.MenuItem, error)
}

// Default returns the built-in catalogue, used when no external menu source
// is configured. Definition order is category-grouped: sandwiches, wraps,
// then rentals.
func Default() []model.MenuItem {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	return []model.MenuItem{
		{
			ID:          "jambon_fromage",
			DisplayName: "Sandwich Jambon-Fromage",
			Price:       price("8.50"),
			Description: "Jambon local et fromage de la vallée",
			Category:    model.CategorySandwich,
			Available:   true,
		},
		{
			ID:          "poulet_crudites",
			DisplayName: "Sandwich Poulet-Crudités",
			Price:       price("9.50"),
			Description: "Poulet grillé, légumes frais, sauce maison",
			Category:    model.CategorySandwich,
			Available:   true,
		},
		{
			ID:          "veggie_wrap",
			DisplayName: "Wrap Végétarien",
			Price:       price("8.50"),
			Description: "Légumes grillés, houmous, avocat",
			Category:    model.CategoryWrap,
			Available:   true,
		},
		{
			ID:          "thon_wrap",
			DisplayName: "Wrap au Thon",
			Price:       price("9.00"),
			Description: "Thon, mayonnaise, crudités",
			Category:    model.CategoryWrap,
			Available:   true,
		},
		{
			ID:          "sac_journee",
			DisplayName: "Location Sac à Dos Journée",
			Price:       price("5.00"),
			Description: "Sac à dos confortable avec compartiment isotherme",
			Category:    model.CategoryRental,
			Available:   true,
		},
	}
}

// fileLoader implements Loader for reading JSON catalogue files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalogue loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "menu-loader").Logger(),
	}
}

// Load reads a JSON catalogue file and returns its items.
func (l *fileLoader) Load(ctx context.Context, path string) ([]model.MenuItem, error) {
	l.logger.Info().Str("file", path).Msg("loading menu catalogue")

	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read catalogue file")
		return nil, fmt.Errorf("failed to read catalogue file %s: %w", path, err)
	}

	items, err := decodeItems(data)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to decode catalogue file")
		return nil, fmt.Errorf("failed to decode catalogue file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("items_loaded", len(items)).
		Msg("menu catalogue loaded successfully")

	return items, nil
}

// decodeItems parses a JSON item list and rejects catalogues that could not
// be sold from.
func decodeItems(data []byte) ([]model.MenuItem, error) {
	var items []model.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("catalogue contains no items")
	}

	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if item.ID == "" {
			return nil, fmt.Errorf("item %d: id is required", i)
		}
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("item %d: duplicate id %q", i, item.ID)
		}
		seen[item.ID] = struct{}{}

		if item.DisplayName == "" {
			return nil, fmt.Errorf("item %q: display name is required", item.ID)
		}
		if item.Price.IsNegative() {
			return nil, fmt.Errorf("item %q: price cannot be negative", item.ID)
		}
		switch item.Category {
		case model.CategorySandwich, model.CategoryWrap, model.CategoryRental:
		default:
			return nil, fmt.Errorf("item %q: unknown category %q", item.ID, item.Category)
		}
	}

	return items, nil
}
