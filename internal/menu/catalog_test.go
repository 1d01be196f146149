package menu

import (
	"testing"

	"bistrot-counter/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Lookup(t *testing.T) {
	catalog := NewCatalog(Default())

	tests := []struct {
		name       string
		query      string
		expectedID string
	}{
		{
			name:       "Match on id fragment",
			query:      "jambon",
			expectedID: "jambon_fromage",
		},
		{
			name:       "Match on display name fragment",
			query:      "thon",
			expectedID: "thon_wrap",
		},
		{
			name:       "Match is case-insensitive",
			query:      "JAMBON",
			expectedID: "jambon_fromage",
		},
		{
			name:       "Match on description fragment",
			query:      "houmous",
			expectedID: "veggie_wrap",
		},
		{
			name:       "Rental reachable by query",
			query:      "sac",
			expectedID: "sac_journee",
		},
		{
			name:       "Surrounding whitespace ignored",
			query:      "  poulet  ",
			expectedID: "poulet_crudites",
		},
		{
			name:       "No match",
			query:      "pizza",
			expectedID: "",
		},
		{
			name:       "Empty query never matches",
			query:      "   ",
			expectedID: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := catalog.Lookup(tt.query)

			if tt.expectedID == "" {
				assert.Nil(t, item)
				return
			}

			require.NotNil(t, item)
			assert.Equal(t, tt.expectedID, item.ID)
		})
	}
}

// Ambiguous queries resolve to the first match in catalogue definition
// order; this pins that order rather than leaving it implicit.
func TestCatalog_Lookup_FirstMatchWins(t *testing.T) {
	catalog := NewCatalog(Default())

	item := catalog.Lookup("sandwich")
	require.NotNil(t, item)
	assert.Equal(t, "jambon_fromage", item.ID)

	item = catalog.Lookup("wrap")
	require.NotNil(t, item)
	assert.Equal(t, "veggie_wrap", item.ID)
}

func TestCatalog_Lookup_SkipsUnavailable(t *testing.T) {
	items := []model.MenuItem{
		{
			ID:          "jambon_fromage",
			DisplayName: "Sandwich Jambon-Fromage",
			Price:       decimal.RequireFromString("8.50"),
			Category:    model.CategorySandwich,
			Available:   false,
		},
		{
			ID:          "poulet_crudites",
			DisplayName: "Sandwich Poulet-Crudités",
			Price:       decimal.RequireFromString("9.50"),
			Category:    model.CategorySandwich,
			Available:   true,
		},
	}
	catalog := NewCatalog(items)

	item := catalog.Lookup("sandwich")
	require.NotNil(t, item)
	assert.Equal(t, "poulet_crudites", item.ID)

	assert.Nil(t, catalog.Lookup("jambon"))
}

func TestCatalog_Lookup_ReturnsCopy(t *testing.T) {
	catalog := NewCatalog(Default())

	first := catalog.Lookup("jambon")
	require.NotNil(t, first)
	first.Price = decimal.RequireFromString("99.99")

	second := catalog.Lookup("jambon")
	require.NotNil(t, second)
	assert.True(t, second.Price.Equal(decimal.RequireFromString("8.50")))
}

func TestCatalog_ListByCategory(t *testing.T) {
	items := Default()
	items = append(items, model.MenuItem{
		ID:          "special_wrap",
		DisplayName: "Wrap du Jour",
		Price:       decimal.RequireFromString("10.00"),
		Category:    model.CategoryWrap,
		Available:   false,
	})
	catalog := NewCatalog(items)

	sandwiches := catalog.ListByCategory(model.CategorySandwich)
	require.Len(t, sandwiches, 2)
	assert.Equal(t, "jambon_fromage", sandwiches[0].ID)
	assert.Equal(t, "poulet_crudites", sandwiches[1].ID)

	// Unavailable wrap is filtered out, order preserved.
	wraps := catalog.ListByCategory(model.CategoryWrap)
	require.Len(t, wraps, 2)
	assert.Equal(t, "veggie_wrap", wraps[0].ID)
	assert.Equal(t, "thon_wrap", wraps[1].ID)

	rentals := catalog.ListByCategory(model.CategoryRental)
	require.Len(t, rentals, 1)
	assert.Equal(t, "sac_journee", rentals[0].ID)
}
