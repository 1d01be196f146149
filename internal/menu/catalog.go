package menu

import (
	"strings"

	"bistrot-counter/internal/model"
)

// Catalog is a read-only registry of menu items. It is loaded once at
// process start; iteration order is the catalogue definition order.
type Catalog struct {
	items []model.MenuItem
	// No mutex needed - items are read-only after initialization
}

// NewCatalog creates a catalogue over the given items in definition order.
func NewCatalog(items []model.MenuItem) *Catalog {
	return &Catalog{items: items}
}

// Lookup resolves a free-text query to a menu item. Matching is a
// case-insensitive substring check against the item's id, display name and
// description; the first available match in definition order wins. Returns
// nil when nothing matches.
func (c *Catalog) Lookup(query string) *model.MenuItem {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	for i := range c.items {
		item := &c.items[i]
		if !item.Available {
			continue
		}
		if strings.Contains(strings.ToLower(item.ID), query) ||
			strings.Contains(strings.ToLower(item.DisplayName), query) ||
			strings.Contains(strings.ToLower(item.Description), query) {
			match := *item
			return &match
		}
	}

	return nil
}

// ListByCategory returns the available items of one category in definition
// order.
func (c *Catalog) ListByCategory(category model.Category) []model.MenuItem {
	var items []model.MenuItem
	for _, item := range c.items {
		if item.Available && item.Category == category {
			items = append(items, item)
		}
	}
	return items
}

// Size returns the number of items in the catalogue, available or not.
func (c *Catalog) Size() int {
	return len(c.items)
}
