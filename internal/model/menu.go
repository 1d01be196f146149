package model

import "github.com/shopspring/decimal"

// Category classifies a menu item.
type Category string

const (
	CategorySandwich Category = "sandwich"
	CategoryWrap     Category = "wrap"
	CategoryRental   Category = "rental"
)

// MenuItem represents a purchasable item in the counter's catalogue.
// Items are immutable once the catalogue has been loaded.
type MenuItem struct {
	ID          string          `json:"id"`
	DisplayName string          `json:"displayName"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    Category        `json:"category"`
	Available   bool            `json:"available"`
}
