package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status values.
const (
	StatusPending = "pending"
)

// OrderLine is one priced entry within an order. Name and price are
// snapshotted from the catalogue at add time, so later price changes never
// affect saved orders.
type OrderLine struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Order represents a finalized customer order. Immutable once persisted.
type Order struct {
	ID            string          `json:"orderId"`
	CreatedAt     time.Time       `json:"createdAt"`
	PickupTime    string          `json:"pickupTime"`
	Lines         []OrderLine     `json:"lines"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	CustomerName  string          `json:"customerName,omitempty"`
	CustomerPhone string          `json:"customerPhone,omitempty"`
}

// PickupHour returns the hour prefix of the pickup time ("14:30" -> "14").
func (o *Order) PickupHour() string {
	for i := 0; i < len(o.PickupTime); i++ {
		if o.PickupTime[i] == ':' {
			return o.PickupTime[:i]
		}
	}
	return o.PickupTime
}

// Statistics is the singleton aggregate record updated once per persisted
// order.
type Statistics struct {
	TotalOrders  int             `json:"totalOrders"`
	RevenueTotal decimal.Decimal `json:"revenueTotal"`
	ItemCounts   map[string]int  `json:"itemCounts"`
	HourCounts   map[string]int  `json:"hourCounts"`
}

// NewStatistics returns a zero-valued statistics record.
func NewStatistics() *Statistics {
	return &Statistics{
		RevenueTotal: decimal.Zero,
		ItemCounts:   make(map[string]int),
		HourCounts:   make(map[string]int),
	}
}

// Apply folds one persisted order into the aggregates.
func (s *Statistics) Apply(order *Order) {
	if s.ItemCounts == nil {
		s.ItemCounts = make(map[string]int)
	}
	if s.HourCounts == nil {
		s.HourCounts = make(map[string]int)
	}

	s.TotalOrders++
	s.RevenueTotal = s.RevenueTotal.Add(order.Total)
	for _, line := range order.Lines {
		s.ItemCounts[line.Name]++
	}
	s.HourCounts[order.PickupHour()]++
}
