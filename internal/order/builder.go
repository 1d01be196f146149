package order

import (
	"fmt"
	"strings"
	"time"

	"bistrot-counter/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Builder accumulates catalogue items into a priced order. One builder
// serves one conversation; it is not safe for concurrent use.
type Builder struct {
	tag   string
	now   func() time.Time
	lines []model.OrderLine
	total decimal.Decimal
}

// NewBuilder creates a builder that tags generated order IDs with tag.
func NewBuilder(tag string) *Builder {
	return NewBuilderWithClock(tag, time.Now)
}

// NewBuilderWithClock creates a builder with an injected clock.
func NewBuilderWithClock(tag string, now func() time.Time) *Builder {
	return &Builder{
		tag:   tag,
		now:   now,
		total: decimal.Zero,
	}
}

// AddItem appends a snapshot of the item's display name and current price.
// Later catalogue price changes never affect the recorded line.
func (b *Builder) AddItem(item model.MenuItem) {
	b.lines = append(b.lines, model.OrderLine{
		Name:  item.DisplayName,
		Price: item.Price,
	})
	b.total = b.total.Add(item.Price)
}

// Empty reports whether no items have been added yet.
func (b *Builder) Empty() bool {
	return len(b.lines) == 0
}

// Lines returns the snapshotted lines added so far.
func (b *Builder) Lines() []model.OrderLine {
	lines := make([]model.OrderLine, len(b.lines))
	copy(lines, b.lines)
	return lines
}

// Total returns the running total of the added lines.
func (b *Builder) Total() decimal.Decimal {
	return b.total
}

// Build finalizes the order. The pickup time must already have been
// validated; empty orders are refused. The order ID combines the store tag,
// a second-resolution timestamp and a random suffix so that two orders
// created within the same second stay distinct.
func (b *Builder) Build(pickupTime, customerName, customerPhone string) (*model.Order, error) {
	if b.Empty() {
		return nil, model.ErrEmptyOrder
	}

	now := b.now()

	return &model.Order{
		ID:            newOrderID(b.tag, now),
		CreatedAt:     now,
		PickupTime:    pickupTime,
		Lines:         b.Lines(),
		Total:         b.total,
		Status:        model.StatusPending,
		CustomerName:  strings.TrimSpace(customerName),
		CustomerPhone: strings.TrimSpace(customerPhone),
	}, nil
}

// newOrderID derives a unique order identifier from the creation time.
func newOrderID(tag string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%s-%s", tag, now.Format("20060102150405"), suffix)
}
