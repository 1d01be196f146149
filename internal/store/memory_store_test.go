package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Persist(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	ord := testOrder("BZ-1", "12:30", "8.50", "5.00")

	handle, err := st.Persist(ctx, ord)
	require.NoError(t, err)
	assert.Equal(t, "BZ-1", handle)

	stored, ok := st.Get("BZ-1")
	require.True(t, ok)
	assert.True(t, stored.Total.Equal(decimal.RequireFromString("13.50")))
	assert.Equal(t, 1, st.Len())
}

func TestMemoryStore_Statistics_Accumulation(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	_, err := st.Persist(ctx, testOrder("BZ-1", "12:30", "8.50", "5.00"))
	require.NoError(t, err)
	_, err = st.Persist(ctx, testOrder("BZ-2", "12:45", "9.50"))
	require.NoError(t, err)

	stats, err := st.Statistics(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalOrders)
	assert.True(t, stats.RevenueTotal.Equal(decimal.RequireFromString("23.00")))
	assert.Equal(t, 2, stats.HourCounts["12"])
}

// Statistics returns a copy: callers must not be able to mutate the
// store's aggregates.
func TestMemoryStore_Statistics_ReturnsCopy(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	_, err := st.Persist(ctx, testOrder("BZ-1", "12:30", "8.50"))
	require.NoError(t, err)

	stats, err := st.Statistics(ctx)
	require.NoError(t, err)
	stats.TotalOrders = 99
	stats.ItemCounts["Item 1"] = 99

	fresh, err := st.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.TotalOrders)
	assert.Equal(t, 1, fresh.ItemCounts["Item 1"])
}

func TestMemoryStore_Get_Unknown(t *testing.T) {
	st := NewMemoryStore()

	_, ok := st.Get("nope")
	assert.False(t, ok)
	assert.Equal(t, 0, st.Len())
}
