package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/druryyl/btrade/internal/model"
)

func TestReplaceItems_WholesaleSwap(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceItems(ctx, []model.Item{
		{ID: "B-1", Code: "SKU-1", Name: "Kopi Sachet", Conversion: 12, UnitPrice: 1500},
		{ID: "B-2", Code: "SKU-2", Name: "Teh Botol", Conversion: 24, UnitPrice: 3000},
	}))

	// Second pull drops B-2 entirely; the mirror must follow.
	require.NoError(t, s.ReplaceItems(ctx, []model.Item{
		{ID: "B-1", Code: "SKU-1", Name: "Kopi Sachet", Conversion: 12, UnitPrice: 1600},
	}))

	items, err := s.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1600.0, items[0].UnitPrice)
}

func TestReplaceItems_ManyRowsSpanBatches(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rows := make([]model.Item, 0, ReplaceBatchSize*2+37)
	for i := 0; i < cap(rows); i++ {
		rows = append(rows, model.Item{
			ID:   fmt.Sprintf("B-%04d", i),
			Code: fmt.Sprintf("SKU-%04d", i),
		})
	}
	require.NoError(t, s.ReplaceItems(ctx, rows))

	items, err := s.Items(ctx)
	require.NoError(t, err)
	assert.Len(t, items, len(rows))
}

func TestReplaceSalesPersons(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceSalesPersons(ctx, []model.SalesPerson{
		{ID: "S-2", Code: "SLS02", Name: "Budi"},
		{ID: "S-1", Code: "SLS01", Name: "Andi"},
	}))

	people, err := s.SalesPersons(ctx)
	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, "SLS01", people[0].Code, "mirror queries order by code")
}

func TestReplaceCustomers_PreservesDirtyLocations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceCustomers(ctx, []model.Customer{
		{ID: "C-1", Code: "TK001", Name: "Toko Sinar Jaya", Lat: -6.1, Lon: 106.8},
	}))

	// Field re-pin not yet pushed upstream.
	require.NoError(t, s.UpdateCustomerLocation(ctx, "C-1", -6.2, 106.9, 8))

	// A pull arrives with the stale server coordinates.
	require.NoError(t, s.ReplaceCustomers(ctx, []model.Customer{
		{ID: "C-1", Code: "TK001", Name: "Toko Sinar Jaya", Lat: -6.1, Lon: 106.8},
	}))

	got, err := s.GetCustomer(ctx, "C-1")
	require.NoError(t, err)
	assert.True(t, got.LocationDirty)
	assert.Equal(t, -6.2, got.Lat)
	assert.Equal(t, 106.9, got.Lon)
}

func TestUpdateCustomerLocation_DirtyLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceCustomers(ctx, []model.Customer{
		{ID: "C-1", Code: "TK001"},
		{ID: "C-2", Code: "TK002"},
	}))

	require.NoError(t, s.UpdateCustomerLocation(ctx, "C-2", -7.0, 110.0, 15))

	dirty, err := s.DirtyLocationCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, dirty, 1)
	assert.Equal(t, "C-2", dirty[0].ID)

	require.NoError(t, s.ClearLocationDirty(ctx, "C-2"))

	dirty, err = s.DirtyLocationCustomers(ctx)
	require.NoError(t, err)
	assert.Empty(t, dirty)
}

func TestUpdateCustomerLocation_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateCustomerLocation(context.Background(), "C-404", 0, 0, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}
