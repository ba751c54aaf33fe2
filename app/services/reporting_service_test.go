package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bistro/app/models"
)

type fakeUsers struct {
	count int64
}

func (f *fakeUsers) EstimatedCount(context.Context) (int64, error) { return f.count, nil }

type fakeCatalog struct {
	items map[primitive.ObjectID]models.MenuItem
}

func (f *fakeCatalog) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeCatalog) EstimatedCount(context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

type fakeLedgerReader struct {
	count   int64
	revenue float64
	refs    []string
}

func (f *fakeLedgerReader) EstimatedCount(context.Context) (int64, error) { return f.count, nil }
func (f *fakeLedgerReader) TotalRevenue(context.Context) (float64, error) { return f.revenue, nil }
func (f *fakeLedgerReader) MenuRefs(context.Context) ([]string, error)    { return f.refs, nil }

func menuItem(category string, price float64) models.MenuItem {
	return models.MenuItem{
		ID:       primitive.NewObjectID(),
		Name:     category + " special",
		Category: category,
		Price:    price,
	}
}

func TestAdminStatsEmptyLedger(t *testing.T) {
	s := NewReportingService(
		&fakeUsers{count: 3},
		&fakeCatalog{items: map[primitive.ObjectID]models.MenuItem{}},
		&fakeLedgerReader{},
	)

	stats, err := s.AdminStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalUsers)
	assert.Equal(t, int64(0), stats.TotalOrders)
	assert.Equal(t, float64(0), stats.TotalRevenue, "an empty ledger reports zero, not an error")
}

func TestOrderStatsGroupsByCategory(t *testing.T) {
	pizza := menuItem("pizza", 12.50)
	salad := menuItem("salad", 8.00)
	soup := menuItem("soup", 6.25)

	catalog := &fakeCatalog{items: map[primitive.ObjectID]models.MenuItem{
		pizza.ID: pizza,
		salad.ID: salad,
		soup.ID:  soup,
	}}

	// Two pizza rows across different payments, one salad, one soup.
	ledger := &fakeLedgerReader{refs: []string{
		pizza.ID.Hex(),
		salad.ID.Hex(),
		pizza.ID.Hex(),
		soup.ID.Hex(),
	}}

	s := NewReportingService(&fakeUsers{}, catalog, ledger)
	stats, err := s.OrderStatsByCategory(context.Background())
	require.NoError(t, err)

	require.Len(t, stats, 3)
	// Output is sorted by category name.
	assert.Equal(t, "pizza", stats[0].Category)
	assert.Equal(t, int64(2), stats[0].Quantity)
	assert.InDelta(t, 25.0, stats[0].Revenue, 1e-9)
	assert.Equal(t, "salad", stats[1].Category)
	assert.Equal(t, int64(1), stats[1].Quantity)
	assert.Equal(t, "soup", stats[2].Category)
}

func TestOrderStatsDropsUnresolvableRefs(t *testing.T) {
	pizza := menuItem("pizza", 10.00)
	catalog := &fakeCatalog{items: map[primitive.ObjectID]models.MenuItem{pizza.ID: pizza}}

	ledger := &fakeLedgerReader{refs: []string{
		pizza.ID.Hex(),
		"definitely-not-hex",              // malformed reference
		primitive.NewObjectID().Hex(),     // dangling: menu item deleted
		pizza.ID.Hex(),
	}}

	s := NewReportingService(&fakeUsers{}, catalog, ledger)
	stats, err := s.OrderStatsByCategory(context.Background())
	require.NoError(t, err, "bad references are dropped, never surfaced")

	require.Len(t, stats, 1)
	assert.Equal(t, "pizza", stats[0].Category)
	assert.Equal(t, int64(2), stats[0].Quantity)
	assert.InDelta(t, 20.0, stats[0].Revenue, 1e-9)
}

func TestOrderStatsRevenueUsesCurrentCatalogPrice(t *testing.T) {
	item := menuItem("dessert", 14.00) // price after an update; paid price is unknown here
	catalog := &fakeCatalog{items: map[primitive.ObjectID]models.MenuItem{item.ID: item}}
	ledger := &fakeLedgerReader{refs: []string{item.ID.Hex()}}

	s := NewReportingService(&fakeUsers{}, catalog, ledger)
	stats, err := s.OrderStatsByCategory(context.Background())
	require.NoError(t, err)

	require.Len(t, stats, 1)
	assert.InDelta(t, 14.00, stats[0].Revenue, 1e-9)
}

func TestOrderStatsEmptyLedger(t *testing.T) {
	s := NewReportingService(&fakeUsers{}, &fakeCatalog{}, &fakeLedgerReader{})

	stats, err := s.OrderStatsByCategory(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stats)
}
