package services

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bistro/app/models"
)

// UserCounter exposes the approximate user cardinality.
type UserCounter interface {
	EstimatedCount(ctx context.Context) (int64, error)
}

// Catalog is the menu store view the reporting engine needs.
type Catalog interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.MenuItem, error)
	EstimatedCount(ctx context.Context) (int64, error)
}

// LedgerReader is the payment store view the reporting engine needs.
type LedgerReader interface {
	EstimatedCount(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (float64, error)
	MenuRefs(ctx context.Context) ([]string, error)
}

// AdminStats is the dashboard headline block.
type AdminStats struct {
	TotalUsers   int64   `json:"totalUsers"`
	TotalOrders  int64   `json:"totalOrders"`
	TotalMenus   int64   `json:"totalMenus"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// CategoryStat is one aggregated row of the order report.
type CategoryStat struct {
	Category string  `json:"category"`
	Quantity int64   `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// ReportingService computes aggregate business reports over the ledger
// joined with the catalog.
type ReportingService struct {
	users    UserCounter
	catalog  Catalog
	payments LedgerReader
}

func NewReportingService(users UserCounter, catalog Catalog, payments LedgerReader) *ReportingService {
	return &ReportingService{users: users, catalog: catalog, payments: payments}
}

// AdminStats returns approximate store cardinalities plus total ledger
// revenue. An empty ledger reports revenue 0.
func (s *ReportingService) AdminStats(ctx context.Context) (AdminStats, error) {
	totalUsers, err := s.users.EstimatedCount(ctx)
	if err != nil {
		return AdminStats{}, fmt.Errorf("reporting: user count: %w", err)
	}

	totalOrders, err := s.payments.EstimatedCount(ctx)
	if err != nil {
		return AdminStats{}, fmt.Errorf("reporting: order count: %w", err)
	}

	totalMenus, err := s.catalog.EstimatedCount(ctx)
	if err != nil {
		return AdminStats{}, fmt.Errorf("reporting: menu count: %w", err)
	}

	totalRevenue, err := s.payments.TotalRevenue(ctx)
	if err != nil {
		return AdminStats{}, fmt.Errorf("reporting: revenue: %w", err)
	}

	return AdminStats{
		TotalUsers:   totalUsers,
		TotalOrders:  totalOrders,
		TotalMenus:   totalMenus,
		TotalRevenue: totalRevenue,
	}, nil
}

// OrderStatsByCategory expands every purchased menu reference in the
// ledger into one logical row, resolves it against the catalog, and groups
// the resolved rows by category.
//
// The join is deliberately a two-step lookup: menu references are persisted
// as plain hex strings, so each one is first converted to a native
// ObjectID, then matched against catalog identity. Rows whose reference is
// malformed or matches no catalog item are dropped silently — this is the
// documented failure mode, not an error.
//
// Revenue is attributed at the item's current catalog price, not the price
// paid at settlement time.
func (s *ReportingService) OrderStatsByCategory(ctx context.Context) ([]CategoryStat, error) {
	refs, err := s.payments.MenuRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporting: menu refs: %w", err)
	}

	// Count purchased rows per resolvable id; malformed refs drop here.
	rowsByID := make(map[primitive.ObjectID]int64)
	for _, ref := range refs {
		id, ok := resolveMenuRef(ref)
		if !ok {
			continue
		}
		rowsByID[id]++
	}

	ids := make([]primitive.ObjectID, 0, len(rowsByID))
	for id := range rowsByID {
		ids = append(ids, id)
	}

	items, err := s.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("reporting: resolve catalog items: %w", err)
	}

	// Ids the catalog no longer knows simply never reach a group.
	grouped := make(map[string]*CategoryStat)
	for _, item := range items {
		rows := rowsByID[item.ID]
		stat, ok := grouped[item.Category]
		if !ok {
			stat = &CategoryStat{Category: item.Category}
			grouped[item.Category] = stat
		}
		stat.Quantity += rows
		stat.Revenue += item.Price * float64(rows)
	}

	stats := make([]CategoryStat, 0, len(grouped))
	for _, stat := range grouped {
		stats = append(stats, *stat)
	}

	// Stable output for clients and tests; row order is not part of the
	// contract.
	sort.Slice(stats, func(i, j int) bool { return stats[i].Category < stats[j].Category })
	return stats, nil
}

// resolveMenuRef converts a stored menu reference into a native ObjectID.
// An unresolvable reference reports false and the row is dropped.
func resolveMenuRef(ref string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(ref)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
