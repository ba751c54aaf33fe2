package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/pkg/cache"
	"github.com/shashiranjanraj/bistro/pkg/logger"
)

const (
	menuCacheKey = "bistro:menus"
	menuCacheTTL = time.Minute
)

// MenuStore is the catalog repository surface the service wraps.
type MenuStore interface {
	All(ctx context.Context) ([]models.MenuItem, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error)
	Insert(ctx context.Context, item *models.MenuItem) error
	Update(ctx context.Context, id primitive.ObjectID, item *models.MenuItem) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// MenuService fronts the read-mostly catalog with a short-lived Redis
// cache. The cache is advisory: a miss or an unreachable Redis falls
// through to the store, and every admin write invalidates the cached list.
type MenuService struct {
	store MenuStore
	cache *cache.Cache
}

func NewMenuService(store MenuStore, c *cache.Cache) *MenuService {
	return &MenuService{store: store, cache: c}
}

// List returns the full catalog, served from cache when possible.
func (s *MenuService) List(ctx context.Context) ([]models.MenuItem, error) {
	var cached []models.MenuItem
	if s.cache.Get(ctx, menuCacheKey, &cached) {
		return cached, nil
	}

	items, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, menuCacheKey, items, menuCacheTTL); err != nil {
		logger.WithCtx(ctx).Warn("menus: cache set failed", "error", err)
	}
	return items, nil
}

// Find returns a single catalog item, or (nil, nil) when absent.
func (s *MenuService) Find(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	return s.store.FindByID(ctx, id)
}

// Create adds a catalog item and invalidates the cached list.
func (s *MenuService) Create(ctx context.Context, item *models.MenuItem) error {
	if err := s.store.Insert(ctx, item); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Update edits a catalog item and invalidates the cached list.
func (s *MenuService) Update(ctx context.Context, id primitive.ObjectID, item *models.MenuItem) (int64, error) {
	modified, err := s.store.Update(ctx, id, item)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	return modified, nil
}

// Remove deletes a catalog item and invalidates the cached list.
func (s *MenuService) Remove(ctx context.Context, id primitive.ObjectID) (int64, error) {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	return deleted, nil
}

func (s *MenuService) invalidate(ctx context.Context) {
	if err := s.cache.Del(ctx, menuCacheKey); err != nil {
		logger.WithCtx(ctx).Warn("menus: cache invalidate failed", "error", err)
	}
}
