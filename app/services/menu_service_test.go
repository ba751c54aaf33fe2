package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bistro/app/models"
)

type fakeMenuStore struct {
	items     []models.MenuItem
	listCalls int
}

func (f *fakeMenuStore) All(context.Context) ([]models.MenuItem, error) {
	f.listCalls++
	return f.items, nil
}

func (f *fakeMenuStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, nil
}

func (f *fakeMenuStore) Insert(_ context.Context, item *models.MenuItem) error {
	item.ID = primitive.NewObjectID()
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeMenuStore) Update(context.Context, primitive.ObjectID, *models.MenuItem) (int64, error) {
	return 1, nil
}

func (f *fakeMenuStore) Delete(context.Context, primitive.ObjectID) (int64, error) {
	return 1, nil
}

// A nil cache must behave as a transparent no-op: every read goes to the
// store, every write succeeds.
func TestMenuServiceWithoutCache(t *testing.T) {
	store := &fakeMenuStore{items: []models.MenuItem{menuItem("pizza", 9.5)}}
	s := NewMenuService(store, nil)

	items, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, store.listCalls, "without a cache every list hits the store")
}

func TestMenuServiceFindMissing(t *testing.T) {
	s := NewMenuService(&fakeMenuStore{}, nil)

	item, err := s.Find(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Nil(t, item, "absence is not an error")
}

func TestMenuServiceCreateWithoutCache(t *testing.T) {
	store := &fakeMenuStore{}
	s := NewMenuService(store, nil)

	item := models.MenuItem{Name: "soup", Category: "soup", Price: 6.25}
	require.NoError(t, s.Create(context.Background(), &item))
	assert.False(t, item.ID.IsZero(), "insert assigns an id")
}
