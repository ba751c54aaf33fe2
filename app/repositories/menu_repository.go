package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/pkg/database"
)

// MenuRepository handles the menu catalog collection.
type MenuRepository struct {
	col *mongo.Collection
}

func NewMenuRepository(db *mongo.Database) *MenuRepository {
	return &MenuRepository{col: db.Collection(database.MenusCollection)}
}

// All returns the full catalog.
func (r *MenuRepository) All(ctx context.Context) ([]models.MenuItem, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("menus: find all: %w", err)
	}

	items := []models.MenuItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("menus: decode all: %w", err)
	}
	return items, nil
}

// FindByID returns a single catalog item, or (nil, nil) when absent.
func (r *MenuRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("menus: find by id: %w", err)
	}
	return &item, nil
}

// FindByIDs batch-loads the catalog items matching ids. Missing ids are
// simply absent from the result; the caller decides what absence means.
func (r *MenuRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.MenuItem, error) {
	if len(ids) == 0 {
		return []models.MenuItem{}, nil
	}

	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("menus: find by ids: %w", err)
	}

	items := []models.MenuItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("menus: decode by ids: %w", err)
	}
	return items, nil
}

// Insert adds a new catalog item.
func (r *MenuRepository) Insert(ctx context.Context, item *models.MenuItem) error {
	res, err := r.col.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("menus: insert: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		item.ID = id
	}
	return nil
}

// Update upserts the editable fields of a catalog item.
func (r *MenuRepository) Update(ctx context.Context, id primitive.ObjectID, item *models.MenuItem) (int64, error) {
	update := bson.M{"$set": bson.M{
		"name":     item.Name,
		"price":    item.Price,
		"category": item.Category,
		"recipe":   item.Recipe,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update, options.Update().SetUpsert(true))
	if err != nil {
		return 0, fmt.Errorf("menus: update: %w", err)
	}
	return res.ModifiedCount, nil
}

// Delete removes a catalog item by id.
func (r *MenuRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("menus: delete: %w", err)
	}
	return res.DeletedCount, nil
}

// EstimatedCount returns the approximate catalog cardinality.
func (r *MenuRepository) EstimatedCount(ctx context.Context) (int64, error) {
	n, err := r.col.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("menus: count: %w", err)
	}
	return n, nil
}
