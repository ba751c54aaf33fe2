package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/pkg/database"
)

// CartRepository handles the pending order-line collection.
type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{col: db.Collection(database.CartCollection)}
}

// FindByEmail returns the cart lines owned by email.
func (r *CartRepository) FindByEmail(ctx context.Context, email string) ([]models.CartItem, error) {
	cursor, err := r.col.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("carts: find by email: %w", err)
	}

	items := []models.CartItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("carts: decode: %w", err)
	}
	return items, nil
}

// Insert adds a cart line.
func (r *CartRepository) Insert(ctx context.Context, item *models.CartItem) error {
	res, err := r.col.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("carts: insert: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		item.ID = id
	}
	return nil
}

// DeleteByID removes a single cart line.
func (r *CartRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("carts: delete: %w", err)
	}
	return res.DeletedCount, nil
}

// DeleteOwned removes exactly the listed cart lines that belong to email,
// and no others. Rows already gone simply drop out of the count; repeating
// the same deletion is a harmless no-op.
func (r *CartRepository) DeleteOwned(ctx context.Context, ids []primitive.ObjectID, email string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	filter := bson.M{
		"_id":   bson.M{"$in": ids},
		"email": email,
	}
	res, err := r.col.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("carts: delete owned: %w", err)
	}
	return res.DeletedCount, nil
}
