package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/pkg/database"
)

// ErrNotFound is returned when a looked-up document does not exist.
var ErrNotFound = errors.New("repositories: not found")

// UserRepository handles the users collection.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(database.UsersCollection)}
}

// FindByEmail looks up a user by their email address.
// Returns (nil, nil) when no record exists — absence is not an error.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("users: find by email: %w", err)
	}
	return &user, nil
}

// RoleByEmail resolves the caller's current role for the admin guard.
// A missing record is an error here: authorization must fail closed.
func (r *UserRepository) RoleByEmail(ctx context.Context, email string) (string, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrNotFound
	}
	if user.Role == "" {
		return models.RoleCustomer, nil
	}
	return user.Role, nil
}

// Insert creates the user record on first sign-in. When a record with the
// same email already exists the call is an idempotent no-op and the
// returned bool is false.
func (r *UserRepository) Insert(ctx context.Context, user *models.User) (bool, error) {
	existing, err := r.FindByEmail(ctx, user.Email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	if user.Role == "" {
		user.Role = models.RoleCustomer
	}

	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return false, fmt.Errorf("users: insert: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return true, nil
}

// All returns every user record.
func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("users: find all: %w", err)
	}

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("users: decode all: %w", err)
	}
	return users, nil
}

// Delete removes a user by id, returning the deleted count.
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("users: delete: %w", err)
	}
	return res.DeletedCount, nil
}

// PromoteAdmin sets the user's role to admin.
func (r *UserRepository) PromoteAdmin(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"role": models.RoleAdmin}},
	)
	if err != nil {
		return 0, fmt.Errorf("users: promote: %w", err)
	}
	return res.ModifiedCount, nil
}

// EstimatedCount returns the approximate user cardinality.
func (r *UserRepository) EstimatedCount(ctx context.Context) (int64, error) {
	n, err := r.col.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("users: count: %w", err)
	}
	return n, nil
}
