// Package database owns the MongoDB client lifecycle.
//
// Connect opens a single client for the process; the *mongo.Database handle
// it returns is passed explicitly into each repository at construction time
// rather than read from a package global, so tests can substitute fakes.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used across the application.
const (
	MenusCollection    = "menusCollection"
	ReviewsCollection  = "reviewsCollection"
	CartCollection     = "cartCollection"
	UsersCollection    = "usersCollection"
	PaymentsCollection = "payments"
)

// Connect opens the MongoDB client and verifies the connection with a ping.
func Connect(ctx context.Context, uri, db string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	clientOpts := options.Client().ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("database: ping: %w", err)
	}

	return client, client.Database(db), nil
}

// EnsureIndexes creates the indexes the application relies on. Safe to call
// on every boot; index creation is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	// Users are keyed by email: first sign-in insert is idempotent only
	// because of this constraint.
	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("database: users email index: %w", err)
	}

	// Payments and carts are queried by owner email.
	for _, name := range []string{PaymentsCollection, CartCollection} {
		_, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "email", Value: 1}},
		})
		if err != nil {
			return fmt.Errorf("database: %s email index: %w", name, err)
		}
	}

	return nil
}
