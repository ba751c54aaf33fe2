package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/bistro/config"
	"github.com/shashiranjanraj/bistro/database/seeders"
	"github.com/shashiranjanraj/bistro/pkg/database"
	"go.mongodb.org/mongo-driver/mongo"
)

// withDB loads config, connects, runs fn, and disconnects.
func withDB(fn func(ctx context.Context, db *mongo.Database) error) error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := database.Connect(ctx, config.MongoURI(), config.MongoDB())
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background()) //nolint:errcheck

	return fn(ctx, db)
}

var dbIndexCmd = &cobra.Command{
	Use:   "db:index",
	Short: "Create the required database indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(ctx context.Context, db *mongo.Database) error {
			if err := database.EnsureIndexes(ctx, db); err != nil {
				return err
			}
			fmt.Println("Indexes ensured.")
			return nil
		})
	},
}

var dbSeedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Seed the database with sample data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(ctx context.Context, db *mongo.Database) error {
			fmt.Println("Seeding database…")
			return seeders.RunAll(ctx, db)
		})
	},
}
