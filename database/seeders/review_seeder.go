package seeders

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/pkg/database"
)

func init() {
	Register("reviews", SeedReviews)
}

// SeedReviews inserts sample landing-page testimonials. A non-empty
// collection is left untouched.
func SeedReviews(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(database.ReviewsCollection)

	n, err := col.EstimatedDocumentCount(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	reviews := []interface{}{
		models.Review{Name: "Amina K.", Details: "The duck breast was cooked to perfection. Best dinner we have had in months.", Rating: 5},
		models.Review{Name: "Jorge M.", Details: "Quick service and the fondant is dangerously good.", Rating: 4.5},
		models.Review{Name: "Priya S.", Details: "Lovely atmosphere, generous portions. The soup could be warmer.", Rating: 4},
	}

	_, err = col.InsertMany(ctx, reviews)
	return err
}
