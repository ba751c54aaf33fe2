package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/pkg/database"
)

// PaymentRepository handles the append-only payment ledger. There are
// deliberately no update or delete methods.
type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection(database.PaymentsCollection)}
}

// Insert appends a payment to the ledger and returns the assigned id.
func (r *PaymentRepository) Insert(ctx context.Context, payment *models.Payment) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, payment)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("payments: insert: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("payments: unexpected inserted id type %T", res.InsertedID)
	}
	payment.ID = id
	return id, nil
}

// FindByEmail lists the settled payments owned by email.
func (r *PaymentRepository) FindByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	cursor, err := r.col.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("payments: find by email: %w", err)
	}

	payments := []models.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("payments: decode: %w", err)
	}
	return payments, nil
}

// EstimatedCount returns the approximate order cardinality.
func (r *PaymentRepository) EstimatedCount(ctx context.Context) (int64, error) {
	n, err := r.col.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("payments: count: %w", err)
	}
	return n, nil
}

// TotalRevenue sums price across every ledger record. An empty ledger
// yields 0, not an error.
func (r *PaymentRepository) TotalRevenue(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalRevenue", Value: bson.D{{Key: "$sum", Value: "$price"}}},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("payments: revenue aggregate: %w", err)
	}

	var rows []struct {
		TotalRevenue float64 `bson:"totalRevenue"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("payments: revenue decode: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].TotalRevenue, nil
}

// MenuRefs returns every menuIds entry across the whole ledger, one element
// per purchased line, duplicates preserved. The reporting engine resolves
// these loosely-typed references against the catalog.
func (r *PaymentRepository) MenuRefs(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"menuIds": 1})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("payments: menu refs: %w", err)
	}

	var docs []struct {
		MenuIDs []string `bson:"menuIds"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("payments: menu refs decode: %w", err)
	}

	refs := []string{}
	for _, doc := range docs {
		refs = append(refs, doc.MenuIDs...)
	}
	return refs, nil
}
