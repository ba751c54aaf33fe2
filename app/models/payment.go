package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Payment is an append-only ledger record of a settled charge. Once
// inserted it is never updated or deleted.
//
// CartIDs and MenuIDs are persisted as plain hex strings, not ObjectIDs:
// CartIDs drive the cart cleanup at settlement time, MenuIDs are the
// loosely-typed join keys the reporting engine resolves against the
// catalog.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email         string             `bson:"email" json:"email"`
	Price         float64            `bson:"price" json:"price"`
	Date          string             `bson:"date,omitempty" json:"date,omitempty"`
	CartIDs       []string           `bson:"cartIds" json:"cartIds"`
	MenuIDs       []string           `bson:"menuIds" json:"menuIds"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Status        string             `bson:"status" json:"status"`
}
