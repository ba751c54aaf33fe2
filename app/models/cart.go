package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CartItem is an ephemeral order line, owned by the customer's email.
// It lives from add-to-cart until checkout or explicit removal.
type CartItem struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email      string             `bson:"email" json:"email"`
	MenuItemID string             `bson:"menuItemId" json:"menuItemId"`
	Name       string             `bson:"name,omitempty" json:"name,omitempty"`
	Image      string             `bson:"image,omitempty" json:"image,omitempty"`
	Price      float64            `bson:"price" json:"price"`
	Quantity   int                `bson:"quantity,omitempty" json:"quantity,omitempty"`
}
