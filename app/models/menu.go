package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MenuItem is a catalog entry. Cart lines and payment menuIds reference it
// by the hex form of its ObjectID.
type MenuItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Recipe   string             `bson:"recipe" json:"recipe"`
	Image    string             `bson:"image,omitempty" json:"image,omitempty"`
	Category string             `bson:"category" json:"category"`
	Price    float64            `bson:"price" json:"price"`
}
