package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Roles a user record can carry. New users default to RoleCustomer; only
// the admin promotion endpoint mutates a role.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is keyed by email: the first sign-in creates the record, later
// sign-ins are idempotent no-ops.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	Role           string             `bson:"role,omitempty" json:"role,omitempty"`
	CreatedAt      string             `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	LastSignInTime string             `bson:"lastSignInTime,omitempty" json:"lastSignInTime,omitempty"`
}

// IsAdmin reports whether the stored role grants admin access.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
