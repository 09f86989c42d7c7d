package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Admin is a console account; Password holds the bcrypt hash.
type Admin struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
	Password string             `bson:"password"`
}

// Actor is the authenticated caller resolved from a token.
type Actor struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

const RoleAdmin = "admin"
