package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is a registered account. The password hash is opaque to everything
// except the hasher; it never leaves the persistence boundary in responses.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"password_hash" json:"-"`
	Username     string        `bson:"username" json:"username"`
	CreatedAt    time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at" json:"updated_at"`
}
