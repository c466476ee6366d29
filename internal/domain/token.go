package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// AuthToken is one active session. Many tokens may reference the same user;
// each login inserts a fresh row. A refresh replaces the access token value
// and its expiry in place and leaves the refresh token untouched, so
// RefreshExpiresAt is always later than ExpiresAt for a live session.
type AuthToken struct {
	ID               bson.ObjectID `bson:"_id,omitempty"`
	UserID           bson.ObjectID `bson:"user_id"`
	AccessToken      string        `bson:"access_token"`
	RefreshToken     string        `bson:"refresh_token"`
	ExpiresAt        time.Time     `bson:"expires_at"`
	RefreshExpiresAt time.Time     `bson:"refresh_expires_at"`
	CreatedAt        time.Time     `bson:"created_at"`
	UpdatedAt        time.Time     `bson:"updated_at"`
}
