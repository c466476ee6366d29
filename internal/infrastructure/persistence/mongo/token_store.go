package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/riii111/DevTrackr-sub000/internal/application/ports"
	"github.com/riii111/DevTrackr-sub000/internal/domain"
)

type TokenStore struct {
	coll *mongo.Collection
}

func NewTokenStore(db *mongo.Database) *TokenStore {
	return &TokenStore{coll: db.Collection(collAuthTokens)}
}

func (s *TokenStore) Create(ctx context.Context, token *domain.AuthToken) error {
	if token.ID.IsZero() {
		token.ID = bson.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, token)
	return err
}

func (s *TokenStore) GetByAccessToken(ctx context.Context, accessToken string) (*domain.AuthToken, error) {
	return s.findOne(ctx, bson.M{"access_token": accessToken})
}

func (s *TokenStore) GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.AuthToken, error) {
	return s.findOne(ctx, bson.M{"refresh_token": refreshToken})
}

// UpdateAccessToken rotates the access value and expiry on the stored row.
// The refresh token and its expiry are deliberately left untouched.
func (s *TokenStore) UpdateAccessToken(ctx context.Context, id string, accessToken string, expiresAt time.Time) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{
			"access_token": accessToken,
			"expires_at":   expiresAt,
			"updated_at":   time.Now(),
		},
	})
	return err
}

func (s *TokenStore) DeleteByAccessToken(ctx context.Context, accessToken string) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"access_token": accessToken})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (s *TokenStore) findOne(ctx context.Context, filter bson.M) (*domain.AuthToken, error) {
	var token domain.AuthToken
	if err := s.coll.FindOne(ctx, filter).Decode(&token); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

var _ ports.TokenStore = (*TokenStore)(nil)
