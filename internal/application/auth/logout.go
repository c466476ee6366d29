package auth

import (
	"context"
	"strings"

	"github.com/riii111/DevTrackr-sub000/internal/application/ports"
	domerrors "github.com/riii111/DevTrackr-sub000/internal/domain/errors"
)

const bearerPrefix = "Bearer "

type Logout struct {
	tokens ports.TokenStore
}

func NewLogout(tokens ports.TokenStore) *Logout {
	return &Logout{tokens: tokens}
}

// Execute deletes the session matching the Authorization header's bearer
// token. Logout is not idempotent: a second call for the same token returns
// ErrTokenNotFound rather than succeeding silently.
func (uc *Logout) Execute(ctx context.Context, authorizationHeader string) error {
	if !strings.HasPrefix(authorizationHeader, bearerPrefix) {
		return domerrors.ErrUnauthorized
	}
	accessToken := strings.TrimPrefix(authorizationHeader, bearerPrefix)
	if accessToken == "" {
		return domerrors.ErrUnauthorized
	}
	deleted, err := uc.tokens.DeleteByAccessToken(ctx, accessToken)
	if err != nil {
		return err
	}
	if !deleted {
		return domerrors.ErrTokenNotFound
	}
	return nil
}
