package auth

import (
	"context"
	"time"

	"github.com/riii111/DevTrackr-sub000/internal/application/ports"
	domerrors "github.com/riii111/DevTrackr-sub000/internal/domain/errors"
)

type VerifyAccessToken struct {
	issuer ports.TokenIssuer
	tokens ports.TokenStore
}

func NewVerifyAccessToken(issuer ports.TokenIssuer, tokens ports.TokenStore) *VerifyAccessToken {
	return &VerifyAccessToken{issuer: issuer, tokens: tokens}
}

// Execute checks signature and claims, then the store row, then the stored
// expiry. All three must pass; the caller is never told which check failed.
func (uc *VerifyAccessToken) Execute(ctx context.Context, accessToken string) (*ports.TokenClaims, error) {
	claims, err := uc.issuer.ParseAccessToken(accessToken)
	if err != nil {
		return nil, domerrors.ErrUnauthorized
	}
	token, err := uc.tokens.GetByAccessToken(ctx, accessToken)
	if err != nil {
		return nil, domerrors.ErrUnauthorized
	}
	if token == nil || time.Now().After(token.ExpiresAt) {
		return nil, domerrors.ErrUnauthorized
	}
	return claims, nil
}
