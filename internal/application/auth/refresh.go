package auth

import (
	"context"
	"time"

	"github.com/riii111/DevTrackr-sub000/internal/application/ports"
	"github.com/riii111/DevTrackr-sub000/internal/domain"
	domerrors "github.com/riii111/DevTrackr-sub000/internal/domain/errors"
)

type RefreshResult struct {
	Token     *domain.AuthToken
	ExpiresIn int64
}

type Refresh struct {
	issuer ports.TokenIssuer
	tokens ports.TokenStore
}

func NewRefresh(issuer ports.TokenIssuer, tokens ports.TokenStore) *Refresh {
	return &Refresh{issuer: issuer, tokens: tokens}
}

// Execute exchanges a live refresh token for a new access token. The stored
// row is updated in place: new access value and expiry, untouched refresh
// value and expiry. This is the only mutation path for a session besides
// creation. Signature, lookup, and expiry failures all collapse to
// ErrUnauthorized.
func (uc *Refresh) Execute(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	if refreshToken == "" {
		return nil, domerrors.ErrUnauthorized
	}
	if _, err := uc.issuer.ParseRefreshToken(refreshToken); err != nil {
		return nil, domerrors.ErrUnauthorized
	}
	token, err := uc.tokens.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if token == nil || time.Now().After(token.RefreshExpiresAt) {
		return nil, domerrors.ErrUnauthorized
	}
	access, accessExp, err := uc.issuer.IssueAccessToken(token.UserID.Hex())
	if err != nil {
		return nil, err
	}
	if err := uc.tokens.UpdateAccessToken(ctx, token.ID.Hex(), access, accessExp); err != nil {
		return nil, err
	}
	token.AccessToken = access
	token.ExpiresAt = accessExp
	token.UpdatedAt = time.Now()
	return &RefreshResult{
		Token:     token,
		ExpiresIn: int64(time.Until(accessExp).Round(time.Second).Seconds()),
	}, nil
}
