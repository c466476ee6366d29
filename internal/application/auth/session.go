package auth

import (
	"context"
	"time"

	"github.com/riii111/DevTrackr-sub000/internal/application/ports"
	"github.com/riii111/DevTrackr-sub000/internal/domain"
)

// Session is the result of a successful login or registration.
type Session struct {
	Token *domain.AuthToken
	User  *domain.User
	// ExpiresIn is the access-token lifetime in seconds, for the response body.
	ExpiresIn int64
}

// mintSession issues a fresh access/refresh pair for the user and persists a
// new AuthToken row. Each call creates an independent session; prior sessions
// for the same user are left alone.
func mintSession(ctx context.Context, issuer ports.TokenIssuer, tokens ports.TokenStore, user *domain.User) (*Session, error) {
	access, accessExp, err := issuer.IssueAccessToken(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := issuer.IssueRefreshToken(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	now := time.Now()
	token := &domain.AuthToken{
		UserID:           user.ID,
		AccessToken:      access,
		RefreshToken:     refresh,
		ExpiresAt:        accessExp,
		RefreshExpiresAt: refreshExp,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := tokens.Create(ctx, token); err != nil {
		return nil, err
	}
	return &Session{
		Token:     token,
		User:      user,
		ExpiresIn: int64(time.Until(accessExp).Round(time.Second).Seconds()),
	}, nil
}
