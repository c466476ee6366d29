package auth

import (
	"context"

	"github.com/riii111/DevTrackr-sub000/internal/application/ports"
	domerrors "github.com/riii111/DevTrackr-sub000/internal/domain/errors"
)

type LoginInput struct {
	Email    string
	Password string
}

type Login struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
	tokens ports.TokenStore
}

func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, tokens ports.TokenStore) *Login {
	return &Login{users: users, hasher: hasher, issuer: issuer, tokens: tokens}
}

// Execute authenticates the credentials and opens a new session. An unknown
// email and a wrong password return the same error so the response cannot be
// used to enumerate accounts.
func (uc *Login) Execute(ctx context.Context, input LoginInput) (*Session, error) {
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !uc.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domerrors.ErrAuthenticationFailed
	}
	return mintSession(ctx, uc.issuer, uc.tokens, user)
}
