package auth

import (
	"context"
	"regexp"
	"time"

	"github.com/riii111/DevTrackr-sub000/internal/application/ports"
	"github.com/riii111/DevTrackr-sub000/internal/domain"
	domerrors "github.com/riii111/DevTrackr-sub000/internal/domain/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type RegisterInput struct {
	Email    string
	Password string
	Username string
}

type Register struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
	tokens ports.TokenStore
}

func NewRegister(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, tokens ports.TokenStore) *Register {
	return &Register{users: users, hasher: hasher, issuer: issuer, tokens: tokens}
}

// Execute creates the user and opens a first session, same minting path as
// login. A duplicate email surfaces as ErrEmailTaken, not a store error.
func (uc *Register) Execute(ctx context.Context, input RegisterInput) (*Session, error) {
	if !emailRegex.MatchString(input.Email) {
		return nil, domerrors.ErrAuthenticationFailed
	}
	existing, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrEmailTaken
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &domain.User{
		Email:        input.Email,
		PasswordHash: hash,
		Username:     input.Username,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return mintSession(ctx, uc.issuer, uc.tokens, user)
}
