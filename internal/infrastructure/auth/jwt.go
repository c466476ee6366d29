package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/riii111/DevTrackr-sub000/internal/application/ports"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenIssuer implements ports.TokenIssuer with HS256. Lifetimes are fixed at
// construction; expiry is stamped into the token when issued.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

type sessionClaims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
}

func NewTokenIssuer(secret []byte, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (t *TokenIssuer) IssueAccessToken(userID string) (string, time.Time, error) {
	return t.issue(userID, tokenTypeAccess, t.accessTTL)
}

func (t *TokenIssuer) IssueRefreshToken(userID string) (string, time.Time, error) {
	return t.issue(userID, tokenTypeRefresh, t.refreshTTL)
}

func (t *TokenIssuer) issue(userID, tokenType string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		TokenType: tokenType,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (t *TokenIssuer) ParseAccessToken(tokenString string) (*ports.TokenClaims, error) {
	return t.parse(tokenString, tokenTypeAccess)
}

func (t *TokenIssuer) ParseRefreshToken(tokenString string) (*ports.TokenClaims, error) {
	return t.parse(tokenString, tokenTypeRefresh)
}

func (t *TokenIssuer) parse(tokenString, wantType string) (*ports.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.TokenType != wantType {
		return nil, fmt.Errorf("token is not a %s token", wantType)
	}
	out := &ports.TokenClaims{
		UserID:    claims.Subject,
		TokenType: claims.TokenType,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

var _ ports.TokenIssuer = (*TokenIssuer)(nil)
