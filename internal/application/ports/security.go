package ports

import "time"

// PasswordHasher hashes and verifies passwords (Argon2id).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenClaims are the verified claims of a parsed session token.
type TokenClaims struct {
	UserID    string
	TokenType string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenIssuer signs and parses session JWTs. Access and refresh tokens carry
// independent lifetimes configured once at construction; expiry is stamped
// into the token at issue time, never recomputed later.
type TokenIssuer interface {
	IssueAccessToken(userID string) (token string, expiresAt time.Time, err error)
	IssueRefreshToken(userID string) (token string, expiresAt time.Time, err error)
	ParseAccessToken(token string) (*TokenClaims, error)
	ParseRefreshToken(token string) (*TokenClaims, error)
}
