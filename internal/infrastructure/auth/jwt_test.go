package auth

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), time.Hour, 24*time.Hour)

	token, expiresAt, err := issuer.IssueAccessToken("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("expiry must be in the future")
	}
	claims, err := issuer.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Fatalf("subject = %q, want user-123", claims.UserID)
	}
	if claims.TokenType != "access" {
		t.Fatalf("token_type = %q, want access", claims.TokenType)
	}
}

func TestTokenTypeIsEnforced(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), time.Hour, 24*time.Hour)

	refresh, _, err := issuer.IssueRefreshToken("user-123")
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}
	if _, err := issuer.ParseAccessToken(refresh); err == nil {
		t.Fatalf("refresh token must not parse as access token")
	}
	access, _, err := issuer.IssueAccessToken("user-123")
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	if _, err := issuer.ParseRefreshToken(access); err == nil {
		t.Fatalf("access token must not parse as refresh token")
	}
}

func TestWrongSecretIsRejected(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret-a"), time.Hour, 24*time.Hour)
	other := NewTokenIssuer([]byte("secret-b"), time.Hour, 24*time.Hour)

	token, _, err := issuer.IssueAccessToken("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := other.ParseAccessToken(token); err == nil {
		t.Fatalf("token signed with another secret must not verify")
	}
}

func TestExpiredTokenIsRejected(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), -time.Minute, 24*time.Hour)

	token, _, err := issuer.IssueAccessToken("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := issuer.ParseAccessToken(token); err == nil {
		t.Fatalf("expired token must not verify")
	}
}

func TestTokensAreUniquePerIssue(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), time.Hour, 24*time.Hour)

	a, _, err := issuer.IssueAccessToken("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	b, _, err := issuer.IssueAccessToken("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if a == b {
		t.Fatalf("two tokens for the same subject must differ")
	}
}
