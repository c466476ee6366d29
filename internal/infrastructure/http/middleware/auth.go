package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/riii111/DevTrackr-sub000/internal/application/auth"
)

// AuthValidator guards routes with the access-token verification chain
// (signature, store row, stored expiry). The response never says which check
// failed.
type AuthValidator struct {
	verify *auth.VerifyAccessToken
}

func NewAuthValidator(verify *auth.VerifyAccessToken) *AuthValidator {
	return &AuthValidator{verify: verify}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			unauthorized(w)
			return
		}
		claims, err := m.verify.Execute(r.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.UserID)))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid token"})
}
