package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/riii111/DevTrackr-sub000/internal/application/auth"
	domerrors "github.com/riii111/DevTrackr-sub000/internal/domain/errors"
	"github.com/riii111/DevTrackr-sub000/internal/infrastructure/http/middleware"
)

// msgAuthFailed is deliberately uninformative: login, register, and refresh
// failures all answer with the same body so responses cannot be used to
// enumerate accounts.
const msgAuthFailed = "認証に失敗しました"

const (
	cookieAccessToken  = "access_token"
	cookieRefreshToken = "refresh_token"
	cookieFirstLogin   = "first_login"
)

type AuthHandler struct {
	login        *auth.Login
	register     *auth.Register
	logout       *auth.Logout
	refresh      *auth.Refresh
	secureCookie bool
	validate     *validator.Validate
	log          zerolog.Logger
}

func NewAuthHandler(login *auth.Login, register *auth.Register, logout *auth.Logout, refresh *auth.Refresh, secureCookie bool, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		login:        login,
		register:     register,
		logout:       logout,
		refresh:      refresh,
		secureCookie: secureCookie,
		validate:     validator.New(),
		log:          log,
	}
}

type tokenResponse struct {
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusUnprocessableEntity, msgAuthFailed)
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		writeErr(w, http.StatusUnprocessableEntity, msgAuthFailed)
		return
	}
	session, err := h.login.Execute(r.Context(), auth.LoginInput{Email: email, Password: password})
	if err != nil {
		AuditLog(h.log, r, "auth.login", "", false, err.Error())
		middleware.RecordAuthAttempt("login", false)
		if errors.Is(err, domerrors.ErrAuthenticationFailed) {
			writeErr(w, http.StatusUnprocessableEntity, msgAuthFailed)
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	AuditLog(h.log, r, "auth.login", session.User.ID.Hex(), true, "")
	middleware.RecordAuthAttempt("login", true)
	h.setSessionCookies(w, session.Token.AccessToken, session.Token.RefreshToken)
	writeJSON(w, http.StatusOK, tokenResponse{
		TokenType:    "Bearer",
		ExpiresIn:    session.ExpiresIn,
		AccessToken:  session.Token.AccessToken,
		RefreshToken: session.Token.RefreshToken,
	})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,min=8,max=128"`
		Username string `json:"username" validate:"required,max=100"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusUnprocessableEntity, msgAuthFailed)
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	username := SanitizeUsername(body.Username)
	if email == "" || password == "" || username == "" {
		writeErr(w, http.StatusUnprocessableEntity, msgAuthFailed)
		return
	}
	session, err := h.register.Execute(r.Context(), auth.RegisterInput{
		Email:    email,
		Password: password,
		Username: username,
	})
	if err != nil {
		AuditLog(h.log, r, "auth.register", "", false, err.Error())
		middleware.RecordAuthAttempt("register", false)
		if errors.Is(err, domerrors.ErrEmailTaken) || errors.Is(err, domerrors.ErrAuthenticationFailed) {
			writeErr(w, http.StatusUnprocessableEntity, msgAuthFailed)
			return
		}
		h.log.Error().Err(err).Msg("register failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	AuditLog(h.log, r, "auth.register", session.User.ID.Hex(), true, "")
	middleware.RecordAuthAttempt("register", true)
	h.setSessionCookies(w, session.Token.AccessToken, session.Token.RefreshToken)
	// Non-sensitive marker so the frontend can show first-login onboarding.
	http.SetCookie(w, &http.Cookie{
		Name:     cookieFirstLogin,
		Value:    "true",
		Path:     "/",
		SameSite: http.SameSiteStrictMode,
		Secure:   h.secureCookie,
	})
	writeJSON(w, http.StatusCreated, tokenResponse{
		TokenType:    "Bearer",
		ExpiresIn:    session.ExpiresIn,
		AccessToken:  session.Token.AccessToken,
		RefreshToken: session.Token.RefreshToken,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	err := h.logout.Execute(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		AuditLog(h.log, r, "auth.logout", "", false, err.Error())
		middleware.RecordAuthAttempt("logout", false)
		switch {
		case errors.Is(err, domerrors.ErrTokenNotFound):
			writeErr(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domerrors.ErrUnauthorized):
			writeErr(w, http.StatusUnauthorized, "missing or invalid authorization")
		default:
			h.log.Error().Err(err).Msg("logout failed")
			writeErr(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	AuditLog(h.log, r, "auth.logout", middleware.UserIDFromContext(r.Context()), true, "")
	middleware.RecordAuthAttempt("logout", true)
	h.clearSessionCookies(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(cookieRefreshToken)
	if err != nil || cookie.Value == "" {
		writeErr(w, http.StatusBadRequest, msgAuthFailed)
		return
	}
	result, err := h.refresh.Execute(r.Context(), cookie.Value)
	if err != nil {
		AuditLog(h.log, r, "auth.refresh", "", false, err.Error())
		middleware.RecordAuthAttempt("refresh", false)
		if errors.Is(err, domerrors.ErrUnauthorized) {
			writeErr(w, http.StatusBadRequest, msgAuthFailed)
			return
		}
		h.log.Error().Err(err).Msg("refresh failed")
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	AuditLog(h.log, r, "auth.refresh", result.Token.UserID.Hex(), true, "")
	middleware.RecordAuthAttempt("refresh", true)
	http.SetCookie(w, h.accessTokenCookie(result.Token.AccessToken))
	writeJSON(w, http.StatusOK, tokenResponse{
		TokenType:    "Bearer",
		ExpiresIn:    result.ExpiresIn,
		AccessToken:  result.Token.AccessToken,
		RefreshToken: result.Token.RefreshToken,
	})
}

// accessTokenCookie is intentionally not HttpOnly: the frontend reads it to
// populate the Authorization header. The refresh cookie is HttpOnly.
func (h *AuthHandler) accessTokenCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     cookieAccessToken,
		Value:    value,
		Path:     "/",
		SameSite: http.SameSiteStrictMode,
		Secure:   h.secureCookie,
	}
}

func (h *AuthHandler) setSessionCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, h.accessTokenCookie(accessToken))
	http.SetCookie(w, &http.Cookie{
		Name:     cookieRefreshToken,
		Value:    refreshToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.secureCookie,
	})
}

func (h *AuthHandler) clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{cookieAccessToken, cookieRefreshToken} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			SameSite: http.SameSiteStrictMode,
			Secure:   h.secureCookie,
		})
	}
}
