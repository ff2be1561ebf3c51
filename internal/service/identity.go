package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmynk/lunchpoll/internal/auth"
	"github.com/mmynk/lunchpoll/internal/models"
	"github.com/mmynk/lunchpoll/internal/storage"
)

const (
	stateCookieName = "lunchpoll_oauth_state"
	stateTTL        = 10 * time.Minute
)

// SessionResponse is returned by the sign-in callback.
type SessionResponse struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// SessionUser is the signed-in user.
type SessionUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// IdentityHandler serves the OAuth sign-in routes of one provider and mints
// session JWTs for the users it identifies.
type IdentityHandler struct {
	provider   auth.IdentityProvider
	store      storage.Store
	jwtManager *auth.JWTManager
	logger     *slog.Logger

	// SecureCookies marks the state cookie Secure. Enable behind TLS.
	SecureCookies bool
}

// NewIdentityHandler creates an IdentityHandler.
func NewIdentityHandler(provider auth.IdentityProvider, store storage.Store, jwtManager *auth.JWTManager, logger *slog.Logger) *IdentityHandler {
	return &IdentityHandler{
		provider:   provider,
		store:      store,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// Register mounts GET /auth/<provider>/login and /auth/<provider>/callback.
func (h *IdentityHandler) Register(mux *http.ServeMux) {
	base := "/auth/" + h.provider.Name()
	mux.HandleFunc("GET "+base+"/login", h.login)
	mux.HandleFunc("GET "+base+"/callback", h.callback)
}

func (h *IdentityHandler) login(w http.ResponseWriter, r *http.Request) {
	state, err := newState()
	if err != nil {
		h.logger.Error("Failed to generate OAuth state", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/auth/",
		MaxAge:   int(stateTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.provider.AuthCodeURL(state), http.StatusFound)
}

func (h *IdentityHandler) callback(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(stateCookieName)
	state := r.URL.Query().Get("state")
	if err != nil || state == "" || subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(state)) != 1 {
		h.logger.Warn("OAuth callback with invalid state", "provider", h.provider.Name())
		http.Error(w, "invalid oauth state", http.StatusBadRequest)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookieName, Path: "/auth/", MaxAge: -1})

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing authorization code", http.StatusBadRequest)
		return
	}

	identity, err := h.provider.Identify(r.Context(), code)
	if err != nil {
		h.logger.Warn("OAuth identification failed", "provider", h.provider.Name(), "error", err)
		http.Error(w, "sign-in failed", http.StatusUnauthorized)
		return
	}

	user := &models.User{Username: identity.Username, ExternalID: identity.ExternalID}
	if err := h.store.UpsertUser(r.Context(), user); err != nil {
		h.logger.Error("Failed to save user", "external_id", identity.ExternalID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		h.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("User signed in", "user_id", user.ID, "provider", h.provider.Name())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	json.NewEncoder(w).Encode(SessionResponse{
		Token: token,
		User:  SessionUser{ID: user.ID, Username: user.Username},
	})
}

func newState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
