package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/sprachtrainer/internal/config"
	"github.com/heartmarshall/sprachtrainer/internal/service/auth"
)

type authService interface {
	Login(ctx context.Context, input auth.LoginInput) (*auth.SessionResult, error)
}

// AuthHandler serves the web login endpoints.
type AuthHandler struct {
	svc authService
	cfg config.AuthConfig
	log *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc authService, cfg config.AuthConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, cfg: cfg, log: logger.With("handler", "auth")}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	LearnerID string    `json:"learner_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), auth.LoginInput{Password: req.Password})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	http.SetCookie(w, h.cookie(res.Token, res.ExpiresAt))
	writeJSON(w, http.StatusOK, loginResponse{LearnerID: res.LearnerID, ExpiresAt: res.ExpiresAt})
}

// Logout handles POST /api/logout. It clears the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	c := h.cookie("", time.Unix(0, 0))
	c.MaxAge = -1
	http.SetCookie(w, c)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AuthHandler) cookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
