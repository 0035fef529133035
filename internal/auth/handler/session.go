package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"rentwheels/internal/auth"
	apperrors "rentwheels/pkg/errors"
	httputil "rentwheels/pkg/http"
	"rentwheels/pkg/logger"
	"rentwheels/pkg/sanitizer"
)

// SessionHandler issues and clears the session cookie. Token verification
// itself happens in the auth middleware; this handler only covers login and
// logout.
type SessionHandler struct {
	verifier     *auth.TokenVerifier
	secureCookie bool
	log          *logger.Logger
}

func NewSessionHandler(verifier *auth.TokenVerifier, secureCookie bool, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		verifier:     verifier,
		secureCookie: secureCookie,
		log:          log,
	}
}

type sessionRequest struct {
	Email string `json:"email"`
}

type sessionResponse struct {
	Success bool `json:"success"`
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Invalid request body")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	email := sanitizer.SanitizeEmail(req.Email)
	if email == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("email is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	token, err := h.verifier.Issue(email)
	if err != nil {
		h.log.Error("Failed to issue session token", "error", err)
		if writeErr := httputil.WriteError(w, apperrors.Internal("Failed to create session", err)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.verifier.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: h.sameSite(),
	})

	h.log.Info("Session issued", "email", email)
	if err := httputil.WriteSuccess(w, sessionResponse{Success: true}); err != nil {
		h.log.Error("failed to write success response", "handler", "Create", "error", err)
	}
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: h.sameSite(),
	})

	if err := httputil.WriteSuccess(w, sessionResponse{Success: true}); err != nil {
		h.log.Error("failed to write success response", "handler", "Logout", "error", err)
	}
}

// Cross-site frontends need SameSite=None, which browsers only accept on
// Secure cookies.
func (h *SessionHandler) sameSite() http.SameSite {
	if h.secureCookie {
		return http.SameSiteNoneMode
	}
	return http.SameSiteStrictMode
}

func (h *SessionHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/auth/session", h.Create)
	router.GET("/auth/logout", h.Logout)
}
