package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tableside/tableside/internal/auth"
	"github.com/tableside/tableside/internal/handler/dto"
	"github.com/tableside/tableside/internal/service"
	"github.com/tableside/tableside/internal/session"
)

// AuthHandler handles HTTP requests for registration, login and session state.
type AuthHandler struct {
	svc     *service.AuthService
	codec   *session.Codec
	cookies *session.CookieWriter
	logger  *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, codec *session.Codec, cookies *session.CookieWriter, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:     svc,
		codec:   codec,
		cookies: cookies,
		logger:  logger,
	}
}

// Register handles POST /api/auth/register.
// A successful registration also starts a session, so the client is
// logged in immediately.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.svc.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	if err := h.startSession(w, user.ID); err != nil {
		h.logger.Error("session_issue_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	h.logger.Info("user_registered", "user_id", user.ID)

	writeJSON(w, http.StatusCreated, dto.ToUserResponse(user))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	if err := h.startSession(w, user.ID); err != nil {
		h.logger.Error("session_issue_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	h.logger.Info("user_logged_in", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// Me handles GET /api/auth/me.
// The route is behind RequireUser, so a missing principal means the
// session points at a user that no longer exists.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	user, err := h.svc.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			h.cookies.Clear(w)
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// Logout handles DELETE /api/auth/logout.
// Sessions are stateless, so logout is just clearing the cookie.
// Always succeeds, even without an active session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)

	if userID := auth.UserIDFromContext(r.Context()); userID != "" {
		h.logger.Info("user_logged_out", "user_id", userID)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// startSession issues a signed token and sets the session cookie.
func (h *AuthHandler) startSession(w http.ResponseWriter, userID string) error {
	token, err := h.codec.Issue(userID)
	if err != nil {
		return err
	}
	h.cookies.Write(w, token)
	return nil
}

// handleServiceError maps auth service errors to HTTP responses.
func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, "INVALID_EMAIL", "Invalid email address")
	case errors.Is(err, service.ErrPasswordTooShort):
		writeError(w, http.StatusBadRequest, "PASSWORD_TOO_SHORT", "Password must be at least 8 characters")
	case errors.Is(err, service.ErrNameRequired):
		writeError(w, http.StatusBadRequest, "NAME_REQUIRED", "Name is required")
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, "EMAIL_TAKEN", "Email is already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
