package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tableside/tableside/internal/auth"
	"github.com/tableside/tableside/internal/session"
)

// Session returns a middleware that decodes the session cookie and attaches
// the authenticated principal to the request context. It never rejects a
// request: a missing, tampered, or expired cookie just leaves the request
// anonymous. Rejection is the gate's job (RequireUser).
func Session(codec *session.Codec, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := session.TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := codec.Decode(token)
			if err != nil {
				// Tampered tokens are worth a warning; expiry is routine.
				if errors.Is(err, session.ErrInvalidToken) {
					logger.Warn("rejected session token",
						slog.String("reason", "invalid_signature"),
						slog.String("ip", r.RemoteAddr),
						slog.String("request_id", GetRequestID(r.Context())),
					)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := auth.ContextWithPrincipal(r.Context(), &auth.Principal{UserID: claims.UserID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser returns a middleware that rejects unauthenticated requests
// before they reach the protected handler. It must run after Session.
// The response body is identical for every failure mode.
func RequireUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth.PrincipalFromContext(r.Context()) == nil {
				writeAuthError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"authentication required","code":"UNAUTHORIZED"}`))
}
