package auth

import (
	"context"
	"net/http"
	"strings"

	"rentwheels/pkg/logger"
)

type contextKey string

const identityKey contextKey = "identity_email"

// SessionCookieName is the cookie the session handler sets and the
// verifier reads.
const SessionCookieName = "token"

// Authenticate extracts the session credential from the token cookie or an
// Authorization bearer header, verifies it, and stores the caller's email
// in the request context. Requests without a valid credential continue with
// no identity; guarded handlers reject them.
func Authenticate(verifier *TokenVerifier, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential := extractCredential(r)
			if credential == "" {
				next.ServeHTTP(w, r)
				return
			}

			email, err := verifier.Verify(credential)
			if err != nil {
				log.Debug("Session credential rejected",
					"path", r.URL.Path,
					"error", err,
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractCredential(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}

	return ""
}

// IdentityFromContext returns the authenticated email, if any.
func IdentityFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(identityKey).(string)
	return email, ok && email != ""
}

// ContextWithIdentity is used by tests and internal callers to seed an
// authenticated identity.
func ContextWithIdentity(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, identityKey, email)
}
