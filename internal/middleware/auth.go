package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/ngo-dashboard/internal/response"
	"github.com/GregMSThompson/ngo-dashboard/pkg/logger"
)

// tokenVerifier is satisfied by *auth.Client.
type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type Middleware struct {
	Verifier        tokenVerifier
	ResponseHandler response.ResponseHandler
}

func NewMiddleware(verifier tokenVerifier, rh response.ResponseHandler) *Middleware {
	return &Middleware{Verifier: verifier, ResponseHandler: rh}
}

type contextKey string

const UIDKey contextKey = "uid"

// FirebaseAuth requires a valid Firebase ID token and stores the staff
// member's UID in the request context.
func (m *Middleware) FirebaseAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			m.ResponseHandler.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "missing Authorization header")
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.ResponseHandler.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "invalid Authorization header")
			return
		}

		token, err := m.Verifier.VerifyIDToken(r.Context(), parts[1])
		if err != nil {
			logger.FromContext(r.Context()).Warn("id token rejected", "error", err)
			m.ResponseHandler.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), UIDKey, token.UID)
		ctx = logger.ToContext(ctx, logger.FromContext(ctx).With("uid", token.UID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UID returns the authenticated UID, or "" when auth is disabled.
func UID(ctx context.Context) string {
	uid, _ := ctx.Value(UIDKey).(string)
	return uid
}
