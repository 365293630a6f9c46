package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/dashboard-builder/pkg/logger"
)

const (
	AuthModeHeader   = "header"
	AuthModeFirebase = "firebase"

	// UserHeader carries the user id in header mode.
	UserHeader = "X-User-ID"
	// DefaultUID is used in header mode when no user header is sent.
	DefaultUID = "demo"
)

// tokenVerifier is the part of the firebase auth client the middleware uses.
type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type Middleware struct {
	AuthClient tokenVerifier
}

func NewMiddleware(client tokenVerifier) *Middleware {
	return &Middleware{AuthClient: client}
}

// context key
type contextKey string

const UIDKey contextKey = "uid"

// Auth returns the middleware for mode. Unknown modes fall back to header.
func (m *Middleware) Auth(mode string) func(http.Handler) http.Handler {
	if mode == AuthModeFirebase {
		return m.FirebaseAuth
	}
	return m.HeaderAuth
}

// HeaderAuth trusts the X-User-ID header. Used for local and single-tenant
// deployments.
func (m *Middleware) HeaderAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := strings.TrimSpace(r.Header.Get(UserHeader))
		if uid == "" {
			uid = DefaultUID
		}
		next.ServeHTTP(w, r.WithContext(withUID(r.Context(), uid)))
	})
}

// Main middleware
func (m *Middleware) FirebaseAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, "missing Authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "invalid Authorization header", http.StatusUnauthorized)
			return
		}

		// Verify ID Token
		token, err := m.AuthClient.VerifyIDToken(r.Context(), parts[1])
		if err != nil {
			logger.FromContext(r.Context()).Warn("token verification failed", "error", err)
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUID(r.Context(), token.UID)))
	})
}

// withUID stores the uid and tags the request logger with it.
func withUID(ctx context.Context, uid string) context.Context {
	_, ctx = logger.With(ctx, "uid", uid)
	return context.WithValue(ctx, UIDKey, uid)
}

// Helper to extract UID
func UID(ctx context.Context) string {
	uid, _ := ctx.Value(UIDKey).(string)
	return uid
}
