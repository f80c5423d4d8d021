package handler

import (
	"context"
	"net"
	"net/http"

	"github.com/msomdec/wish-tracker/internal/domain"
	"github.com/msomdec/wish-tracker/internal/service"
)

type contextKey string

const (
	userContextKey      contextKey = "user"
	requestIDContextKey contextKey = "request_id"
)

const authCookieName = "auth_token"

// UserFromContext extracts the authenticated user from the request context.
// Returns nil if no user is authenticated.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}

// Authenticator resolves the session cookie to a user.
type Authenticator struct {
	auth     *service.AuthService
	identity *service.IdentityService
}

// NewAuthenticator creates a new Authenticator.
func NewAuthenticator(auth *service.AuthService, identity *service.IdentityService) *Authenticator {
	return &Authenticator{auth: auth, identity: identity}
}

// RequireAuth protects API routes. It reads the auth_token cookie, validates
// the token, loads the user it names and injects it into the request
// context. Unauthenticated requests get a 401, including sessions whose
// user no longer exists.
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.authenticate(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, codeUnauthenticated, "not authenticated")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	})
}

// RequireSession protects pages, sending unauthenticated browsers to sign in.
func (a *Authenticator) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.authenticate(r)
		if err != nil {
			http.Redirect(w, r, "/auth/signin", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	})
}

func (a *Authenticator) authenticate(r *http.Request) (*domain.User, error) {
	cookie, err := r.Cookie(authCookieName)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	email, err := a.auth.ValidateToken(cookie.Value)
	if err != nil {
		return nil, err
	}

	return a.identity.CurrentUser(r.Context(), email)
}

// SecurityHeaders sets conservative browser security headers on every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "same-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; script-src 'self' 'unsafe-eval' https://cdn.jsdelivr.net; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:")
		next.ServeHTTP(w, r)
	})
}

// RateLimit rejects clients that exceed limiter, keyed by remote IP.
func RateLimit(limiter *service.RateLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(clientIP(r)) {
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
