package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/wish-tracker/internal/service"
)

// ProxyHeaders names the request headers an authenticating reverse proxy
// uses to pass the verified identity. They are only honoured when Trust is set.
type ProxyHeaders struct {
	Trust  bool
	Email  string
	Name   string
	Avatar string
}

// AuthHandler handles sign-in, sign-out and account requests.
type AuthHandler struct {
	auth         *service.AuthService
	identity     *service.IdentityService
	proxy        ProxyHeaders
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, identity *service.IdentityService, proxy ProxyHeaders, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, identity: identity, proxy: proxy, cookieSecure: cookieSecure}
}

// HandleSignIn exchanges the proxy-verified identity for a session cookie.
// GET /auth/signin
// Response: 303 to /wishes, or 401 when no trusted identity is present.
func (h *AuthHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	if !h.proxy.Trust {
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, "sign-in requires a trusted identity proxy")
		return
	}

	user, err := h.identity.ResolveOrCreate(r.Context(),
		r.Header.Get(h.proxy.Email),
		r.Header.Get(h.proxy.Name),
		r.Header.Get(h.proxy.Avatar),
	)
	if err != nil {
		writeServiceError(w, r, "resolve identity", err)
		return
	}

	token, err := h.auth.IssueToken(user)
	if err != nil {
		writeServiceError(w, r, "issue token", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.auth.TTL().Seconds()),
	})

	slog.InfoContext(r.Context(), "user signed in", "user_id", user.ID, "request_id", RequestIDFromContext(r.Context()))
	http.Redirect(w, r, "/wishes", http.StatusSeeOther)
}

// HandleLogout clears the auth cookie.
// POST /auth/logout
// Response: 204 No Content
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.clearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the currently authenticated user.
// GET /api/me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(user),
	})
}

// HandleDeleteMe deletes the account with all its wishes and categories.
// DELETE /api/me
// Response: 204 No Content
func (h *AuthHandler) HandleDeleteMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if err := h.identity.DeleteAccount(r.Context(), user); err != nil {
		writeServiceError(w, r, "delete account", err)
		return
	}
	h.clearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
