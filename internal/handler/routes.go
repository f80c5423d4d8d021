package handler

import (
	"net/http"

	"github.com/msomdec/wish-tracker/internal/service"
)

// Deps is everything the HTTP layer needs.
type Deps struct {
	Auth          *service.AuthService
	Identity      *service.IdentityService
	Categories    *service.CategoryService
	Wishes        *service.WishService
	SignInLimiter *service.RateLimiter
	DB            Pinger
	Proxy         ProxyHeaders
	CookieSecure  bool
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, d Deps) {
	authn := NewAuthenticator(d.Auth, d.Identity)
	api := func(h http.HandlerFunc) http.Handler { return authn.RequireAuth(h) }

	authHandler := NewAuthHandler(d.Auth, d.Identity, d.Proxy, d.CookieSecure)
	categoryHandler := NewCategoryHandler(d.Categories)
	wishHandler := NewWishHandler(d.Wishes)
	boardHandler := NewBoardHandler(d.Wishes, d.Categories)

	mux.HandleFunc("GET /healthz", HandleHealthz(d.DB))

	// Auth
	mux.Handle("GET /auth/signin", RateLimit(d.SignInLimiter, http.HandlerFunc(authHandler.HandleSignIn)))
	mux.HandleFunc("POST /auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /api/me", api(authHandler.HandleMe))
	mux.Handle("DELETE /api/me", api(authHandler.HandleDeleteMe))

	// Categories
	mux.Handle("GET /api/categories", api(categoryHandler.HandleList))
	mux.Handle("POST /api/categories", api(categoryHandler.HandleCreate))
	mux.Handle("GET /api/categories/{id}", api(categoryHandler.HandleGet))
	mux.Handle("PUT /api/categories/{id}", api(categoryHandler.HandleUpdate))
	mux.Handle("DELETE /api/categories/{id}", api(categoryHandler.HandleDelete))

	// Wishes
	mux.Handle("GET /api/wishes", api(wishHandler.HandleList))
	mux.Handle("POST /api/wishes", api(wishHandler.HandleCreate))
	mux.Handle("GET /api/wishes/{id}", api(wishHandler.HandleGet))
	mux.Handle("PUT /api/wishes/{id}", api(wishHandler.HandleUpdate))
	mux.Handle("DELETE /api/wishes/{id}", api(wishHandler.HandleDelete))
	mux.Handle("POST /api/wishes/{id}/status", api(wishHandler.HandleChangeStatus))
	mux.Handle("GET /api/board", api(wishHandler.HandleBoard))

	// Board UI
	mux.Handle("GET /wishes", authn.RequireSession(http.HandlerFunc(boardHandler.HandleBoard)))
	mux.Handle("POST /wishes/{id}/status/{status}", api(boardHandler.HandleChangeStatus))
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/wishes", http.StatusSeeOther)
	})
}

// NewHandler builds the full HTTP handler: routes wrapped in request
// logging, tracing and security headers.
func NewHandler(d Deps) http.Handler {
	mux := http.NewServeMux()
	RegisterRoutes(mux, d)
	return RequestLogger(Trace(SecurityHeaders(mux)))
}
