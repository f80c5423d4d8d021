package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/msomdec/wish-tracker/internal/handler"
	"github.com/msomdec/wish-tracker/internal/repository/sqlite"
	"github.com/msomdec/wish-tracker/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

func newTestDeps(t *testing.T) handler.Deps {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	categories := service.NewCategoryService(db.Categories(), db.Wishes(), db)
	return handler.Deps{
		Auth:          service.NewAuthService(testJWTSecret, time.Hour),
		Identity:      service.NewIdentityService(db.Users(), db.Categories(), db.Wishes(), db),
		Categories:    categories,
		Wishes:        service.NewWishService(db.Wishes(), categories, db),
		SignInLimiter: service.NewRateLimiter(10, 100),
		DB:            db.SqlDB,
		Proxy: handler.ProxyHeaders{
			Trust:  true,
			Email:  "X-Forwarded-Email",
			Name:   "X-Forwarded-Preferred-Username",
			Avatar: "X-Forwarded-Avatar",
		},
	}
}

func newTestServer(t *testing.T, deps handler.Deps) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler.NewHandler(deps))
	t.Cleanup(srv.Close)
	return srv
}

// newClient returns a client with its own cookie jar that does not follow redirects.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse // don't follow redirects automatically
		},
	}
}

// signIn signs in through the proxy headers and returns a client holding the session.
func signIn(t *testing.T, srv *httptest.Server, email, name string) *http.Client {
	t.Helper()
	client := newClient(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/auth/signin", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("X-Forwarded-Email", email)
	req.Header.Set("X-Forwarded-Preferred-Username", name)

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("GET /auth/signin: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("signin: expected 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/wishes" {
		t.Fatalf("signin: expected redirect to /wishes, got %s", loc)
	}
	return client
}

// doJSON sends body as JSON and decodes a JSON object response, if any.
func doJSON(t *testing.T, client *http.Client, method, url string, body any) (int, map[string]any) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("%s %s: decode body: %v", method, url, err)
		}
	}
	return resp.StatusCode, out
}

// idOf extracts the numeric id of the object stored under key.
func idOf(t *testing.T, body map[string]any, key string) int64 {
	t.Helper()
	obj, ok := body[key].(map[string]any)
	if !ok {
		t.Fatalf("expected %q object in %v", key, body)
	}
	id, ok := obj["id"].(float64)
	if !ok {
		t.Fatalf("expected numeric id in %v", obj)
	}
	return int64(id)
}
