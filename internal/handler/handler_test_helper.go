// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package handler

import (
	"context"
	"database/sql"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/visionlife/agency-go/internal/auth"
	"github.com/visionlife/agency-go/internal/cache"
	"github.com/visionlife/agency-go/internal/middleware"
	"github.com/visionlife/agency-go/internal/model"
	"github.com/visionlife/agency-go/internal/render"
	"github.com/visionlife/agency-go/internal/store"
	"github.com/visionlife/agency-go/internal/testutil"
	"github.com/visionlife/agency-go/web"
)

const testPassword = "correct-horse-battery"

// testDB creates a migrated SQLite database for testing.
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	return testutil.TestDB(t)
}

// testSessionManager creates a session manager for testing.
func testSessionManager(t *testing.T) *scs.SessionManager {
	t.Helper()
	sm := scs.New()
	sm.Lifetime = 24 * time.Hour
	return sm
}

// testRenderer builds a renderer on the real embedded templates.
func testRenderer(t *testing.T, sm *scs.SessionManager) *render.Renderer {
	t.Helper()

	templates, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("failed to sub templates FS: %v", err)
	}
	r, err := render.New(render.Config{TemplatesFS: templates, SessionManager: sm})
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}
	return r
}

// testContentCache creates an in-memory content cache for testing.
func testContentCache(t *testing.T) *cache.ContentCache {
	t.Helper()
	backend := cache.NewMemoryCache(time.Minute)
	t.Cleanup(func() { _ = backend.Close() })
	return cache.NewContentCache(backend, testutil.TestLogger())
}

// createTestUser creates a user with the testPassword, optionally on the
// admin allow-list.
func createTestUser(t *testing.T, db *sql.DB, email string, allowlisted bool) model.User {
	t.Helper()

	hash, err := auth.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	queries := store.New(db)
	ctx := context.Background()
	id, err := queries.CreateUser(ctx, store.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Name:         "Test User",
	})
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	if allowlisted {
		if err := queries.CreateAdminUser(ctx, id, email); err != nil {
			t.Fatalf("failed to allow-list test user: %v", err)
		}
	}

	user, err := queries.GetUserByID(ctx, id)
	if err != nil {
		t.Fatalf("failed to load test user: %v", err)
	}
	return user
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// formRequest builds a POST request with form-encoded values.
func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// serveWithSession runs a handler inside a loaded session scope,
// optionally signing in the given user first. Handlers that set flash
// messages or touch the session need this wrapper.
func serveWithSession(t *testing.T, sm *scs.SessionManager, userID int64, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID != 0 {
			sm.Put(r.Context(), middleware.SessionKeyUserID, userID)
		}
		h.ServeHTTP(w, r)
	})).ServeHTTP(rec, req)

	return rec
}

// sessionFlash reads the flash left behind by a handler, inside a fresh
// session scope bound to the same session cookie.
func sessionFlash(t *testing.T, sm *scs.SessionManager, rec *httptest.ResponseRecorder) (message, flashType string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		message = sm.PopString(r.Context(), "flash")
		flashType = sm.PopString(r.Context(), "flash_type")
	})).ServeHTTP(httptest.NewRecorder(), req)
	return message, flashType
}

// sessionUserID reads the signed-in user ID from the session left behind
// by a handler run, or 0 when the session carries none.
func sessionUserID(t *testing.T, sm *scs.SessionManager, rec *httptest.ResponseRecorder) int64 {
	t.Helper()

	var id int64
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id = sm.GetInt64(r.Context(), middleware.SessionKeyUserID)
	})).ServeHTTP(httptest.NewRecorder(), req)
	return id
}

// assertStatus checks if the response status code matches the expected value.
func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}

// assertRedirect checks for a 303 redirect to the expected location.
func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d; want %d", rec.Code, http.StatusSeeOther)
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Errorf("Location = %q; want %q", got, location)
	}
}
