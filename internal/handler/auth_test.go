// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/visionlife/agency-go/internal/middleware"
	"github.com/visionlife/agency-go/internal/store"
)

func TestLoginUnknownEmail(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewAuthHandler(db, testRenderer(t, sm), sm, middleware.NewLoginProtector())

	req := formRequest("/admin/login", url.Values{
		"email":    {"nobody@example.com"},
		"password": {"whatever"},
	})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Login), req)

	assertRedirect(t, rec, "/admin/login")
	if msg, typ := sessionFlash(t, sm, rec); msg != "Invalid email or password" || typ != "error" {
		t.Errorf("flash = %q (%s); want invalid credentials error", msg, typ)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewAuthHandler(db, testRenderer(t, sm), sm, middleware.NewLoginProtector())
	createTestUser(t, db, "admin@example.com", true)

	req := formRequest("/admin/login", url.Values{
		"email":    {"admin@example.com"},
		"password": {"not-the-password"},
	})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Login), req)

	assertRedirect(t, rec, "/admin/login")
	if msg, _ := sessionFlash(t, sm, rec); msg != "Invalid email or password" {
		t.Errorf("flash = %q; want invalid credentials error", msg)
	}
}

func TestLoginAllowlistedUser(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewAuthHandler(db, testRenderer(t, sm), sm, middleware.NewLoginProtector())
	user := createTestUser(t, db, "admin@example.com", true)

	req := formRequest("/admin/login", url.Values{
		"email":    {"Admin@Example.com"}, // normalized before lookup
		"password": {testPassword},
	})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Login), req)

	assertRedirect(t, rec, "/admin")
	if msg, typ := sessionFlash(t, sm, rec); msg != "Welcome back, "+user.Name || typ != "success" {
		t.Errorf("flash = %q (%s); want welcome message", msg, typ)
	}
	if got := sessionUserID(t, sm, rec); got != user.ID {
		t.Errorf("session user_id = %d; want %d", got, user.ID)
	}
}

func TestLoginRefusesNonAdminAccount(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewAuthHandler(db, testRenderer(t, sm), sm, middleware.NewLoginProtector())
	createTestUser(t, db, "writer@example.com", false)

	req := formRequest("/admin/login", url.Values{
		"email":    {"writer@example.com"},
		"password": {testPassword},
	})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Login), req)

	assertRedirect(t, rec, "/admin/login")
	if msg, typ := sessionFlash(t, sm, rec); msg != "You don't have admin access" || typ != "error" {
		t.Errorf("flash = %q (%s); want admin access refusal", msg, typ)
	}
	if got := sessionUserID(t, sm, rec); got != 0 {
		t.Errorf("session user_id = %d after refused login; want none", got)
	}
}

func TestLoginFormRedirectsToSetupWhenEmpty(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewAuthHandler(db, testRenderer(t, sm), sm, middleware.NewLoginProtector())

	req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.LoginForm), req)

	assertRedirect(t, rec, "/admin/setup")
}

func TestSetupCreatesAllowlistedAdmin(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewAuthHandler(db, testRenderer(t, sm), sm, middleware.NewLoginProtector())

	req := formRequest("/admin/setup", url.Values{
		"email":    {"founder@example.com"},
		"name":     {"Founder"},
		"password": {"a-long-enough-password"},
	})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Setup), req)

	assertRedirect(t, rec, "/admin/login")

	queries := store.New(db)
	user, err := queries.GetUserByEmail(t.Context(), "founder@example.com")
	if err != nil {
		t.Fatalf("setup user not created: %v", err)
	}
	if _, err := queries.GetAdminUserByUserID(t.Context(), user.ID); err != nil {
		t.Errorf("setup user not allow-listed: %v", err)
	}
}

func TestSetupRefusedOnceUsersExist(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewAuthHandler(db, testRenderer(t, sm), sm, middleware.NewLoginProtector())
	createTestUser(t, db, "admin@example.com", true)

	req := formRequest("/admin/setup", url.Values{
		"email":    {"intruder@example.com"},
		"password": {"a-long-enough-password"},
	})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Setup), req)

	assertRedirect(t, rec, "/admin/login")
	if _, err := store.New(db).GetUserByEmail(t.Context(), "intruder@example.com"); err == nil {
		t.Error("setup created a second account")
	}
}

func TestSetupRejectsShortPassword(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewAuthHandler(db, testRenderer(t, sm), sm, middleware.NewLoginProtector())

	req := formRequest("/admin/setup", url.Values{
		"email":    {"founder@example.com"},
		"password": {"short"},
	})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Setup), req)

	assertRedirect(t, rec, "/admin/setup")
	if n, _ := store.New(db).CountUsers(t.Context()); n != 0 {
		t.Errorf("user count = %d after rejected setup; want 0", n)
	}
}

func TestLogout(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewAuthHandler(db, testRenderer(t, sm), sm, middleware.NewLoginProtector())
	user := createTestUser(t, db, "admin@example.com", true)

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	rec := serveWithSession(t, sm, user.ID, http.HandlerFunc(h.Logout), req)

	assertRedirect(t, rec, "/admin/login")
	if got := sessionUserID(t, sm, rec); got != 0 {
		t.Errorf("session user_id = %d after logout; want none", got)
	}
}
