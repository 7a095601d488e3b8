// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/visionlife/agency-go/internal/auth"
	"github.com/visionlife/agency-go/internal/middleware"
	"github.com/visionlife/agency-go/internal/model"
	"github.com/visionlife/agency-go/internal/render"
	"github.com/visionlife/agency-go/internal/store"
)

// MinPasswordLength applies to the first-run setup form.
const MinPasswordLength = 10

// AuthHandler handles authentication routes.
type AuthHandler struct {
	queries         *store.Queries
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtector
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, lp *middleware.LoginProtector) *AuthHandler {
	return &AuthHandler{
		queries:         store.New(db),
		renderer:        renderer,
		sessionManager:  sm,
		loginProtection: lp,
	}
}

// LoginForm renders the login page. Already signed-in admins go straight
// to the dashboard. When no account exists yet, the first-run setup page
// takes over.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.sessionManager.GetInt64(r.Context(), middleware.SessionKeyUserID) > 0 {
		http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
		return
	}

	if n, err := h.queries.CountUsers(r.Context()); err == nil && n == 0 {
		http.Redirect(w, r, "/admin"+RouteSetup, http.StatusSeeOther)
		return
	}

	if err := h.renderer.Render(w, r, "auth/login", render.TemplateData{
		Title: "Sign In",
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// Login handles the login form submission. Valid credentials are not
// enough: the account must also be on the admin allow-list, otherwise
// the fresh session is destroyed immediately.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectLogin) {
		return
	}

	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	password := r.FormValue("password")

	if email == "" || password == "" {
		flashError(w, r, h.renderer, redirectLogin, "Email and password are required")
		return
	}

	if !h.loginProtection.AllowAttempt(r) {
		slog.Warn("login rate limit hit", "category", model.EventCategoryAuth, "email", email)
		flashError(w, r, h.renderer, redirectLogin, "Too many attempts, slow down")
		return
	}
	if h.loginProtection.IsLocked(email) {
		slog.Warn("login attempt on locked account", "category", model.EventCategoryAuth, "email", email)
		flashError(w, r, h.renderer, redirectLogin, "Account temporarily locked, try again later")
		return
	}

	user, err := h.queries.GetUserByEmail(r.Context(), email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("database error during login", "error", err)
		}
		// Count the miss even for unknown accounts to prevent enumeration.
		h.loginProtection.RecordFailure(email)
		flashError(w, r, h.renderer, redirectLogin, "Invalid email or password")
		return
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil || !valid {
		if err != nil {
			slog.Error("password check error", "error", err)
		} else {
			slog.Warn("invalid password attempt",
				"category", model.EventCategoryAuth, "user_id", user.ID, "email", email)
		}
		h.loginProtection.RecordFailure(email)
		flashError(w, r, h.renderer, redirectLogin, "Invalid email or password")
		return
	}

	h.loginProtection.RecordSuccess(email)

	// Regenerate the session ID to prevent fixation.
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}
	h.sessionManager.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	// Allow-list check. Valid credentials without an allow-list row end
	// the session right here.
	if _, err := h.queries.GetAdminUserByUserID(r.Context(), user.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Warn("login refused for non-admin account",
				"category", model.EventCategoryAuth, "user_id", user.ID, "email", email)
		} else {
			slog.Error("allow-list lookup failed during login", "error", err, "user_id", user.ID)
		}
		_ = h.sessionManager.Destroy(r.Context())
		flashError(w, r, h.renderer, redirectLogin, "You don't have admin access")
		return
	}

	if err := h.queries.UpdateUserLastLogin(r.Context(), user.ID); err != nil {
		slog.Error("failed to update last login time", "error", err, "user_id", user.ID)
		// Don't block login on this error
	}

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email)
	flashSuccess(w, r, h.renderer, redirectAdmin, "Welcome back, "+user.Name)
}

// Logout destroys the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessionManager.GetInt64(r.Context(), middleware.SessionKeyUserID)

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	slog.Info("user logged out", "user_id", userID)
	flashAndRedirect(w, r, h.renderer, redirectLogin, "You have been signed out", "info")
}

// SetupForm renders the first-run setup page. It only exists while the
// users table is empty.
func (h *AuthHandler) SetupForm(w http.ResponseWriter, r *http.Request) {
	if n, err := h.queries.CountUsers(r.Context()); err != nil || n > 0 {
		http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
		return
	}

	if err := h.renderer.Render(w, r, "auth/setup", render.TemplateData{
		Title: "Create Admin Account",
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// Setup creates the first admin account and allow-lists it. Refused as
// soon as any account exists, so it cannot be replayed.
func (h *AuthHandler) Setup(w http.ResponseWriter, r *http.Request) {
	setupRoute := "/admin" + RouteSetup

	if n, err := h.queries.CountUsers(r.Context()); err != nil {
		logAndInternalError(w, "counting users during setup", "error", err)
		return
	} else if n > 0 {
		flashError(w, r, h.renderer, redirectLogin, "Setup has already been completed")
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, setupRoute) {
		return
	}

	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	name := strings.TrimSpace(r.FormValue("name"))
	password := r.FormValue("password")

	if _, err := mail.ParseAddress(email); err != nil {
		flashError(w, r, h.renderer, setupRoute, "A valid email address is required")
		return
	}
	if name == "" {
		name = "Administrator"
	}
	if len(password) < MinPasswordLength {
		flashError(w, r, h.renderer, setupRoute, "Password must be at least 10 characters")
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		logAndInternalError(w, "hashing setup password", "error", err)
		return
	}

	userID, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
	})
	if err != nil {
		logAndInternalError(w, "creating setup user", "error", err)
		return
	}
	if err := h.queries.CreateAdminUser(r.Context(), userID, email); err != nil {
		logAndInternalError(w, "allow-listing setup user", "error", err)
		return
	}

	slog.Info("initial admin account created", "user_id", userID, "email", email)
	flashSuccess(w, r, h.renderer, redirectLogin, "Account created, you can sign in now")
}
