// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

// Package middleware provides HTTP middleware for sessions, admin access
// control, security headers, and login abuse protection.
package middleware

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/visionlife/agency-go/internal/model"
	"github.com/visionlife/agency-go/internal/store"
)

// ContextKey is the type for request context keys set by this package.
type ContextKey string

const (
	// UserContextKey carries the signed-in *model.User.
	UserContextKey ContextKey = "user"
)

// SessionKeyUserID is the session key holding the signed-in user's ID.
const SessionKeyUserID = "user_id"

// Auth redirects to the login page when no user is signed in.
func Auth(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sm.GetInt64(r.Context(), SessionKeyUserID) == 0 {
				http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LoadUser resolves the session's user ID to a user row and stores it in
// the request context. A stale session pointing at a deleted account is
// destroyed.
func LoadUser(sm *scs.SessionManager, queries *store.Queries, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetInt64(r.Context(), SessionKeyUserID)
			if userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			user, err := queries.GetUserByID(r.Context(), userID)
			if err != nil {
				if !errors.Is(err, sql.ErrNoRows) {
					logger.Error("loading session user", "error", err, "user_id", userID)
				}
				_ = sm.Destroy(r.Context())
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, &user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAllowlisted checks the signed-in user against the admin
// allow-list on every request. Accounts without a row are signed out and
// sent back to the login page. Lookup errors also deny access: the
// allow-list fails closed.
func RequireAllowlisted(sm *scs.SessionManager, queries *store.Queries, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			if user == nil {
				http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
				return
			}

			if _, err := queries.GetAdminUserByUserID(r.Context(), user.ID); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					logger.Warn("non-admin account attempted admin access",
						"category", model.EventCategoryAuth, "user_id", user.ID, "email", user.Email)
				} else {
					logger.Error("allow-list lookup failed", "error", err, "user_id", user.ID)
				}
				_ = sm.Destroy(r.Context())
				http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUser returns the signed-in user from the request context, or nil.
func GetUser(r *http.Request) *model.User {
	user, _ := r.Context().Value(UserContextKey).(*model.User)
	return user
}

// GetUserID returns the signed-in user's ID, or 0.
func GetUserID(r *http.Request) int64 {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return 0
}
