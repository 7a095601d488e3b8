// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package model

import (
	"database/sql"
	"time"
)

// User is an account that can sign in to the admin panel. Having an
// account is not enough to use it: the user must also appear in the
// admin allow-list (AdminUser).
type User struct {
	ID           int64        `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Name         string       `json:"name"`
	LastLoginAt  sql.NullTime `json:"last_login_at"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// AdminUser is a row in the admin allow-list. Presence of the row is what
// grants access; absence means the account is signed out and refused.
type AdminUser struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
