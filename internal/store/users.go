// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/visionlife/agency-go/internal/model"
)

const getUserByEmail = `
SELECT id, email, password_hash, name, last_login_at, created_at, updated_at
FROM users WHERE email = ?
`

// GetUserByEmail fetches a user by email address. Returns sql.ErrNoRows
// when no account exists.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := q.db.QueryRowContext(ctx, getUserByEmail, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

const getUserByID = `
SELECT id, email, password_hash, name, last_login_at, created_at, updated_at
FROM users WHERE id = ?
`

// GetUserByID fetches a user by primary key.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := q.db.QueryRowContext(ctx, getUserByID, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

const createUser = `
INSERT INTO users (email, password_hash, name)
VALUES (?, ?, ?)
`

// CreateUserParams holds the fields for creating a user.
type CreateUserParams struct {
	Email        string
	PasswordHash string
	Name         string
}

// CreateUser inserts a new user and returns its ID.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createUser, arg.Email, arg.PasswordHash, arg.Name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const updateUserLastLogin = `
UPDATE users SET last_login_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

// UpdateUserLastLogin records a successful sign-in.
func (q *Queries) UpdateUserLastLogin(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, updateUserLastLogin, id)
	return err
}

const countUsers = `SELECT COUNT(*) FROM users`

// CountUsers returns the total number of user accounts.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countUsers).Scan(&n)
	return n, err
}

const getAdminUserByUserID = `
SELECT id, user_id, email, created_at
FROM admin_users WHERE user_id = ?
`

// GetAdminUserByUserID looks up the allow-list row for a user. A
// sql.ErrNoRows result means the account has no admin access.
func (q *Queries) GetAdminUserByUserID(ctx context.Context, userID int64) (model.AdminUser, error) {
	var a model.AdminUser
	err := q.db.QueryRowContext(ctx, getAdminUserByUserID, userID).Scan(
		&a.ID, &a.UserID, &a.Email, &a.CreatedAt,
	)
	return a, err
}

const createAdminUser = `
INSERT INTO admin_users (user_id, email)
VALUES (?, ?)
`

// CreateAdminUser adds a user to the admin allow-list.
func (q *Queries) CreateAdminUser(ctx context.Context, userID int64, email string) error {
	_, err := q.db.ExecContext(ctx, createAdminUser, userID, email)
	return err
}
