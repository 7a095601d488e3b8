// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/visionlife/agency-go/internal/auth"
	"github.com/visionlife/agency-go/internal/model"
)

// EnsureAdmin creates the initial admin account when the users table is
// empty. The account is added to the admin allow-list in the same
// transaction so it can sign in immediately. Does nothing when users
// already exist or when email/password are unset.
func EnsureAdmin(ctx context.Context, db *sql.DB, email, password string, logger *slog.Logger) error {
	q := New(db)

	n, err := q.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if n > 0 || email == "" || password == "" {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	qtx := q.WithTx(tx)
	userID, err := qtx.CreateUser(ctx, CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Name:         "Administrator",
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}
	if err := qtx.CreateAdminUser(ctx, userID, email); err != nil {
		return fmt.Errorf("allow-listing admin user: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	logger.Info("created initial admin account", "email", email)
	return nil
}

// SeedContent inserts demo content for local development. It is a no-op
// when any projects already exist.
func SeedContent(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	q := New(db)

	n, err := q.CountProjects(ctx)
	if err != nil {
		return fmt.Errorf("counting projects: %w", err)
	}
	if n > 0 {
		return nil
	}

	projects := []CreateProjectParams{
		{
			Title:        "Aurora Rebrand",
			Description:  "Full visual identity refresh for a consumer electronics brand.",
			Category:     model.CategoryBranding,
			ClientName:   "Aurora Labs",
			ProjectDate:  "2025-03",
			IsFeatured:   true,
			DisplayOrder: 0,
		},
		{
			Title:        "Summer Launch Campaign",
			Description:  "Cross-platform social campaign with motion assets.",
			Category:     model.CategorySocialMedia,
			ClientName:   "Koa Drinks",
			ProjectDate:  "2025-06",
			IsFeatured:   true,
			DisplayOrder: 1,
		},
		{
			Title:        "Product Story Film",
			Description:  "Two-minute brand film shot across three cities.",
			Category:     model.CategoryVideo,
			ClientName:   "Northgate",
			ProjectDate:  "2024-11",
			DisplayOrder: 2,
		},
	}
	for _, p := range projects {
		if _, err := q.CreateProject(ctx, p); err != nil {
			return fmt.Errorf("seeding project %q: %w", p.Title, err)
		}
	}

	services := []CreateServiceParams{
		{
			Title:        "Brand Identity",
			Description:  "Naming, logo systems and brand guidelines.",
			Icon:         "palette",
			Features:     "Logo design\nBrand guidelines\nStationery",
			PriceRange:   "From $2,500",
			IsActive:     true,
			DisplayOrder: 0,
		},
		{
			Title:        "Social Media",
			Description:  "Always-on content and campaign management.",
			Icon:         "share",
			Features:     "Content calendar\nCommunity management\nPaid campaigns",
			PriceRange:   "From $1,200/mo",
			IsActive:     true,
			DisplayOrder: 1,
		},
	}
	for _, s := range services {
		if _, err := q.CreateService(ctx, s); err != nil {
			return fmt.Errorf("seeding service %q: %w", s.Title, err)
		}
	}

	testimonials := []CreateTestimonialParams{
		{
			ClientName:    "Maya Chen",
			ClientRole:    "Marketing Director",
			ClientCompany: "Aurora Labs",
			Content:       "The rebrand landed better than we dared to hope. Every deliverable was on time.",
			Rating:        5,
			IsFeatured:    true,
			DisplayOrder:  0,
		},
		{
			ClientName:    "Jonas Petrov",
			ClientRole:    "Founder",
			ClientCompany: "Koa Drinks",
			Content:       "Our launch campaign tripled engagement in a month.",
			Rating:        5,
			IsFeatured:    true,
			DisplayOrder:  1,
		},
	}
	for _, tm := range testimonials {
		if _, err := q.CreateTestimonial(ctx, tm); err != nil {
			return fmt.Errorf("seeding testimonial for %q: %w", tm.ClientName, err)
		}
	}

	stats := []CreateSiteStatParams{
		{StatKey: "years_experience", StatValue: "12", Label: "Years Experience", Suffix: "+", DisplayOrder: 0},
		{StatKey: "projects_completed", StatValue: "240", Label: "Projects Completed", Suffix: "+", DisplayOrder: 1},
		{StatKey: "happy_clients", StatValue: "98", Label: "Happy Clients", Suffix: "%", DisplayOrder: 2},
	}
	for _, s := range stats {
		if _, err := q.CreateSiteStat(ctx, s); err != nil {
			return fmt.Errorf("seeding stat %q: %w", s.StatKey, err)
		}
	}

	logger.Info("seeded demo content",
		"projects", len(projects), "services", len(services),
		"testimonials", len(testimonials), "stats", len(stats))
	return nil
}
