// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package handler

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/visionlife/agency-go/internal/model"
	"github.com/visionlife/agency-go/internal/render"
	"github.com/visionlife/agency-go/internal/store"
)

// AdminHandler handles the admin dashboard.
type AdminHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *sql.DB, renderer *render.Renderer) *AdminHandler {
	return &AdminHandler{queries: store.New(db), renderer: renderer}
}

// DashboardData holds counts and recent activity for the dashboard.
type DashboardData struct {
	ProjectCount     int64
	TestimonialCount int64
	ServiceCount     int64
	PostCount        int64
	StatCount        int64
	UnreadInquiries  int64
	RecentEvents     []model.Event
}

// Dashboard handles GET /admin - shows content counts and recent events.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := DashboardData{}

	counts := []struct {
		dst *int64
		fn  func(context.Context) (int64, error)
	}{
		{&data.ProjectCount, h.queries.CountProjects},
		{&data.TestimonialCount, h.queries.CountTestimonials},
		{&data.ServiceCount, h.queries.CountServices},
		{&data.PostCount, h.queries.CountBlogPosts},
		{&data.StatCount, h.queries.CountSiteStats},
		{&data.UnreadInquiries, h.queries.CountUnreadContactInquiries},
	}
	for _, c := range counts {
		n, err := c.fn(ctx)
		if err != nil {
			logAndInternalError(w, "loading dashboard counts", "error", err)
			return
		}
		*c.dst = n
	}

	events, err := h.queries.ListRecentEvents(ctx, 10)
	if err != nil {
		slog.Error("loading recent events", "error", err)
		// The dashboard is still useful without them.
	}
	data.RecentEvents = events

	if err := h.renderer.Render(w, r, "admin/dashboard", render.TemplateData{
		Title: "Dashboard",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}
