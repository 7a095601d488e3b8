// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

// Package api provides the read-only JSON API for the public site
// content. All endpoints return published/active content only; writes
// go through the admin panel.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/visionlife/agency-go/internal/model"
	"github.com/visionlife/agency-go/internal/store"
	"github.com/visionlife/agency-go/internal/util"
)

// Handler serves the /api/v1 routes.
type Handler struct {
	queries *store.Queries
}

// NewHandler creates a new API Handler.
func NewHandler(db *sql.DB) *Handler {
	return &Handler{queries: store.New(db)}
}

// Routes registers all API routes on a chi router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/projects", h.Projects)
	r.Get("/testimonials", h.Testimonials)
	r.Get("/services", h.Services)
	r.Get("/posts", h.Posts)
	r.Get("/posts/{slug}", h.PostBySlug)
	r.Get("/stats", h.Stats)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

func writeData(w http.ResponseWriter, v any) {
	writeJSON(w, http.StatusOK, map[string]any{"data": v})
}

// PostResponse is a published post in API responses. Content is the raw
// markdown source; clients render it themselves.
type PostResponse struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	Excerpt          string     `json:"excerpt"`
	Content          string     `json:"content"`
	FeaturedImageURL string     `json:"featured_image_url,omitempty"`
	Author           string     `json:"author,omitempty"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func postResponse(p model.BlogPost) PostResponse {
	resp := PostResponse{
		ID:               p.ID,
		Title:            p.Title,
		Slug:             p.Slug,
		Excerpt:          p.Excerpt,
		Content:          p.Content,
		FeaturedImageURL: p.FeaturedImageURL,
		Author:           p.Author,
		CreatedAt:        p.CreatedAt,
	}
	if p.PublishedAt.Valid {
		t := p.PublishedAt.Time
		resp.PublishedAt = &t
	}
	return resp
}

// ServiceResponse is a service in API responses, with features split
// into a list.
type ServiceResponse struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Icon         string   `json:"icon_name,omitempty"`
	Features     []string `json:"features"`
	PriceRange   string   `json:"price_range,omitempty"`
	DisplayOrder int64    `json:"display_order"`
}

// Projects handles GET /api/v1/projects with an optional ?category= filter.
func (h *Handler) Projects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.queries.ListProjects(r.Context())
	if err != nil {
		slog.Error("api: listing projects", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if category := r.URL.Query().Get("category"); category != "" {
		filtered := projects[:0]
		for _, p := range projects {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		projects = filtered
	}
	if projects == nil {
		projects = []model.Project{}
	}
	writeData(w, projects)
}

// Testimonials handles GET /api/v1/testimonials - featured rows only.
func (h *Handler) Testimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.queries.ListFeaturedTestimonials(r.Context())
	if err != nil {
		slog.Error("api: listing testimonials", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if testimonials == nil {
		testimonials = []model.Testimonial{}
	}
	writeData(w, testimonials)
}

// Services handles GET /api/v1/services - active rows only.
func (h *Handler) Services(w http.ResponseWriter, r *http.Request) {
	services, err := h.queries.ListActiveServices(r.Context())
	if err != nil {
		slog.Error("api: listing services", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		features := s.FeatureList()
		if features == nil {
			features = []string{}
		}
		out = append(out, ServiceResponse{
			ID:           s.ID,
			Title:        s.Title,
			Description:  s.Description,
			Icon:         s.Icon,
			Features:     features,
			PriceRange:   s.PriceRange,
			DisplayOrder: s.DisplayOrder,
		})
	}
	writeData(w, out)
}

// Posts handles GET /api/v1/posts - published posts, newest first.
func (h *Handler) Posts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.ListPublishedBlogPosts(r.Context())
	if err != nil {
		slog.Error("api: listing posts", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, postResponse(p))
	}
	writeData(w, out)
}

// PostBySlug handles GET /api/v1/posts/{slug}. Drafts 404.
func (h *Handler) PostBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !util.IsValidSlug(slug) {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}

	post, err := h.queries.GetPublishedBlogPostBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		slog.Error("api: loading post", "error", err, "slug", slug)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeData(w, postResponse(post))
}

// Stats handles GET /api/v1/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queries.ListSiteStats(r.Context())
	if err != nil {
		slog.Error("api: listing stats", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if stats == nil {
		stats = []model.SiteStat{}
	}
	writeData(w, stats)
}
