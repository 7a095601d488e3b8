// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package handler

import (
	"bytes"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/visionlife/agency-go/internal/cache"
	"github.com/visionlife/agency-go/internal/model"
	"github.com/visionlife/agency-go/internal/render"
	"github.com/visionlife/agency-go/internal/store"
	"github.com/visionlife/agency-go/internal/util"
)

// FrontendHandler handles the public marketing site.
type FrontendHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	cache    *cache.ContentCache
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(db *sql.DB, renderer *render.Renderer, cc *cache.ContentCache) *FrontendHandler {
	return &FrontendHandler{queries: store.New(db), renderer: renderer, cache: cc}
}

// pageRecorder tees the response body so successful renders can be
// cached.
type pageRecorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (p *pageRecorder) WriteHeader(status int) {
	p.status = status
	p.ResponseWriter.WriteHeader(status)
}

func (p *pageRecorder) Write(b []byte) (int, error) {
	p.buf.Write(b)
	return p.ResponseWriter.Write(b)
}

// serveCached serves the page from the content cache when possible,
// otherwise renders it and stores the result. Pages with forms or flash
// messages must not go through here.
func (h *FrontendHandler) serveCached(w http.ResponseWriter, r *http.Request, key string, renderFn func(http.ResponseWriter) error) {
	if body := h.cache.GetPage(r.Context(), key); body != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(body)
		return
	}

	rec := &pageRecorder{ResponseWriter: w, status: http.StatusOK}
	if err := renderFn(rec); err != nil {
		logAndInternalError(w, "render error", "error", err)
		return
	}
	if rec.status == http.StatusOK {
		h.cache.SetPage(r.Context(), key, rec.buf.Bytes())
	}
}

// HomeData holds data for the home page.
type HomeData struct {
	FeaturedProjects []model.Project
	Testimonials     []model.Testimonial
	Services         []model.Service
	Stats            []model.SiteStat
}

// Home handles GET /.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, cache.KeyHome, func(w http.ResponseWriter) error {
		ctx := r.Context()
		data := HomeData{}
		var err error

		if data.FeaturedProjects, err = h.queries.ListFeaturedProjects(ctx); err != nil {
			return err
		}
		if data.Testimonials, err = h.queries.ListFeaturedTestimonials(ctx); err != nil {
			return err
		}
		if data.Services, err = h.queries.ListActiveServices(ctx); err != nil {
			return err
		}
		if data.Stats, err = h.queries.ListSiteStats(ctx); err != nil {
			return err
		}

		return h.renderer.Render(w, r, "site/home", render.TemplateData{
			Title: "VisionLife — Creativity Agency",
			Data:  data,
		})
	})
}

// ServicesData holds data for the services page.
type ServicesData struct {
	Services []model.Service
}

// Services handles GET /services.
func (h *FrontendHandler) Services(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, cache.KeyServices, func(w http.ResponseWriter) error {
		services, err := h.queries.ListActiveServices(r.Context())
		if err != nil {
			return err
		}
		return h.renderer.Render(w, r, "site/services", render.TemplateData{
			Title: "Services",
			Data:  ServicesData{Services: services},
		})
	})
}

// PortfolioData holds data for the portfolio page.
type PortfolioData struct {
	Projects   []model.Project
	Categories []string
	Active     string
}

// Portfolio handles GET /portfolio with an optional ?category= filter.
func (h *FrontendHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if !model.IsValidCategory(category) {
		category = ""
	}

	key := cache.KeyPortfolio
	if category != "" {
		key += ":" + util.Slugify(category)
	}

	h.serveCached(w, r, key, func(w http.ResponseWriter) error {
		projects, err := h.queries.ListProjects(r.Context())
		if err != nil {
			return err
		}
		if category != "" {
			filtered := projects[:0]
			for _, p := range projects {
				if p.Category == category {
					filtered = append(filtered, p)
				}
			}
			projects = filtered
		}

		return h.renderer.Render(w, r, "site/portfolio", render.TemplateData{
			Title: "Portfolio",
			Data: PortfolioData{
				Projects:   projects,
				Categories: model.ProjectCategories,
				Active:     category,
			},
		})
	})
}

// ContactForm handles GET /contact. Not cached: the page carries the
// CSRF field and post-submit flash messages.
func (h *FrontendHandler) ContactForm(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "site/contact", render.TemplateData{
		Title: "Contact",
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// ContactSubmit handles POST /contact.
func (h *FrontendHandler) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteContact) {
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	phone := strings.TrimSpace(r.FormValue("phone"))
	service := strings.TrimSpace(r.FormValue("service"))
	message := strings.TrimSpace(r.FormValue("message"))

	if name == "" || message == "" {
		flashError(w, r, h.renderer, RouteContact, "Name and message are required")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		flashError(w, r, h.renderer, RouteContact, "A valid email address is required")
		return
	}

	id, err := h.queries.CreateContactInquiry(r.Context(), store.CreateContactInquiryParams{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Service: service,
		Message: message,
	})
	if err != nil {
		slog.Error("failed to store contact inquiry", "error", err)
		flashError(w, r, h.renderer, RouteContact, "Something went wrong, please try again")
		return
	}

	slog.Info("contact inquiry received", "inquiry_id", id)
	flashSuccess(w, r, h.renderer, RouteContact, "Thanks for reaching out, we'll get back to you soon")
}

// BlogIndexData holds data for the blog index page.
type BlogIndexData struct {
	Posts []model.BlogPost
}

// BlogIndex handles GET /blog - published posts only, newest first.
func (h *FrontendHandler) BlogIndex(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, cache.KeyBlogIndex, func(w http.ResponseWriter) error {
		posts, err := h.queries.ListPublishedBlogPosts(r.Context())
		if err != nil {
			return err
		}
		return h.renderer.Render(w, r, "site/blog", render.TemplateData{
			Title: "Blog",
			Data:  BlogIndexData{Posts: posts},
		})
	})
}

// BlogPostData holds data for a single post page.
type BlogPostData struct {
	Post model.BlogPost
}

// BlogPost handles GET /blog/{slug}. Drafts 404.
func (h *FrontendHandler) BlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !util.IsValidSlug(slug) {
		h.NotFound(w, r)
		return
	}

	post, err := h.queries.GetPublishedBlogPostBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.NotFound(w, r)
			return
		}
		logAndInternalError(w, "failed to load post", "error", err, "slug", slug)
		return
	}

	h.serveCached(w, r, cache.KeyBlogPostPrefix+slug, func(w http.ResponseWriter) error {
		return h.renderer.Render(w, r, "site/post", render.TemplateData{
			Title: post.Title,
			Data:  BlogPostData{Post: post},
		})
	})
}

// NotFound renders the 404 page.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.RenderStatus(w, r, http.StatusNotFound, "site/404", render.TemplateData{
		Title: "Page Not Found",
	}); err != nil {
		slog.Error("render error", "error", err)
		http.NotFound(w, r)
	}
}

// Health handles GET /healthz.
func (h *FrontendHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSONSuccess(w, map[string]any{"status": "ok"})
}
