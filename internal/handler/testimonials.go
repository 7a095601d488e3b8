// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/visionlife/agency-go/internal/cache"
	"github.com/visionlife/agency-go/internal/middleware"
	"github.com/visionlife/agency-go/internal/model"
	"github.com/visionlife/agency-go/internal/render"
	"github.com/visionlife/agency-go/internal/store"
)

// TestimonialsHandler handles testimonial management routes.
type TestimonialsHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	cache    *cache.ContentCache
}

// NewTestimonialsHandler creates a new TestimonialsHandler.
func NewTestimonialsHandler(db *sql.DB, renderer *render.Renderer, cc *cache.ContentCache) *TestimonialsHandler {
	return &TestimonialsHandler{queries: store.New(db), renderer: renderer, cache: cc}
}

// TestimonialsListData holds data for the testimonials list template.
type TestimonialsListData struct {
	Testimonials []model.Testimonial
}

// TestimonialFormData holds data for the testimonial form template.
type TestimonialFormData struct {
	Testimonial *model.Testimonial
	Errors      map[string]string
	FormValues  map[string]string
	IsEdit      bool
}

// List handles GET /admin/testimonials.
func (h *TestimonialsHandler) List(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.queries.ListTestimonials(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list testimonials", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/testimonials_list", render.TemplateData{
		Title: "Testimonials",
		Data:  TestimonialsListData{Testimonials: testimonials},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// NewForm handles GET /admin/testimonials/new.
func (h *TestimonialsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	data := TestimonialFormData{
		Errors: make(map[string]string),
		FormValues: map[string]string{
			"rating": strconv.Itoa(model.DefaultRating),
		},
	}

	if err := h.renderer.Render(w, r, "admin/testimonials_form", render.TemplateData{
		Title: "New Testimonial",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// testimonialForm extracts and validates the testimonial form.
func testimonialFormValues(tm *model.Testimonial) map[string]string {
	values := map[string]string{
		"client_name":      tm.ClientName,
		"client_role":      tm.ClientRole,
		"client_company":   tm.ClientCompany,
		"client_image_url": tm.ClientImageURL,
		"content":          tm.Content,
		"rating":           strconv.FormatInt(tm.Rating, 10),
		"display_order":    strconv.FormatInt(tm.DisplayOrder, 10),
	}
	if tm.IsFeatured {
		values["is_featured"] = "on"
	}
	return values
}

func (h *TestimonialsHandler) testimonialForm(r *http.Request) (map[string]string, int64, map[string]string) {
	values := map[string]string{
		"client_name":      strings.TrimSpace(r.FormValue("client_name")),
		"client_role":      strings.TrimSpace(r.FormValue("client_role")),
		"client_company":   strings.TrimSpace(r.FormValue("client_company")),
		"client_image_url": strings.TrimSpace(r.FormValue("client_image_url")),
		"content":          strings.TrimSpace(r.FormValue("content")),
		"rating":           strings.TrimSpace(r.FormValue("rating")),
		"display_order":    strings.TrimSpace(r.FormValue("display_order")),
	}
	if formBool(r, "is_featured") {
		values["is_featured"] = "on"
	}

	errs := make(map[string]string)
	if values["client_name"] == "" {
		errs["client_name"] = "Client name is required"
	}
	if values["content"] == "" {
		errs["content"] = "Content is required"
	}

	rating := int64(model.DefaultRating)
	if values["rating"] != "" {
		n, err := strconv.ParseInt(values["rating"], 10, 64)
		if err != nil || !model.IsValidRating(n) {
			errs["rating"] = "Rating must be between 1 and 5"
		} else {
			rating = n
		}
	}
	return values, rating, errs
}

func (h *TestimonialsHandler) renderForm(w http.ResponseWriter, r *http.Request, data TestimonialFormData) {
	title := "New Testimonial"
	if data.IsEdit {
		title = "Edit Testimonial"
	}
	if err := h.renderer.Render(w, r, "admin/testimonials_form", render.TemplateData{
		Title: title,
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// Create handles POST /admin/testimonials.
func (h *TestimonialsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectTestimonials+RouteSuffixNew) {
		return
	}

	values, rating, errs := h.testimonialForm(r)

	order, err := displayOrderOrDefault(r.Context(), values["display_order"], h.queries.CountTestimonials)
	if err != nil {
		errs["display_order"] = "Display order must be a non-negative number"
	}

	if len(errs) > 0 {
		h.renderForm(w, r, TestimonialFormData{Errors: errs, FormValues: values})
		return
	}

	id, err := h.queries.CreateTestimonial(r.Context(), store.CreateTestimonialParams{
		ClientName:     values["client_name"],
		ClientRole:     values["client_role"],
		ClientCompany:  values["client_company"],
		ClientImageURL: values["client_image_url"],
		Content:        values["content"],
		Rating:         rating,
		IsFeatured:     values["is_featured"] == "on",
		DisplayOrder:   order,
	})
	if err != nil {
		slog.Error("failed to create testimonial", "error", err)
		flashError(w, r, h.renderer, redirectTestimonials+RouteSuffixNew, "Error creating testimonial")
		return
	}

	h.cache.Invalidate(r.Context())
	slog.Info("testimonial created", "testimonial_id", id, "created_by", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectTestimonials, "Testimonial created successfully")
}

// EditForm handles GET /admin/testimonials/{id}.
func (h *TestimonialsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectTestimonials, "Invalid testimonial ID")
		return
	}

	testimonial, ok := requireEntityWithRedirect(w, r, h.renderer, redirectTestimonials, "testimonial", id,
		func(id int64) (model.Testimonial, error) { return h.queries.GetTestimonialByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, TestimonialFormData{
		Testimonial: &testimonial,
		Errors:      make(map[string]string),
		FormValues:  testimonialFormValues(&testimonial),
		IsEdit:      true,
	})
}

// Update handles POST /admin/testimonials/{id}.
func (h *TestimonialsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectTestimonials, "Invalid testimonial ID")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectTestimonials) {
		return
	}

	testimonial, ok := requireEntityWithRedirect(w, r, h.renderer, redirectTestimonials, "testimonial", id,
		func(id int64) (model.Testimonial, error) { return h.queries.GetTestimonialByID(r.Context(), id) })
	if !ok {
		return
	}

	values, rating, errs := h.testimonialForm(r)

	order := testimonial.DisplayOrder
	if values["display_order"] != "" {
		order, err = displayOrderOrDefault(r.Context(), values["display_order"], h.queries.CountTestimonials)
		if err != nil {
			errs["display_order"] = "Display order must be a non-negative number"
		}
	}

	if len(errs) > 0 {
		h.renderForm(w, r, TestimonialFormData{
			Testimonial: &testimonial,
			Errors:      errs,
			FormValues:  values,
			IsEdit:      true,
		})
		return
	}

	if err := h.queries.UpdateTestimonial(r.Context(), store.UpdateTestimonialParams{
		ID:             id,
		ClientName:     values["client_name"],
		ClientRole:     values["client_role"],
		ClientCompany:  values["client_company"],
		ClientImageURL: values["client_image_url"],
		Content:        values["content"],
		Rating:         rating,
		IsFeatured:     values["is_featured"] == "on",
		DisplayOrder:   order,
	}); err != nil {
		slog.Error("failed to update testimonial", "error", err, "testimonial_id", id)
		flashError(w, r, h.renderer, redirectTestimonials, "Error updating testimonial")
		return
	}

	h.cache.Invalidate(r.Context())
	slog.Info("testimonial updated", "testimonial_id", id, "updated_by", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectTestimonials, "Testimonial updated successfully")
}

// Delete handles POST /admin/testimonials/{id}/delete.
func (h *TestimonialsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectTestimonials, "Invalid testimonial ID")
		return
	}

	if _, ok := requireEntityWithRedirect(w, r, h.renderer, redirectTestimonials, "testimonial", id,
		func(id int64) (model.Testimonial, error) { return h.queries.GetTestimonialByID(r.Context(), id) }); !ok {
		return
	}

	if err := h.queries.DeleteTestimonial(r.Context(), id); err != nil {
		slog.Error("failed to delete testimonial", "error", err, "testimonial_id", id)
		flashError(w, r, h.renderer, redirectTestimonials, "Error deleting testimonial")
		return
	}

	h.cache.Invalidate(r.Context())
	slog.Info("testimonial deleted", "testimonial_id", id, "deleted_by", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectTestimonials, "Testimonial deleted successfully")
}
