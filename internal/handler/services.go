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
	"github.com/visionlife/agency-go/internal/util"
)

// ServicesHandler handles service management routes.
type ServicesHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	cache    *cache.ContentCache
}

// NewServicesHandler creates a new ServicesHandler.
func NewServicesHandler(db *sql.DB, renderer *render.Renderer, cc *cache.ContentCache) *ServicesHandler {
	return &ServicesHandler{queries: store.New(db), renderer: renderer, cache: cc}
}

// ServicesListData holds data for the services list template.
type ServicesListData struct {
	Services []model.Service
}

// ServiceFormData holds data for the service form template.
type ServiceFormData struct {
	Service    *model.Service
	Errors     map[string]string
	FormValues map[string]string
	IsEdit     bool
}

// List handles GET /admin/services.
func (h *ServicesHandler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.queries.ListServices(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list services", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/services_list", render.TemplateData{
		Title: "Services",
		Data:  ServicesListData{Services: services},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// NewForm handles GET /admin/services/new.
func (h *ServicesHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, ServiceFormData{
		Errors:     make(map[string]string),
		FormValues: map[string]string{"is_active": "on"},
	})
}

func (h *ServicesHandler) renderForm(w http.ResponseWriter, r *http.Request, data ServiceFormData) {
	title := "New Service"
	if data.IsEdit {
		title = "Edit Service"
	}
	if err := h.renderer.Render(w, r, "admin/services_form", render.TemplateData{
		Title: title,
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// serviceForm extracts and validates the service form. The features
// textarea is normalized: one feature per line, blank lines discarded.
func serviceFormValues(svc *model.Service) map[string]string {
	values := map[string]string{
		"title":         svc.Title,
		"description":   svc.Description,
		"icon":          svc.Icon,
		"features":      svc.Features,
		"price_range":   svc.PriceRange,
		"display_order": strconv.FormatInt(svc.DisplayOrder, 10),
	}
	if svc.IsActive {
		values["is_active"] = "on"
	}
	return values
}

func (h *ServicesHandler) serviceForm(r *http.Request) (map[string]string, map[string]string) {
	values := map[string]string{
		"title":         strings.TrimSpace(r.FormValue("title")),
		"description":   strings.TrimSpace(r.FormValue("description")),
		"icon":          strings.TrimSpace(r.FormValue("icon")),
		"features":      strings.Join(util.SplitFeatures(r.FormValue("features")), "\n"),
		"price_range":   strings.TrimSpace(r.FormValue("price_range")),
		"display_order": strings.TrimSpace(r.FormValue("display_order")),
	}
	if formBool(r, "is_active") {
		values["is_active"] = "on"
	}

	errs := make(map[string]string)
	if values["title"] == "" {
		errs["title"] = "Title is required"
	}
	return values, errs
}

// Create handles POST /admin/services.
func (h *ServicesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectServices+RouteSuffixNew) {
		return
	}

	values, errs := h.serviceForm(r)

	order, err := displayOrderOrDefault(r.Context(), values["display_order"], h.queries.CountServices)
	if err != nil {
		errs["display_order"] = "Display order must be a non-negative number"
	}

	if len(errs) > 0 {
		h.renderForm(w, r, ServiceFormData{Errors: errs, FormValues: values})
		return
	}

	id, err := h.queries.CreateService(r.Context(), store.CreateServiceParams{
		Title:        values["title"],
		Description:  values["description"],
		Icon:         values["icon"],
		Features:     values["features"],
		PriceRange:   values["price_range"],
		IsActive:     values["is_active"] == "on",
		DisplayOrder: order,
	})
	if err != nil {
		slog.Error("failed to create service", "error", err)
		flashError(w, r, h.renderer, redirectServices+RouteSuffixNew, "Error creating service")
		return
	}

	h.cache.Invalidate(r.Context())
	slog.Info("service created", "service_id", id, "created_by", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectServices, "Service created successfully")
}

// EditForm handles GET /admin/services/{id}.
func (h *ServicesHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectServices, "Invalid service ID")
		return
	}

	service, ok := requireEntityWithRedirect(w, r, h.renderer, redirectServices, "service", id,
		func(id int64) (model.Service, error) { return h.queries.GetServiceByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, ServiceFormData{
		Service:    &service,
		Errors:     make(map[string]string),
		FormValues: serviceFormValues(&service),
		IsEdit:     true,
	})
}

// Update handles POST /admin/services/{id}.
func (h *ServicesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectServices, "Invalid service ID")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectServices) {
		return
	}

	service, ok := requireEntityWithRedirect(w, r, h.renderer, redirectServices, "service", id,
		func(id int64) (model.Service, error) { return h.queries.GetServiceByID(r.Context(), id) })
	if !ok {
		return
	}

	values, errs := h.serviceForm(r)

	order := service.DisplayOrder
	if values["display_order"] != "" {
		order, err = displayOrderOrDefault(r.Context(), values["display_order"], h.queries.CountServices)
		if err != nil {
			errs["display_order"] = "Display order must be a non-negative number"
		}
	}

	if len(errs) > 0 {
		h.renderForm(w, r, ServiceFormData{
			Service:    &service,
			Errors:     errs,
			FormValues: values,
			IsEdit:     true,
		})
		return
	}

	if err := h.queries.UpdateService(r.Context(), store.UpdateServiceParams{
		ID:           id,
		Title:        values["title"],
		Description:  values["description"],
		Icon:         values["icon"],
		Features:     values["features"],
		PriceRange:   values["price_range"],
		IsActive:     values["is_active"] == "on",
		DisplayOrder: order,
	}); err != nil {
		slog.Error("failed to update service", "error", err, "service_id", id)
		flashError(w, r, h.renderer, redirectServices, "Error updating service")
		return
	}

	h.cache.Invalidate(r.Context())
	slog.Info("service updated", "service_id", id, "updated_by", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectServices, "Service updated successfully")
}

// Delete handles POST /admin/services/{id}/delete.
func (h *ServicesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectServices, "Invalid service ID")
		return
	}

	if _, ok := requireEntityWithRedirect(w, r, h.renderer, redirectServices, "service", id,
		func(id int64) (model.Service, error) { return h.queries.GetServiceByID(r.Context(), id) }); !ok {
		return
	}

	if err := h.queries.DeleteService(r.Context(), id); err != nil {
		slog.Error("failed to delete service", "error", err, "service_id", id)
		flashError(w, r, h.renderer, redirectServices, "Error deleting service")
		return
	}

	h.cache.Invalidate(r.Context())
	slog.Info("service deleted", "service_id", id, "deleted_by", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectServices, "Service deleted successfully")
}
