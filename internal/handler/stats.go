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

// StatsHandler handles site statistics management routes.
type StatsHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	cache    *cache.ContentCache
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(db *sql.DB, renderer *render.Renderer, cc *cache.ContentCache) *StatsHandler {
	return &StatsHandler{queries: store.New(db), renderer: renderer, cache: cc}
}

// StatsListData holds data for the stats list template.
type StatsListData struct {
	Stats []model.SiteStat
}

// StatFormData holds data for the stat form template.
type StatFormData struct {
	Stat       *model.SiteStat
	Errors     map[string]string
	FormValues map[string]string
	IsEdit     bool
}

// List handles GET /admin/stats.
func (h *StatsHandler) List(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queries.ListSiteStats(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list stats", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/stats_list", render.TemplateData{
		Title: "Site Stats",
		Data:  StatsListData{Stats: stats},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// NewForm handles GET /admin/stats/new.
func (h *StatsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, StatFormData{
		Errors:     make(map[string]string),
		FormValues: make(map[string]string),
	})
}

func (h *StatsHandler) renderForm(w http.ResponseWriter, r *http.Request, data StatFormData) {
	title := "New Stat"
	if data.IsEdit {
		title = "Edit Stat"
	}
	if err := h.renderer.Render(w, r, "admin/stats_form", render.TemplateData{
		Title: title,
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// statForm extracts and validates the stat form. The key is normalized
// at submission: lowercased, whitespace runs become underscores.
func statFormValues(st *model.SiteStat) map[string]string {
	return map[string]string{
		"stat_key":      st.StatKey,
		"stat_value":    st.StatValue,
		"label":         st.Label,
		"suffix":        st.Suffix,
		"display_order": strconv.FormatInt(st.DisplayOrder, 10),
	}
}

func (h *StatsHandler) statForm(r *http.Request) (map[string]string, map[string]string) {
	values := map[string]string{
		"stat_key":      util.NormalizeStatKey(r.FormValue("stat_key")),
		"stat_value":    strings.TrimSpace(r.FormValue("stat_value")),
		"label":         strings.TrimSpace(r.FormValue("label")),
		"suffix":        strings.TrimSpace(r.FormValue("suffix")),
		"display_order": strings.TrimSpace(r.FormValue("display_order")),
	}

	errs := make(map[string]string)
	if values["stat_key"] == "" {
		errs["stat_key"] = "Key is required"
	}
	if values["stat_value"] == "" {
		errs["stat_value"] = "Value is required"
	}
	if values["label"] == "" {
		errs["label"] = "Label is required"
	}
	return values, errs
}

// Create handles POST /admin/stats.
func (h *StatsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectStats+RouteSuffixNew) {
		return
	}

	values, errs := h.statForm(r)

	order, err := displayOrderOrDefault(r.Context(), values["display_order"], h.queries.CountSiteStats)
	if err != nil {
		errs["display_order"] = "Display order must be a non-negative number"
	}

	if len(errs) == 0 {
		if exists, err := h.queries.SiteStatKeyExists(r.Context(), values["stat_key"], 0); err != nil {
			slog.Error("database error checking stat key", "error", err)
			errs["stat_key"] = "Error checking key"
		} else if exists {
			errs["stat_key"] = "A stat with this key already exists"
		}
	}

	if len(errs) > 0 {
		h.renderForm(w, r, StatFormData{Errors: errs, FormValues: values})
		return
	}

	id, err := h.queries.CreateSiteStat(r.Context(), store.CreateSiteStatParams{
		StatKey:      values["stat_key"],
		StatValue:    values["stat_value"],
		Label:        values["label"],
		Suffix:       values["suffix"],
		DisplayOrder: order,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			errs["stat_key"] = "A stat with this key already exists"
			h.renderForm(w, r, StatFormData{Errors: errs, FormValues: values})
			return
		}
		slog.Error("failed to create stat", "error", err)
		flashError(w, r, h.renderer, redirectStats+RouteSuffixNew, "Error creating stat")
		return
	}

	h.cache.Invalidate(r.Context())
	slog.Info("stat created", "stat_id", id, "key", values["stat_key"], "created_by", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectStats, "Stat created successfully")
}

// EditForm handles GET /admin/stats/{id}.
func (h *StatsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectStats, "Invalid stat ID")
		return
	}

	stat, ok := requireEntityWithRedirect(w, r, h.renderer, redirectStats, "stat", id,
		func(id int64) (model.SiteStat, error) { return h.queries.GetSiteStatByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, StatFormData{
		Stat:       &stat,
		Errors:     make(map[string]string),
		FormValues: statFormValues(&stat),
		IsEdit:     true,
	})
}

// Update handles POST /admin/stats/{id}.
func (h *StatsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectStats, "Invalid stat ID")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectStats) {
		return
	}

	stat, ok := requireEntityWithRedirect(w, r, h.renderer, redirectStats, "stat", id,
		func(id int64) (model.SiteStat, error) { return h.queries.GetSiteStatByID(r.Context(), id) })
	if !ok {
		return
	}

	values, errs := h.statForm(r)

	order := stat.DisplayOrder
	if values["display_order"] != "" {
		order, err = displayOrderOrDefault(r.Context(), values["display_order"], h.queries.CountSiteStats)
		if err != nil {
			errs["display_order"] = "Display order must be a non-negative number"
		}
	}

	if len(errs) == 0 {
		if exists, err := h.queries.SiteStatKeyExists(r.Context(), values["stat_key"], id); err != nil {
			slog.Error("database error checking stat key", "error", err)
			errs["stat_key"] = "Error checking key"
		} else if exists {
			errs["stat_key"] = "A stat with this key already exists"
		}
	}

	if len(errs) > 0 {
		h.renderForm(w, r, StatFormData{
			Stat:       &stat,
			Errors:     errs,
			FormValues: values,
			IsEdit:     true,
		})
		return
	}

	if err := h.queries.UpdateSiteStat(r.Context(), store.UpdateSiteStatParams{
		ID:           id,
		StatKey:      values["stat_key"],
		StatValue:    values["stat_value"],
		Label:        values["label"],
		Suffix:       values["suffix"],
		DisplayOrder: order,
	}); err != nil {
		if store.IsUniqueViolation(err) {
			errs["stat_key"] = "A stat with this key already exists"
			h.renderForm(w, r, StatFormData{Stat: &stat, Errors: errs, FormValues: values, IsEdit: true})
			return
		}
		slog.Error("failed to update stat", "error", err, "stat_id", id)
		flashError(w, r, h.renderer, redirectStats, "Error updating stat")
		return
	}

	h.cache.Invalidate(r.Context())
	slog.Info("stat updated", "stat_id", id, "updated_by", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectStats, "Stat updated successfully")
}

// Delete handles POST /admin/stats/{id}/delete.
func (h *StatsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectStats, "Invalid stat ID")
		return
	}

	if _, ok := requireEntityWithRedirect(w, r, h.renderer, redirectStats, "stat", id,
		func(id int64) (model.SiteStat, error) { return h.queries.GetSiteStatByID(r.Context(), id) }); !ok {
		return
	}

	if err := h.queries.DeleteSiteStat(r.Context(), id); err != nil {
		slog.Error("failed to delete stat", "error", err, "stat_id", id)
		flashError(w, r, h.renderer, redirectStats, "Error deleting stat")
		return
	}

	h.cache.Invalidate(r.Context())
	slog.Info("stat deleted", "stat_id", id, "deleted_by", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectStats, "Stat deleted successfully")
}
