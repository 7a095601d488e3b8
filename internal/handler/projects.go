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

// ProjectsHandler handles portfolio project management routes.
type ProjectsHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	cache    *cache.ContentCache
}

// NewProjectsHandler creates a new ProjectsHandler.
func NewProjectsHandler(db *sql.DB, renderer *render.Renderer, cc *cache.ContentCache) *ProjectsHandler {
	return &ProjectsHandler{queries: store.New(db), renderer: renderer, cache: cc}
}

// ProjectsListData holds data for the projects list template.
type ProjectsListData struct {
	Projects []model.Project
}

// ProjectFormData holds data for the project form template.
type ProjectFormData struct {
	Project    *model.Project
	Categories []string
	Errors     map[string]string
	FormValues map[string]string
	IsEdit     bool
}

// List handles GET /admin/projects.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.queries.ListProjects(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list projects", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/projects_list", render.TemplateData{
		Title: "Projects",
		Data:  ProjectsListData{Projects: projects},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// NewForm handles GET /admin/projects/new.
func (h *ProjectsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	data := ProjectFormData{
		Categories: model.ProjectCategories,
		Errors:     make(map[string]string),
		FormValues: make(map[string]string),
	}

	if err := h.renderer.Render(w, r, "admin/projects_form", render.TemplateData{
		Title: "New Project",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// projectForm extracts and validates the project form. Returns the
// collected values and a map of field errors.
func projectFormValues(p *model.Project) map[string]string {
	values := map[string]string{
		"title":         p.Title,
		"description":   p.Description,
		"category":      p.Category,
		"image_url":     p.ImageURL,
		"client_name":   p.ClientName,
		"project_date":  p.ProjectDate,
		"display_order": strconv.FormatInt(p.DisplayOrder, 10),
	}
	if p.IsFeatured {
		values["is_featured"] = "on"
	}
	return values
}

func (h *ProjectsHandler) projectForm(r *http.Request) (map[string]string, map[string]string) {
	values := map[string]string{
		"title":         strings.TrimSpace(r.FormValue("title")),
		"description":   strings.TrimSpace(r.FormValue("description")),
		"category":      r.FormValue("category"),
		"image_url":     strings.TrimSpace(r.FormValue("image_url")),
		"client_name":   strings.TrimSpace(r.FormValue("client_name")),
		"project_date":  strings.TrimSpace(r.FormValue("project_date")),
		"display_order": strings.TrimSpace(r.FormValue("display_order")),
	}
	if formBool(r, "is_featured") {
		values["is_featured"] = "on"
	}

	errs := make(map[string]string)
	if values["title"] == "" {
		errs["title"] = "Title is required"
	}
	if !model.IsValidCategory(values["category"]) {
		errs["category"] = "Invalid category"
	}
	return values, errs
}

// Create handles POST /admin/projects.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectProjects+RouteSuffixNew) {
		return
	}

	values, errs := h.projectForm(r)

	order, err := displayOrderOrDefault(r.Context(), values["display_order"], h.queries.CountProjects)
	if err != nil {
		errs["display_order"] = "Display order must be a non-negative number"
	}

	if len(errs) > 0 {
		data := ProjectFormData{
			Categories: model.ProjectCategories,
			Errors:     errs,
			FormValues: values,
		}
		if err := h.renderer.Render(w, r, "admin/projects_form", render.TemplateData{
			Title: "New Project",
			Data:  data,
		}); err != nil {
			logAndInternalError(w, "render error", "error", err)
		}
		return
	}

	id, err := h.queries.CreateProject(r.Context(), store.CreateProjectParams{
		Title:        values["title"],
		Description:  values["description"],
		Category:     values["category"],
		ImageURL:     values["image_url"],
		ClientName:   values["client_name"],
		ProjectDate:  values["project_date"],
		IsFeatured:   values["is_featured"] == "on",
		DisplayOrder: order,
	})
	if err != nil {
		slog.Error("failed to create project", "error", err)
		flashError(w, r, h.renderer, redirectProjects+RouteSuffixNew, "Error creating project")
		return
	}

	h.cache.Invalidate(r.Context())
	slog.Info("project created", "project_id", id, "created_by", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectProjects, "Project created successfully")
}

// EditForm handles GET /admin/projects/{id}.
func (h *ProjectsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectProjects, "Invalid project ID")
		return
	}

	project, ok := requireEntityWithRedirect(w, r, h.renderer, redirectProjects, "project", id,
		func(id int64) (model.Project, error) { return h.queries.GetProjectByID(r.Context(), id) })
	if !ok {
		return
	}

	data := ProjectFormData{
		Project:    &project,
		Categories: model.ProjectCategories,
		Errors:     make(map[string]string),
		FormValues: projectFormValues(&project),
		IsEdit:     true,
	}
	if err := h.renderer.Render(w, r, "admin/projects_form", render.TemplateData{
		Title: "Edit Project",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// Update handles POST /admin/projects/{id}.
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectProjects, "Invalid project ID")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectProjects) {
		return
	}

	project, ok := requireEntityWithRedirect(w, r, h.renderer, redirectProjects, "project", id,
		func(id int64) (model.Project, error) { return h.queries.GetProjectByID(r.Context(), id) })
	if !ok {
		return
	}

	values, errs := h.projectForm(r)

	order := project.DisplayOrder
	if values["display_order"] != "" {
		order, err = displayOrderOrDefault(r.Context(), values["display_order"], h.queries.CountProjects)
		if err != nil {
			errs["display_order"] = "Display order must be a non-negative number"
		}
	}

	if len(errs) > 0 {
		data := ProjectFormData{
			Project:    &project,
			Categories: model.ProjectCategories,
			Errors:     errs,
			FormValues: values,
			IsEdit:     true,
		}
		if err := h.renderer.Render(w, r, "admin/projects_form", render.TemplateData{
			Title: "Edit Project",
			Data:  data,
		}); err != nil {
			logAndInternalError(w, "render error", "error", err)
		}
		return
	}

	if err := h.queries.UpdateProject(r.Context(), store.UpdateProjectParams{
		ID:           id,
		Title:        values["title"],
		Description:  values["description"],
		Category:     values["category"],
		ImageURL:     values["image_url"],
		ClientName:   values["client_name"],
		ProjectDate:  values["project_date"],
		IsFeatured:   values["is_featured"] == "on",
		DisplayOrder: order,
	}); err != nil {
		slog.Error("failed to update project", "error", err, "project_id", id)
		flashError(w, r, h.renderer, redirectProjects, "Error updating project")
		return
	}

	h.cache.Invalidate(r.Context())
	slog.Info("project updated", "project_id", id, "updated_by", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectProjects, "Project updated successfully")
}

// Delete handles POST /admin/projects/{id}/delete.
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectProjects, "Invalid project ID")
		return
	}

	if _, ok := requireEntityWithRedirect(w, r, h.renderer, redirectProjects, "project", id,
		func(id int64) (model.Project, error) { return h.queries.GetProjectByID(r.Context(), id) }); !ok {
		return
	}

	if err := h.queries.DeleteProject(r.Context(), id); err != nil {
		slog.Error("failed to delete project", "error", err, "project_id", id)
		flashError(w, r, h.renderer, redirectProjects, "Error deleting project")
		return
	}

	h.cache.Invalidate(r.Context())
	slog.Info("project deleted", "project_id", id, "deleted_by", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectProjects, "Project deleted successfully")
}
