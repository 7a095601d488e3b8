// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/visionlife/agency-go/internal/middleware"
	"github.com/visionlife/agency-go/internal/model"
	"github.com/visionlife/agency-go/internal/render"
	"github.com/visionlife/agency-go/internal/store"
)

// InquiriesHandler handles contact inquiry management routes. Inquiries
// arrive through the public contact form and are read-only in the admin
// panel apart from read-flagging and deletion.
type InquiriesHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewInquiriesHandler creates a new InquiriesHandler.
func NewInquiriesHandler(db *sql.DB, renderer *render.Renderer) *InquiriesHandler {
	return &InquiriesHandler{queries: store.New(db), renderer: renderer}
}

// InquiriesListData holds data for the inquiries list template.
type InquiriesListData struct {
	Inquiries []model.ContactInquiry
}

// List handles GET /admin/inquiries.
func (h *InquiriesHandler) List(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.queries.ListContactInquiries(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list inquiries", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/inquiries_list", render.TemplateData{
		Title: "Inquiries",
		Data:  InquiriesListData{Inquiries: inquiries},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// MarkRead handles POST /admin/inquiries/{id}/read.
func (h *InquiriesHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectInquiries, "Invalid inquiry ID")
		return
	}

	if _, ok := requireEntityWithRedirect(w, r, h.renderer, redirectInquiries, "inquiry", id,
		func(id int64) (model.ContactInquiry, error) { return h.queries.GetContactInquiryByID(r.Context(), id) }); !ok {
		return
	}

	if err := h.queries.MarkContactInquiryRead(r.Context(), id); err != nil {
		slog.Error("failed to mark inquiry read", "error", err, "inquiry_id", id)
		flashError(w, r, h.renderer, redirectInquiries, "Error updating inquiry")
		return
	}
	flashSuccess(w, r, h.renderer, redirectInquiries, "Inquiry marked as read")
}

// Delete handles POST /admin/inquiries/{id}/delete.
func (h *InquiriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectInquiries, "Invalid inquiry ID")
		return
	}

	if _, ok := requireEntityWithRedirect(w, r, h.renderer, redirectInquiries, "inquiry", id,
		func(id int64) (model.ContactInquiry, error) { return h.queries.GetContactInquiryByID(r.Context(), id) }); !ok {
		return
	}

	if err := h.queries.DeleteContactInquiry(r.Context(), id); err != nil {
		slog.Error("failed to delete inquiry", "error", err, "inquiry_id", id)
		flashError(w, r, h.renderer, redirectInquiries, "Error deleting inquiry")
		return
	}

	slog.Info("inquiry deleted", "inquiry_id", id, "deleted_by", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectInquiries, "Inquiry deleted successfully")
}
