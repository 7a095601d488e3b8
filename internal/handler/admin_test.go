// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package handler

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/visionlife/agency-go/internal/store"
)

func TestDashboardCounts(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewAdminHandler(db, testRenderer(t, sm))
	queries := store.New(db)

	for _, title := range []string{"One", "Two"} {
		if _, err := queries.CreateProject(t.Context(), store.CreateProjectParams{
			Title: title, Description: "d",
		}); err != nil {
			t.Fatalf("failed to seed project: %v", err)
		}
	}
	if _, err := queries.CreateContactInquiry(t.Context(), store.CreateContactInquiryParams{
		Name: "Dana", Email: "dana@example.com", Message: "hello",
	}); err != nil {
		t.Fatalf("failed to seed inquiry: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Dashboard), req)

	assertStatus(t, rec.Code, http.StatusOK)
	body := rec.Body.String()
	if !strings.Contains(body, "Projects") || !strings.Contains(body, "Unread Inquiries") {
		t.Error("dashboard sections missing")
	}
}

func TestInquiriesMarkReadAndDelete(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewInquiriesHandler(db, testRenderer(t, sm))
	queries := store.New(db)

	id, err := queries.CreateContactInquiry(t.Context(), store.CreateContactInquiryParams{
		Name: "Dana", Email: "dana@example.com", Message: "hello",
	})
	if err != nil {
		t.Fatalf("failed to seed inquiry: %v", err)
	}
	idStr := strconv.FormatInt(id, 10)

	markReq := requestWithURLParams(
		httptest.NewRequest(http.MethodPost, "/admin/inquiries/"+idStr+"/read", nil),
		map[string]string{"id": idStr})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.MarkRead), markReq)
	assertRedirect(t, rec, "/admin/inquiries")

	inq, err := queries.GetContactInquiryByID(t.Context(), id)
	if err != nil {
		t.Fatalf("failed to reload inquiry: %v", err)
	}
	if !inq.IsRead {
		t.Error("inquiry still unread after MarkRead")
	}

	delReq := requestWithURLParams(
		httptest.NewRequest(http.MethodPost, "/admin/inquiries/"+idStr+"/delete", nil),
		map[string]string{"id": idStr})
	rec = serveWithSession(t, sm, 0, http.HandlerFunc(h.Delete), delReq)
	assertRedirect(t, rec, "/admin/inquiries")

	if _, err := queries.GetContactInquiryByID(t.Context(), id); err == nil {
		t.Error("inquiry still present after delete")
	}
}
