// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/visionlife/agency-go/internal/store"
)

func newServicesHandler(t *testing.T) (*ServicesHandler, *store.Queries, *scs.SessionManager) {
	t.Helper()
	db := testDB(t)
	sm := testSessionManager(t)
	return NewServicesHandler(db, testRenderer(t, sm), testContentCache(t)), store.New(db), sm
}

func TestServiceCreateNormalizesFeatures(t *testing.T) {
	h, queries, sm := newServicesHandler(t)

	req := formRequest("/admin/services", url.Values{
		"title":       {"Brand Identity"},
		"description": {"Logos and guidelines."},
		"features":    {"Logo design\n\n  Brand guidelines  \nStationery\n"},
		"is_active":   {"on"},
	})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Create), req)

	assertRedirect(t, rec, "/admin/services")

	services, err := queries.ListServices(t.Context())
	if err != nil {
		t.Fatalf("failed to list services: %v", err)
	}
	if len(services) != 1 {
		t.Fatalf("got %d services, want 1", len(services))
	}
	s := services[0]
	if s.Features != "Logo design\nBrand guidelines\nStationery" {
		t.Errorf("features = %q; blank lines and padding should be stripped", s.Features)
	}
	got := s.FeatureList()
	if len(got) != 3 || got[1] != "Brand guidelines" {
		t.Errorf("FeatureList() = %v", got)
	}
}

func TestServiceCreateTitleOnly(t *testing.T) {
	h, queries, sm := newServicesHandler(t)

	req := formRequest("/admin/services", url.Values{"title": {"Consulting"}})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Create), req)

	assertRedirect(t, rec, "/admin/services")

	services, err := queries.ListServices(t.Context())
	if err != nil {
		t.Fatalf("failed to list services: %v", err)
	}
	if len(services) != 1 || services[0].Description != "" {
		t.Errorf("services = %+v; want one row with empty optional fields", services)
	}
}

func TestServiceCreateRequiresTitle(t *testing.T) {
	h, queries, sm := newServicesHandler(t)

	req := formRequest("/admin/services", url.Values{
		"title":       {"  "},
		"description": {"Optional copy"},
	})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Create), req)

	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "Title is required") {
		t.Error("form re-render missing title validation error")
	}

	services, err := queries.ListServices(t.Context())
	if err != nil {
		t.Fatalf("failed to list services: %v", err)
	}
	if len(services) != 0 {
		t.Errorf("got %d services, want 0", len(services))
	}
}

func TestServiceUpdateTogglesActive(t *testing.T) {
	h, queries, sm := newServicesHandler(t)

	id, err := queries.CreateService(t.Context(), store.CreateServiceParams{
		Title: "Motion", Description: "Animation work.", IsActive: true,
	})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	idStr := strconv.FormatInt(id, 10)
	req := formRequest("/admin/services/"+idStr, url.Values{
		"title":       {"Motion"},
		"description": {"Animation work."},
	})
	req = requestWithURLParams(req, map[string]string{"id": idStr})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Update), req)

	assertRedirect(t, rec, "/admin/services")

	s, err := queries.GetServiceByID(t.Context(), id)
	if err != nil {
		t.Fatalf("failed to get service: %v", err)
	}
	if s.IsActive {
		t.Error("is_active = true; unchecked box should deactivate")
	}
}

func TestServiceDeleteMissing(t *testing.T) {
	h, _, sm := newServicesHandler(t)

	req := formRequest("/admin/services/999/delete", url.Values{})
	req = requestWithURLParams(req, map[string]string{"id": "999"})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Delete), req)

	assertRedirect(t, rec, "/admin/services")
	flash, flashType := sessionFlash(t, sm, rec)
	if flashType != "error" || !strings.Contains(flash, "not found") {
		t.Errorf("flash = %q (%s); want service not found error", flash, flashType)
	}
}
