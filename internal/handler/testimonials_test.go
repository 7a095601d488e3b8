// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/visionlife/agency-go/internal/store"
)

func newTestimonialsHandler(t *testing.T) (*TestimonialsHandler, *store.Queries, *scs.SessionManager) {
	t.Helper()
	db := testDB(t)
	sm := testSessionManager(t)
	return NewTestimonialsHandler(db, testRenderer(t, sm), testContentCache(t)), store.New(db), sm
}

func TestTestimonialCreate(t *testing.T) {
	h, queries, sm := newTestimonialsHandler(t)

	req := formRequest("/admin/testimonials", url.Values{
		"client_name":    {"Dana Reeve"},
		"client_role":    {"CMO"},
		"client_company": {"Northwind"},
		"content":        {"They nailed our rebrand."},
		"rating":         {"4"},
		"is_featured":    {"on"},
	})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Create), req)

	assertRedirect(t, rec, "/admin/testimonials")

	testimonials, err := queries.ListTestimonials(t.Context())
	if err != nil {
		t.Fatalf("failed to list testimonials: %v", err)
	}
	if len(testimonials) != 1 {
		t.Fatalf("got %d testimonials, want 1", len(testimonials))
	}
	tm := testimonials[0]
	if tm.ClientName != "Dana Reeve" || tm.ClientRole != "CMO" || tm.Rating != 4 || !tm.IsFeatured {
		t.Errorf("created testimonial = %+v; fields not persisted", tm)
	}
}

func TestTestimonialCreateDefaultsRating(t *testing.T) {
	h, queries, sm := newTestimonialsHandler(t)

	req := formRequest("/admin/testimonials", url.Values{
		"client_name": {"Quiet Client"},
		"content":     {"Great work."},
	})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Create), req)

	assertRedirect(t, rec, "/admin/testimonials")

	testimonials, err := queries.ListTestimonials(t.Context())
	if err != nil {
		t.Fatalf("failed to list testimonials: %v", err)
	}
	if len(testimonials) != 1 || testimonials[0].Rating != 5 {
		t.Fatalf("testimonials = %+v; want one with default rating 5", testimonials)
	}
}

func TestTestimonialCreateRejectsBadRating(t *testing.T) {
	h, queries, sm := newTestimonialsHandler(t)

	for _, rating := range []string{"0", "6", "lots"} {
		req := formRequest("/admin/testimonials", url.Values{
			"client_name": {"Picky"},
			"content":     {"..."},
			"rating":      {rating},
		})
		rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Create), req)

		assertStatus(t, rec.Code, http.StatusOK)
		if !strings.Contains(rec.Body.String(), "Rating must be between 1 and 5") {
			t.Errorf("rating %q: form re-render missing rating error", rating)
		}
	}

	testimonials, err := queries.ListTestimonials(t.Context())
	if err != nil {
		t.Fatalf("failed to list testimonials: %v", err)
	}
	if len(testimonials) != 0 {
		t.Errorf("got %d testimonials, want 0 after invalid submissions", len(testimonials))
	}
}

func TestTestimonialUpdate(t *testing.T) {
	h, queries, sm := newTestimonialsHandler(t)

	id, err := queries.CreateTestimonial(t.Context(), store.CreateTestimonialParams{
		ClientName: "Before", Content: "Old words", Rating: 3, IsFeatured: true,
	})
	if err != nil {
		t.Fatalf("failed to create testimonial: %v", err)
	}

	idStr := strconv.FormatInt(id, 10)
	req := formRequest("/admin/testimonials/"+idStr, url.Values{
		"client_name": {"After"},
		"content":     {"New words"},
		"rating":      {"5"},
	})
	req = requestWithURLParams(req, map[string]string{"id": idStr})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Update), req)

	assertRedirect(t, rec, "/admin/testimonials")

	tm, err := queries.GetTestimonialByID(t.Context(), id)
	if err != nil {
		t.Fatalf("failed to get testimonial: %v", err)
	}
	if tm.ClientName != "After" || tm.Rating != 5 {
		t.Errorf("updated testimonial = %+v", tm)
	}
	if tm.IsFeatured {
		t.Error("is_featured = true; unchecked box should unfeature")
	}
}

func TestTestimonialEditFormPrefills(t *testing.T) {
	h, queries, sm := newTestimonialsHandler(t)

	id, err := queries.CreateTestimonial(t.Context(), store.CreateTestimonialParams{
		ClientName: "Maya Chen", ClientRole: "CMO", ClientCompany: "Aurora Labs",
		Content: "The rebrand landed.", Rating: 4, IsFeatured: true,
	})
	if err != nil {
		t.Fatalf("failed to create testimonial: %v", err)
	}

	idStr := strconv.FormatInt(id, 10)
	req := httptest.NewRequest(http.MethodGet, "/admin/testimonials/"+idStr, nil)
	req = requestWithURLParams(req, map[string]string{"id": idStr})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.EditForm), req)

	assertStatus(t, rec.Code, http.StatusOK)
	body := rec.Body.String()
	for _, want := range []string{"Maya Chen", "CMO", "Aurora Labs", `name="is_featured" checked`} {
		if !strings.Contains(body, want) {
			t.Errorf("edit form missing %q", want)
		}
	}
}

func TestTestimonialDelete(t *testing.T) {
	h, queries, sm := newTestimonialsHandler(t)

	id, err := queries.CreateTestimonial(t.Context(), store.CreateTestimonialParams{
		ClientName: "Gone", Content: "Soon deleted", Rating: 5,
	})
	if err != nil {
		t.Fatalf("failed to create testimonial: %v", err)
	}

	idStr := strconv.FormatInt(id, 10)
	req := formRequest("/admin/testimonials/"+idStr+"/delete", url.Values{})
	req = requestWithURLParams(req, map[string]string{"id": idStr})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Delete), req)

	assertRedirect(t, rec, "/admin/testimonials")

	if _, err := queries.GetTestimonialByID(t.Context(), id); err == nil {
		t.Error("testimonial still present after delete")
	}
}
