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

func newStatsHandler(t *testing.T) (*StatsHandler, *store.Queries, *scs.SessionManager) {
	t.Helper()
	db := testDB(t)
	sm := testSessionManager(t)
	return NewStatsHandler(db, testRenderer(t, sm), testContentCache(t)), store.New(db), sm
}

func TestStatCreateNormalizesKey(t *testing.T) {
	h, queries, sm := newStatsHandler(t)

	req := formRequest("/admin/stats", url.Values{
		"stat_key":   {"  Years   Experience "},
		"stat_value": {"12"},
		"label":      {"Years of Experience"},
		"suffix":     {"+"},
	})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Create), req)

	assertRedirect(t, rec, "/admin/stats")

	stats, err := queries.ListSiteStats(t.Context())
	if err != nil {
		t.Fatalf("failed to list stats: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("got %d stats, want 1", len(stats))
	}
	if stats[0].StatKey != "years_experience" {
		t.Errorf("stat key = %q; want normalized years_experience", stats[0].StatKey)
	}
}

func TestStatCreateDuplicateKey(t *testing.T) {
	h, queries, sm := newStatsHandler(t)

	if _, err := queries.CreateSiteStat(t.Context(), store.CreateSiteStatParams{
		StatKey: "happy_clients", StatValue: "40", Label: "Happy Clients",
	}); err != nil {
		t.Fatalf("failed to seed stat: %v", err)
	}

	// Differently-cased input normalizes onto the existing key.
	req := formRequest("/admin/stats", url.Values{
		"stat_key":   {"Happy Clients"},
		"stat_value": {"50"},
		"label":      {"Happy Clients"},
	})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Create), req)

	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "A stat with this key already exists") {
		t.Error("conflict message missing from re-rendered form")
	}
}

func TestStatCreateDefaultsDisplayOrder(t *testing.T) {
	h, queries, sm := newStatsHandler(t)

	for i, key := range []string{"one", "two", "three"} {
		req := formRequest("/admin/stats", url.Values{
			"stat_key":   {key},
			"stat_value": {"1"},
			"label":      {"Label"},
		})
		rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Create), req)
		assertRedirect(t, rec, "/admin/stats")

		stats, err := queries.ListSiteStats(t.Context())
		if err != nil {
			t.Fatalf("failed to list stats: %v", err)
		}
		var created *int64
		for _, s := range stats {
			if s.StatKey == key {
				order := s.DisplayOrder
				created = &order
			}
		}
		if created == nil {
			t.Fatalf("stat %q not created", key)
		}
		if *created != int64(i) {
			t.Errorf("stat %q display order = %d; want %d (appended to end)", key, *created, i)
		}
	}
}

func TestStatUpdateExcludesOwnKey(t *testing.T) {
	h, queries, sm := newStatsHandler(t)

	id, err := queries.CreateSiteStat(t.Context(), store.CreateSiteStatParams{
		StatKey: "projects_completed", StatValue: "120", Label: "Projects",
	})
	if err != nil {
		t.Fatalf("failed to seed stat: %v", err)
	}
	idStr := strconv.FormatInt(id, 10)

	// Saving under its own key is not a conflict.
	req := requestWithURLParams(formRequest("/admin/stats/"+idStr, url.Values{
		"stat_key":   {"projects_completed"},
		"stat_value": {"150"},
		"label":      {"Projects Completed"},
	}), map[string]string{"id": idStr})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Update), req)

	assertRedirect(t, rec, "/admin/stats")

	stat, err := queries.GetSiteStatByID(t.Context(), id)
	if err != nil {
		t.Fatalf("failed to reload stat: %v", err)
	}
	if stat.StatValue != "150" {
		t.Errorf("stat value = %q; want 150", stat.StatValue)
	}
}

func TestStatUpdateConflictsWithOtherKey(t *testing.T) {
	h, queries, sm := newStatsHandler(t)

	if _, err := queries.CreateSiteStat(t.Context(), store.CreateSiteStatParams{
		StatKey: "first", StatValue: "1", Label: "First",
	}); err != nil {
		t.Fatalf("failed to seed stat: %v", err)
	}
	id, err := queries.CreateSiteStat(t.Context(), store.CreateSiteStatParams{
		StatKey: "second", StatValue: "2", Label: "Second", DisplayOrder: 1,
	})
	if err != nil {
		t.Fatalf("failed to seed stat: %v", err)
	}
	idStr := strconv.FormatInt(id, 10)

	req := requestWithURLParams(formRequest("/admin/stats/"+idStr, url.Values{
		"stat_key":   {"first"},
		"stat_value": {"2"},
		"label":      {"Second"},
	}), map[string]string{"id": idStr})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Update), req)

	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "A stat with this key already exists") {
		t.Error("conflict message missing from re-rendered form")
	}
}
