// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package handler

import (
	"database/sql"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/visionlife/agency-go/internal/store"
)

func newPostsHandler(t *testing.T) (*PostsHandler, *sql.DB, *store.Queries, *scs.SessionManager) {
	t.Helper()
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewPostsHandler(db, testRenderer(t, sm), testContentCache(t))
	return h, db, store.New(db), sm
}

func TestPostCreateGeneratesSlug(t *testing.T) {
	h, _, queries, sm := newPostsHandler(t)

	req := formRequest("/admin/posts", url.Values{
		"title":   {"Hello, World! Édition"},
		"content": {"Body text."},
	})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Create), req)

	assertRedirect(t, rec, "/admin/posts")

	post, err := queries.GetBlogPostBySlug(t.Context(), "hello-world-edition")
	if err != nil {
		t.Fatalf("post not found under expected slug: %v", err)
	}
	if post.IsPublished {
		t.Error("post created published without is_published field")
	}
	if post.PublishedAt.Valid {
		t.Error("PublishedAt set on a draft")
	}
}

func TestPostCreateTitleOnly(t *testing.T) {
	h, _, queries, sm := newPostsHandler(t)

	req := formRequest("/admin/posts", url.Values{"title": {"Draft Idea"}})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Create), req)

	assertRedirect(t, rec, "/admin/posts")

	post, err := queries.GetBlogPostBySlug(t.Context(), "draft-idea")
	if err != nil {
		t.Fatalf("post not found under expected slug: %v", err)
	}
	if post.Content != "" || post.IsPublished {
		t.Errorf("post = %+v; want an empty draft", post)
	}
}

func TestPostCreateDuplicateSlug(t *testing.T) {
	h, _, queries, sm := newPostsHandler(t)

	if _, err := queries.CreateBlogPost(t.Context(), store.CreateBlogPostParams{
		Title: "My Launch", Slug: "my-launch", Content: "c",
	}); err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}

	req := formRequest("/admin/posts", url.Values{
		"title":   {"My Launch"},
		"content": {"different body"},
	})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Create), req)

	// Re-rendered form, not a redirect.
	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "A post with this slug already exists") {
		t.Error("conflict message missing from re-rendered form")
	}
}

func TestPostCreateTitleWithoutSlugChars(t *testing.T) {
	h, _, _, sm := newPostsHandler(t)

	req := formRequest("/admin/posts", url.Values{
		"title":   {"!!! ???"},
		"content": {"c"},
	})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Create), req)

	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "Title must contain at least one letter or number") {
		t.Error("slug validation message missing from re-rendered form")
	}
}

func TestPostUpdateKeepsSlug(t *testing.T) {
	h, _, queries, sm := newPostsHandler(t)

	id, err := queries.CreateBlogPost(t.Context(), store.CreateBlogPostParams{
		Title: "Original Title", Slug: "original-title", Content: "c",
	})
	if err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}

	req := formRequest("/admin/posts/"+strconv.FormatInt(id, 10), url.Values{
		"title":   {"Completely New Title"},
		"content": {"updated"},
	})
	req = requestWithURLParams(req, map[string]string{"id": strconv.FormatInt(id, 10)})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Update), req)

	assertRedirect(t, rec, "/admin/posts")

	post, err := queries.GetBlogPostByID(t.Context(), id)
	if err != nil {
		t.Fatalf("failed to reload post: %v", err)
	}
	if post.Slug != "original-title" {
		t.Errorf("slug = %q after title edit; want unchanged original-title", post.Slug)
	}
	if post.Title != "Completely New Title" {
		t.Errorf("title = %q; want the edited title", post.Title)
	}
}

func TestPostPublishedAtClearedOnUnpublish(t *testing.T) {
	h, _, queries, sm := newPostsHandler(t)

	id, err := queries.CreateBlogPost(t.Context(), store.CreateBlogPostParams{
		Title: "Lifecycle", Slug: "lifecycle", Content: "c",
	})
	if err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	idStr := strconv.FormatInt(id, 10)

	update := func(published bool) {
		values := url.Values{"title": {"Lifecycle"}, "content": {"c"}}
		if published {
			values.Set("is_published", "on")
		}
		req := requestWithURLParams(formRequest("/admin/posts/"+idStr, values),
			map[string]string{"id": idStr})
		rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Update), req)
		assertRedirect(t, rec, "/admin/posts")
	}

	update(true)
	post, err := queries.GetBlogPostByID(t.Context(), id)
	if err != nil {
		t.Fatalf("failed to reload post: %v", err)
	}
	if !post.IsPublished || !post.PublishedAt.Valid {
		t.Fatal("publishing did not stamp PublishedAt")
	}
	firstPublished := post.PublishedAt.Time

	// Editing while still published keeps the existing timestamp.
	time.Sleep(10 * time.Millisecond)
	update(true)
	post, err = queries.GetBlogPostByID(t.Context(), id)
	if err != nil {
		t.Fatalf("failed to reload post: %v", err)
	}
	if !post.PublishedAt.Time.Equal(firstPublished) {
		t.Errorf("PublishedAt = %v after published edit; want %v", post.PublishedAt.Time, firstPublished)
	}

	// Unpublishing clears the timestamp; a draft has no publish date.
	update(false)
	post, err = queries.GetBlogPostByID(t.Context(), id)
	if err != nil {
		t.Fatalf("failed to reload post: %v", err)
	}
	if post.IsPublished || post.PublishedAt.Valid {
		t.Errorf("post = published=%v publishedAt=%v after unpublish; want draft with null timestamp",
			post.IsPublished, post.PublishedAt)
	}

	// Republishing stamps a fresh timestamp.
	update(true)
	post, err = queries.GetBlogPostByID(t.Context(), id)
	if err != nil {
		t.Fatalf("failed to reload post: %v", err)
	}
	if !post.PublishedAt.Valid || post.PublishedAt.Time.Equal(firstPublished) {
		t.Errorf("PublishedAt = %+v after republish; want a fresh timestamp", post.PublishedAt)
	}
}

func TestPostDelete(t *testing.T) {
	h, _, queries, sm := newPostsHandler(t)

	id, err := queries.CreateBlogPost(t.Context(), store.CreateBlogPostParams{
		Title: "Doomed", Slug: "doomed", Content: "c",
	})
	if err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	idStr := strconv.FormatInt(id, 10)

	req := requestWithURLParams(formRequest("/admin/posts/"+idStr+"/delete", url.Values{}),
		map[string]string{"id": idStr})
	rec := serveWithSession(t, sm, 0, http.HandlerFunc(h.Delete), req)

	assertRedirect(t, rec, "/admin/posts")
	if _, err := queries.GetBlogPostByID(t.Context(), id); err == nil {
		t.Error("post still present after delete")
	}
}
