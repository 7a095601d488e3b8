// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/visionlife/agency-go/internal/cache"
	"github.com/visionlife/agency-go/internal/middleware"
	"github.com/visionlife/agency-go/internal/model"
	"github.com/visionlife/agency-go/internal/render"
	"github.com/visionlife/agency-go/internal/store"
	"github.com/visionlife/agency-go/internal/util"
)

// PostsHandler handles blog post management routes.
type PostsHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	cache    *cache.ContentCache
}

// NewPostsHandler creates a new PostsHandler.
func NewPostsHandler(db *sql.DB, renderer *render.Renderer, cc *cache.ContentCache) *PostsHandler {
	return &PostsHandler{queries: store.New(db), renderer: renderer, cache: cc}
}

// PostsListData holds data for the posts list template.
type PostsListData struct {
	Posts []model.BlogPost
}

// PostFormData holds data for the post form template.
type PostFormData struct {
	Post       *model.BlogPost
	Errors     map[string]string
	FormValues map[string]string
	IsEdit     bool
}

// List handles GET /admin/posts - all posts, drafts included, newest first.
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.ListBlogPosts(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list posts", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/posts_list", render.TemplateData{
		Title: "Blog Posts",
		Data:  PostsListData{Posts: posts},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// NewForm handles GET /admin/posts/new.
func (h *PostsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, PostFormData{
		Errors:     make(map[string]string),
		FormValues: make(map[string]string),
	})
}

func (h *PostsHandler) renderForm(w http.ResponseWriter, r *http.Request, data PostFormData) {
	title := "New Post"
	if data.IsEdit {
		title = "Edit Post"
	}
	if err := h.renderer.Render(w, r, "admin/posts_form", render.TemplateData{
		Title: title,
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// postForm extracts and validates the shared post fields.
func postFormValues(p *model.BlogPost) map[string]string {
	values := map[string]string{
		"title":              p.Title,
		"excerpt":            p.Excerpt,
		"content":            p.Content,
		"featured_image_url": p.FeaturedImageURL,
		"author":             p.Author,
	}
	if p.IsPublished {
		values["is_published"] = "on"
	}
	return values
}

func (h *PostsHandler) postForm(r *http.Request) (map[string]string, map[string]string) {
	values := map[string]string{
		"title":              strings.TrimSpace(r.FormValue("title")),
		"excerpt":            strings.TrimSpace(r.FormValue("excerpt")),
		"content":            r.FormValue("content"),
		"featured_image_url": strings.TrimSpace(r.FormValue("featured_image_url")),
		"author":             strings.TrimSpace(r.FormValue("author")),
	}
	if formBool(r, "is_published") {
		values["is_published"] = "on"
	}

	errs := make(map[string]string)
	if values["title"] == "" {
		errs["title"] = "Title is required"
	}
	return values, errs
}

// Create handles POST /admin/posts. The slug is generated from the title
// here and never changes again, so published URLs stay stable.
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectPosts+RouteSuffixNew) {
		return
	}

	values, errs := h.postForm(r)

	slug := util.Slugify(values["title"])
	if len(errs) == 0 {
		if slug == "" {
			errs["title"] = "Title must contain at least one letter or number"
		} else if exists, err := h.queries.BlogPostSlugExists(r.Context(), slug); err != nil {
			slog.Error("database error checking slug", "error", err)
			errs["title"] = "Error checking slug"
		} else if exists {
			errs["title"] = "A post with this slug already exists"
		}
	}

	if len(errs) > 0 {
		h.renderForm(w, r, PostFormData{Errors: errs, FormValues: values})
		return
	}

	published := values["is_published"] == "on"
	var publishedAt sql.NullTime
	if published {
		publishedAt = sql.NullTime{Time: time.Now(), Valid: true}
	}

	id, err := h.queries.CreateBlogPost(r.Context(), store.CreateBlogPostParams{
		Title:            values["title"],
		Slug:             slug,
		Excerpt:          values["excerpt"],
		Content:          values["content"],
		FeaturedImageURL: values["featured_image_url"],
		Author:           values["author"],
		IsPublished:      published,
		PublishedAt:      publishedAt,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			errs["title"] = "A post with this slug already exists"
			h.renderForm(w, r, PostFormData{Errors: errs, FormValues: values})
			return
		}
		slog.Error("failed to create post", "error", err)
		flashError(w, r, h.renderer, redirectPosts+RouteSuffixNew, "Error creating post")
		return
	}

	h.cache.Invalidate(r.Context())
	slog.Info("post created", "post_id", id, "slug", slug, "created_by", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectPosts, "Post created successfully")
}

// EditForm handles GET /admin/posts/{id}.
func (h *PostsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectPosts, "Invalid post ID")
		return
	}

	post, ok := requireEntityWithRedirect(w, r, h.renderer, redirectPosts, "post", id,
		func(id int64) (model.BlogPost, error) { return h.queries.GetBlogPostByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, PostFormData{
		Post:       &post,
		Errors:     make(map[string]string),
		FormValues: postFormValues(&post),
		IsEdit:     true,
	})
}

// Update handles POST /admin/posts/{id}. The slug is left untouched.
// published_at is stamped when the post goes live and cleared again when
// it is unpublished.
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectPosts, "Invalid post ID")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectPosts) {
		return
	}

	post, ok := requireEntityWithRedirect(w, r, h.renderer, redirectPosts, "post", id,
		func(id int64) (model.BlogPost, error) { return h.queries.GetBlogPostByID(r.Context(), id) })
	if !ok {
		return
	}

	values, errs := h.postForm(r)
	if len(errs) > 0 {
		h.renderForm(w, r, PostFormData{
			Post:       &post,
			Errors:     errs,
			FormValues: values,
			IsEdit:     true,
		})
		return
	}

	published := values["is_published"] == "on"
	var publishedAt sql.NullTime
	if published {
		publishedAt = post.PublishedAt
		if !publishedAt.Valid {
			publishedAt = sql.NullTime{Time: time.Now(), Valid: true}
		}
	}

	if err := h.queries.UpdateBlogPost(r.Context(), store.UpdateBlogPostParams{
		ID:               id,
		Title:            values["title"],
		Excerpt:          values["excerpt"],
		Content:          values["content"],
		FeaturedImageURL: values["featured_image_url"],
		Author:           values["author"],
		IsPublished:      published,
		PublishedAt:      publishedAt,
	}); err != nil {
		slog.Error("failed to update post", "error", err, "post_id", id)
		flashError(w, r, h.renderer, redirectPosts, "Error updating post")
		return
	}

	h.cache.Invalidate(r.Context())
	slog.Info("post updated", "post_id", id, "updated_by", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectPosts, "Post updated successfully")
}

// Delete handles POST /admin/posts/{id}/delete.
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectPosts, "Invalid post ID")
		return
	}

	if _, ok := requireEntityWithRedirect(w, r, h.renderer, redirectPosts, "post", id,
		func(id int64) (model.BlogPost, error) { return h.queries.GetBlogPostByID(r.Context(), id) }); !ok {
		return
	}

	if err := h.queries.DeleteBlogPost(r.Context(), id); err != nil {
		slog.Error("failed to delete post", "error", err, "post_id", id)
		flashError(w, r, h.renderer, redirectPosts, "Error deleting post")
		return
	}

	h.cache.Invalidate(r.Context())
	slog.Info("post deleted", "post_id", id, "deleted_by", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectPosts, "Post deleted successfully")
}
