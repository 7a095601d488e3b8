// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"

	"github.com/visionlife/agency-go/internal/model"
)

const listBlogPosts = `
SELECT id, title, slug, excerpt, content, featured_image_url, author_name,
       is_published, published_at, created_at, updated_at
FROM blog_posts ORDER BY created_at DESC, id DESC
`

// ListBlogPosts returns all posts, drafts included, newest first.
func (q *Queries) ListBlogPosts(ctx context.Context) ([]model.BlogPost, error) {
	return q.queryBlogPosts(ctx, listBlogPosts)
}

const listPublishedBlogPosts = `
SELECT id, title, slug, excerpt, content, featured_image_url, author_name,
       is_published, published_at, created_at, updated_at
FROM blog_posts WHERE is_published = 1 ORDER BY created_at DESC, id DESC
`

// ListPublishedBlogPosts returns posts visible on the public blog.
func (q *Queries) ListPublishedBlogPosts(ctx context.Context) ([]model.BlogPost, error) {
	return q.queryBlogPosts(ctx, listPublishedBlogPosts)
}

func (q *Queries) queryBlogPosts(ctx context.Context, query string) ([]model.BlogPost, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.BlogPost
	for rows.Next() {
		var p model.BlogPost
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content,
			&p.FeaturedImageURL, &p.Author, &p.IsPublished, &p.PublishedAt,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

const getBlogPostByID = `
SELECT id, title, slug, excerpt, content, featured_image_url, author_name,
       is_published, published_at, created_at, updated_at
FROM blog_posts WHERE id = ?
`

// GetBlogPostByID fetches a single post.
func (q *Queries) GetBlogPostByID(ctx context.Context, id int64) (model.BlogPost, error) {
	return q.scanBlogPost(q.db.QueryRowContext(ctx, getBlogPostByID, id))
}

const getBlogPostBySlug = `
SELECT id, title, slug, excerpt, content, featured_image_url, author_name,
       is_published, published_at, created_at, updated_at
FROM blog_posts WHERE slug = ?
`

// GetBlogPostBySlug fetches a post by its URL slug.
func (q *Queries) GetBlogPostBySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	return q.scanBlogPost(q.db.QueryRowContext(ctx, getBlogPostBySlug, slug))
}

const getPublishedBlogPostBySlug = `
SELECT id, title, slug, excerpt, content, featured_image_url, author_name,
       is_published, published_at, created_at, updated_at
FROM blog_posts WHERE slug = ? AND is_published = 1
`

// GetPublishedBlogPostBySlug fetches a published post by slug. Drafts are
// invisible to the public site, so this returns sql.ErrNoRows for them.
func (q *Queries) GetPublishedBlogPostBySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	return q.scanBlogPost(q.db.QueryRowContext(ctx, getPublishedBlogPostBySlug, slug))
}

func (q *Queries) scanBlogPost(row *sql.Row) (model.BlogPost, error) {
	var p model.BlogPost
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content,
		&p.FeaturedImageURL, &p.Author, &p.IsPublished, &p.PublishedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

const blogPostSlugExists = `SELECT COUNT(*) FROM blog_posts WHERE slug = ?`

// BlogPostSlugExists reports whether a slug is already taken.
func (q *Queries) BlogPostSlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	if err := q.db.QueryRowContext(ctx, blogPostSlugExists, slug).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

const createBlogPost = `
INSERT INTO blog_posts (title, slug, excerpt, content, featured_image_url,
                        author_name, is_published, published_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

// CreateBlogPostParams holds the fields for creating a post.
type CreateBlogPostParams struct {
	Title            string
	Slug             string
	Excerpt          string
	Content          string
	FeaturedImageURL string
	Author           string
	IsPublished      bool
	PublishedAt      sql.NullTime
}

// CreateBlogPost inserts a new post and returns its ID.
func (q *Queries) CreateBlogPost(ctx context.Context, arg CreateBlogPostParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createBlogPost,
		arg.Title, arg.Slug, arg.Excerpt, arg.Content,
		arg.FeaturedImageURL, arg.Author, arg.IsPublished, arg.PublishedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const updateBlogPost = `
UPDATE blog_posts
SET title = ?, excerpt = ?, content = ?, featured_image_url = ?, author_name = ?,
    is_published = ?, published_at = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

// UpdateBlogPostParams holds the fields for updating a post. The slug is
// deliberately absent: it is fixed at creation.
type UpdateBlogPostParams struct {
	ID               int64
	Title            string
	Excerpt          string
	Content          string
	FeaturedImageURL string
	Author           string
	IsPublished      bool
	PublishedAt      sql.NullTime
}

// UpdateBlogPost updates all editable fields of a post.
func (q *Queries) UpdateBlogPost(ctx context.Context, arg UpdateBlogPostParams) error {
	_, err := q.db.ExecContext(ctx, updateBlogPost,
		arg.Title, arg.Excerpt, arg.Content, arg.FeaturedImageURL,
		arg.Author, arg.IsPublished, arg.PublishedAt, arg.ID,
	)
	return err
}

const deleteBlogPost = `DELETE FROM blog_posts WHERE id = ?`

// DeleteBlogPost removes a post.
func (q *Queries) DeleteBlogPost(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteBlogPost, id)
	return err
}

const countBlogPosts = `SELECT COUNT(*) FROM blog_posts`

// CountBlogPosts returns the total number of posts, drafts included.
func (q *Queries) CountBlogPosts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countBlogPosts).Scan(&n)
	return n, err
}
