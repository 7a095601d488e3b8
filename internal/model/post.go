// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package model

import (
	"database/sql"
	"time"
)

// BlogPost represents a blog entry. Slug is generated from the title when
// the post is first created and never changes afterwards, so published
// URLs stay stable across edits.
type BlogPost struct {
	ID               int64        `json:"id"`
	Title            string       `json:"title"`
	Slug             string       `json:"slug"`
	Excerpt          string       `json:"excerpt"`
	Content          string       `json:"content"`
	FeaturedImageURL string       `json:"featured_image_url"`
	Author           string       `json:"author_name"`
	IsPublished      bool         `json:"is_published"`
	PublishedAt      sql.NullTime `json:"published_at"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// PublishedAtOrZero returns the publication time, or the zero time when
// the post has never been published.
func (p BlogPost) PublishedAtOrZero() time.Time {
	if p.PublishedAt.Valid {
		return p.PublishedAt.Time
	}
	return time.Time{}
}
