// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"log/slog"
)

// Content cache keys for rendered public pages.
const (
	KeyHome      = "page:home"
	KeyServices  = "page:services"
	KeyPortfolio = "page:portfolio"
	KeyBlogIndex = "page:blog"

	// KeyBlogPostPrefix + slug caches a single post page.
	KeyBlogPostPrefix = "page:post:"
)

// ContentCache wraps a Cache backend for whole-page caching of the
// public site. Any admin write invalidates everything: content edits
// are rare and correctness beats cleverness here.
type ContentCache struct {
	backend Cache
	logger  *slog.Logger
}

// NewContentCache wraps a backend.
func NewContentCache(backend Cache, logger *slog.Logger) *ContentCache {
	return &ContentCache{backend: backend, logger: logger}
}

// GetPage returns a cached rendered page, or nil on miss. Backend errors
// are logged and treated as misses so the site keeps serving.
func (c *ContentCache) GetPage(ctx context.Context, key string) []byte {
	body, err := c.backend.Get(ctx, key)
	if err != nil {
		if err != ErrCacheMiss {
			c.logger.Warn("content cache read failed", "key", key, "error", err)
		}
		return nil
	}
	return body
}

// SetPage stores a rendered page with the backend's default TTL.
func (c *ContentCache) SetPage(ctx context.Context, key string, body []byte) {
	if err := c.backend.Set(ctx, key, body, 0); err != nil {
		c.logger.Warn("content cache write failed", "key", key, "error", err)
	}
}

// Invalidate clears all cached pages. Called after every admin write.
func (c *ContentCache) Invalidate(ctx context.Context) {
	if err := c.backend.Clear(ctx); err != nil {
		c.logger.Warn("content cache invalidation failed", "error", err)
	}
}

// Close releases the backend.
func (c *ContentCache) Close() error {
	return c.backend.Close()
}
