// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

// Package cache provides the content cache for public pages, with
// in-memory and Redis backends.
package cache

import (
	"context"
	"time"
)

// Cache is implemented by all backends. Values are []byte so the same
// interface serves both in-memory and Redis caches. Implementations must
// be safe for concurrent use.
type Cache interface {
	// Get returns the value for key, or ErrCacheMiss if absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value. A zero TTL means the backend's default TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// Error is the error type for cache operations.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrCacheMiss indicates the key was not found or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)
