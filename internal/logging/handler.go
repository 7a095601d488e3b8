// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

// Package logging provides an slog handler that also persists warnings
// and errors to the events table, so recent problems are visible from
// the admin dashboard without shell access to the server.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/visionlife/agency-go/internal/model"
	"github.com/visionlife/agency-go/internal/store"
)

// EventLogHandler wraps another slog.Handler and additionally writes
// records at WARN level and above to the events table.
type EventLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
}

// NewEventLogHandler creates an EventLogHandler persisting to the given
// database.
func NewEventLogHandler(inner slog.Handler, db *sql.DB) *EventLogHandler {
	return &EventLogHandler{inner: inner, queries: store.New(db)}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler. Records below WARN pass straight
// through; WARN and above are also stored as events. A failed insert
// never fails the log call.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		h.persist(ctx, r)
	}
	return h.inner.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventLogHandler{inner: h.inner.WithAttrs(attrs), queries: h.queries}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{inner: h.inner.WithGroup(name), queries: h.queries}
}

func (h *EventLogHandler) persist(ctx context.Context, r slog.Record) {
	level := model.EventLevelWarn
	if r.Level >= slog.LevelError {
		level = model.EventLevelError
	}

	category := model.EventCategorySystem
	var userID sql.NullInt64
	attrs := make(map[string]any)
	r.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case "category":
			category = a.Value.String()
		case "user_id":
			if id, ok := a.Value.Any().(int64); ok {
				userID = sql.NullInt64{Int64: id, Valid: true}
			}
		default:
			attrs[a.Key] = a.Value.Any()
		}
		return true
	})

	var metadata sql.NullString
	if len(attrs) > 0 {
		if b, err := json.Marshal(attrs); err == nil {
			metadata = sql.NullString{String: string(b), Valid: true}
		}
	}

	_ = h.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:    level,
		Category: category,
		Message:  r.Message,
		UserID:   userID,
		Metadata: metadata,
	})
}
