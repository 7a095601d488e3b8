// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

// Package scheduler runs background maintenance: sweeping upload files
// no content row references anymore, and pruning old event rows.
package scheduler

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/visionlife/agency-go/internal/store"
	"github.com/visionlife/agency-go/internal/upload"
)

// orphanGracePeriod protects files that were just uploaded but whose
// form has not been saved yet.
const orphanGracePeriod = 24 * time.Hour

// eventRetention is how long event rows are kept.
const eventRetention = 90 * 24 * time.Hour

// Scheduler owns the cron instance and its jobs.
type Scheduler struct {
	cron    *cron.Cron
	queries *store.Queries
	uploads *upload.Service
	logger  *slog.Logger
}

// New creates a Scheduler. Start must be called to begin running jobs.
func New(queries *store.Queries, uploads *upload.Service, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		queries: queries,
		uploads: uploads,
		logger:  logger,
	}
}

// Start registers and begins the maintenance jobs: the upload sweep
// hourly, event pruning daily.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@hourly", func() {
		if _, err := s.SweepOrphanedUploads(context.Background()); err != nil {
			s.logger.Error("upload sweep failed", "error", err)
		}
	}); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@daily", func() {
		if err := s.PruneEvents(context.Background()); err != nil {
			s.logger.Error("event pruning failed", "error", err)
		}
	}); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("maintenance scheduler started")
	return nil
}

// Stop stops the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// SweepOrphanedUploads deletes upload files that no project, testimonial
// or blog post references and that are older than the grace period.
// Returns the number of files removed.
func (s *Scheduler) SweepOrphanedUploads(ctx context.Context) (int, error) {
	urls, err := s.queries.ListReferencedImageURLs(ctx)
	if err != nil {
		return 0, err
	}
	referenced := make(map[string]bool, len(urls))
	for _, u := range urls {
		if key := upload.KeyFromURL(u); key != "" {
			referenced[key] = true
		}
	}

	cutoff := time.Now().Add(-orphanGracePeriod)
	root := s.uploads.Dir()

	removed := 0
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		// Thumbnails follow their original through Remove.
		if strings.HasPrefix(d.Name(), "thumb_") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if referenced[key] {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(cutoff) {
			return nil
		}

		if err := s.uploads.Remove(key); err != nil {
			s.logger.Warn("removing orphaned upload failed", "key", key, "error", err)
			return nil
		}
		removed++
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return removed, err
	}

	if removed > 0 {
		s.logger.Info("swept orphaned uploads", "removed", removed)
	}
	return removed, nil
}

// PruneEvents deletes event rows older than the retention window.
func (s *Scheduler) PruneEvents(ctx context.Context) error {
	n, err := s.queries.DeleteEventsBefore(ctx, time.Now().Add(-eventRetention))
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Info("pruned old events", "removed", n)
	}
	return nil
}
