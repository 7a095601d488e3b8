// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/visionlife/agency-go/internal/model"
)

const listSiteStats = `
SELECT id, stat_key, stat_value, label, suffix, display_order, created_at, updated_at
FROM site_stats ORDER BY display_order ASC, id ASC
`

// ListSiteStats returns all site statistics ordered by display order.
func (q *Queries) ListSiteStats(ctx context.Context) ([]model.SiteStat, error) {
	rows, err := q.db.QueryContext(ctx, listSiteStats)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []model.SiteStat
	for rows.Next() {
		var s model.SiteStat
		if err := rows.Scan(
			&s.ID, &s.StatKey, &s.StatValue, &s.Label, &s.Suffix,
			&s.DisplayOrder, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

const getSiteStatByID = `
SELECT id, stat_key, stat_value, label, suffix, display_order, created_at, updated_at
FROM site_stats WHERE id = ?
`

// GetSiteStatByID fetches a single statistic.
func (q *Queries) GetSiteStatByID(ctx context.Context, id int64) (model.SiteStat, error) {
	var s model.SiteStat
	err := q.db.QueryRowContext(ctx, getSiteStatByID, id).Scan(
		&s.ID, &s.StatKey, &s.StatValue, &s.Label, &s.Suffix,
		&s.DisplayOrder, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

const siteStatKeyExists = `SELECT COUNT(*) FROM site_stats WHERE stat_key = ? AND id != ?`

// SiteStatKeyExists reports whether another row already uses the key.
// Pass excludeID = 0 when creating.
func (q *Queries) SiteStatKeyExists(ctx context.Context, key string, excludeID int64) (bool, error) {
	var n int64
	if err := q.db.QueryRowContext(ctx, siteStatKeyExists, key, excludeID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

const createSiteStat = `
INSERT INTO site_stats (stat_key, stat_value, label, suffix, display_order)
VALUES (?, ?, ?, ?, ?)
`

// CreateSiteStatParams holds the fields for creating a statistic.
type CreateSiteStatParams struct {
	StatKey      string
	StatValue    string
	Label        string
	Suffix       string
	DisplayOrder int64
}

// CreateSiteStat inserts a new statistic and returns its ID.
func (q *Queries) CreateSiteStat(ctx context.Context, arg CreateSiteStatParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createSiteStat,
		arg.StatKey, arg.StatValue, arg.Label, arg.Suffix, arg.DisplayOrder,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const updateSiteStat = `
UPDATE site_stats
SET stat_key = ?, stat_value = ?, label = ?, suffix = ?, display_order = ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

// UpdateSiteStatParams holds the fields for updating a statistic.
type UpdateSiteStatParams struct {
	ID           int64
	StatKey      string
	StatValue    string
	Label        string
	Suffix       string
	DisplayOrder int64
}

// UpdateSiteStat updates all editable fields of a statistic.
func (q *Queries) UpdateSiteStat(ctx context.Context, arg UpdateSiteStatParams) error {
	_, err := q.db.ExecContext(ctx, updateSiteStat,
		arg.StatKey, arg.StatValue, arg.Label, arg.Suffix,
		arg.DisplayOrder, arg.ID,
	)
	return err
}

const deleteSiteStat = `DELETE FROM site_stats WHERE id = ?`

// DeleteSiteStat removes a statistic.
func (q *Queries) DeleteSiteStat(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteSiteStat, id)
	return err
}

const countSiteStats = `SELECT COUNT(*) FROM site_stats`

// CountSiteStats returns the total number of statistics.
func (q *Queries) CountSiteStats(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countSiteStats).Scan(&n)
	return n, err
}
