// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/visionlife/agency-go/internal/model"
)

const listServices = `
SELECT id, title, description, icon_name, features, price_range,
       is_active, display_order, created_at, updated_at
FROM services ORDER BY display_order ASC, id ASC
`

// ListServices returns all services ordered by display order.
func (q *Queries) ListServices(ctx context.Context) ([]model.Service, error) {
	return q.queryServices(ctx, listServices)
}

const listActiveServices = `
SELECT id, title, description, icon_name, features, price_range,
       is_active, display_order, created_at, updated_at
FROM services WHERE is_active = 1 ORDER BY display_order ASC, id ASC
`

// ListActiveServices returns services visible on the public site.
func (q *Queries) ListActiveServices(ctx context.Context) ([]model.Service, error) {
	return q.queryServices(ctx, listActiveServices)
}

func (q *Queries) queryServices(ctx context.Context, query string) ([]model.Service, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []model.Service
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(
			&s.ID, &s.Title, &s.Description, &s.Icon, &s.Features,
			&s.PriceRange, &s.IsActive, &s.DisplayOrder, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

const getServiceByID = `
SELECT id, title, description, icon_name, features, price_range,
       is_active, display_order, created_at, updated_at
FROM services WHERE id = ?
`

// GetServiceByID fetches a single service.
func (q *Queries) GetServiceByID(ctx context.Context, id int64) (model.Service, error) {
	var s model.Service
	err := q.db.QueryRowContext(ctx, getServiceByID, id).Scan(
		&s.ID, &s.Title, &s.Description, &s.Icon, &s.Features,
		&s.PriceRange, &s.IsActive, &s.DisplayOrder, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

const createService = `
INSERT INTO services (title, description, icon_name, features, price_range,
                      is_active, display_order)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

// CreateServiceParams holds the fields for creating a service.
type CreateServiceParams struct {
	Title        string
	Description  string
	Icon         string
	Features     string
	PriceRange   string
	IsActive     bool
	DisplayOrder int64
}

// CreateService inserts a new service and returns its ID.
func (q *Queries) CreateService(ctx context.Context, arg CreateServiceParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createService,
		arg.Title, arg.Description, arg.Icon, arg.Features, arg.PriceRange,
		arg.IsActive, arg.DisplayOrder,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const updateService = `
UPDATE services
SET title = ?, description = ?, icon_name = ?, features = ?,
    price_range = ?, is_active = ?, display_order = ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

// UpdateServiceParams holds the fields for updating a service.
type UpdateServiceParams struct {
	ID           int64
	Title        string
	Description  string
	Icon         string
	Features     string
	PriceRange   string
	IsActive     bool
	DisplayOrder int64
}

// UpdateService updates all editable fields of a service.
func (q *Queries) UpdateService(ctx context.Context, arg UpdateServiceParams) error {
	_, err := q.db.ExecContext(ctx, updateService,
		arg.Title, arg.Description, arg.Icon, arg.Features, arg.PriceRange,
		arg.IsActive, arg.DisplayOrder, arg.ID,
	)
	return err
}

const deleteService = `DELETE FROM services WHERE id = ?`

// DeleteService removes a service.
func (q *Queries) DeleteService(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteService, id)
	return err
}

const countServices = `SELECT COUNT(*) FROM services`

// CountServices returns the total number of services.
func (q *Queries) CountServices(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countServices).Scan(&n)
	return n, err
}
