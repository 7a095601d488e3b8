// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/visionlife/agency-go/internal/model"
)

const listTestimonials = `
SELECT id, client_name, client_role, client_company, client_image_url,
       content, rating, is_featured, display_order, created_at, updated_at
FROM testimonials ORDER BY display_order ASC, id ASC
`

// ListTestimonials returns all testimonials ordered by display order.
func (q *Queries) ListTestimonials(ctx context.Context) ([]model.Testimonial, error) {
	return q.queryTestimonials(ctx, listTestimonials)
}

const listFeaturedTestimonials = `
SELECT id, client_name, client_role, client_company, client_image_url,
       content, rating, is_featured, display_order, created_at, updated_at
FROM testimonials WHERE is_featured = 1 ORDER BY display_order ASC, id ASC
`

// ListFeaturedTestimonials returns testimonials shown on the public site.
func (q *Queries) ListFeaturedTestimonials(ctx context.Context) ([]model.Testimonial, error) {
	return q.queryTestimonials(ctx, listFeaturedTestimonials)
}

func (q *Queries) queryTestimonials(ctx context.Context, query string) ([]model.Testimonial, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var testimonials []model.Testimonial
	for rows.Next() {
		var t model.Testimonial
		if err := rows.Scan(
			&t.ID, &t.ClientName, &t.ClientRole, &t.ClientCompany,
			&t.ClientImageURL, &t.Content, &t.Rating, &t.IsFeatured,
			&t.DisplayOrder, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		testimonials = append(testimonials, t)
	}
	return testimonials, rows.Err()
}

const getTestimonialByID = `
SELECT id, client_name, client_role, client_company, client_image_url,
       content, rating, is_featured, display_order, created_at, updated_at
FROM testimonials WHERE id = ?
`

// GetTestimonialByID fetches a single testimonial.
func (q *Queries) GetTestimonialByID(ctx context.Context, id int64) (model.Testimonial, error) {
	var t model.Testimonial
	err := q.db.QueryRowContext(ctx, getTestimonialByID, id).Scan(
		&t.ID, &t.ClientName, &t.ClientRole, &t.ClientCompany,
		&t.ClientImageURL, &t.Content, &t.Rating, &t.IsFeatured,
		&t.DisplayOrder, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

const createTestimonial = `
INSERT INTO testimonials (client_name, client_role, client_company,
                          client_image_url, content, rating, is_featured,
                          display_order)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

// CreateTestimonialParams holds the fields for creating a testimonial.
type CreateTestimonialParams struct {
	ClientName     string
	ClientRole     string
	ClientCompany  string
	ClientImageURL string
	Content        string
	Rating         int64
	IsFeatured     bool
	DisplayOrder   int64
}

// CreateTestimonial inserts a new testimonial and returns its ID.
func (q *Queries) CreateTestimonial(ctx context.Context, arg CreateTestimonialParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createTestimonial,
		arg.ClientName, arg.ClientRole, arg.ClientCompany, arg.ClientImageURL,
		arg.Content, arg.Rating, arg.IsFeatured, arg.DisplayOrder,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const updateTestimonial = `
UPDATE testimonials
SET client_name = ?, client_role = ?, client_company = ?,
    client_image_url = ?, content = ?, rating = ?, is_featured = ?,
    display_order = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

// UpdateTestimonialParams holds the fields for updating a testimonial.
type UpdateTestimonialParams struct {
	ID             int64
	ClientName     string
	ClientRole     string
	ClientCompany  string
	ClientImageURL string
	Content        string
	Rating         int64
	IsFeatured     bool
	DisplayOrder   int64
}

// UpdateTestimonial updates all editable fields of a testimonial.
func (q *Queries) UpdateTestimonial(ctx context.Context, arg UpdateTestimonialParams) error {
	_, err := q.db.ExecContext(ctx, updateTestimonial,
		arg.ClientName, arg.ClientRole, arg.ClientCompany, arg.ClientImageURL,
		arg.Content, arg.Rating, arg.IsFeatured, arg.DisplayOrder, arg.ID,
	)
	return err
}

const deleteTestimonial = `DELETE FROM testimonials WHERE id = ?`

// DeleteTestimonial removes a testimonial.
func (q *Queries) DeleteTestimonial(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteTestimonial, id)
	return err
}

const countTestimonials = `SELECT COUNT(*) FROM testimonials`

// CountTestimonials returns the total number of testimonials.
func (q *Queries) CountTestimonials(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countTestimonials).Scan(&n)
	return n, err
}
