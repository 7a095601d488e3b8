// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/visionlife/agency-go/internal/model"
)

const listProjects = `
SELECT id, title, description, category, image_url, client_name, project_date,
       is_featured, display_order, created_at, updated_at
FROM projects ORDER BY display_order ASC, id ASC
`

// ListProjects returns all projects ordered by display order.
func (q *Queries) ListProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := q.db.QueryContext(ctx, listProjects)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Category, &p.ImageURL,
			&p.ClientName, &p.ProjectDate, &p.IsFeatured, &p.DisplayOrder,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

const listFeaturedProjects = `
SELECT id, title, description, category, image_url, client_name, project_date,
       is_featured, display_order, created_at, updated_at
FROM projects WHERE is_featured = 1 ORDER BY display_order ASC, id ASC
`

// ListFeaturedProjects returns projects flagged for the home page.
func (q *Queries) ListFeaturedProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := q.db.QueryContext(ctx, listFeaturedProjects)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Category, &p.ImageURL,
			&p.ClientName, &p.ProjectDate, &p.IsFeatured, &p.DisplayOrder,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

const getProjectByID = `
SELECT id, title, description, category, image_url, client_name, project_date,
       is_featured, display_order, created_at, updated_at
FROM projects WHERE id = ?
`

// GetProjectByID fetches a single project.
func (q *Queries) GetProjectByID(ctx context.Context, id int64) (model.Project, error) {
	var p model.Project
	err := q.db.QueryRowContext(ctx, getProjectByID, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.Category, &p.ImageURL,
		&p.ClientName, &p.ProjectDate, &p.IsFeatured, &p.DisplayOrder,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

const createProject = `
INSERT INTO projects (title, description, category, image_url, client_name,
                      project_date, is_featured, display_order)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

// CreateProjectParams holds the fields for creating a project.
type CreateProjectParams struct {
	Title        string
	Description  string
	Category     string
	ImageURL     string
	ClientName   string
	ProjectDate  string
	IsFeatured   bool
	DisplayOrder int64
}

// CreateProject inserts a new project and returns its ID.
func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createProject,
		arg.Title, arg.Description, arg.Category, arg.ImageURL,
		arg.ClientName, arg.ProjectDate, arg.IsFeatured, arg.DisplayOrder,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const updateProject = `
UPDATE projects
SET title = ?, description = ?, category = ?, image_url = ?, client_name = ?,
    project_date = ?, is_featured = ?, display_order = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

// UpdateProjectParams holds the fields for updating a project.
type UpdateProjectParams struct {
	ID           int64
	Title        string
	Description  string
	Category     string
	ImageURL     string
	ClientName   string
	ProjectDate  string
	IsFeatured   bool
	DisplayOrder int64
}

// UpdateProject updates all editable fields of a project.
func (q *Queries) UpdateProject(ctx context.Context, arg UpdateProjectParams) error {
	_, err := q.db.ExecContext(ctx, updateProject,
		arg.Title, arg.Description, arg.Category, arg.ImageURL,
		arg.ClientName, arg.ProjectDate, arg.IsFeatured, arg.DisplayOrder,
		arg.ID,
	)
	return err
}

const deleteProject = `DELETE FROM projects WHERE id = ?`

// DeleteProject removes a project.
func (q *Queries) DeleteProject(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteProject, id)
	return err
}

const countProjects = `SELECT COUNT(*) FROM projects`

// CountProjects returns the total number of projects.
func (q *Queries) CountProjects(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countProjects).Scan(&n)
	return n, err
}
