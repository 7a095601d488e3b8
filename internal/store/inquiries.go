// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/visionlife/agency-go/internal/model"
)

const listContactInquiries = `
SELECT id, name, email, phone, service, message, is_read, created_at
FROM contact_inquiries ORDER BY created_at DESC, id DESC
`

// ListContactInquiries returns all inquiries, newest first.
func (q *Queries) ListContactInquiries(ctx context.Context) ([]model.ContactInquiry, error) {
	rows, err := q.db.QueryContext(ctx, listContactInquiries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inquiries []model.ContactInquiry
	for rows.Next() {
		var in model.ContactInquiry
		if err := rows.Scan(
			&in.ID, &in.Name, &in.Email, &in.Phone, &in.Service, &in.Message,
			&in.IsRead, &in.CreatedAt,
		); err != nil {
			return nil, err
		}
		inquiries = append(inquiries, in)
	}
	return inquiries, rows.Err()
}

const getContactInquiryByID = `
SELECT id, name, email, phone, service, message, is_read, created_at
FROM contact_inquiries WHERE id = ?
`

// GetContactInquiryByID fetches a single inquiry.
func (q *Queries) GetContactInquiryByID(ctx context.Context, id int64) (model.ContactInquiry, error) {
	var in model.ContactInquiry
	err := q.db.QueryRowContext(ctx, getContactInquiryByID, id).Scan(
		&in.ID, &in.Name, &in.Email, &in.Phone, &in.Service, &in.Message,
		&in.IsRead, &in.CreatedAt,
	)
	return in, err
}

const createContactInquiry = `
INSERT INTO contact_inquiries (name, email, phone, service, message)
VALUES (?, ?, ?, ?, ?)
`

// CreateContactInquiryParams holds the fields of a contact form submission.
type CreateContactInquiryParams struct {
	Name    string
	Email   string
	Phone   string
	Service string
	Message string
}

// CreateContactInquiry stores a contact form submission.
func (q *Queries) CreateContactInquiry(ctx context.Context, arg CreateContactInquiryParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createContactInquiry,
		arg.Name, arg.Email, arg.Phone, arg.Service, arg.Message,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const markContactInquiryRead = `UPDATE contact_inquiries SET is_read = 1 WHERE id = ?`

// MarkContactInquiryRead flags an inquiry as handled.
func (q *Queries) MarkContactInquiryRead(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, markContactInquiryRead, id)
	return err
}

const deleteContactInquiry = `DELETE FROM contact_inquiries WHERE id = ?`

// DeleteContactInquiry removes an inquiry.
func (q *Queries) DeleteContactInquiry(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteContactInquiry, id)
	return err
}

const countUnreadContactInquiries = `SELECT COUNT(*) FROM contact_inquiries WHERE is_read = 0`

// CountUnreadContactInquiries returns the number of unhandled inquiries.
func (q *Queries) CountUnreadContactInquiries(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countUnreadContactInquiries).Scan(&n)
	return n, err
}
