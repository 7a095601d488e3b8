// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package model

import "time"

// Rating bounds for testimonials.
const (
	MinRating = 1
	MaxRating = 5

	// DefaultRating is applied when a testimonial is created without
	// an explicit rating.
	DefaultRating = 5
)

// Testimonial represents a client testimonial.
type Testimonial struct {
	ID             int64     `json:"id"`
	ClientName     string    `json:"client_name"`
	ClientRole     string    `json:"client_role"`
	ClientCompany  string    `json:"client_company"`
	ClientImageURL string    `json:"client_image_url"`
	Content        string    `json:"content"`
	Rating         int64     `json:"rating"`
	IsFeatured     bool      `json:"is_featured"`
	DisplayOrder   int64     `json:"display_order"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsValidRating checks a rating is within the allowed bounds.
func IsValidRating(rating int64) bool {
	return rating >= MinRating && rating <= MaxRating
}
