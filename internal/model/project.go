// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

// Package model defines domain models and types used throughout the
// application: portfolio projects, testimonials, services, blog posts,
// site statistics, contact inquiries, and users.
package model

import "time"

// Project categories: the fixed set a portfolio project may belong to.
const (
	CategoryBranding         = "Branding"
	CategorySocialMedia      = "Social Media"
	CategoryVideo            = "Video"
	CategoryMotionGraphics   = "Motion Graphics"
	CategoryDigitalMarketing = "Digital Marketing"
)

// ProjectCategories contains all valid project categories in display order.
var ProjectCategories = []string{
	CategoryBranding,
	CategorySocialMedia,
	CategoryVideo,
	CategoryMotionGraphics,
	CategoryDigitalMarketing,
}

// IsValidCategory checks whether a category is one of the fixed set.
// The empty string is allowed: category is an optional field.
func IsValidCategory(category string) bool {
	if category == "" {
		return true
	}
	for _, c := range ProjectCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Project represents a portfolio project.
type Project struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	ImageURL     string    `json:"image_url"`
	ClientName   string    `json:"client_name"`
	ProjectDate  string    `json:"project_date"`
	IsFeatured   bool      `json:"is_featured"`
	DisplayOrder int64     `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
