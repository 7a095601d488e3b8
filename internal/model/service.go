// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package model

import (
	"strings"
	"time"
)

// Service represents an offered agency service. Features are stored as a
// single newline-separated text column; FeatureList splits it for display.
type Service struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon_name"`
	Features     string    `json:"-"`
	PriceRange   string    `json:"price_range"`
	IsActive     bool      `json:"is_active"`
	DisplayOrder int64     `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FeatureList returns the individual features, one per non-blank line.
func (s Service) FeatureList() []string {
	var out []string
	for _, line := range strings.Split(s.Features, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
