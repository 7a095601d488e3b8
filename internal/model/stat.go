// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package model

import "time"

// SiteStat represents a single headline number shown on the public site,
// identified by a normalized snake_case key such as "years_experience".
type SiteStat struct {
	ID           int64     `json:"id"`
	StatKey      string    `json:"stat_key"`
	StatValue    string    `json:"stat_value"`
	Label        string    `json:"label"`
	Suffix       string    `json:"suffix"`
	DisplayOrder int64     `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
