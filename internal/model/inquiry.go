// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package model

import "time"

// ContactInquiry is a message submitted through the public contact form.
type ContactInquiry struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Service   string    `json:"service"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
