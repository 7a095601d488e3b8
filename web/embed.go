// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

// Package web embeds the HTML templates and static assets.
package web

import "embed"

//go:embed all:templates
var Templates embed.FS

//go:embed all:static
var Static embed.FS
