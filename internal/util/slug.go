// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

// Package util provides general-purpose utility functions including
// URL slug generation and form value normalization.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlnumRuns matches runs of characters that are not lowercase letters or digits
	nonAlnumRuns = regexp.MustCompile(`[^a-z0-9]+`)
	// whitespaceRuns matches runs of whitespace
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// Slugify converts a string to a URL-friendly slug.
// It removes accents, lowercases, and replaces every run of
// non-alphanumeric characters with a single hyphen.
func Slugify(s string) string {
	// Normalize unicode characters (decompose accents)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)
	result = nonAlnumRuns.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	return result
}

// IsValidSlug checks if a string is a valid slug format.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}

	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}

	return !strings.Contains(s, "--")
}

// NormalizeStatKey normalizes a site stat key: lowercase with runs of
// whitespace replaced by single underscores.
func NormalizeStatKey(s string) string {
	return whitespaceRuns.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "_")
}

// SplitFeatures splits a multi-line features field into individual feature
// lines, discarding lines that are empty or whitespace-only.
func SplitFeatures(s string) []string {
	var features []string
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			features = append(features, trimmed)
		}
	}
	return features
}
