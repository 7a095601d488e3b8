// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package model

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidCategory(t *testing.T) {
	for _, c := range ProjectCategories {
		assert.True(t, IsValidCategory(c), "category %q should be valid", c)
	}
	assert.True(t, IsValidCategory(""), "empty category is optional")
	assert.False(t, IsValidCategory("Sculpture"))
}

func TestIsValidRating(t *testing.T) {
	cases := []struct {
		rating int64
		want   bool
	}{
		{0, false},
		{1, true},
		{5, true},
		{6, false},
		{-1, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IsValidRating(c.rating), "rating %d", c.rating)
	}
}

func TestServiceFeatureList(t *testing.T) {
	s := Service{Features: "Logo design\n\n  Brand guidelines  \nStationery\n"}
	got := s.FeatureList()
	require.Equal(t, []string{"Logo design", "Brand guidelines", "Stationery"}, got)

	empty := Service{Features: ""}
	assert.Empty(t, empty.FeatureList())
}

func TestPublishedAtOrZero(t *testing.T) {
	now := time.Now()
	p := BlogPost{PublishedAt: sql.NullTime{Time: now, Valid: true}}
	assert.True(t, p.PublishedAtOrZero().Equal(now))

	draft := BlogPost{}
	assert.True(t, draft.PublishedAtOrZero().IsZero())
}
