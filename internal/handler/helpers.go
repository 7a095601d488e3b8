// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

var errNegativeDisplayOrder = errors.New("display order must not be negative")

// idParam extracts the {id} URL parameter.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// formBool interprets a checkbox form value.
func formBool(r *http.Request, name string) bool {
	switch r.FormValue(name) {
	case "on", "1", "true":
		return true
	}
	return false
}

// displayOrderOrDefault parses a display order field. When the field is
// blank, new rows default to the current row count so they append to the
// end of the list.
func displayOrderOrDefault(ctx context.Context, raw string, countFn func(context.Context) (int64, error)) (int64, error) {
	if raw == "" {
		return countFn(ctx)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errNegativeDisplayOrder
	}
	return n, nil
}
