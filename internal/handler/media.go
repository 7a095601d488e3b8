// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/visionlife/agency-go/internal/middleware"
	"github.com/visionlife/agency-go/internal/model"
	"github.com/visionlife/agency-go/internal/upload"
)

// MediaHandler handles image uploads from the admin forms.
type MediaHandler struct {
	uploads *upload.Service
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(uploads *upload.Service) *MediaHandler {
	return &MediaHandler{uploads: uploads}
}

// Upload handles POST /admin/uploads. Expects a multipart form with a
// "file" field and a "folder" field naming the content type the image
// belongs to. Responds with JSON so the admin forms can fill in the
// image URL without a page reload.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Leave headroom above the image limit for the multipart framing.
	r.Body = http.MaxBytesReader(w, r.Body, upload.MaxUploadSize+64*1024)

	if err := r.ParseMultipartForm(upload.MaxUploadSize); err != nil {
		writeJSONError(w, http.StatusRequestEntityTooLarge, "Upload too large or malformed")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	folder := r.FormValue("folder")

	up, err := h.uploads.Save(folder, file)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrTooLarge):
			writeJSONError(w, http.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, upload.ErrNotAnImage):
			slog.Warn("upload rejected: not an image",
				"category", model.EventCategoryUpload, "user_id", middleware.GetUserID(r))
			writeJSONError(w, http.StatusUnsupportedMediaType, err.Error())
		case errors.Is(err, upload.ErrUnknownFolder):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("upload failed", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "Upload failed")
		}
		return
	}

	slog.Info("image uploaded", "key", up.Key, "uploaded_by", middleware.GetUserID(r))
	writeJSONSuccess(w, map[string]any{
		"key":    up.Key,
		"url":    up.URL,
		"width":  up.Width,
		"height": up.Height,
	})
}
