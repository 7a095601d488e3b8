// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package handler

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/visionlife/agency-go/internal/testutil"
	"github.com/visionlife/agency-go/internal/upload"
)

func newMediaHandler(t *testing.T) (*MediaHandler, string) {
	t.Helper()

	dir := t.TempDir()
	svc, err := upload.NewService(dir, testutil.TestLogger())
	if err != nil {
		t.Fatalf("failed to create upload service: %v", err)
	}
	return NewMediaHandler(svc), dir
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func multipartUpload(t *testing.T, folder string, payload []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "photo.png")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := fw.Write(payload); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := mw.WriteField("folder", folder); err != nil {
		t.Fatalf("failed to write folder field: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/uploads", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadStoresImage(t *testing.T) {
	h, dir := newMediaHandler(t)

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartUpload(t, "projects", pngBytes(t, 20, 10)))

	assertStatus(t, rec.Code, http.StatusOK)

	var resp struct {
		Success bool   `json:"success"`
		Key     string `json:"key"`
		URL     string `json:"url"`
		Width   int    `json:"width"`
		Height  int    `json:"height"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("success = false")
	}
	if !strings.HasPrefix(resp.Key, "projects/") || !strings.HasSuffix(resp.Key, ".png") {
		t.Errorf("key = %q; want projects/<name>.png", resp.Key)
	}
	if resp.URL != "/uploads/"+resp.Key {
		t.Errorf("url = %q; want /uploads/%s", resp.URL, resp.Key)
	}
	if resp.Width != 20 || resp.Height != 10 {
		t.Errorf("dimensions = %dx%d; want 20x10", resp.Width, resp.Height)
	}

	if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(resp.Key))); err != nil {
		t.Errorf("uploaded file missing on disk: %v", err)
	}
}

func TestUploadRejectsNonImage(t *testing.T) {
	h, _ := newMediaHandler(t)

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartUpload(t, "projects", []byte("just some text, definitely not pixels")))

	assertStatus(t, rec.Code, http.StatusUnsupportedMediaType)
}

func TestUploadRejectsUnknownFolder(t *testing.T) {
	h, _ := newMediaHandler(t)

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartUpload(t, "secrets", pngBytes(t, 4, 4)))

	assertStatus(t, rec.Code, http.StatusBadRequest)
}

func TestUploadRequiresFileField(t *testing.T) {
	h, _ := newMediaHandler(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("folder", "projects"); err != nil {
		t.Fatalf("failed to write field: %v", err)
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/admin/uploads", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	assertStatus(t, rec.Code, http.StatusBadRequest)
}
