// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package upload

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/visionlife/agency-go/internal/testutil"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := NewService(t.TempDir(), testutil.TestLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return s
}

// pngBytes encodes a solid-color PNG of the given size.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test png: %v", err)
	}
	return buf.Bytes()
}

func TestSaveStoresImage(t *testing.T) {
	s := newTestService(t)

	up, err := s.Save("projects", bytes.NewReader(pngBytes(t, 64, 48)))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if !strings.HasPrefix(up.Key, "projects/") || !strings.HasSuffix(up.Key, ".png") {
		t.Errorf("key = %q, want projects/<name>.png", up.Key)
	}
	if up.URL != "/uploads/"+up.Key {
		t.Errorf("url = %q, want /uploads/%s", up.URL, up.Key)
	}
	if up.Width != 64 || up.Height != 48 {
		t.Errorf("dimensions = %dx%d, want 64x48", up.Width, up.Height)
	}

	if _, err := os.Stat(filepath.Join(s.Dir(), filepath.FromSlash(up.Key))); err != nil {
		t.Errorf("stored file missing: %v", err)
	}
}

func TestSaveUniqueKeys(t *testing.T) {
	s := newTestService(t)
	data := pngBytes(t, 10, 10)

	a, err := s.Save("blog", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, err := s.Save("blog", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if a.Key == b.Key {
		t.Errorf("same key for two uploads: %q", a.Key)
	}
}

func TestSaveRejectsOversize(t *testing.T) {
	s := newTestService(t)

	big := make([]byte, MaxUploadSize+1)
	if _, err := s.Save("projects", bytes.NewReader(big)); !errors.Is(err, ErrTooLarge) {
		t.Errorf("Save(6MiB+) = %v, want ErrTooLarge", err)
	}
}

func TestSaveRejectsNonImage(t *testing.T) {
	s := newTestService(t)

	cases := map[string][]byte{
		"plain text":    []byte("definitely not an image"),
		"html":          []byte("<html><body>hi</body></html>"),
		"empty":         {},
		"fake pdf":      []byte("%PDF-1.5 not really"),
		"truncated png": pngBytes(t, 10, 10)[:16],
	}
	for name, data := range cases {
		if _, err := s.Save("projects", bytes.NewReader(data)); !errors.Is(err, ErrNotAnImage) {
			t.Errorf("%s: Save = %v, want ErrNotAnImage", name, err)
		}
	}
}

func TestSaveRejectsUnknownFolder(t *testing.T) {
	s := newTestService(t)

	if _, err := s.Save("../../etc", bytes.NewReader(pngBytes(t, 10, 10))); !errors.Is(err, ErrUnknownFolder) {
		t.Errorf("Save(bad folder) = %v, want ErrUnknownFolder", err)
	}
}

func TestThumbnailForLargeImages(t *testing.T) {
	s := newTestService(t)

	up, err := s.Save("projects", bytes.NewReader(pngBytes(t, 1200, 800)))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	name := strings.TrimPrefix(up.Key, "projects/")
	thumb := filepath.Join(s.Dir(), "projects",
		"thumb_"+strings.TrimSuffix(name, ".png")+".jpg")
	if _, err := os.Stat(thumb); err != nil {
		t.Errorf("thumbnail missing for 1200px image: %v", err)
	}

	// Small images keep no thumbnail.
	small, err := s.Save("projects", bytes.NewReader(pngBytes(t, 100, 100)))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	smallName := strings.TrimPrefix(small.Key, "projects/")
	smallThumb := filepath.Join(s.Dir(), "projects",
		"thumb_"+strings.TrimSuffix(smallName, ".png")+".jpg")
	if _, err := os.Stat(smallThumb); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("unexpected thumbnail for 100px image: %v", err)
	}
}

func TestRemove(t *testing.T) {
	s := newTestService(t)

	up, err := s.Save("testimonials", bytes.NewReader(pngBytes(t, 600, 600)))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Remove(up.Key); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Dir(), filepath.FromSlash(up.Key))); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("file still present after Remove: %v", err)
	}

	// Removing twice is fine.
	if err := s.Remove(up.Key); err != nil {
		t.Errorf("second Remove: %v", err)
	}

	// Path traversal is refused.
	if err := s.Remove("../outside.txt"); err == nil {
		t.Error("Remove with traversal key should fail")
	}
}

func TestKeyFromURL(t *testing.T) {
	if got := KeyFromURL("/uploads/projects/a.jpg"); got != "projects/a.jpg" {
		t.Errorf("KeyFromURL = %q", got)
	}
	if got := KeyFromURL("https://cdn.example.com/x.jpg"); got != "" {
		t.Errorf("external URL should map to empty key, got %q", got)
	}
}
