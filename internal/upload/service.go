// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

// Package upload stores admin image uploads on disk and serves them
// back under /uploads/. Files are validated as images before anything
// touches the disk.
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

// MaxUploadSize is the largest accepted image, in bytes.
const MaxUploadSize = 5 << 20 // 5 MiB

// thumbnailWidth is the width of generated admin previews.
const thumbnailWidth = 480

// Validation errors returned by Save.
var (
	ErrTooLarge      = fmt.Errorf("image exceeds the %dMB limit", MaxUploadSize>>20)
	ErrNotAnImage    = errors.New("file is not an image")
	ErrUnknownFolder = errors.New("unknown upload folder")
)

// Folders that uploads may be stored under, one per content type.
var allowedFolders = map[string]bool{
	"projects":     true,
	"testimonials": true,
	"blog":         true,
}

var extByType = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// Upload describes a stored file.
type Upload struct {
	Key    string `json:"key"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Service stores uploads under a base directory.
type Service struct {
	dir    string
	logger *slog.Logger
	nowFn  func() time.Time
}

// NewService creates a Service rooted at dir, creating it if needed.
func NewService(dir string, logger *slog.Logger) (*Service, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads dir: %w", err)
	}
	return &Service{dir: dir, logger: logger, nowFn: time.Now}, nil
}

// Dir returns the base uploads directory.
func (s *Service) Dir() string {
	return s.dir
}

// Save validates and stores an image under the given folder. The key is
// unique per upload so repeated uploads of the same file never collide.
func (s *Service) Save(folder string, r io.Reader) (*Upload, error) {
	if !allowedFolders[folder] {
		return nil, ErrUnknownFolder
	}

	// Read one byte past the limit to distinguish "exactly at the
	// limit" from "over it".
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) > MaxUploadSize {
		return nil, ErrTooLarge
	}

	contentType := http.DetectContentType(data)
	ext, ok := extByType[contentType]
	if !ok || !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrNotAnImage
	}
	bounds := img.Bounds()

	name := fmt.Sprintf("%d-%s.%s", s.nowFn().UnixMilli(), uuid.NewString(), ext)
	key := path.Join(folder, name)

	dstDir := filepath.Join(s.dir, folder)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating folder: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dstDir, name), data, 0o644); err != nil {
		return nil, fmt.Errorf("writing upload: %w", err)
	}

	s.writeThumbnail(img, dstDir, name, contentType)

	return &Upload{
		Key:    key,
		URL:    PublicURL(key),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// writeThumbnail renders a downscaled preview next to the original,
// named thumb_<name>.jpg. Failures only cost the preview, so they are
// logged and ignored.
func (s *Service) writeThumbnail(img image.Image, dstDir, name, contentType string) {
	if img.Bounds().Dx() <= thumbnailWidth {
		return
	}
	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)
	thumbName := "thumb_" + strings.TrimSuffix(name, path.Ext(name)) + ".jpg"
	if err := imaging.Save(thumb, filepath.Join(dstDir, thumbName), imaging.JPEGQuality(80)); err != nil {
		s.logger.Warn("thumbnail generation failed", "file", name, "error", err)
	}
}

// Remove deletes a stored file and its thumbnail, if any. The key must
// stay inside the uploads directory.
func (s *Service) Remove(key string) error {
	clean := path.Clean(key)
	if strings.HasPrefix(clean, "..") || path.IsAbs(clean) {
		return fmt.Errorf("invalid upload key %q", key)
	}

	full := filepath.Join(s.dir, filepath.FromSlash(clean))
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	dir, name := path.Split(clean)
	thumb := filepath.Join(s.dir, filepath.FromSlash(dir),
		"thumb_"+strings.TrimSuffix(name, path.Ext(name))+".jpg")
	if err := os.Remove(thumb); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// PublicURL maps a storage key to the URL it is served under.
func PublicURL(key string) string {
	return "/uploads/" + key
}

// KeyFromURL is the inverse of PublicURL. Returns "" for URLs outside
// /uploads/.
func KeyFromURL(url string) string {
	if !strings.HasPrefix(url, "/uploads/") {
		return ""
	}
	return strings.TrimPrefix(url, "/uploads/")
}
