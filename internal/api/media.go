package api

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrBadImage is returned for payloads that are not a decodable image data
// URL or exceed the configured size cap.
var ErrBadImage = errors.New("api: invalid image payload")

// imageExtensions maps accepted data URL media types to file extensions.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// MediaStore writes uploaded recipe images under a root directory and
// serves them back.
type MediaStore struct {
	root     string
	maxBytes int64
}

// NewMediaStore creates a store rooted at dir.
func NewMediaStore(dir string, maxBytes int64) *MediaStore {
	return &MediaStore{root: dir, maxBytes: maxBytes}
}

// SaveBase64 decodes a "data:<type>;base64,<payload>" image and writes it
// to disk under a random name. Returns the stored path relative to the
// media root.
func (m *MediaStore) SaveBase64(data string) (string, error) {
	rest, ok := strings.CutPrefix(data, "data:")
	if !ok {
		return "", ErrBadImage
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", ErrBadImage
	}

	mediaType, _, _ := strings.Cut(meta, ";")
	ext, ok := imageExtensions[mediaType]
	if !ok {
		return "", ErrBadImage
	}

	if int64(len(payload)) > m.maxBytes*4/3+4 {
		return "", ErrBadImage
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrBadImage
	}
	if int64(len(raw)) > m.maxBytes {
		return "", ErrBadImage
	}

	name := filepath.Join("recipes", uuid.NewString()+ext)
	full := filepath.Join(m.root, name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("api: create media directory: %w", err)
	}
	if err := os.WriteFile(full, raw, 0o644); err != nil {
		return "", fmt.Errorf("api: write image: %w", err)
	}

	return filepath.ToSlash(name), nil
}

// Remove deletes a stored image. Missing files are ignored.
func (m *MediaStore) Remove(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(filepath.Join(m.root, filepath.FromSlash(path)))
}

// URL maps a stored path to its public URL.
func (m *MediaStore) URL(path string) string {
	if path == "" {
		return ""
	}
	return "/media/" + path
}

// Handler serves the media root.
func (m *MediaStore) Handler() http.Handler {
	return http.FileServer(http.Dir(m.root))
}
