package api

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMediaStore_SaveBase64(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := NewMediaStore(dir, 1<<20)

	path, err := m.SaveBase64(testImage())
	if err != nil {
		t.Fatalf("SaveBase64: %v", err)
	}
	if !strings.HasPrefix(path, "recipes/") || !strings.HasSuffix(path, ".png") {
		t.Errorf("path = %q, want recipes/<uuid>.png", path)
	}

	if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(path))); err != nil {
		t.Errorf("stored file: %v", err)
	}
	if got := m.URL(path); got != "/media/"+path {
		t.Errorf("URL = %q", got)
	}

	m.Remove(path)
	if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(path))); !os.IsNotExist(err) {
		t.Errorf("file survived Remove: %v", err)
	}
	// Removing twice is harmless.
	m.Remove(path)
}

func TestMediaStore_RejectsBadPayloads(t *testing.T) {
	t.Parallel()

	m := NewMediaStore(t.TempDir(), 1<<20)

	for _, data := range []string{
		"",
		"plainstring",
		"data:nocomma",
		"data:text/html;base64,aGVsbG8=",
		"data:image/png;base64,%%%",
	} {
		if _, err := m.SaveBase64(data); !errors.Is(err, ErrBadImage) {
			t.Errorf("SaveBase64(%q) = %v, want ErrBadImage", data, err)
		}
	}
}

func TestMediaStore_SizeCap(t *testing.T) {
	t.Parallel()

	m := NewMediaStore(t.TempDir(), 16)

	big := make([]byte, 64)
	data := "data:image/png;base64," + base64.StdEncoding.EncodeToString(big)
	if _, err := m.SaveBase64(data); !errors.Is(err, ErrBadImage) {
		t.Errorf("oversized payload = %v, want ErrBadImage", err)
	}
}

func TestMediaStore_URLEmpty(t *testing.T) {
	t.Parallel()

	m := NewMediaStore(t.TempDir(), 1<<20)
	if got := m.URL(""); got != "" {
		t.Errorf("URL(\"\") = %q, want empty", got)
	}
}
