package imagestore

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists base64-encoded image payloads under a media root and
// returns the relative path to the stored file.
type Store struct {
	root string
}

// New creates an image store rooted at dir
func New(root string) *Store {
	return &Store{root: root}
}

var extensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Save decodes a data-URI payload ("data:image/png;base64,....") or a bare
// base64 string and writes it under <root>/<subdir>, returning the relative
// file path. Bare payloads are stored as PNG.
func (s *Store) Save(payload, subdir string) (string, error) {
	if payload == "" {
		return "", fmt.Errorf("empty image payload")
	}

	mime := "image/png"
	data := payload
	if strings.HasPrefix(payload, "data:") {
		header, rest, ok := strings.Cut(payload, ",")
		if !ok {
			return "", fmt.Errorf("malformed data uri")
		}
		mime = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		data = rest
	}

	ext, ok := extensions[mime]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q", mime)
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	dir := filepath.Join(s.root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media dir: %w", err)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	return filepath.ToSlash(filepath.Join(subdir, name)), nil
}

// Remove deletes a previously stored image; a missing file is not an error
func (s *Store) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(relPath)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image: %w", err)
	}
	return nil
}
