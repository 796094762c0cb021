package imagestore

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveDataURI(t *testing.T) {
	root := t.TempDir()
	store := New(root)

	payload := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("jpeg bytes"))
	rel, err := store.Save(payload, "recipes/images")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if !strings.HasPrefix(rel, "recipes/images/") {
		t.Errorf("relative path %q missing subdir prefix", rel)
	}
	if !strings.HasSuffix(rel, ".jpg") {
		t.Errorf("expected .jpg extension, got %q", rel)
	}

	raw, err := os.ReadFile(filepath.Join(root, rel))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(raw) != "jpeg bytes" {
		t.Errorf("stored content = %q", raw)
	}
}

func TestSaveBarePayloadDefaultsToPNG(t *testing.T) {
	store := New(t.TempDir())

	rel, err := store.Save(base64.StdEncoding.EncodeToString([]byte("x")), "users")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(rel, ".png") {
		t.Errorf("bare payloads default to png, got %q", rel)
	}
}

func TestSaveRejectsBadPayloads(t *testing.T) {
	store := New(t.TempDir())

	tests := []struct {
		name    string
		payload string
	}{
		{"empty", ""},
		{"unsupported type", "data:image/tiff;base64,AAAA"},
		{"malformed data uri", "data:image/png;base64"},
		{"invalid base64", "data:image/png;base64,@@@@"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.Save(tt.payload, "x"); err == nil {
				t.Errorf("Save(%q) should fail", tt.payload)
			}
		})
	}
}

func TestRemove(t *testing.T) {
	root := t.TempDir()
	store := New(root)

	rel, err := store.Save(base64.StdEncoding.EncodeToString([]byte("x")), "users")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := store.Remove(rel); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, rel)); !os.IsNotExist(err) {
		t.Errorf("file should be gone, stat err = %v", err)
	}

	// removing twice or removing nothing is fine
	if err := store.Remove(rel); err != nil {
		t.Errorf("second Remove: %v", err)
	}
	if err := store.Remove(""); err != nil {
		t.Errorf("Remove(\"\"): %v", err)
	}
}
