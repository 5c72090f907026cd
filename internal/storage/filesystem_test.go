package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreWriteAndSanitize(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	key, err := store.Write(context.Background(), "exports/red-variant.png", []byte{0x89, 'P', 'N', 'G'})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if key != "exports/red-variant.png" {
		t.Fatalf("key = %q", key)
	}
	if _, err := os.Stat(filepath.Join(dir, "exports", "red-variant.png")); err != nil {
		t.Fatalf("written file missing: %v", err)
	}

	if _, err := store.Write(context.Background(), "../escape.png", []byte{1}); err == nil {
		t.Fatalf("traversal key accepted")
	}
	if _, err := store.Write(context.Background(), "  ", []byte{1}); err == nil {
		t.Fatalf("empty key accepted")
	}
}
