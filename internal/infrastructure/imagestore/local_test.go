package imagestore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStore_SaveAndRemove(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	ref, err := store.Save("alice.jpg", []byte("image-data"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(ref, "alice.jpg") {
		t.Fatalf("expected filename hint preserved, got %s", ref)
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "image-data" {
		t.Fatalf("unexpected content: %q", data)
	}

	if err := store.Remove(ref); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(ref); !os.IsNotExist(err) {
		t.Fatalf("expected file deleted, stat err: %v", err)
	}
}

func TestLocalStore_UniqueNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	ref1, err := store.Save("photo.jpg", []byte("a"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	ref2, err := store.Save("photo.jpg", []byte("b"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if ref1 == ref2 {
		t.Fatalf("expected unique refs for identical hints, got %s twice", ref1)
	}
}

func TestLocalStore_SanitizesHostilePaths(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	ref, err := store.Save("../../etc/passwd", []byte("x"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Dir(ref) != dir {
		t.Fatalf("file escaped uploads dir: %s", ref)
	}
}

func TestLocalStore_RemoveOutsideDirRejected(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	outside := filepath.Join(t.TempDir(), "other.jpg")
	if err := os.WriteFile(outside, []byte("x"), 0o644); err != nil {
		t.Fatalf("write outside file: %v", err)
	}

	if err := store.Remove(outside); err == nil {
		t.Fatalf("expected removal outside uploads dir to be rejected")
	}
	if _, err := os.Stat(outside); err != nil {
		t.Fatalf("outside file should be untouched: %v", err)
	}
}
