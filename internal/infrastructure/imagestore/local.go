// Package imagestore persists normalized face images on local disk. The
// returned references are absolute file paths, which is exactly the form the
// face comparison server consumes.
package imagestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const timestampLayout = "20060102150405"

// LocalStore writes images into a single uploads directory.
type LocalStore struct {
	dir string
}

// NewLocalStore resolves dir to an absolute path and creates it when missing.
func NewLocalStore(dir string) (*LocalStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve uploads dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalStore{dir: abs}, nil
}

// Save writes data under a timestamped unique name and returns the full path.
// filenameHint only contributes its base name, so client-controlled paths
// cannot escape the uploads directory.
func (s *LocalStore) Save(filenameHint string, data []byte) (string, error) {
	name := fmt.Sprintf("%s_%s_%s",
		time.Now().UTC().Format(timestampLayout),
		uuid.NewString()[:8],
		sanitizeName(filenameHint),
	)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path, nil
}

// Remove deletes a previously saved image. Paths outside the uploads
// directory are rejected.
func (s *LocalStore) Remove(ref string) error {
	clean := filepath.Clean(ref)
	if !strings.HasPrefix(clean, s.dir+string(filepath.Separator)) {
		return fmt.Errorf("ref %q is outside the uploads directory", ref)
	}
	if err := os.Remove(clean); err != nil {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}

func sanitizeName(hint string) string {
	base := filepath.Base(hint)
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "photo.jpg"
	}
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if filepath.Ext(base) == "" {
		base += ".jpg"
	}
	return base
}
