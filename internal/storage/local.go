// Package storage is the file storage collaborator: it accepts uploaded
// binaries and returns stored paths.  Deletion is idempotent so callers can
// always delete-on-replace without checking first.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store abstracts where uploaded images live.  Save returns the public path
// to persist on the entity row; Delete accepts that same path back.
type Store interface {
	Save(ctx context.Context, category, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
}

// LocalStore writes files under Root and serves them under BaseURL
// (e.g. Root "./storage", BaseURL "/storage").
type LocalStore struct {
	Root    string
	BaseURL string
}

func NewLocalStore(root, baseURL string) *LocalStore {
	return &LocalStore{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}
}

// Save stores the upload under <Root>/<category>/<unix>_<filename> and
// returns "<BaseURL>/<category>/<unix>_<filename>".  The timestamp prefix
// keeps repeated uploads of the same filename from colliding.
func (s *LocalStore) Save(_ context.Context, category, filename string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%d_%s", time.Now().Unix(), sanitize(filename))
	dir := filepath.Join(s.Root, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	dst := filepath.Join(dir, name)
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dst, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("write %s: %w", dst, err)
	}
	return s.BaseURL + "/" + category + "/" + name, nil
}

// Delete removes a previously stored file.  Deleting a path that no longer
// exists is not an error, and placeholder paths (initials:XX) are skipped.
func (s *LocalStore) Delete(_ context.Context, path string) error {
	if path == "" || strings.HasPrefix(path, "initials:") {
		return nil
	}
	rel := strings.TrimPrefix(path, s.BaseURL+"/")
	if rel == path && strings.HasPrefix(path, "/") {
		rel = strings.TrimPrefix(path, "/")
	}
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(rel)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// sanitize strips path separators and other hostile characters from a
// client-supplied filename.
func sanitize(name string) string {
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return "upload"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}
