package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/amaan1133/eagle/internal/apperrors"
)

// allowedExtensions is the upload allow-list. Everything else is rejected
// regardless of declared content type.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".xlsx": true,
	".xls":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
	".csv":  true,
}

// LocalStore saves uploaded files under a single directory with randomized
// names so an original filename can never traverse or collide.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed and returns a store
// over it.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Allowed reports whether the original filename has a permitted extension.
func Allowed(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Save writes the content to a new uuid-named file, keeping the original
// extension, and returns the stored name and absolute path.
func (s *LocalStore) Save(originalFilename string, content io.Reader) (storedName, path string, size int64, err error) {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if !allowedExtensions[ext] {
		return "", "", 0, fmt.Errorf("%w: file type %q is not allowed", apperrors.ErrValidation, ext)
	}

	storedName = uuid.New().String() + ext
	path = filepath.Join(s.dir, storedName)

	f, err := os.Create(path)
	if err != nil {
		return "", "", 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	size, err = io.Copy(f, content)
	if err != nil {
		os.Remove(path)
		return "", "", 0, fmt.Errorf("failed to write file: %w", err)
	}
	return storedName, path, size, nil
}

// Open opens a stored file for reading.
func (s *LocalStore) Open(path string) (*os.File, error) {
	// Refuse anything that escaped the upload directory.
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	dirAbs, err := filepath.Abs(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve upload directory: %w", err)
	}
	if !strings.HasPrefix(abs, dirAbs+string(filepath.Separator)) {
		return nil, apperrors.ErrNotFound
	}
	f, err := os.Open(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Remove deletes a stored file; a missing file is not an error.
func (s *LocalStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}
