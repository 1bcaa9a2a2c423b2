// Package uploads keeps uploaded files on local disk under generated names.
package uploads

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/google/uuid"
)

var (
	ErrTooLarge        = apperr.New(apperr.KindPayloadTooLarge, "file exceeds the maximum upload size")
	ErrUnsupportedType = apperr.New(apperr.KindUnsupportedMediaType, "file type is not allowed")
	ErrEmpty           = apperr.Validation("file is empty")
)

var extensions = map[string]string{
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
	"text/plain":      ".txt",
}

type Store struct {
	dir          string
	maxSize      int64
	allowedTypes []string
}

// Stored describes a file written by Save.
type Stored struct {
	Name        string
	ContentType string
	Size        int64
}

func New(dir string, maxSize int64, allowedTypes []string) (*Store, error) {
	const op = "uploads.New"

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{dir: dir, maxSize: maxSize, allowedTypes: allowedTypes}, nil
}

// Save sniffs the content type, enforces the size limit and writes the file as <uuid><ext>.
func (s *Store) Save(r io.Reader) (Stored, error) {
	const op = "uploads.Store.Save"

	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Stored{}, fmt.Errorf("%s: %w", op, err)
	}
	head = head[:n]
	if n == 0 {
		return Stored{}, fmt.Errorf("%s: %w", op, ErrEmpty)
	}

	contentType := http.DetectContentType(head)
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	if !slices.Contains(s.allowedTypes, contentType) {
		return Stored{}, fmt.Errorf("%s: %w", op, ErrUnsupportedType)
	}

	name := uuid.NewString() + extensions[contentType]
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return Stored{}, fmt.Errorf("%s: %w", op, err)
	}

	// read one byte past the limit to detect oversized files
	written, err := io.Copy(f, io.LimitReader(io.MultiReader(bytes.NewReader(head), r), s.maxSize+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > s.maxSize {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(path)
		return Stored{}, fmt.Errorf("%s: %w", op, err)
	}

	return Stored{Name: name, ContentType: contentType, Size: written}, nil
}

func (s *Store) Open(name string) (*os.File, error) {
	const op = "uploads.Store.Open"

	f, err := os.Open(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return f, nil
}

func (s *Store) Remove(name string) error {
	const op = "uploads.Store.Remove"

	if err := os.Remove(s.path(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) MaxSize() int64 {
	return s.maxSize
}

// path confines name to the upload directory.
func (s *Store) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}
