package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidFileType = errors.New("only PDF files are allowed")
	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
)

// ScratchStorage owns short-lived files such as recorded audio. Nothing
// written here outlives the request that created it.
type ScratchStorage interface {
	EnsureDir() error
	CreateTemp(prefix, ext string) (*os.File, error)
	Remove(path string) error
	ReadUpload(file *multipart.FileHeader) ([]byte, error)
}

type scratchStorage struct {
	dir         string
	maxFileSize int64
}

func NewScratchStorage(dir string, maxFileSize int64) ScratchStorage {
	return &scratchStorage{
		dir:         dir,
		maxFileSize: maxFileSize,
	}
}

func (s *scratchStorage) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create scratch directory: %w", err)
	}
	return nil
}

// CreateTemp opens a new uniquely named file in the scratch directory.
func (s *scratchStorage) CreateTemp(prefix, ext string) (*os.File, error) {
	name := fmt.Sprintf("%s_%s%s", prefix, uuid.New().String(), ext)

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch file: %w", err)
	}
	return f, nil
}

func (s *scratchStorage) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete scratch file: %w", err)
	}
	return nil
}

// ReadUpload validates an uploaded resume and returns its bytes. Resumes are
// parsed in memory and never written to disk.
func (s *scratchStorage) ReadUpload(file *multipart.FileHeader) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidFileType, ext)
	}
	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, file.Size)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	return data, nil
}
