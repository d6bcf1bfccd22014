package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type FileBlob struct {
	FilePath string
}

func NewFileBlob(filePath string) *FileBlob {
	return &FileBlob{FilePath: filePath}
}

func (f *FileBlob) Load(ctx context.Context) ([]byte, error) {
	b, err := os.ReadFile(f.FilePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return b, err
}

// Save writes data to a temporary file next to FilePath and renames it into place.
func (f *FileBlob) Save(ctx context.Context, data []byte) error {
	dir := filepath.Dir(f.FilePath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.FilePath)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // nolint: errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() // nolint: errcheck
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.FilePath)
}

func (f *FileBlob) Delete(ctx context.Context) error {
	err := os.Remove(f.FilePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
