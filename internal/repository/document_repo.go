package repository

import (
	"fmt"

	"github.com/spf13/afero"
)

// DocumentRepository reads and writes documents as plain text.
type DocumentRepository struct {
	fs afero.Fs
}

// NewDocumentRepository creates a repository over fs. A nil fs means the OS filesystem.
func NewDocumentRepository(fs afero.Fs) *DocumentRepository {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &DocumentRepository{fs: fs}
}

// Fs exposes the underlying filesystem for exports.
func (r *DocumentRepository) Fs() afero.Fs {
	return r.fs
}

// Read loads the whole file as text.
func (r *DocumentRepository) Read(path string) (string, error) {
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// Write replaces the file with content, creating it if needed.
func (r *DocumentRepository) Write(path, content string) error {
	if err := afero.WriteFile(r.fs, path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
