package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalProvider implements Provider for the local filesystem.
type LocalProvider struct {
	basePath string
}

// NewLocalProvider creates a local provider. Relative paths are resolved
// against basePath; an empty basePath leaves them relative to the working
// directory.
func NewLocalProvider(basePath string) *LocalProvider {
	return &LocalProvider{basePath: basePath}
}

// Resolve returns the filesystem path used for path.
func (p *LocalProvider) Resolve(path string) string {
	if p.basePath == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.basePath, path)
}

func (p *LocalProvider) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(p.Resolve(path))
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Write truncates and rewrites the destination. Concurrent writers to the
// same path race; the last one to finish wins.
func (p *LocalProvider) Write(path string, r io.Reader) (int64, error) {
	fullPath := p.Resolve(path)

	if dir := filepath.Dir(fullPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}

	n, err := io.Copy(dst, r)
	if err != nil {
		dst.Close()
		return n, fmt.Errorf("failed to write file content: %w", err)
	}
	if err := dst.Close(); err != nil {
		return n, fmt.Errorf("failed to close file: %w", err)
	}
	return n, nil
}

func (p *LocalProvider) Name() string {
	return "local"
}

var _ Provider = (*LocalProvider)(nil)
