package storage

import (
	"io"
)

// Provider is the file access used by the image codec. Paths are the
// caller's paths; a provider may resolve relative ones against a base.
type Provider interface {
	// Open returns a reader over the whole file at path.
	Open(path string) (io.ReadCloser, error)
	// Write replaces the file at path with the contents of r, creating parent
	// directories as needed, and reports the number of bytes written.
	Write(path string, r io.Reader) (int64, error)
	// Name identifies the provider in logs.
	Name() string
}
