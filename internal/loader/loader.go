// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"
)

// Loader handles loading program images from disk.
type Loader struct {
	maxSize int
}

// New creates a new ROM loader that rejects images larger than maxSize bytes.
func New(maxSize int) *Loader {
	return &Loader{
		maxSize: maxSize,
	}
}

// SizeError is returned when the program image exceeds the maximum size.
type SizeError struct {
	Size    int64
	MaxSize int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("program image of %d bytes exceeds maximum size of %d bytes", e.Size, e.MaxSize)
}

// Load reads the raw program image from the file.
// CHIP-8 ROMs have no header, the complete file content is the program.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := l.LoadReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading file %s: %w", path, err)
	}
	return data, nil
}

// LoadReader reads the raw program image from the reader. At most one byte
// more than the maximum size is buffered, the rest of an oversized image is
// only counted.
func (l *Loader) LoadReader(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, int64(l.maxSize)+1))
	if err != nil {
		return nil, fmt.Errorf("reading program image: %w", err)
	}
	if len(data) <= l.maxSize {
		return data, nil
	}

	remaining, err := io.Copy(io.Discard, reader)
	if err != nil {
		return nil, fmt.Errorf("reading program image: %w", err)
	}
	return nil, &SizeError{
		Size:    int64(len(data)) + remaining,
		MaxSize: l.maxSize,
	}
}
