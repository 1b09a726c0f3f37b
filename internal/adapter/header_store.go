package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "chisel.dev/pkg/chisel/internal/model"
)

// HeaderStore persists finalized header text. Callers hand it the complete
// output set once linking has succeeded; partial runs are never written.
type HeaderStore interface {
	// WriteHeaders writes every header under dir, creating nested
	// directories as needed.
	WriteHeaders(dir m.Path, outputs m.Outputs) error

	// ListHeaders returns the header files below dir, relative to it.
	ListHeaders(dir m.Path) ([]m.Path, error)

	// ReadHeader loads one previously written header.
	ReadHeader(dir m.Path, header m.Path) ([]byte, error)
}

// LocalHeaderStore writes headers to the local filesystem.
type LocalHeaderStore struct{}

// NewLocalHeaderStore constructs a LocalHeaderStore.
func NewLocalHeaderStore() *LocalHeaderStore {
	return &LocalHeaderStore{}
}

// WriteHeaders persists the output set under dir.
func (s *LocalHeaderStore) WriteHeaders(dir m.Path, outputs m.Outputs) error {
	for id, text := range outputs {
		target := filepath.Join(string(dir), string(id))

		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			return fmt.Errorf("create header directory: %w", err)
		}

		if err := os.WriteFile(target, []byte(text), 0o600); err != nil {
			return fmt.Errorf("write header %s: %w", id, err)
		}
	}

	return nil
}

// ListHeaders walks dir and returns every .h file below it.
func (s *LocalHeaderStore) ListHeaders(dir m.Path) ([]m.Path, error) {
	var headers []m.Path

	err := filepath.WalkDir(string(dir), func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() || !strings.HasSuffix(path, ".h") {
			return nil
		}

		rel, err := filepath.Rel(string(dir), path)
		if err != nil {
			return err
		}

		headers = append(headers, m.Path(rel))

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(headers, func(i, j int) bool { return headers[i] < headers[j] })

	return headers, nil
}

// ReadHeader loads one header relative to dir.
func (s *LocalHeaderStore) ReadHeader(dir m.Path, header m.Path) ([]byte, error) {
	return os.ReadFile(filepath.Join(string(dir), string(header)))
}
