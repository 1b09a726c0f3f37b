package adapter

import (
	"os"
	"path/filepath"
	"strings"

	m "chisel.dev/pkg/chisel/internal/model"
)

// manifestSuffix marks declaration manifest files on disk.
const manifestSuffix = ".decl.yaml"

// ManifestFSAdapter abstracts the filesystem operations the generation
// workflow relies on when scanning for manifests. It hides direct `os`
// access so the workflow can be tested without touching the disk.
type ManifestFSAdapter interface {
	// FindManifests collects every declaration manifest under root. When
	// root is itself a manifest file it is returned alone.
	FindManifests(root m.Path) ([]m.Path, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)
}

// LocalManifestFSAdapter backs ManifestFSAdapter with the local filesystem.
type LocalManifestFSAdapter struct{}

// NewLocalManifestFSAdapter constructs a LocalManifestFSAdapter.
func NewLocalManifestFSAdapter() *LocalManifestFSAdapter {
	return &LocalManifestFSAdapter{}
}

// FindManifests walks root and returns the manifest files found, sorted by
// filepath.WalkDir's lexical order.
func (a *LocalManifestFSAdapter) FindManifests(root m.Path) ([]m.Path, error) {
	info, err := os.Stat(string(root))
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if strings.HasSuffix(string(root), manifestSuffix) {
			return []m.Path{root}, nil
		}

		return nil, nil
	}

	var manifests []m.Path

	err = filepath.WalkDir(string(root), func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			return nil
		}

		if strings.HasSuffix(path, manifestSuffix) {
			manifests = append(manifests, m.Path(path))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return manifests, nil
}

// ReadFile loads file contents from disk.
func (a *LocalManifestFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}
