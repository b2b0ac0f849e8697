package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FilesystemLoader loads layouts from a directory on the filesystem.
// Implements LayoutLoader interface.
type FilesystemLoader struct {
	basePath string
	fsys     fs.FS
}

// NewFilesystemLoader creates a FilesystemLoader for the given base path.
// Returns ErrInvalidBasePath if the path is not a valid, readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Resolve symlinks in base path so the DirFS root is the real directory
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}

	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{basePath: absPath, fsys: os.DirFS(absPath)}, nil
}

// BasePath returns the resolved absolute directory layouts are read from.
func (f *FilesystemLoader) BasePath() string {
	return f.basePath
}

// LoadCatalog loads {basePath}/{format}/*{ext}. The base template is required.
func (f *FilesystemLoader) LoadCatalog(format, ext string) (*Catalog, error) {
	cat, err := f.loadPartial(format, ext)
	if err != nil {
		return nil, err
	}
	return requireBase(cat)
}

// loadPartial loads whatever templates exist, without requiring base.
func (f *FilesystemLoader) loadPartial(format, ext string) (*Catalog, error) {
	return readCatalog(f.fsys, format, ext)
}

// Compile-time interface check.
var _ LayoutLoader = (*FilesystemLoader)(nil)
