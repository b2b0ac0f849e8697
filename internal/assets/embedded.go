package assets

import (
	"embed"
	"io/fs"
)

//go:embed layouts
var embedded embed.FS

// EmbeddedLoader loads layouts from the embedded filesystem.
// Implements LayoutLoader interface.
type EmbeddedLoader struct {
	fsys fs.FS
}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	sub, err := fs.Sub(embedded, "layouts")
	if err != nil {
		// The directory is part of the binary; a failure here is a build defect.
		panic("assets: embedded layouts missing: " + err.Error())
	}
	return &EmbeddedLoader{fsys: sub}
}

// LoadCatalog loads the built-in catalog of format.
func (e *EmbeddedLoader) LoadCatalog(format, ext string) (*Catalog, error) {
	cat, err := readCatalog(e.fsys, format, ext)
	if err != nil {
		return nil, err
	}
	return requireBase(cat)
}

// Compile-time interface check.
var _ LayoutLoader = (*EmbeddedLoader)(nil)
