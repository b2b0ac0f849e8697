package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Reserved template names inside a format directory.
const (
	BaseTemplateName   = "base"
	LetterTemplateName = "letter"
)

// DefaultLayoutName is the layout every built-in catalog provides as fallback.
const DefaultLayoutName = "default"

// Catalog holds the templates of one format.
type Catalog struct {
	Format  string            // Format name (directory name)
	Ext     string            // Template file extension, e.g. ".tex"
	Base    string            // Outer document template
	Letter  string            // Business letter template, empty if absent
	Layouts map[string]string // Section layouts by name
}

// HasLetter reports whether the catalog can render business letters.
func (c *Catalog) HasLetter() bool {
	return c.Letter != ""
}

// LayoutNames returns the sorted section layout names.
func (c *Catalog) LayoutNames() []string {
	names := make([]string, 0, len(c.Layouts))
	for name := range c.Layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// merge overlays other's templates on top of c and returns a new catalog.
func (c *Catalog) merge(other *Catalog) *Catalog {
	out := &Catalog{
		Format:  c.Format,
		Ext:     c.Ext,
		Base:    c.Base,
		Letter:  c.Letter,
		Layouts: make(map[string]string, len(c.Layouts)+len(other.Layouts)),
	}
	for k, v := range c.Layouts {
		out.Layouts[k] = v
	}
	for k, v := range other.Layouts {
		out.Layouts[k] = v
	}
	if other.Base != "" {
		out.Base = other.Base
	}
	if other.Letter != "" {
		out.Letter = other.Letter
	}
	return out
}

// readCatalog reads {format}/*{ext} from fsys. Base is not required here;
// callers decide whether a partial catalog is acceptable.
func readCatalog(fsys fs.FS, format, ext string) (*Catalog, error) {
	if err := ValidateAssetName(format); err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(fsys, format)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrCatalogNotFound, format)
		}
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	cat := &Catalog{Format: format, Ext: ext, Layouts: make(map[string]string)}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		if ValidateAssetName(name) != nil {
			continue
		}

		content, err := fs.ReadFile(fsys, path.Join(format, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrAssetRead, e.Name(), err)
		}

		switch name {
		case BaseTemplateName:
			cat.Base = string(content)
		case LetterTemplateName:
			cat.Letter = string(content)
		default:
			cat.Layouts[name] = string(content)
		}
	}

	if cat.Base == "" && cat.Letter == "" && len(cat.Layouts) == 0 {
		return nil, fmt.Errorf("%w: %q has no %s templates", ErrCatalogNotFound, format, ext)
	}
	return cat, nil
}

// requireBase rejects catalogs that cannot render a document.
func requireBase(cat *Catalog) (*Catalog, error) {
	if cat.Base == "" {
		return nil, fmt.Errorf("%w: %q missing %s%s", ErrIncompleteCatalog, cat.Format, BaseTemplateName, cat.Ext)
	}
	return cat, nil
}
