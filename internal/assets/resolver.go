package assets

import (
	"errors"
)

// AssetResolver combines custom and embedded loaders.
// When a custom directory is configured its templates override the embedded
// ones file by file; anything it does not provide comes from the embedded
// catalog of the same format.
type AssetResolver struct {
	custom   *FilesystemLoader // nil if no custom path configured
	embedded LayoutLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded layouts are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadCatalog loads the catalog of format, merging custom over embedded.
func (r *AssetResolver) LoadCatalog(format, ext string) (*Catalog, error) {
	if r.custom == nil {
		return r.embedded.LoadCatalog(format, ext)
	}

	custom, err := r.custom.loadPartial(format, ext)
	if err != nil && !errors.Is(err, ErrCatalogNotFound) {
		// Only fall back for "not found" errors, not validation or I/O errors
		return nil, err
	}

	base, embErr := r.embedded.LoadCatalog(format, ext)
	switch {
	case embErr == nil && custom == nil:
		return base, nil
	case embErr == nil:
		return base.merge(custom), nil
	case custom != nil && errors.Is(embErr, ErrCatalogNotFound):
		// Format only known to the custom directory
		return requireBase(custom)
	default:
		return nil, embErr
	}
}

// HasCustomLoader returns true if a custom layout directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// CustomPath returns the custom layout directory, or "" when none is set.
func (r *AssetResolver) CustomPath() string {
	if r.custom == nil {
		return ""
	}
	return r.custom.BasePath()
}

// Compile-time interface check.
var _ LayoutLoader = (*AssetResolver)(nil)
