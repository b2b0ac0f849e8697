package assets

// LayoutLoader defines the contract for loading a format's layout catalog.
// Implementations may load from embedded assets, filesystem, etc.
type LayoutLoader interface {
	// LoadCatalog loads every layout of format whose file name ends in ext.
	// Returns ErrCatalogNotFound if the format has no layouts.
	// Returns ErrIncompleteCatalog if the base template is missing.
	// Returns ErrInvalidAssetName if the format name contains invalid characters.
	LoadCatalog(format, ext string) (*Catalog, error)
}
