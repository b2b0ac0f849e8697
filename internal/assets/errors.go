package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrCatalogNotFound indicates no layouts exist for the requested format.
	ErrCatalogNotFound = errors.New("layout catalog not found")

	// ErrIncompleteCatalog indicates the catalog is missing its base template.
	ErrIncompleteCatalog = errors.New("layout catalog missing base template")

	// ErrInvalidAssetName indicates the asset name contains invalid characters
	// such as path separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the configured base path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error occurred while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")
)
