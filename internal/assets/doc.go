// Package assets provides the per-format layout catalogs used to render documents.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	LayoutLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in layouts)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - merges both, custom files overriding embedded ones
//
// AssetResolver is the loader used by the generator. A custom directory only
// needs the files it wants to change: every layout it does not provide is
// taken from the embedded catalog of the same format.
//
// # Directory Structure
//
// Layouts are grouped by format and named after the layout they implement:
//
//	{basePath}/
//	└── {format}/
//	    ├── base{ext}      # outer document template (required)
//	    ├── letter{ext}    # business letter body (optional)
//	    └── {layout}{ext}  # one file per section layout
//
// # Security
//
// Format and layout names are validated to prevent path traversal, and
// filesystem access goes through fs.FS, which rejects paths escaping its root.
package assets
