// Package pipeline implements the per-format rendering stages.
//
// A document is rendered once per output format:
//   - Transcode rewrites every string of the document with the format's
//     ordered substitution rules, producing a format-private copy
//   - TypeResolver picks the layout that renders each section
//   - Renderer renders sections into a body and wraps it in the base template
//   - Pair regroups items for two-column layouts
//
// Nothing in this package touches the filesystem. Layout sources come from
// an assets.Catalog and results are returned as strings; writing, compiling
// and distributing outputs is handled by the root resumegen package.
package pipeline
